package model

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageRequest_ConvertsToZeroBased(t *testing.T) {
	t.Parallel()

	req := NewPageRequest(3, BoardPageSize)

	assert.Equal(t, 2, req.Number)
	assert.Equal(t, BoardPageSize, req.Size)
	assert.Equal(t, 20, req.Offset())
}

func TestPage_TotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{25, 10, 3},
		{30, 10, 3},
		{5, 0, 0},
	}

	for _, tt := range tests {
		p := &Page[int]{Total: tt.total, Size: tt.size}
		assert.Equal(t, tt.want, p.TotalPages(), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestNewPage_NilItemsBecomeEmpty(t *testing.T) {
	t.Parallel()

	p := NewPage[Post](nil, NewPageRequest(1, 10), 0)

	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
}

func TestMapPage_KeepsMetadata(t *testing.T) {
	t.Parallel()

	p := NewPage([]int{1, 2, 3}, PageRequest{Number: 2, Size: 3}, 9)

	mapped := MapPage(p, strconv.Itoa)

	assert.Equal(t, []string{"1", "2", "3"}, mapped.Items)
	assert.Equal(t, 2, mapped.Number)
	assert.Equal(t, 3, mapped.Size)
	assert.Equal(t, int64(9), mapped.Total)
}

func TestNewPageResponse_LastPage(t *testing.T) {
	t.Parallel()

	p := NewPage([]int{21, 22, 23, 24, 25}, NewPageRequest(3, 10), 25)

	resp := NewPageResponse(p)

	assert.Equal(t, 3, resp.PageNumber)
	assert.Equal(t, 10, resp.PageSize)
	assert.Equal(t, int64(25), resp.TotalElements)
	assert.Equal(t, 3, resp.TotalPages)
	assert.False(t, resp.First)
	assert.True(t, resp.Last)
	assert.Len(t, resp.Content, 5)
}

func TestNewPageResponse_FirstPage(t *testing.T) {
	t.Parallel()

	p := NewPage([]int{1, 2}, NewPageRequest(1, 2), 5)

	resp := NewPageResponse(p)

	assert.True(t, resp.First)
	assert.False(t, resp.Last)
}
