package model

// BoardPageSize is the number of entries on one page of any board or admin listing.
const BoardPageSize = 10

// PageRequest selects a window of a result set. Number is zero-based.
type PageRequest struct {
	Number int
	Size   int
}

// NewPageRequest converts a one-based page number from the API boundary
// into a zero-based store request.
func NewPageRequest(pageNumber, size int) PageRequest {
	return PageRequest{Number: pageNumber - 1, Size: size}
}

// Offset returns the index of the first element in the window
func (r PageRequest) Offset() int {
	return r.Number * r.Size
}

// Page is one window of an ordered result set plus the total element count
type Page[T any] struct {
	Items  []T
	Number int
	Size   int
	Total  int64
}

// NewPage builds a page for the given request
func NewPage[T any](items []T, req PageRequest, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:  items,
		Number: req.Number,
		Size:   req.Size,
		Total:  total,
	}
}

// TotalPages returns the number of pages needed to hold Total elements
func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// MapPage converts every item of a page, keeping its paging metadata
func MapPage[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return &Page[U]{
		Items:  items,
		Number: p.Number,
		Size:   p.Size,
		Total:  p.Total,
	}
}

// PageResponse is the wire form of a page. PageNumber is one-based.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"page_number"`
	PageSize      int   `json:"page_size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPageResponse shapes a page for the API
func NewPageResponse[T any](p *Page[T]) *PageResponse[T] {
	totalPages := p.TotalPages()
	return &PageResponse[T]{
		Content:       p.Items,
		PageNumber:    p.Number + 1,
		PageSize:      p.Size,
		TotalElements: p.Total,
		TotalPages:    totalPages,
		First:         p.Number == 0,
		Last:          p.Number+1 >= totalPages,
	}
}
