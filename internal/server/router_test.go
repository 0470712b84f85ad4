package server

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/agora/api/internal/database"
	"github.com/forgo/agora/api/internal/middleware"
	"github.com/forgo/agora/api/internal/model"
	"github.com/forgo/agora/api/internal/store"
	"github.com/forgo/agora/api/pkg/jwt"
)

// ============================================================================
// Fixtures
// ============================================================================

type testServer struct {
	t       *testing.T
	handler http.Handler
	store   *store.Store
	tokens  *jwt.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(context.Background(), database.Config{
		Driver: database.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := jwt.NewTestService(key, "agora-test", time.Hour)

	rl, err := middleware.NewRateLimiter(middleware.RateLimitConfig{Rate: "1000-M"})
	require.NoError(t, err)

	return &testServer{
		t:     t,
		store: st,
		handler: NewHandler(Deps{
			Store:          st,
			Validator:      tokens,
			RateLimiter:    rl,
			AllowedOrigins: []string{"*"},
		}),
		tokens: tokens,
	}
}

// register stores a user and returns a bearer token for it
func (s *testServer) register(email string, role model.UserRole) string {
	s.t.Helper()

	user := &model.User{Email: email, Role: role}
	require.NoError(s.t, s.store.Users.Create(context.Background(), user))

	token, err := s.tokens.Sign(jwt.Claims{UserID: user.ID, Email: email, Role: string(role)})
	require.NoError(s.t, err)
	return token
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func decodeData[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Data
}

// ============================================================================
// Board Flow Tests
// ============================================================================

func TestBoard_Lifecycle(t *testing.T) {
	s := newTestServer(t)
	ana := s.register("ana@example.com", model.UserRoleMember)
	bob := s.register("bob@example.com", model.UserRoleMember)
	root := s.register("root@example.com", model.UserRoleAdmin)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodGet, "/v1/boards", "", nil).Code)

	// anonymous callers cannot post
	rr := s.do(http.MethodPost, "/v1/boards", "", model.AddPostRequest{Title: "t", Content: "c"})
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = s.do(http.MethodPost, "/v1/boards", ana, model.AddPostRequest{Title: "Weekend hike", Content: "Who is in?"})
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decodeData[model.PostDetail](t, rr)
	path := fmt.Sprintf("/v1/boards/%d", created.ID)

	rr = s.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ana@example.com", decodeData[model.PostDetail](t, rr).WriterEmail)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, path+"/authority", ana, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, path+"/authority", bob, nil).Code)

	title := "Changed by bob"
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPatch, path, bob, model.ModifyPostRequest{Title: &title}).Code)

	title = "Moderated"
	rr = s.do(http.MethodPatch, path, root, model.ModifyPostRequest{Title: &title})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodGet, path, "", nil)
	detail := decodeData[model.PostDetail](t, rr)
	assert.Equal(t, "Moderated", detail.Title)
	assert.Equal(t, "Who is in?", detail.Content)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, path, bob, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, path, ana, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, path, ana, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, path, "", nil).Code)
}

func TestBoard_Paging(t *testing.T) {
	s := newTestServer(t)
	ana := s.register("ana@example.com", model.UserRoleMember)

	for i := 1; i <= 25; i++ {
		rr := s.do(http.MethodPost, "/v1/boards", ana, model.AddPostRequest{
			Title:   fmt.Sprintf("post %02d", i),
			Content: "body",
		})
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := s.do(http.MethodGet, "/v1/boards?page=3", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	page := decodeData[model.PageResponse[model.PostSummary]](t, rr)
	require.Len(t, page.Content, 5)
	assert.Equal(t, "post 21", page.Content[0].Title)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(25), page.TotalElements)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodGet, "/v1/boards?page=4", "", nil).Code)

	rr = s.do(http.MethodGet, "/v1/boards/search?keyword=post%202", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(6), decodeData[model.PageResponse[model.PostSummary]](t, rr).TotalElements)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodGet, "/v1/boards/search?keyword=nothing", "", nil).Code)

	rr = s.do(http.MethodGet, "/v1/boards/search?keyword=&page=1", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(25), decodeData[model.PageResponse[model.PostSummary]](t, rr).TotalElements)

	long := "/v1/boards/search?keyword=" + strings.Repeat("p", 101)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodGet, long, "", nil).Code)
}

func TestBoard_TokenForUnknownUser(t *testing.T) {
	s := newTestServer(t)

	ghost, err := s.tokens.Sign(jwt.Claims{UserID: "ghost", Email: "ghost@example.com", Role: "member"})
	require.NoError(t, err)

	rr := s.do(http.MethodPost, "/v1/boards", ghost, model.AddPostRequest{Title: "t", Content: "c"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodGet, "/v1/boards", "", nil).Code)
}

// ============================================================================
// Admin Flow Tests
// ============================================================================

func TestAdmin_RoleManagement(t *testing.T) {
	s := newTestServer(t)
	ana := s.register("ana@example.com", model.UserRoleMember)
	root := s.register("root@example.com", model.UserRoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/v1/admin/users", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/v1/admin/users", ana, nil).Code)

	rr := s.do(http.MethodGet, "/v1/admin/users", root, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(2), decodeData[model.PageResponse[model.UserItem]](t, rr).TotalElements)

	rr = s.do(http.MethodPost, "/v1/admin/users/ana@example.com/promote", root, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, model.UserRoleAdmin, decodeData[model.UserItem](t, rr).Role)

	assert.Equal(t, http.StatusUnprocessableEntity,
		s.do(http.MethodPost, "/v1/admin/users/root@example.com/demote", root, nil).Code)
	assert.Equal(t, http.StatusNotFound,
		s.do(http.MethodPost, "/v1/admin/users/ghost@example.com/promote", root, nil).Code)

	rr = s.do(http.MethodPost, "/v1/admin/users/ana@example.com/demote", root, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, model.UserRoleMember, decodeData[model.UserItem](t, rr).Role)
}

func TestAdmin_Seed(t *testing.T) {
	s := newTestServer(t)
	root := s.register("root@example.com", model.UserRoleAdmin)

	rr := s.do(http.MethodPost, "/v1/admin/seed", root, map[string]int{"users": 2, "posts_per_user": 3})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = s.do(http.MethodGet, "/v1/boards", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(6), decodeData[model.PageResponse[model.PostSummary]](t, rr).TotalElements)
}

func TestRouter_AddsRequestID(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/health", "", nil)

	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}
