package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/forgo/agora/api/internal/middleware"
	"github.com/forgo/agora/api/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockPostRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*model.Post, error)
	listFunc    func(ctx context.Context, req model.PageRequest) (*model.Page[model.Post], error)
	searchFunc  func(ctx context.Context, keyword string, req model.PageRequest) (*model.Page[model.Post], error)
	createFunc  func(ctx context.Context, post *model.Post) error
	updateFunc  func(ctx context.Context, id int64, upd model.PostUpdate) (*model.Post, error)
	deleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockPostRepo) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPostRepo) List(ctx context.Context, req model.PageRequest) (*model.Page[model.Post], error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, req)
	}
	return model.NewPage[model.Post](nil, req, 0), nil
}

func (m *mockPostRepo) SearchByTitle(ctx context.Context, keyword string, req model.PageRequest) (*model.Page[model.Post], error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, keyword, req)
	}
	return model.NewPage[model.Post](nil, req, 0), nil
}

func (m *mockPostRepo) Create(ctx context.Context, post *model.Post) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) Update(ctx context.Context, id int64, upd model.PostUpdate) (*model.Post, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, upd)
	}
	return nil, nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockUserRepo struct {
	getByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	listFunc       func(ctx context.Context, req model.PageRequest) (*model.Page[model.User], error)
	setRoleFunc    func(ctx context.Context, userID string, role model.UserRole) error
	createFunc     func(ctx context.Context, user *model.User) error
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) List(ctx context.Context, req model.PageRequest) (*model.Page[model.User], error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, req)
	}
	return model.NewPage[model.User](nil, req, 0), nil
}

func (m *mockUserRepo) SetRole(ctx context.Context, userID string, role model.UserRole) error {
	if m.setRoleFunc != nil {
		return m.setRoleFunc(ctx, userID, role)
	}
	return nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "user:new"
	return nil
}

// ============================================================================
// Test Helpers
// ============================================================================

var (
	member = model.Actor{UserID: "user:ana", Email: "ana@example.com", Role: model.UserRoleMember}
	admin  = model.Actor{UserID: "user:root", Email: "root@example.com", Role: model.UserRoleAdmin}
)

func newTestPost(id int64, ownerEmail string) *model.Post {
	now := time.Now().UTC()
	return &model.Post{
		ID:         id,
		Title:      "Weekend hike",
		Content:    "Who is in?",
		OwnerID:    "user:owner",
		OwnerEmail: ownerEmail,
		CreatedOn:  now,
		UpdatedOn:  now,
	}
}

func makeJSONRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withActor(req *http.Request, actor model.Actor) *http.Request {
	return req.WithContext(middleware.WithActor(req.Context(), actor))
}

// serve routes req through a mux so path values are populated
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func parseErrorResponse(t *testing.T, body []byte) *model.ProblemDetails {
	t.Helper()
	var problem model.ProblemDetails
	if err := json.Unmarshal(body, &problem); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	return &problem
}

func parseData[T any](t *testing.T, body []byte) T {
	t.Helper()
	var resp struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to parse data response: %v", err)
	}
	return resp.Data
}
