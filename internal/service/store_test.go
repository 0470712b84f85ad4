package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/forgo/agora/api/internal/database"
	"github.com/forgo/agora/api/internal/model"
)

// ============================================================================
// In-memory store
// ============================================================================

// memStore implements the post and user repositories on maps
type memStore struct {
	mu     sync.Mutex
	users  map[string]*model.User
	posts  map[int64]*model.Post
	nextID int64

	// nilPage makes List and SearchByTitle return a nil page
	nilPage bool
	err     error
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[string]*model.User),
		posts: make(map[int64]*model.Post),
	}
}

func (s *memStore) addUser(email string, role model.UserRole) *model.User {
	u := &model.User{ID: "user:" + strings.Split(email, "@")[0], Email: email, Role: role}
	_ = s.Create(context.Background(), u)
	return u
}

func (s *memStore) addPosts(owner *model.User, titles ...string) []*model.Post {
	out := make([]*model.Post, 0, len(titles))
	for _, title := range titles {
		p := &model.Post{Title: title, Content: "body of " + title, OwnerID: owner.ID, OwnerEmail: owner.Email}
		_ = s.CreatePost(context.Background(), p)
		out = append(out, p)
	}
	return out
}

func (s *memStore) postCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

// ===== users =====

func (s *memStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return database.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = "user:" + randomID()
	}
	if user.Role == "" {
		user.Role = model.UserRoleMember
	}
	user.CreatedOn = time.Now()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *memStore) ListUsers(ctx context.Context, req model.PageRequest) (*model.Page[model.User], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	return model.NewPage(window(all, req), req, int64(len(all))), nil
}

func (s *memStore) SetRole(ctx context.Context, userID string, role model.UserRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.Role = role
	}
	return nil
}

// ===== posts =====

func (s *memStore) CreatePost(ctx context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.nextID++
	post.ID = s.nextID
	post.CreatedOn = time.Now()
	post.UpdatedOn = post.CreatedOn
	cp := *post
	s.posts[post.ID] = &cp
	return nil
}

func (s *memStore) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if p, ok := s.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (s *memStore) ListPosts(ctx context.Context, req model.PageRequest) (*model.Page[model.Post], error) {
	return s.filter(req, func(*model.Post) bool { return true })
}

func (s *memStore) SearchByTitle(ctx context.Context, keyword string, req model.PageRequest) (*model.Page[model.Post], error) {
	return s.filter(req, func(p *model.Post) bool { return strings.Contains(p.Title, keyword) })
}

func (s *memStore) Update(ctx context.Context, id int64, upd model.PostUpdate) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	upd.Apply(p)
	p.UpdatedOn = time.Now()
	cp := *p
	return &cp, nil
}

func (s *memStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.posts, id)
	return nil
}

func (s *memStore) filter(req model.PageRequest, keep func(*model.Post) bool) (*model.Page[model.Post], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if s.nilPage {
		return nil, nil
	}
	all := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if keep(p) {
			all = append(all, *p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return model.NewPage(window(all, req), req, int64(len(all))), nil
}

func window[T any](all []T, req model.PageRequest) []T {
	start := req.Offset()
	if start >= len(all) {
		return nil
	}
	end := start + req.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

// ===== adapters =====

// postRepo exposes memStore as a BoardPostRepository
type postRepo struct{ *memStore }

func (r postRepo) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	return r.GetPost(ctx, id)
}

func (r postRepo) List(ctx context.Context, req model.PageRequest) (*model.Page[model.Post], error) {
	return r.ListPosts(ctx, req)
}

func (r postRepo) Create(ctx context.Context, post *model.Post) error {
	return r.CreatePost(ctx, post)
}

// userRepo exposes memStore as an AdminUserRepository
type userRepo struct{ *memStore }

func (r userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.GetUserByID(ctx, id)
}

func (r userRepo) List(ctx context.Context, req model.PageRequest) (*model.Page[model.User], error) {
	return r.ListUsers(ctx, req)
}
