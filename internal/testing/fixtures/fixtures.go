// Package fixtures provides test data factories for store-backed tests.
//
// Usage:
//
//	f := fixtures.New(userRepo, postRepo)
//	owner := f.CreateUser(t)
//	posts := f.CreatePosts(t, owner, 25)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/agora/api/internal/model"
)

// UserCreator persists users
type UserCreator interface {
	Create(ctx context.Context, user *model.User) error
}

// PostCreator persists posts
type PostCreator interface {
	Create(ctx context.Context, post *model.Post) error
}

// Factory creates test entities in a store
type Factory struct {
	users UserCreator
	posts PostCreator
}

// New creates a new fixture factory
func New(users UserCreator, posts PostCreator) *Factory {
	return &Factory{users: users, posts: posts}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Email    string
	Username string
	Password string
	Role     model.UserRole
}

// WithEmail sets the user's email
func WithEmail(email string) func(*UserOpts) {
	return func(o *UserOpts) { o.Email = email }
}

// CreateUser creates a member with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	id := randomID()
	o := &UserOpts{
		Email:    fmt.Sprintf("user_%s@test.local", id),
		Username: "user_" + id,
		Password: "testpass123",
		Role:     model.UserRoleMember,
	}
	for _, fn := range opts {
		fn(o)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}
	hashStr := string(hash)
	username := o.Username

	user := &model.User{
		Email:    o.Email,
		Username: &username,
		Hash:     &hashStr,
		Role:     o.Role,
	}
	if err := f.users.Create(ctx(t), user); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}

	user.Hash = nil // Don't expose hash in fixture
	return user
}

// CreateAdmin creates an admin user
func (f *Factory) CreateAdmin(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()
	return f.CreateUser(t, append(opts, func(o *UserOpts) { o.Role = model.UserRoleAdmin })...)
}

// ============================================================================
// Post Fixtures
// ============================================================================

// CreatePost creates one post owned by owner
func (f *Factory) CreatePost(t *testing.T, owner *model.User, title string) *model.Post {
	t.Helper()

	post := &model.Post{
		Title:      title,
		Content:    "content of " + title,
		OwnerID:    owner.ID,
		OwnerEmail: owner.Email,
		OwnerName:  owner.Username,
	}
	if err := f.posts.Create(ctx(t), post); err != nil {
		t.Fatalf("fixtures: failed to create post: %v", err)
	}
	return post
}

// CreatePosts creates n posts titled "post 01", "post 02", ...
func (f *Factory) CreatePosts(t *testing.T, owner *model.User, n int) []*model.Post {
	t.Helper()

	posts := make([]*model.Post, 0, n)
	for i := 1; i <= n; i++ {
		posts = append(posts, f.CreatePost(t, owner, fmt.Sprintf("post %02d", i)))
	}
	return posts
}
