package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	mrand "math/rand/v2"
	"time"

	"github.com/forgo/agora/api/internal/database"
	"github.com/forgo/agora/api/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// SeedUserRepository defines the user writes needed by SeederService
type SeedUserRepository interface {
	Create(ctx context.Context, user *model.User) error
}

// SeedPostRepository defines the post writes needed by SeederService
type SeedPostRepository interface {
	Create(ctx context.Context, post *model.Post) error
}

// SeederService generates mock data for testing and development
type SeederService struct {
	userRepo SeedUserRepository
	postRepo SeedPostRepository
}

// NewSeederService creates a new seeder service
func NewSeederService(userRepo SeedUserRepository, postRepo SeedPostRepository) *SeederService {
	return &SeederService{userRepo: userRepo, postRepo: postRepo}
}

// SeedRequest configures seeding
type SeedRequest struct {
	Users        int    `json:"users"`
	PostsPerUser int    `json:"posts_per_user"`
	Admins       int    `json:"admins,omitempty"`
	Password     string `json:"password,omitempty"`
	// Prefix for seeded user emails to identify them later
	Prefix string `json:"prefix,omitempty"`
}

// SeedResult contains the results of a seeding operation
type SeedResult struct {
	Users    []string `json:"users"`
	Posts    int      `json:"posts"`
	Password string   `json:"password"`
	Duration int64    `json:"duration_ms"`
}

const maxSeedCount = 1000

var (
	usernames = []string{
		"emma", "liam", "olivia", "noah", "ava", "ethan", "sophia", "mason",
		"isabella", "william", "mia", "james", "charlotte", "benjamin", "amelia",
	}
	postTitles = []string{
		"Weekend hiking plans", "Best coffee near the station", "Looking for a study group",
		"Lost umbrella at the library", "Go or Rust for a first backend?", "Board game night",
		"Recommendations for a used bike", "Notes from the last meetup", "Moving sale this Sunday",
		"Anyone up for a morning run?", "Favorite podcasts this month", "Photography walk downtown",
	}
	postBodies = []string{
		"Drop a comment if you are interested.",
		"Sharing this in case it helps someone else.",
		"Happy to hear any suggestions.",
		"Details are still open, ideas welcome.",
	}
)

// Seed creates users with hashed passwords and posts owned by them.
// The first Admins users get the admin role.
func (s *SeederService) Seed(ctx context.Context, req SeedRequest) (*SeedResult, error) {
	start := time.Now()

	if req.Users < 0 || req.Users > maxSeedCount ||
		req.PostsPerUser < 0 || req.PostsPerUser > maxSeedCount ||
		req.Admins < 0 || req.Admins > req.Users {
		return nil, ErrInvalidSeedCount
	}
	if req.Prefix == "" {
		req.Prefix = "seed_"
	}
	if req.Password == "" {
		req.Password = "testpass123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	result := &SeedResult{
		Users:    make([]string, 0, req.Users),
		Password: req.Password,
	}

	for i := 0; i < req.Users; i++ {
		randID := randomID()
		username := fmt.Sprintf("%s%s_%s", req.Prefix, usernames[mrand.IntN(len(usernames))], randID[:6])
		role := model.UserRoleMember
		if i < req.Admins {
			role = model.UserRoleAdmin
		}

		user := &model.User{
			Email:    fmt.Sprintf("%s%s@test.local", req.Prefix, randID),
			Username: &username,
			Hash:     &hashStr,
			Role:     role,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				return nil, ErrEmailExists
			}
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		result.Users = append(result.Users, user.Email)

		for j := 0; j < req.PostsPerUser; j++ {
			post := &model.Post{
				Title:      postTitles[mrand.IntN(len(postTitles))],
				Content:    postBodies[mrand.IntN(len(postBodies))],
				OwnerID:    user.ID,
				OwnerEmail: user.Email,
				OwnerName:  user.Username,
			}
			if err := s.postRepo.Create(ctx, post); err != nil {
				return nil, fmt.Errorf("failed to create post: %w", err)
			}
			result.Posts++
		}
	}

	result.Duration = time.Since(start).Milliseconds()
	slog.Info("seed complete",
		slog.Int("users", len(result.Users)),
		slog.Int("posts", result.Posts),
		slog.Int64("duration_ms", result.Duration),
	)
	return result, nil
}

func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
