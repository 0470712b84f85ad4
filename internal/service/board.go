package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/agora/api/internal/model"
)

// BoardPostRepository defines the post store needed by BoardService
type BoardPostRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	List(ctx context.Context, req model.PageRequest) (*model.Page[model.Post], error)
	SearchByTitle(ctx context.Context, keyword string, req model.PageRequest) (*model.Page[model.Post], error)
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, id int64, upd model.PostUpdate) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
}

// BoardUserRepository defines the user lookup needed by BoardService
type BoardUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// BoardServiceConfig holds configuration for the board service
type BoardServiceConfig struct {
	PostRepo BoardPostRepository
	UserRepo BoardUserRepository
	PageSize int
}

// BoardService handles board post business logic
type BoardService struct {
	postRepo BoardPostRepository
	userRepo BoardUserRepository
	pageSize int
}

// NewBoardService creates a new board service
func NewBoardService(cfg BoardServiceConfig) *BoardService {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = model.BoardPageSize
	}
	return &BoardService{
		postRepo: cfg.PostRepo,
		userRepo: cfg.UserRepo,
		pageSize: pageSize,
	}
}

// PostGrant proves that an actor passed CheckAuthority for one post.
// Only BoardService can mint one.
type PostGrant struct {
	postID int64
	actor  model.Actor
}

// PostID returns the post the grant covers
func (g *PostGrant) PostID() int64 {
	return g.postID
}

// FindAllList returns one page of posts in ascending id order. pageNumber is one-based.
func (s *BoardService) FindAllList(ctx context.Context, pageNumber int) (*model.PageResponse[model.PostSummary], error) {
	if pageNumber < 1 {
		return nil, ErrInvalidPage
	}

	page, err := s.postRepo.List(ctx, model.NewPageRequest(pageNumber, s.pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return toPageResponse(page)
}

// SearchPost returns one page of posts whose title contains keyword.
// An empty keyword matches every post.
func (s *BoardService) SearchPost(ctx context.Context, keyword string, pageNumber int) (*model.PageResponse[model.PostSummary], error) {
	if pageNumber < 1 {
		return nil, ErrInvalidPage
	}

	page, err := s.postRepo.SearchByTitle(ctx, keyword, model.NewPageRequest(pageNumber, s.pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	return toPageResponse(page)
}

// FindDetailInfo returns a single post
func (s *BoardService) FindDetailInfo(ctx context.Context, postID int64) (*model.PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post.ToDetail(), nil
}

// AddPost creates a post owned by the actor. The actor's email must belong
// to an existing user.
func (s *BoardService) AddPost(ctx context.Context, actor model.Actor, req *model.AddPostRequest) (*model.PostDetail, error) {
	if err := newValidationError(req.Validate()); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByEmail(ctx, actor.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return nil, ErrPostOwnerNotFound
	}

	post := req.ToPost(owner)
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	slog.Info("post created",
		slog.Int64("post_id", post.ID),
		slog.String("owner_id", owner.ID),
	)
	return post.ToDetail(), nil
}

// CheckAuthority decides whether actor may change the post. Admins may
// change any post, other actors only their own.
func (s *BoardService) CheckAuthority(ctx context.Context, actor model.Actor, postID int64) (*PostGrant, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if !actor.IsAdmin() && actor.Email != post.OwnerEmail {
		return nil, ErrNotPostOwner
	}
	return &PostGrant{postID: postID, actor: actor}, nil
}

// ModifyPost updates the granted post's title and/or content
func (s *BoardService) ModifyPost(ctx context.Context, grant *PostGrant, req *model.ModifyPostRequest) (*model.PostDetail, error) {
	if grant == nil {
		return nil, ErrMissingGrant
	}
	if err := newValidationError(req.Validate()); err != nil {
		return nil, err
	}

	post, err := s.postRepo.Update(ctx, grant.postID, req.ToUpdate())
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	slog.Info("post modified",
		slog.Int64("post_id", post.ID),
		slog.String("actor", grant.actor.Email),
	)
	return post.ToDetail(), nil
}

// DeletePost removes the granted post. Deleting a post that is already gone succeeds.
func (s *BoardService) DeletePost(ctx context.Context, grant *PostGrant) error {
	if grant == nil {
		return ErrMissingGrant
	}

	if err := s.postRepo.Delete(ctx, grant.postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	slog.Info("post deleted",
		slog.Int64("post_id", grant.postID),
		slog.String("actor", grant.actor.Email),
	)
	return nil
}

// toPageResponse shapes a store page for listing and search
func toPageResponse(page *model.Page[model.Post]) (*model.PageResponse[model.PostSummary], error) {
	if page == nil {
		return nil, ErrPageUnavailable
	}
	if page.Total < 1 || len(page.Items) == 0 {
		return nil, ErrNoPosts
	}
	return model.NewPageResponse(model.MapPage(page, model.Post.ToSummary)), nil
}
