package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/agora/api/internal/model"
)

// AdminUserRepository defines the user repo interface needed by AdminUsersService
type AdminUserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, req model.PageRequest) (*model.Page[model.User], error)
	SetRole(ctx context.Context, userID string, role model.UserRole) error
}

// AdminUsersService handles admin user management operations
type AdminUsersService struct {
	userRepo AdminUserRepository
	pageSize int
}

// NewAdminUsersService creates a new admin users service
func NewAdminUsersService(userRepo AdminUserRepository) *AdminUsersService {
	return &AdminUsersService{
		userRepo: userRepo,
		pageSize: model.BoardPageSize,
	}
}

// ListUsers returns one page of users. pageNumber is one-based.
func (s *AdminUsersService) ListUsers(ctx context.Context, pageNumber int) (*model.PageResponse[model.UserItem], error) {
	if pageNumber < 1 {
		return nil, ErrInvalidPage
	}

	page, err := s.userRepo.List(ctx, model.NewPageRequest(pageNumber, s.pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if page == nil {
		return nil, ErrPageUnavailable
	}
	if len(page.Items) == 0 {
		return nil, ErrNoUsers
	}

	return model.NewPageResponse(model.MapPage(page, func(u model.User) model.UserItem {
		return u.ToItem()
	})), nil
}

// GetUser returns a single user
func (s *AdminUsersService) GetUser(ctx context.Context, userID string) (*model.UserItem, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	item := user.ToItem()
	return &item, nil
}

// PromoteToAdmin gives the user with the given email the admin role.
// Promoting an admin is a no-op.
func (s *AdminUsersService) PromoteToAdmin(ctx context.Context, actor model.Actor, email string) (*model.UserItem, error) {
	return s.setRole(ctx, actor, email, model.UserRoleAdmin)
}

// DemoteToMember returns an admin to the member role. Admins cannot demote themselves.
func (s *AdminUsersService) DemoteToMember(ctx context.Context, actor model.Actor, email string) (*model.UserItem, error) {
	if actor.Email == email {
		return nil, ErrCannotDemoteSelf
	}
	return s.setRole(ctx, actor, email, model.UserRoleMember)
}

func (s *AdminUsersService) setRole(ctx context.Context, actor model.Actor, email string, role model.UserRole) (*model.UserItem, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.Role != role {
		if err := s.userRepo.SetRole(ctx, user.ID, role); err != nil {
			return nil, fmt.Errorf("failed to set role: %w", err)
		}
		slog.Info("role changed",
			slog.String("user_id", user.ID),
			slog.String("from", string(user.Role)),
			slog.String("to", string(role)),
			slog.String("admin", actor.Email),
		)
		user.Role = role
	}

	item := user.ToItem()
	return &item, nil
}
