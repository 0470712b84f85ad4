package relational

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/forgo/agora/api/internal/database"
	"github.com/forgo/agora/api/internal/model"
)

// UserRepository handles user data access on a relational store
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	role := user.Role
	if role == "" {
		role = model.UserRoleMember
	}
	row := userRow{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Hash:     user.Hash,
		Role:     string(role),
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return fmt.Errorf("%w: %v", database.ErrQuery, err)
	}

	user.ID = row.ID
	user.Role = role
	user.CreatedOn = row.CreatedAt
	user.UpdatedOn = row.UpdatedAt
	return nil
}

// GetByID retrieves a user by id. Returns nil when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail retrieves a user by email. Returns nil when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

// List returns one page of users ordered by creation time
func (r *UserRepository) List(ctx context.Context, req model.PageRequest) (*model.Page[model.User], error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&userRow{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}

	var rows []userRow
	err := db.Order("created_at ASC").Order("email ASC").
		Limit(req.Size).Offset(req.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}

	users := make([]model.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].toModel())
	}
	return model.NewPage(users, req, total), nil
}

// SetRole updates a user's role
func (r *UserRepository) SetRole(ctx context.Context, userID string, role model.UserRole) error {
	err := r.db.WithContext(ctx).Model(&userRow{}).
		Where("id = ?", userID).
		Update("role", string(role)).Error
	if err != nil {
		return fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	return nil
}

func (r *UserRepository) first(ctx context.Context, cond string, arg interface{}) (*model.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).Where(cond, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	return row.toModel(), nil
}
