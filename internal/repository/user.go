package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/agora/api/internal/database"
	"github.com/forgo/agora/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	role := user.Role
	if role == "" {
		role = model.UserRoleMember
	}

	query := `
		CREATE user CONTENT {
			email: $email,
			username: IF $username IS NOT NULL THEN $username ELSE NONE END,
			hash: IF $hash IS NOT NULL THEN $hash ELSE NONE END,
			role: $role,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"email":    user.Email,
		"username": ptrToNone(user.Username),
		"hash":     ptrToNone(user.Hash),
		"role":     role,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	data, ok := lastRecord(result)
	if !ok {
		return errors.New("no result returned")
	}

	user.ID = convertSurrealID(data["id"])
	user.Role = role
	user.CreatedOn = parseTime(data["created_on"])
	user.UpdatedOn = parseTime(data["updated_on"])
	return nil
}

// GetByID retrieves a user by record id (e.g. user:abc). Returns nil when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.queryUser(ctx, query, vars)
}

// GetByEmail retrieves a user by email. Returns nil when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	return r.queryUser(ctx, query, vars)
}

// List returns one page of users ordered by creation time
func (r *UserRepository) List(ctx context.Context, req model.PageRequest) (*model.Page[model.User], error) {
	query := `
		SELECT * FROM user ORDER BY created_on ASC, email ASC LIMIT $limit START $offset;
		SELECT count() AS count FROM user GROUP ALL;
	`
	vars := map[string]interface{}{
		"limit":  req.Size,
		"offset": req.Offset(),
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	rows := statementResults(results, 0)
	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		users = append(users, *parseUser(data))
	}

	return model.NewPage(users, req, extractCount(results, 1)), nil
}

// SetRole updates a user's role
func (r *UserRepository) SetRole(ctx context.Context, userID string, role model.UserRole) error {
	query := `UPDATE type::record($id) SET role = $role, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":   userID,
		"role": role,
	}

	return r.db.Execute(ctx, query, vars)
}

func (r *UserRepository) queryUser(ctx context.Context, query string, vars map[string]interface{}) (*model.User, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return parseUser(data), nil
}

func parseUser(data map[string]interface{}) *model.User {
	return &model.User{
		ID:        convertSurrealID(data["id"]),
		Email:     getString(data, "email"),
		Username:  getStringPtr(data, "username"),
		Hash:      getStringPtr(data, "hash"),
		Role:      model.UserRole(getString(data, "role")),
		CreatedOn: parseTime(data["created_on"]),
		UpdatedOn: parseTime(data["updated_on"]),
	}
}
