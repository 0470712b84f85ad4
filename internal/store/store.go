// Package store opens the configured backend and exposes it through the
// repository interfaces the services depend on.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/forgo/agora/api/internal/database"
	"github.com/forgo/agora/api/internal/model"
	"github.com/forgo/agora/api/internal/repository"
	"github.com/forgo/agora/api/internal/repository/relational"
	"github.com/forgo/agora/api/internal/service"
)

// PostStore is the post repository shared by the board service and the seeder
type PostStore interface {
	service.BoardPostRepository
}

// UserStore is the user repository shared by every service
type UserStore interface {
	service.AdminUserRepository
	Create(ctx context.Context, user *model.User) error
}

// Store bundles the repositories of one open backend
type Store struct {
	Posts  PostStore
	Users  UserStore
	Driver string

	ping  func(ctx context.Context) error
	close func() error
}

// Open connects to the backend named by cfg.Driver and prepares its schema
func Open(ctx context.Context, cfg database.Config, log *slog.Logger) (*Store, error) {
	switch cfg.Driver {
	case database.DriverSurrealDB, "":
		return openSurreal(ctx, cfg)
	case database.DriverSQLite, database.DriverPostgres:
		return openRelational(cfg, log)
	default:
		return nil, fmt.Errorf("%w: %s", database.ErrUnsupportedDriver, cfg.Driver)
	}
}

// Ping checks that the backend is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backend connection
func (s *Store) Close() error {
	return s.close()
}

func openSurreal(ctx context.Context, cfg database.Config) (*Store, error) {
	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		return nil, err
	}
	if err := repository.DefineSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to define schema: %w", err)
	}

	return &Store{
		Posts:  repository.NewPostRepository(db),
		Users:  repository.NewUserRepository(db),
		Driver: database.DriverSurrealDB,
		ping:   db.Ping,
		close:  db.Close,
	}, nil
}

func openRelational(cfg database.Config, log *slog.Logger) (*Store, error) {
	db, err := database.OpenRelational(cfg, log)
	if err != nil {
		return nil, err
	}
	st, err := FromGorm(db)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return st, nil
}

// FromGorm builds a Store over an already open relational connection and
// migrates its schema. Driver is taken from the gorm dialector.
func FromGorm(db *gorm.DB) (*Store, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrConnection, err)
	}
	if err := relational.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return &Store{
		Posts:  relational.NewPostRepository(db),
		Users:  relational.NewUserRepository(db),
		Driver: db.Dialector.Name(),
		ping:   sqlDB.PingContext,
		close:  sqlDB.Close,
	}, nil
}
