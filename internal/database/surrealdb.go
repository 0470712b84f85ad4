package database

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// SurrealDB is the Database backed by a SurrealDB server reached over websocket
type SurrealDB struct {
	db     *surrealdb.DB
	config Config
}

// NewSurrealDB returns an unconnected client for cfg
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{config: cfg}
}

// Connect dials the server, signs in and selects the namespace and database
func (s *SurrealDB) Connect(ctx context.Context) error {
	db, err := surrealdb.FromEndpointURLString(ctx, "ws://"+net.JoinHostPort(s.config.Host, s.config.Port))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	abort := func(stage string, err error) error {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: %s: %v", ErrConnection, stage, err)
	}

	auth := &surrealdb.Auth{Username: s.config.User, Password: s.config.Password}
	if _, err := db.SignIn(ctx, auth); err != nil {
		return abort("signin", err)
	}
	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		return abort("use", err)
	}

	s.db = db
	return nil
}

func (s *SurrealDB) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close(context.Background())
}

// Ping asks the server for its version
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	if _, err := s.db.Version(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Query runs one or more statements. Each statement yields a
// {"status": "OK", "result": ...} map; the first failed statement fails the call.
func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	if s.db == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[interface{}](ctx, s.db, query, vars)
	if err != nil {
		return nil, queryError(err.Error())
	}
	if results == nil {
		return nil, nil
	}

	output := make([]interface{}, 0, len(*results))
	for _, r := range *results {
		if r.Status == "OK" {
			output = append(output, map[string]interface{}{"status": r.Status, "result": r.Result})
			continue
		}
		if r.Error == nil {
			return nil, ErrQuery
		}
		return nil, queryError(r.Error.Message)
	}
	return output, nil
}

// queryError wraps a server message in ErrDuplicate for unique index
// violations and ErrQuery otherwise
func queryError(msg string) error {
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "already contains") || strings.Contains(lower, "already exists") {
		return fmt.Errorf("%w: %s", ErrDuplicate, msg)
	}
	return fmt.Errorf("%w: %s", ErrQuery, msg)
}

// QueryOne executes a query and returns a single result
func (s *SurrealDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := s.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return firstRecord(results)
}

// Execute runs a query without returning results
func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}

// Transact wraps statements in BEGIN/COMMIT TRANSACTION and executes them
// as one request. Every statement sees the same vars. A failing statement
// cancels the whole block.
func (s *SurrealDB) Transact(ctx context.Context, statements string, vars map[string]interface{}) ([]interface{}, error) {
	var b strings.Builder
	b.WriteString("BEGIN TRANSACTION;\n")
	b.WriteString(strings.TrimRight(strings.TrimSpace(statements), ";"))
	b.WriteString(";\nCOMMIT TRANSACTION;")

	results, err := s.Query(ctx, b.String(), vars)
	if err != nil {
		return nil, fmt.Errorf("transaction failed: %w", err)
	}
	return results, nil
}

// firstRecord unwraps {status: "OK", result: [...]} and returns the first record
func firstRecord(results []interface{}) (interface{}, error) {
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	first := results[0]
	if resp, ok := first.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, ErrNotFound
				}
				return resultData[0], nil
			}
			// Scalar result (e.g., RETURN or ONLY statements)
			if resp["result"] == nil {
				return nil, ErrNotFound
			}
			return resp["result"], nil
		}
	}

	return first, nil
}
