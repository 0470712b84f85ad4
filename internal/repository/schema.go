package repository

import (
	"context"
	"fmt"

	"github.com/forgo/agora/api/internal/database"
)

const schema = `
	DEFINE TABLE IF NOT EXISTS user SCHEMALESS;
	DEFINE INDEX IF NOT EXISTS user_email ON TABLE user COLUMNS email UNIQUE;
	DEFINE TABLE IF NOT EXISTS post SCHEMALESS;
	DEFINE INDEX IF NOT EXISTS post_title ON TABLE post COLUMNS title;
	DEFINE TABLE IF NOT EXISTS sequence SCHEMALESS;
`

// DefineSchema creates the tables and indexes the repositories rely on.
// It is safe to run on every start.
func DefineSchema(ctx context.Context, db database.Database) error {
	if err := db.Execute(ctx, schema, nil); err != nil {
		return fmt.Errorf("failed to define schema: %w", err)
	}
	return nil
}
