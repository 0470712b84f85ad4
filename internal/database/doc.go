// Package database provides database connectivity for the Agora API.
//
// Two families of stores are supported, selected by Config.Driver:
//
//   - "surrealdb": a document store reached over WebSocket through the
//     Database interface (Query, QueryOne, Execute, Transact)
//   - "sqlite" and "postgres": relational stores opened with GORM by
//     OpenRelational
//
// # Transactions
//
// Transact sends every statement in one BEGIN/COMMIT TRANSACTION block, so
// LET bindings from earlier statements are visible to later ones:
//
//	results, err := db.Transact(ctx, `
//	    LET $seq = (UPSERT ONLY sequence:post SET value += 1 RETURN VALUE value);
//	    CREATE ONLY type::thing('post', $seq) CONTENT $post
//	`, vars)
//
// # Error Types
//
// Standard error types for data operations:
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection failed
//   - ErrQuery: Statement failed
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database
