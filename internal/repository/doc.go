// Package repository implements the SurrealDB data access layer for the Agora API.
//
// Each repository accepts a database.Database and maps SurrealQL results to
// model structs. The GORM implementation of the same contracts lives in the
// relational subpackage.
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax
//   - type::record() / type::thing() for safe ID handling
//   - Post ids come from a counter record updated inside the create transaction
//   - Paged reads return the window and count() GROUP ALL in one round trip
//
// # Example Usage
//
//	repo := NewPostRepository(db)
//	post, err := repo.GetByID(ctx, 42)
//	if err != nil {
//	    return err
//	}
//	if post == nil {
//	    // not found
//	}
package repository
