// Package service implements the business logic layer for the Agora API.
//
// The service package contains domain logic, validation rules, and
// orchestration of repository operations. Services sit between HTTP
// handlers and data access.
//
// # Service Pattern
//
//   - Constructor function (NewXxxService) accepts repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// Services define their own repository interfaces, so the SurrealDB and
// GORM repositories both satisfy them and tests can substitute fakes.
//
// # Board Authorization
//
// Changing a post is a two-step exchange. CheckAuthority returns a
// *PostGrant only when the actor is an admin or owns the post, and
// ModifyPost and DeletePost refuse to run without one:
//
//	grant, err := boards.CheckAuthority(ctx, actor, postID)
//	if err != nil {
//	    return err // ErrPostNotFound or ErrNotPostOwner
//	}
//	detail, err := boards.ModifyPost(ctx, grant, req)
//
// # Error Handling
//
// Services return domain-specific errors defined as package-level variables:
//
//	var (
//	    ErrPostNotFound = errors.New("post not found")
//	    ErrNoPosts      = errors.New("no posts on this page")
//	)
package service
