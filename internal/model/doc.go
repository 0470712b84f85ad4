// Package model defines domain entities and data structures for the Agora API.
//
// The model package contains the struct definitions shared by every layer:
// domain objects, request/response types, paging, and error definitions.
//
// # Domain Entities
//
//   - User: Application user with an email identity and a role
//   - Actor: The authenticated caller of a request
//   - Post: One entry on the board, owned by a user
//
// # Paging
//
// Stores return a Page[T] whose Number is zero-based. Handlers convert
// one-based page numbers with NewPageRequest and render NewPageResponse.
//
//	req := model.NewPageRequest(page, model.BoardPageSize)
//	resp := model.NewPageResponse(model.MapPage(p, model.Post.ToSummary))
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
