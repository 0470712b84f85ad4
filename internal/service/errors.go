package service

import (
	"errors"
	"strings"

	"github.com/forgo/agora/api/internal/model"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Board Errors =====
var (
	ErrPostNotFound      = errors.New("post not found")
	ErrPostOwnerNotFound = errors.New("post owner not found")
	ErrNotPostOwner      = errors.New("not authorized to change this post")
	ErrMissingGrant      = errors.New("post change requires an authority grant")
	ErrNoPosts           = errors.New("no posts on this page")
	ErrPageUnavailable   = errors.New("page could not be loaded")
	ErrInvalidPage       = errors.New("page must be at least 1")
)

// ===== Admin Errors =====
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrNoUsers          = errors.New("no users on this page")
	ErrCannotDemoteSelf = errors.New("cannot demote yourself")
	ErrEmailExists      = errors.New("email already registered")
	ErrInvalidSeedCount = errors.New("seed counts must be between 0 and 1000")
)

// ValidationError carries per-field failures from request validation
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// newValidationError returns nil when fields is empty
func newValidationError(fields []model.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
