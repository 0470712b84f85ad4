package handler

import (
	"errors"
	"log/slog"

	"github.com/forgo/agora/api/internal/database"
	"github.com/forgo/agora/api/internal/model"
	"github.com/forgo/agora/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// Handlers check for the "empty page" sentinels themselves since those
// answer 204 without a body.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return model.NewValidationError(verr.Fields)
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrPostOwnerNotFound):
		return model.NewUnauthorizedError("no account exists for this token")

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotPostOwner):
		pd := model.NewForbiddenError(err.Error())
		pd.Code = model.ErrCodeNotOwner
		return pd

	// ===== Not Found Errors =====
	case errors.Is(err, service.ErrPostNotFound):
		return model.NewMissingResourceError("post")
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailExists):
		return model.NewConflictError(err.Error())

	// ===== Bad Request → 400 =====
	case errors.Is(err, service.ErrInvalidPage):
		return model.NewBadRequestError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrCannotDemoteSelf):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidSeedCount):
		return model.NewValidationError([]model.FieldError{{Field: "count", Message: err.Error()}})

	// ===== Store Errors → 500 =====
	case errors.Is(err, database.ErrConnection), errors.Is(err, database.ErrQuery):
		pd := model.NewInternalError("")
		pd.Code = model.ErrCodeDatabase
		return pd

	// ===== Default → 500 =====
	default:
		if errors.Is(err, service.ErrMissingGrant) || errors.Is(err, service.ErrPageUnavailable) {
			slog.Error("board invariant violated", slog.String("error", err.Error()))
		}
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		slog.Error(operation+" failed", slog.String("error", err.Error()))
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
