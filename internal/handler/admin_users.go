package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/forgo/agora/api/internal/middleware"
	"github.com/forgo/agora/api/internal/model"
	"github.com/forgo/agora/api/internal/service"
)

// AdminUsersHandler handles admin user management endpoints
type AdminUsersHandler struct {
	usersService *service.AdminUsersService
}

// NewAdminUsersHandler creates a new admin users handler
func NewAdminUsersHandler(usersService *service.AdminUsersService) *AdminUsersHandler {
	return &AdminUsersHandler{usersService: usersService}
}

// ListUsers handles GET /v1/admin/users?page=N
func (h *AdminUsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}

	result, err := h.usersService.ListUsers(r.Context(), page)
	if errors.Is(err, service.ErrNoUsers) {
		WriteNoContent(w)
		return
	}
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list users"))
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}

// GetUser handles GET /v1/admin/users/{userId}
func (h *AdminUsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("userId is required"))
		return
	}

	result, err := h.usersService.GetUser(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get user"))
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}

// Promote handles POST /v1/admin/users/{email}/promote
func (h *AdminUsersHandler) Promote(w http.ResponseWriter, r *http.Request) {
	h.changeRole(w, r, h.usersService.PromoteToAdmin)
}

// Demote handles POST /v1/admin/users/{email}/demote
func (h *AdminUsersHandler) Demote(w http.ResponseWriter, r *http.Request) {
	h.changeRole(w, r, h.usersService.DemoteToMember)
}

func (h *AdminUsersHandler) changeRole(
	w http.ResponseWriter,
	r *http.Request,
	change func(context.Context, model.Actor, string) (*model.UserItem, error),
) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}
	email := r.PathValue("email")
	if email == "" {
		WriteError(w, model.NewBadRequestError("email is required"))
		return
	}

	result, err := change(r.Context(), actor, email)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "change role"))
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}
