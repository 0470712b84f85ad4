package handler

import (
	"net/http"

	"github.com/forgo/agora/api/internal/model"
	"github.com/forgo/agora/api/internal/service"
)

// AdminSeederHandler handles admin seeding endpoints
type AdminSeederHandler struct {
	seederService *service.SeederService
}

// NewAdminSeederHandler creates a new admin seeder handler
func NewAdminSeederHandler(seederService *service.SeederService) *AdminSeederHandler {
	return &AdminSeederHandler{seederService: seederService}
}

// Seed handles POST /v1/admin/seed
func (h *AdminSeederHandler) Seed(w http.ResponseWriter, r *http.Request) {
	var req service.SeedRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	result, err := h.seederService.Seed(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "seed"))
		return
	}

	WriteData(w, http.StatusCreated, result, map[string]string{
		"boards": "/v1/boards",
		"users":  "/v1/admin/users",
	})
}
