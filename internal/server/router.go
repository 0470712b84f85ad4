// Package server assembles the Agora HTTP routes and middleware.
package server

import (
	"net/http"

	"github.com/forgo/agora/api/internal/handler"
	"github.com/forgo/agora/api/internal/middleware"
	"github.com/forgo/agora/api/internal/service"
	"github.com/forgo/agora/api/internal/store"
)

// Deps holds everything the router needs
type Deps struct {
	Store          *store.Store
	Validator      middleware.TokenValidator
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
	PageSize       int
}

// NewHandler builds the services and handlers and returns the fully wrapped mux
func NewHandler(deps Deps) http.Handler {
	boardService := service.NewBoardService(service.BoardServiceConfig{
		PostRepo: deps.Store.Posts,
		UserRepo: deps.Store.Users,
		PageSize: deps.PageSize,
	})
	adminUsersService := service.NewAdminUsersService(deps.Store.Users)
	seederService := service.NewSeederService(deps.Store.Users, deps.Store.Posts)

	boardHandler := handler.NewBoardHandler(boardService)
	adminUsersHandler := handler.NewAdminUsersHandler(adminUsersService)
	adminSeederHandler := handler.NewAdminSeederHandler(seederService)
	healthHandler := handler.NewHealthHandler(deps.Store)

	limit := middleware.RateLimit(deps.RateLimiter)
	authMiddleware := middleware.Auth(deps.Validator)
	adminMiddleware := middleware.AdminAuth(deps.Validator)

	// Authenticated routes are limited per user, public routes per client IP
	public := func(h http.HandlerFunc) http.Handler { return limit(h) }
	authed := func(h http.HandlerFunc) http.Handler { return authMiddleware(limit(h)) }
	admin := func(h http.HandlerFunc) http.Handler { return adminMiddleware(limit(h)) }

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)

	// Board endpoints
	mux.Handle("GET /v1/boards", public(boardHandler.FindAllList))
	mux.Handle("GET /v1/boards/search", public(boardHandler.SearchPost))
	mux.Handle("GET /v1/boards/{boardId}", public(boardHandler.FindDetailInfo))
	mux.Handle("POST /v1/boards", authed(boardHandler.AddPost))
	mux.Handle("GET /v1/boards/{boardId}/authority", authed(boardHandler.CheckAuthority))
	mux.Handle("PATCH /v1/boards/{boardId}", authed(boardHandler.ModifyPost))
	mux.Handle("DELETE /v1/boards/{boardId}", authed(boardHandler.DeletePost))

	// Admin user management endpoints - requires admin role
	mux.Handle("GET /v1/admin/users", admin(adminUsersHandler.ListUsers))
	mux.Handle("GET /v1/admin/users/{userId}", admin(adminUsersHandler.GetUser))
	mux.Handle("POST /v1/admin/users/{email}/promote", admin(adminUsersHandler.Promote))
	mux.Handle("POST /v1/admin/users/{email}/demote", admin(adminUsersHandler.Demote))

	// Admin seeder endpoint (for development/testing)
	mux.Handle("POST /v1/admin/seed", admin(adminSeederHandler.Seed))

	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(deps.AllowedOrigins),
		middleware.Compress,
	)
}
