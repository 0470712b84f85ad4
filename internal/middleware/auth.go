package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/forgo/agora/api/internal/model"
	"github.com/forgo/agora/api/pkg/jwt"
)

// TokenValidator defines the interface for token validation
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// Auth returns a middleware that validates bearer tokens and stores the
// caller as a model.Actor in the request context
func Auth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				model.NewUnauthorizedError("missing authorization header").WriteJSON(w)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				model.NewUnauthorizedError("invalid authorization header format").WriteJSON(w)
				return
			}

			claims, err := validator.ValidateAccessToken(parts[1])
			if err != nil {
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					model.NewTokenError(model.ErrCodeTokenExpired, "token expired").WriteJSON(w)
				case errors.Is(err, jwt.ErrInvalidSignature):
					model.NewTokenError(model.ErrCodeTokenInvalid, "invalid token signature").WriteJSON(w)
				default:
					model.NewTokenError(model.ErrCodeTokenInvalid, "invalid token").WriteJSON(w)
				}
				return
			}
			if claims.Email == "" {
				model.NewTokenError(model.ErrCodeTokenInvalid, "token has no email claim").WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actorFromClaims(claims))))
		})
	}
}

// AdminOnly rejects callers whose actor is not an admin. It must run after Auth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			model.NewUnauthorizedError("authentication required").WriteJSON(w)
			return
		}
		if !actor.IsAdmin() {
			model.NewForbiddenError("admin role required").WriteJSON(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminAuth combines Auth and AdminOnly
func AdminAuth(validator TokenValidator) Middleware {
	auth := Auth(validator)
	return func(next http.Handler) http.Handler {
		return auth(AdminOnly(next))
	}
}

// WithActor returns a context carrying actor
func WithActor(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// GetActor extracts the authenticated actor from context
func GetActor(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(model.Actor)
	return actor, ok
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(ctx context.Context) string {
	if actor, ok := GetActor(ctx); ok {
		return actor.UserID
	}
	return ""
}

func actorFromClaims(claims *jwt.Claims) model.Actor {
	role := model.UserRole(claims.Role)
	if !role.IsValid() {
		role = model.UserRoleMember
	}
	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	return model.Actor{
		UserID: userID,
		Email:  claims.Email,
		Role:   role,
	}
}
