package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/forgo/agora/api/internal/model"
)

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	// Rate in limiter notation, e.g. "100-M" for 100 requests per minute
	Rate string
}

// RateLimiter limits requests per caller using an in-memory fixed window
type RateLimiter struct {
	limiter *limiter.Limiter
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg RateLimitConfig) (*RateLimiter, error) {
	if cfg.Rate == "" {
		cfg.Rate = "100-M"
	}
	rate, err := limiter.NewRateFromFormatted(cfg.Rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", cfg.Rate, err)
	}
	return &RateLimiter{limiter: limiter.New(memory.NewStore(), rate)}, nil
}

// RateLimit returns a middleware that applies rate limiting
func RateLimit(rl *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Authenticated callers are keyed by user, everyone else by IP
			key := GetUserID(r.Context())
			if key == "" {
				key = clientIP(r)
			}

			lctx, err := rl.limiter.Get(r.Context(), key)
			if err != nil {
				slog.Warn("rate limiter unavailable", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

			if lctx.Reached {
				retryAfter := int(time.Until(time.Unix(lctx.Reset, 0)).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
