package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/deppfellow/books-api/internal/errs"
	"github.com/deppfellow/books-api/internal/server"
)

// RateLimitMiddleware limits requests per client IP and reports every
// rejected request to New Relic.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Enabled reports whether a request rate is configured.
func (r *RateLimitMiddleware) Enabled() bool {
	return r.server.Config.Server.RateLimit > 0
}

// Limit returns an in-memory, per-IP rate limiter allowing
// server.rate_limit requests per second.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	limit := rate.Limit(r.server.Config.Server.RateLimit)

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  limit,
			Burst: max(1, int(limit)),
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())

			GetLogger(c).Warn().
				Str("identifier", identifier).
				Msg("rate limit exceeded")

			return errs.NewTooManyRequestsError()
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event when New Relic is
// configured.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}
