package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/books-api/internal/logger"
	"github.com/deppfellow/books-api/internal/server"
)

// LoggerKey is used as the key for storing the request-scoped logger in
// the Echo context.
const LoggerKey = "logger"

// ContextEnhancer enriches each request with a request-scoped logger.
//
// The logger carries request_id, method, path and ip, plus trace.id and
// span.id when a New Relic transaction exists. It is stored both in the
// Echo context and in the request's context.Context, where store code can
// reach it with zerolog.Ctx.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a new ContextEnhancer using the app Server container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns an Echo middleware. It must run after RequestID
// and the New Relic middleware.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()). // route template, e.g. "/books/_id/:id"
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := contextLogger.WithContext(c.Request().Context())
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetLogger retrieves the request-scoped logger from Echo context.
//
// If EnhanceContext middleware didn't run, it returns a no-op logger.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
