package middleware

import (
	"github.com/deppfellow/books-api/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server so
// they are built once and wired in one place.
type Middlewares struct {
	// Global holds common middleware used across the whole API:
	// CORS, request logging, recovery, secure headers, and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware and custom transaction attributes.
	Tracing *TracingMiddleware

	// RateLimit enforces the per-IP request rate and reports hits.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components using the application container.
//
// Without New Relic configured the tracing middleware degrades into a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
