package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/books-api/internal/server"
)

// TracingMiddleware owns New Relic related Echo middleware.
//
// It has two layers:
//  1. NewRelicMiddleware() installs New Relic transaction handling into Echo
//  2. EnhanceTracing() adds custom attributes and notices errors
//
// nrApp is nil when New Relic is disabled; both layers then pass requests
// through untouched.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

// NewTracingMiddleware constructs TracingMiddleware.
func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware returns the New Relic Echo middleware, which starts a
// transaction per request and stores it in the request context.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing adds custom attributes to New Relic transactions and
// notices returned errors with their stack traces.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("http.user_agent", c.Request().UserAgent())
			txn.AddAttribute("service.environment", tm.server.Config.Primary.Env)

			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}

			if id := c.Param("id"); id != "" {
				txn.AddAttribute("book.id", id)
			}

			err := next(c)
			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}

			txn.AddAttribute("http.status_code", c.Response().Status)

			return err
		}
	}
}
