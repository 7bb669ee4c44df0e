// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/deppfellow/books-api/internal/handler"
	"github.com/deppfellow/books-api/internal/middleware"
	"github.com/deppfellow/books-api/internal/server"
)

// NewRouter builds the Echo instance with the full middleware stack, the
// global error handler, and every route registered.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// "/books/" routes the same as "/books".
	router.Pre(echoMiddleware.RemoveTrailingSlash())

	router.Use(
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middleware.RequestID(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
	)

	if middlewares.RateLimit.Enabled() {
		router.Use(middlewares.RateLimit.Limit())
	}

	registerSystemRoutes(router, h)
	registerBookRoutes(router, h)

	return router
}
