package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/books-api/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the books API:
// the health check, the docs UI and the static files it loads.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
