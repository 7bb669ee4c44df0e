package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/books-api/internal/server"
)

// OpenAPIHandler serves the OpenAPI UI for trying the books API.
//
// The UI is static/openapi.html, which loads its scripts from a CDN and
// reads static/openapi.json.
type OpenAPIHandler struct {
	Handler
}

// NewOpenAPIHandler constructs an OpenAPIHandler with access to shared dependencies.
func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI reads static/openapi.html and serves it as an HTML response.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := os.ReadFile("static/openapi.html")

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
