// Package handler is the first layer after the router.
//
// It binds requests, runs input validation through the validation package,
// and calls the service layer. It is the boundary between HTTP and the
// books logic.
package handler

import (
	"github.com/deppfellow/books-api/internal/server"
	"github.com/deppfellow/books-api/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Health  *HealthHandler  // Health serves the /status endpoint.
	OpenAPI *OpenAPIHandler // OpenAPI serves the API documentation UI.
	Books   *BookHandler    // Books serves the /books endpoints.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Books:   NewBookHandler(s, services.Books),
	}
}
