package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/books-api/internal/middleware"
	"github.com/deppfellow/books-api/internal/server"
)

// HealthHandler serves the endpoint load balancers and uptime monitors use
// to check that the service is running and its store is reachable.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns system health status and dependency checks.
//
// It returns:
//   - 200 OK if all checks pass
//   - 503 Service Unavailable if any check fails
//
// With health checks disabled in config, only liveness is reported.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any)
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	healthCfg := h.server.Config.Observability.HealthChecks

	// ---------------- Database connectivity check ----------------------------
	if healthCfg.Enabled && h.server.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCfg.Timeout)
		defer cancel()

		dbStart := time.Now()

		if err := h.server.DB.Ping(ctx); err != nil {
			checks["database"] = map[string]any{
				"status":        "unhealthy",
				"response_time": time.Since(dbStart).String(),
				"error":         err.Error(),
			}

			isHealthy = false

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check failed")

			h.recordHealthError(map[string]any{
				"check_type":       "database",
				"operation":        "health_check",
				"error_type":       "database_unhealthy",
				"response_time_ms": time.Since(dbStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		} else {
			checks["database"] = map[string]any{
				"status":        "healthy",
				"response_time": time.Since(dbStart).String(),
			}

			logger.Debug().
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check passed")
		}
	}

	// ---------------- Overall status + response ------------------------------
	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthError(map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

// recordHealthError sends a HealthCheckError custom event when New Relic is
// configured.
func (h *HealthHandler) recordHealthError(attrs map[string]any) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
