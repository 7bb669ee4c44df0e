// Package server defines the core Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the document store connection
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/deppfellow/books-api/internal/config"
	"github.com/deppfellow/books-api/internal/database"
	loggerPkg "github.com/deppfellow/books-api/internal/logger"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself; that one is kept private and configured
// through SetupHTTPServer.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger

	// LoggerService holds the New Relic application, when configured.
	LoggerService *loggerPkg.LoggerService

	// DB is nil when the server is assembled without a store (tests).
	DB *database.Database

	httpServer *http.Server
}

// New constructs a Server and connects to the document store.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}, nil
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  s.Config.Server.ReadTimeout,
		WriteTimeout: s.Config.Server.WriteTimeout,
		IdleTimeout:  s.Config.Server.IdleTimeout,
	}
}

// Start runs the HTTP server and blocks until it stops. A graceful
// Shutdown makes Start return nil.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx is
// done, then disconnects the store.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(ctx); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}
