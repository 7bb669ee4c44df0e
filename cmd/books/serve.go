package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/books-api/internal/config"
	"github.com/deppfellow/books-api/internal/database"
	"github.com/deppfellow/books-api/internal/handler"
	"github.com/deppfellow/books-api/internal/logger"
	"github.com/deppfellow/books-api/internal/repository"
	"github.com/deppfellow/books-api/internal/router"
	"github.com/deppfellow/books-api/internal/server"
	"github.com/deppfellow/books-api/internal/service"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx)
		},
	}
}

// bootstrap loads config and builds the logger and the server container.
// The caller owns the returned LoggerService and must shut it down.
func bootstrap() (*server.Server, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return nil, nil, err
	}

	return srv, loggerService, nil
}

func serve(ctx context.Context) error {
	srv, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	log := srv.Logger

	books := srv.DB.Collection(srv.Config.Database.Collection)
	if err := database.Migrate(ctx, log, books); err != nil {
		log.Warn().Err(err).Msg("could not ensure collection indexes")
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)

	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = shutdown(srv, log)
			return fmt.Errorf("server stopped: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	return shutdown(srv, log)
}

func shutdown(srv *server.Server, log *zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), srv.Config.Server.ShutdownTimeout)
	defer cancel()

	start := time.Now()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}

	log.Info().Dur("duration", time.Since(start)).Msg("server exited")

	return nil
}
