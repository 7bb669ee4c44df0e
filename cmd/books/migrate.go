package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/deppfellow/books-api/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the books collection indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, loggerService, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			books := srv.DB.Collection(srv.Config.Database.Collection)

			return closeAfter(
				func() error { return database.Migrate(cmd.Context(), srv.Logger, books) },
				func() error { return srv.Shutdown(context.Background()) },
			)
		},
	}
}

// closeAfter runs fn, then closeFn whatever fn returned, and reports both
// errors.
func closeAfter(fn, closeFn func() error) error {
	err := fn()
	return errors.Join(err, closeFn())
}
