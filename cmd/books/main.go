// Command books runs the books API.
//
//	books serve     start the HTTP server
//	books migrate   create the collection indexes and exit
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "books",
		Short:         "CRUD HTTP API over a MongoDB collection of books",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand(), newMigrateCommand())

	// Running the binary with no subcommand serves.
	root.RunE = newServeCommand().RunE

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
