package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"rentwise/internal"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rentwise",
		Short: "Rental marketplace API server",
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Command failed: %v", err)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := internal.NewApp()
			if err != nil {
				return err
			}
			return app.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := internal.NewApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Migrate(context.Background())
		},
	}
}
