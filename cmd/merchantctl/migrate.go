package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/merchant_payments/pkg/database"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	var path string
	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if path == "" {
				path = cfg.MigrationsPath
			}
			applied, err := database.RunMigrations(cfg.DatabaseURL, path, slog.Default())
			if err != nil {
				return err
			}
			if applied {
				fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No new migrations to apply")
			}
			return nil
		},
	}
	up.Flags().StringVar(&path, "path", "", "migrations source URL (defaults to MIGRATIONS_PATH)")

	cmd.AddCommand(up)
	return cmd
}
