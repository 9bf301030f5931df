package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"blogpress/internal/database"
)

// withDB connects, runs fn and closes the pool.
func (a *app) withDB(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := database.Connect(ctx, a.cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func (a *app) newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(cmd.Context(), func(db *sql.DB) error {
				return database.Migrate(cmd.Context(), db)
			})
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withDB(cmd.Context(), func(db *sql.DB) error {
					return database.Rollback(cmd.Context(), db)
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withDB(cmd.Context(), func(db *sql.DB) error {
					version, err := database.Version(cmd.Context(), db)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
					return nil
				})
			},
		},
	)
	return cmd
}

func (a *app) newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the development admin, reader and categories",
		Long:  `Applies migrations, then seeds an empty database. Does nothing once any user exists.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(cmd.Context(), func(db *sql.DB) error {
				if err := database.Migrate(cmd.Context(), db); err != nil {
					return err
				}
				if err := database.Seed(cmd.Context(), db); err != nil {
					return err
				}
				slog.Info("seed complete")
				return nil
			})
		},
	}
}
