package main

import (
	"context"
	"fmt"
	"os"

	"ecoleta/internal/config"
	"ecoleta/internal/database"
	"ecoleta/internal/migrations"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dsn string

	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the Ecoleta database schema",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Postgres DSN (defaults to DATABASE_URL)")

	withDB := func(run func(ctx context.Context, cmd *cobra.Command, db *bun.DB) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if dsn == "" {
				dsn = cfg.DatabaseURL
			}

			db, err := database.New(dsn, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			return run(cmd.Context(), cmd, db)
		}
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *bun.DB) error {
				group, err := migrations.Up(ctx, db)
				if err != nil {
					return err
				}
				if group.IsZero() {
					cmd.Println("no new migrations to run (database is up to date)")
					return nil
				}
				cmd.Printf("migrated to %s\n", group)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration group",
			RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *bun.DB) error {
				group, err := migrations.NewMigrator(db).Rollback(ctx)
				if err != nil {
					return err
				}
				if group.IsZero() {
					cmd.Println("there are no groups to roll back")
					return nil
				}
				cmd.Printf("rolled back %s\n", group)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert any missing reference items",
			RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *bun.DB) error {
				added, err := migrations.SeedCatalogue(ctx, db)
				if err != nil {
					return err
				}
				cmd.Printf("seeded %d item(s)\n", added)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print applied and pending migrations",
			RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *bun.DB) error {
				m := migrations.NewMigrator(db)
				if err := m.Init(ctx); err != nil {
					return err
				}
				ms, err := m.MigrationsWithStatus(ctx)
				if err != nil {
					return err
				}
				cmd.Print(formatStatus(ms.Applied(), ms.Unapplied()))
				return nil
			}),
		},
	)

	return rootCmd
}

func formatStatus(applied, pending fmt.Stringer) string {
	return fmt.Sprintf("applied: %s\npending: %s\n", applied, pending)
}
