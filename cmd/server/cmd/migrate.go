package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/felipeatepam/backend-rest/internal/infrastructure/migration"
	"github.com/felipeatepam/backend-rest/internal/infrastructure/storage/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	if path, ok := sqlitePath(cfg.DB.DatabaseURI); ok {
		// The sqlite backend creates its schema on open.
		storage, err := sqlite.New(path)
		if err != nil {
			return fmt.Errorf("open sqlite storage: %w", err)
		}
		defer storage.Close()

		color.Green("SQLite schema ready at %s", path)
		return nil
	}

	if err := migration.NewMigration(cfg, migration.DefaultEngine).Up(); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	color.Green("Migrations applied")
	return nil
}
