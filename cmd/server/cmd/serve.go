package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/felipeatepam/backend-rest/internal/app/server/api"
	"github.com/felipeatepam/backend-rest/internal/domain/record"
	"github.com/felipeatepam/backend-rest/internal/infrastructure/migration"
	"github.com/felipeatepam/backend-rest/internal/infrastructure/storage/postgres"
	"github.com/felipeatepam/backend-rest/internal/infrastructure/storage/sqlite"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, cleanup, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:    cfg.Server.RunAddress,
		Handler: api.New(repo, log, cfg),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	color.Green("Listening on %s", cfg.Server.RunAddress)
	log.Info("server starting", "address", cfg.Server.RunAddress)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// openRepository selects the storage backend from the database URI: a
// sqlite:// URI opens a local file, anything else is treated as a
// PostgreSQL URI and migrated before use.
func openRepository(ctx context.Context) (record.Repository, func(), error) {
	if path, ok := sqlitePath(cfg.DB.DatabaseURI); ok {
		storage, err := sqlite.New(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return sqlite.NewRecordRepository(storage, log), func() { _ = storage.Close() }, nil
	}

	if err := migration.NewMigration(cfg, migration.DefaultEngine).Up(); err != nil {
		return nil, nil, fmt.Errorf("apply migrations: %w", err)
	}

	storage, err := postgres.New(ctx, cfg.DB.DatabaseURI)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres storage: %w", err)
	}
	return postgres.NewRecordRepository(storage, log), func() { _ = storage.Close() }, nil
}

func sqlitePath(uri string) (string, bool) {
	return strings.CutPrefix(uri, "sqlite://")
}
