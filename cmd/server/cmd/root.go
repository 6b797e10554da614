package cmd

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/felipeatepam/backend-rest/internal/config"
	"github.com/felipeatepam/backend-rest/internal/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "backend-rest",
	Short: "Administrative record API server",
	Long: `backend-rest serves the record administration HTTP API backed by a
relational store (PostgreSQL, or a local SQLite file for development).

Running without a subcommand starts the server.`,
	PersistentPreRun: setup,
	RunE:             runServe,
	SilenceUsage:     true,
	SilenceErrors:    true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func setup(_ *cobra.Command, _ []string) {
	cfg = config.MustLoad()
	log = logger.New(cfg.Env)
}
