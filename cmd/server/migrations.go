package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/crocodile-words/internal/config"
	"github.com/phrazzld/crocodile-words/internal/platform/postgres"
)

// handleMigrations runs a single goose command against the configured database.
// It's called from run() when the -migrate flag is set.
func handleMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("cannot run migrations: %w", config.ErrDatabaseURLRequired)
	}

	logger.Info("Executing migrations", "command", command)

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("Error closing database connection", "error", cerr)
		}
	}()

	if err := postgres.Migrate(db, command, logger); err != nil {
		return err
	}

	logger.Info("Migrations completed", "command", command)
	return nil
}
