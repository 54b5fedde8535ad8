package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/crocodile-words/internal/config"
	"github.com/phrazzld/crocodile-words/internal/platform/postgres"
)

// setupAppDatabase connects to PostgreSQL and applies pending migrations. It returns
// a nil *sql.DB when no database URL is configured; the service then runs without
// the database backend and theme catalogue.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	if cfg.Database.URL == "" {
		logger.Info("No database configured, running without the database backend")
		return nil, nil
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	if err := postgres.Migrate(db, postgres.MigrateUp, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("Database connection established")
	return db, nil
}
