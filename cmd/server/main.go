// Package main implements the entry point for the Crocodile word service, which
// serves themed words for the Crocodile party game from an in-memory pool backed
// by pluggable generation backends.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
)

func main() {
	configFile := flag.String("config", "", "Path to an optional YAML config file")
	migrateCmd := flag.String("migrate", "", "Run a database migration command (up, down, status, version, reset) and exit")
	flag.Parse()

	if err := run(context.Background(), *configFile, *migrateCmd); err != nil {
		slog.Error("Crocodile word service failed", "error", err)
		os.Exit(1)
	}
}

// run loads configuration and either executes a migration command or starts the
// HTTP server until it is signalled to stop.
func run(ctx context.Context, configFile, migrateCmd string) error {
	cfg, err := loadAppConfig(configFile)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		return handleMigrations(ctx, cfg, logger, migrateCmd)
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, logger, db)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
