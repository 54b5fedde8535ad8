// Package main implements seedwords, a command that fills the PostgreSQL word
// catalogue with LLM-generated words so the database backend has something to serve.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/phrazzld/crocodile-words/internal/config"
	"github.com/phrazzld/crocodile-words/internal/generation"
	"github.com/phrazzld/crocodile-words/internal/platform/gemini"
	"github.com/phrazzld/crocodile-words/internal/platform/lmstudio"
	"github.com/phrazzld/crocodile-words/internal/platform/logger"
	"github.com/phrazzld/crocodile-words/internal/platform/postgres"
)

func main() {
	configFile := flag.String("config", "", "Path to an optional YAML config file")
	backendType := flag.String("backend", generation.TypeLMStudio, "Generation backend to seed from (lm-studio or gemini)")
	themesFlag := flag.String("themes", "", "Comma-separated themes to seed (default: every stored theme)")
	count := flag.Int("count", 50, "Words to request per theme")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configFile, *backendType, *themesFlag, *count); err != nil {
		slog.Error("seedwords failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile, backendType, themesFlag string, count int) error {
	if count <= 0 {
		return fmt.Errorf("%w: -count must be positive, got %d", generation.ErrInvalidCount, count)
	}

	cfg, err := config.LoadFrom(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Database.URL == "" {
		return config.ErrDatabaseURLRequired
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	backend, err := newBackend(ctx, cfg, backendType, log)
	if err != nil {
		return err
	}
	if !backend.IsAvailable(ctx) {
		return fmt.Errorf("%w: %s", generation.ErrBackendUnavailable, backendType)
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(db, postgres.MigrateUp, log); err != nil {
		return err
	}

	words := postgres.NewPostgresWordStore(db, log)

	themes := splitThemes(themesFlag)
	if len(themes) == 0 {
		if themes, err = words.Themes(ctx); err != nil {
			return fmt.Errorf("failed to list themes: %w", err)
		}
	}
	if len(themes) == 0 {
		return errors.New("no themes to seed: pass -themes or seed the themes table")
	}

	s := &seeder{
		backend:  backend,
		store:    words,
		count:    count,
		logger:   log,
		progress: os.Stderr,
	}
	res := s.seed(ctx, themes)

	log.Info("seeding finished",
		"backend_type", backend.Type(),
		"themes", len(themes),
		"generated", res.Generated,
		"inserted", res.Inserted,
		"failed_themes", res.Failed)

	if len(res.Failed) == len(themes) {
		return fmt.Errorf("seeding failed for every theme")
	}
	return nil
}

func newBackend(ctx context.Context, cfg *config.Config, backendType string, log *slog.Logger) (generation.Backend, error) {
	ttl := time.Duration(cfg.Words.AvailabilityTTLSeconds) * time.Second

	switch backendType {
	case generation.TypeLMStudio:
		b, err := lmstudio.NewBackend(cfg.LMStudio, log, lmstudio.WithAvailabilityTTL(ttl))
		if err != nil {
			return nil, err
		}
		return b, nil
	case generation.TypeGemini:
		b, err := gemini.NewBackend(ctx, cfg.Gemini, ttl, log)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %q cannot seed the database", generation.ErrUnknownBackendType, backendType)
	}
}

func splitThemes(raw string) []string {
	var themes []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			themes = append(themes, t)
		}
	}
	return themes
}
