package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/crocodile-words/internal/api"
	"github.com/phrazzld/crocodile-words/internal/config"
	"github.com/phrazzld/crocodile-words/internal/generation"
	"github.com/phrazzld/crocodile-words/internal/platform/gemini"
	"github.com/phrazzld/crocodile-words/internal/platform/lmstudio"
	"github.com/phrazzld/crocodile-words/internal/platform/postgres"
	"github.com/phrazzld/crocodile-words/internal/refill"
	"github.com/phrazzld/crocodile-words/internal/service"
	"github.com/phrazzld/crocodile-words/internal/store"
	"github.com/phrazzld/crocodile-words/internal/task"
	"github.com/phrazzld/crocodile-words/internal/wordpool"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Storage; nil when no database is configured
	wordStore store.WordStore

	// Generation
	selector *generation.Selector

	// Word pool and background refills
	pool        *wordpool.Pool
	taskQueue   *task.TaskQueue
	workerPool  *task.WorkerPool
	coordinator *refill.Coordinator

	wordProvider service.WordProvider
}

// newApplication creates a new application instance with all dependencies initialized.
// db may be nil, in which case the database backend and theme catalogue are disabled.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	if db != nil {
		app.wordStore = postgres.NewPostgresWordStore(db, logger)
	}

	backends, err := app.setupBackends(ctx)
	if err != nil {
		return nil, err
	}

	app.selector, err = generation.NewSelector(cfg.Words.ActiveBackend, logger, backends...)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend selector: %w", err)
	}
	logger.Info("Generation backends registered",
		"active_backend", cfg.Words.ActiveBackend,
		"registered", app.selector.RegisteredTypes())

	app.taskQueue = task.NewTaskQueue(cfg.Task.QueueSize, logger)
	app.workerPool = task.NewWorkerPool(app.taskQueue, task.WorkerPoolConfig{
		WorkerCount: cfg.Task.WorkerCount,
	}, logger)

	app.pool = wordpool.New(cfg.Words.MinThreshold, logger)
	app.coordinator = refill.NewCoordinator(app.selector, app.pool, app.taskQueue, cfg.Words.BatchSize, logger)

	app.wordProvider, err = service.NewWordProvider(
		app.pool,
		app.coordinator,
		app.selector,
		cfg.Words.InitialSize,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create word provider: %w", err)
	}

	app.workerPool.Start()

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupBackends builds every generation backend the configuration allows. The
// database backend is only available when a database connection exists.
func (app *application) setupBackends(ctx context.Context) ([]generation.Backend, error) {
	ttl := time.Duration(app.config.Words.AvailabilityTTLSeconds) * time.Second

	lm, err := lmstudio.NewBackend(app.config.LMStudio, app.logger, lmstudio.WithAvailabilityTTL(ttl))
	if err != nil {
		return nil, fmt.Errorf("failed to create LM Studio backend: %w", err)
	}

	gem, err := gemini.NewBackend(ctx, app.config.Gemini, ttl, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini backend: %w", err)
	}

	backends := []generation.Backend{lm, gem}
	if app.wordStore != nil {
		backends = append(backends, postgres.NewBackend(app.wordStore, ttl, app.logger))
	}
	return backends, nil
}

// themeLister returns the curated theme catalogue, or nil without a database.
func (app *application) themeLister() api.ThemeLister {
	if app.wordStore == nil {
		return nil
	}
	return app.wordStore
}

// Run starts the HTTP server and blocks until it shuts down.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskQueue != nil {
		app.taskQueue.Close()
	}
	if app.workerPool != nil {
		app.workerPool.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
