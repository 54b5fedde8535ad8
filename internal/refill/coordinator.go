// Package refill keeps per-theme word pools topped up in the background. It guarantees
// that at most one refill per theme is in flight and runs refills on the shared worker
// pool so gameplay callers never wait for them.
package refill

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/phrazzld/crocodile-words/internal/generation"
	"github.com/phrazzld/crocodile-words/internal/task"
)

// DefaultBatchSize is the number of words requested by one background refill.
const DefaultBatchSize = 20

// BackendSelector resolves the currently active generation backend.
type BackendSelector interface {
	ActiveBackend(ctx context.Context) (generation.Backend, error)
}

// WordSink receives refilled words.
type WordSink interface {
	AddWords(theme string, words []string)
}

// Coordinator deduplicates and dispatches background refills.
type Coordinator struct {
	selector  BackendSelector
	pool      WordSink
	queue     task.TaskQueueWriter
	batchSize int
	logger    *slog.Logger

	// inFlight maps theme -> *atomic.Bool
	inFlight sync.Map
}

// NewCoordinator creates a Coordinator that submits refill tasks to queue.
func NewCoordinator(
	selector BackendSelector,
	pool WordSink,
	queue task.TaskQueueWriter,
	batchSize int,
	logger *slog.Logger,
) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Coordinator{
		selector:  selector,
		pool:      pool,
		queue:     queue,
		batchSize: batchSize,
		logger:    logger.With("component", "refill_coordinator"),
	}
}

func (c *Coordinator) flag(theme string) *atomic.Bool {
	if f, ok := c.inFlight.Load(theme); ok {
		return f.(*atomic.Bool)
	}
	f, _ := c.inFlight.LoadOrStore(theme, &atomic.Bool{})
	return f.(*atomic.Bool)
}

// TriggerAsyncRefill schedules a background refill for theme unless one is already in
// flight. It never blocks: if the worker queue cannot accept the task the refill is
// dropped and a later trigger will try again.
func (c *Coordinator) TriggerAsyncRefill(theme string) {
	refilling := c.flag(theme)
	if !refilling.CompareAndSwap(false, true) {
		c.logger.Debug("refill already in progress, skipping", "theme", theme)
		return
	}

	t := task.NewFunc(task.TaskTypeWordPoolRefill, func(ctx context.Context) error {
		return c.refillPool(ctx, theme)
	}).OnDiscard(func() {
		refilling.Store(false)
	})

	if err := c.queue.Enqueue(t); err != nil {
		refilling.Store(false)
		c.logger.Warn("word pool refill rejected by task queue",
			"theme", theme,
			"error", err)
		return
	}

	c.logger.Debug("scheduled async refill", "theme", theme, "task_id", t.ID())
}

// refillPool is the body of a refill task. It asks the active backend for a batch of
// words and appends them to the pool. The in-flight flag for theme is always cleared on
// return, including on panic. Errors are returned for the worker pool to log; they are
// never surfaced to gameplay callers.
func (c *Coordinator) refillPool(ctx context.Context, theme string) (err error) {
	defer c.flag(theme).Store(false)

	c.logger.InfoContext(ctx, "async refill started", "theme", theme, "batch_size", c.batchSize)

	backend, err := c.selector.ActiveBackend(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "async refill could not resolve backend",
			"theme", theme,
			"error", err)
		return fmt.Errorf("refill %q: %w", theme, err)
	}

	words, err := backend.GenerateWords(ctx, theme, c.batchSize)
	if err != nil {
		c.logger.ErrorContext(ctx, "async refill generation failed",
			"theme", theme,
			"backend_type", backend.Type(),
			"error", err)
		return fmt.Errorf("refill %q: %w", theme, err)
	}

	if len(words) == 0 {
		c.logger.WarnContext(ctx, "async refill returned no words",
			"theme", theme,
			"backend_type", backend.Type())
		return fmt.Errorf("refill %q: %w", theme, generation.ErrEmptyGenerationResult)
	}

	c.pool.AddWords(theme, words)
	c.logger.InfoContext(ctx, "async refill completed",
		"theme", theme,
		"backend_type", backend.Type(),
		"added", len(words))
	return nil
}

// InFlight reports whether a refill for theme is currently scheduled or running. A
// refill still queued when the worker pool stops is discarded and its flag cleared.
func (c *Coordinator) InFlight(theme string) bool {
	f, ok := c.inFlight.Load(theme)
	if !ok {
		return false
	}
	return f.(*atomic.Bool).Load()
}

// BatchSize returns the number of words requested per refill.
func (c *Coordinator) BatchSize() int {
	return c.batchSize
}
