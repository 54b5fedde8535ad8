package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/crocodile-words/internal/generation"
)

// DefaultInitialSize is the number of words requested synchronously when a theme's
// pool is empty.
const DefaultInitialSize = 10

// WordPool is the subset of the word pool used by the provider
type WordPool interface {
	PollWord(theme string) (string, bool)
	AddWords(theme string, words []string)
	NeedsRefill(theme string) bool
}

// RefillTrigger schedules background pool refills
type RefillTrigger interface {
	TriggerAsyncRefill(theme string)
}

// BackendSelector resolves the currently active generation backend
type BackendSelector interface {
	ActiveBackend(ctx context.Context) (generation.Backend, error)
}

// WordProvider is the single entry point gameplay logic uses to obtain a word
type WordProvider interface {
	// GenerateWord returns a word for theme. It serves from the pool when possible and
	// falls back to a synchronous backend call when the pool is empty. Failures on the
	// synchronous path wrap generation.ErrGenerationUnavailable.
	GenerateWord(ctx context.Context, theme string) (string, error)
}

// wordProviderImpl implements the WordProvider interface
type wordProviderImpl struct {
	pool        WordPool
	refiller    RefillTrigger
	selector    BackendSelector
	initialSize int
	logger      *slog.Logger
}

// NewWordProvider creates a new WordProvider.
// It returns an error if any of the required dependencies are nil.
func NewWordProvider(
	pool WordPool,
	refiller RefillTrigger,
	selector BackendSelector,
	initialSize int,
	logger *slog.Logger,
) (WordProvider, error) {
	if pool == nil {
		return nil, &WordProviderError{Operation: "create_service", Message: "pool cannot be nil"}
	}
	if refiller == nil {
		return nil, &WordProviderError{Operation: "create_service", Message: "refiller cannot be nil"}
	}
	if selector == nil {
		return nil, &WordProviderError{Operation: "create_service", Message: "selector cannot be nil"}
	}

	if initialSize <= 0 {
		initialSize = DefaultInitialSize
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &wordProviderImpl{
		pool:        pool,
		refiller:    refiller,
		selector:    selector,
		initialSize: initialSize,
		logger:      logger.With("component", "word_provider"),
	}, nil
}

// GenerateWord implements WordProvider.GenerateWord
func (s *wordProviderImpl) GenerateWord(ctx context.Context, theme string) (string, error) {
	// 1. Serve from the pool; the backend is not consulted on this path
	if word, ok := s.pool.PollWord(theme); ok {
		s.logger.DebugContext(ctx, "served word from pool", "theme", theme)
		s.topUp(theme)
		return word, nil
	}

	// 2. Pool is empty: bootstrap synchronously
	s.logger.InfoContext(ctx, "word pool empty, generating initial batch",
		"theme", theme,
		"initial_size", s.initialSize)

	backend, err := s.selector.ActiveBackend(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "no generation backend available",
			"theme", theme,
			"error", err)
		return "", fmt.Errorf("%w: %w", generation.ErrGenerationUnavailable, err)
	}

	words, err := backend.GenerateWords(ctx, theme, s.initialSize)
	if err != nil {
		s.logger.ErrorContext(ctx, "initial batch generation failed",
			"theme", theme,
			"backend_type", backend.Type(),
			"error", err)
		return "", fmt.Errorf("%w: %s: %w", generation.ErrGenerationUnavailable, backend.Type(), err)
	}

	if len(words) == 0 {
		s.logger.ErrorContext(ctx, "initial batch generation returned no words",
			"theme", theme,
			"backend_type", backend.Type())
		return "", fmt.Errorf("%w: %w", generation.ErrGenerationUnavailable, generation.ErrEmptyGenerationResult)
	}

	// 3. Serve the first word and keep the rest
	word := words[0]
	if len(words) > 1 {
		s.pool.AddWords(theme, words[1:])
	}
	s.topUp(theme)

	s.logger.InfoContext(ctx, "generated initial batch",
		"theme", theme,
		"backend_type", backend.Type(),
		"generated", len(words))

	// 4. Return the first word
	return word, nil
}

func (s *wordProviderImpl) topUp(theme string) {
	if s.pool.NeedsRefill(theme) {
		s.refiller.TriggerAsyncRefill(theme)
	}
}
