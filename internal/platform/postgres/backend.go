package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/crocodile-words/internal/generation"
	"github.com/phrazzld/crocodile-words/internal/store"
)

// defaultFallbackWord is served for themes without stored words or a known fallback.
const defaultFallbackWord = "Слово"

// fallbackWords holds one word per built-in theme, used while the table is empty.
var fallbackWords = map[string]string{
	"животные":         "Кошка",
	"профессии":        "Врач",
	"предметы быта":    "Стул",
	"фильмы и сериалы": "Титаник",
	"еда и напитки":    "Пицца",
	"спорт":            "Футбол",
	"города и страны":  "Москва",
}

// FallbackWord returns the fixed word served for theme when the store has none.
func FallbackWord(theme string) string {
	if w, ok := fallbackWords[strings.ToLower(strings.TrimSpace(theme))]; ok {
		return w
	}
	return defaultFallbackWord
}

// Backend is a generation.Backend that serves curated words from a WordStore.
type Backend struct {
	words        store.WordStore
	availability *generation.AvailabilityCache
	logger       *slog.Logger
}

// NewBackend creates a database backend over words.
func NewBackend(words store.WordStore, availabilityTTL time.Duration, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		words:        words,
		availability: generation.NewAvailabilityCache(generation.TypeDatabase, availabilityTTL),
		logger:       logger.With("component", "database_backend"),
	}
}

// Type implements generation.Backend.
func (b *Backend) Type() string {
	return generation.TypeDatabase
}

// IsAvailable implements generation.Backend. The database is available when it answers a ping.
func (b *Backend) IsAvailable(ctx context.Context) bool {
	if b.words == nil {
		return false
	}
	return b.availability.Check(ctx, func(ctx context.Context) bool {
		if err := b.words.Ping(ctx); err != nil {
			b.logger.WarnContext(ctx, "database ping failed", "error", err)
			return false
		}
		return true
	})
}

// GenerateWords implements generation.Backend. Up to count stored words are returned in
// random order; a theme with no stored words yields its fallback word.
func (b *Backend) GenerateWords(ctx context.Context, theme string, count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", generation.ErrInvalidCount, count)
	}
	if b.words == nil {
		return nil, fmt.Errorf("%w: %s", generation.ErrBackendUnavailable, generation.TypeDatabase)
	}

	words, err := b.words.RandomWords(ctx, theme, count)
	if err != nil {
		b.availability.Invalidate()
		return nil, fmt.Errorf("failed to load words from database: %w", err)
	}

	if len(words) == 0 {
		fallback := FallbackWord(theme)
		b.logger.WarnContext(ctx, "no words found for theme, using fallback",
			"theme", theme,
			"fallback", fallback)
		return []string{fallback}, nil
	}

	b.logger.InfoContext(ctx, "loaded words from database",
		"theme", theme,
		"requested", count,
		"loaded", len(words))
	return words, nil
}
