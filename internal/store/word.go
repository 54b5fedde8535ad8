package store

import "context"

// WordStore persists curated words grouped by theme.
type WordStore interface {
	// RandomWords returns up to limit words for theme in random order.
	// An unknown theme yields an empty slice, not an error.
	RandomWords(ctx context.Context, theme string, limit int) ([]string, error)

	// AddWords stores words under theme, creating the theme when needed.
	// Words already present for the theme are skipped. It returns the number
	// of words actually inserted.
	AddWords(ctx context.Context, theme string, words []string) (int, error)

	// Themes returns the names of all stored themes in alphabetical order.
	Themes(ctx context.Context) ([]string, error)

	// CountWords returns the number of words stored for theme.
	CountWords(ctx context.Context, theme string) (int, error)

	// Ping verifies the underlying connection.
	Ping(ctx context.Context) error
}
