package generation

import "context"

// Backend defines a word generation service. Implementations are interchangeable and
// exactly one of them is active at a time, chosen by configuration.
type Backend interface {
	// GenerateWords returns up to count words for the theme. A successful call returns at
	// least one word; it may return more than requested.
	GenerateWords(ctx context.Context, theme string, count int) ([]string, error)

	// IsAvailable reports whether the backend is currently usable. It may perform network
	// I/O, so implementations cache the verdict with an AvailabilityCache.
	IsAvailable(ctx context.Context) bool

	// Type returns the stable identifier used for registry lookup.
	Type() string
}

// Identifiers of the built-in backends.
const (
	TypeLMStudio = "lm-studio"
	TypeGemini   = "gemini"
	TypeDatabase = "database"
)
