package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrUnknownBackendType is returned when the configured backend identifier does not
	// match any registered backend.
	ErrUnknownBackendType = errors.New("unknown generation backend type")

	// ErrBackendUnavailable is returned when the resolved backend reports it is not ready.
	ErrBackendUnavailable = errors.New("generation backend is not available")

	// ErrEmptyGenerationResult is returned when a backend call succeeds but yields no words.
	ErrEmptyGenerationResult = errors.New("generation backend returned no words")

	// ErrGenerationUnavailable is returned to gameplay callers when a word cannot be
	// produced synchronously. It wraps the underlying selector or backend failure.
	ErrGenerationUnavailable = errors.New("word generation unavailable")

	// ErrInvalidResponse is returned when a backend response cannot be parsed into words
	ErrInvalidResponse = errors.New("invalid response from generation backend")

	// ErrInvalidConfig is returned when a backend configuration is invalid
	ErrInvalidConfig = errors.New("invalid generation backend configuration")

	// ErrInvalidCount is returned when a non-positive word count is requested
	ErrInvalidCount = errors.New("word count must be positive")
)
