package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/crocodile-words/internal/generation"
	"github.com/phrazzld/crocodile-words/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, generation.ErrGenerationUnavailable),
		errors.Is(err, generation.ErrBackendUnavailable),
		errors.Is(err, generation.ErrUnknownBackendType):
		return http.StatusServiceUnavailable

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, generation.ErrInvalidCount):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, generation.ErrGenerationUnavailable),
		errors.Is(err, generation.ErrBackendUnavailable),
		errors.Is(err, generation.ErrUnknownBackendType):
		return "Word generation unavailable"

	case errors.Is(err, store.ErrThemeNotFound):
		return "Theme not found"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, generation.ErrInvalidCount):
		return "Invalid word count"

	default:
		return "An unexpected error occurred"
	}
}
