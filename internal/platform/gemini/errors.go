package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrContentBlocked is returned when Gemini stops generation for safety reasons.
	ErrContentBlocked = errors.New("content blocked by safety filters")
)
