package service

import "fmt"

// WordProviderError wraps construction errors of the word provider
type WordProviderError struct {
	// Operation is the operation that failed
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for WordProviderError.
func (e *WordProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("word provider %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("word provider %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *WordProviderError) Unwrap() error {
	return e.Err
}
