package generation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Selector resolves the configured backend identifier to a registered Backend.
type Selector struct {
	activeType string
	logger     *slog.Logger

	mu       sync.RWMutex
	backends map[string]Backend
}

// NewSelector creates a Selector for activeType and registers the given backends.
// Registering two backends with the same type is a configuration error.
func NewSelector(activeType string, logger *slog.Logger, backends ...Backend) (*Selector, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Selector{
		activeType: activeType,
		logger:     logger.With("component", "backend_selector"),
		backends:   make(map[string]Backend, len(backends)),
	}

	for _, b := range backends {
		if err := s.Register(b); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Register adds a backend to the registry.
func (s *Selector) Register(b Backend) error {
	if b == nil {
		return fmt.Errorf("%w: backend cannot be nil", ErrInvalidConfig)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.backends[b.Type()]; exists {
		return fmt.Errorf("%w: backend type %q registered twice", ErrInvalidConfig, b.Type())
	}
	s.backends[b.Type()] = b
	s.logger.Debug("registered generation backend", "backend_type", b.Type())
	return nil
}

// ActiveBackend returns the backend registered under the configured identifier.
// It fails with ErrUnknownBackendType if nothing is registered for it, and with
// ErrBackendUnavailable if the backend reports it is not ready.
func (s *Selector) ActiveBackend(ctx context.Context) (Backend, error) {
	s.mu.RLock()
	backend, ok := s.backends[s.activeType]
	s.mu.RUnlock()

	if !ok {
		registered := s.RegisteredTypes()
		s.logger.ErrorContext(ctx, "no generation backend registered for configured type",
			"backend_type", s.activeType,
			"registered_types", registered)
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownBackendType, s.activeType, registered)
	}

	if !backend.IsAvailable(ctx) {
		s.logger.ErrorContext(ctx, "generation backend is not available",
			"backend_type", s.activeType)
		return nil, fmt.Errorf("%w: %q", ErrBackendUnavailable, s.activeType)
	}

	s.logger.DebugContext(ctx, "resolved active generation backend", "backend_type", s.activeType)
	return backend, nil
}

// ActiveType returns the configured backend identifier.
func (s *Selector) ActiveType() string {
	return s.activeType
}

// RegisteredTypes returns the sorted identifiers of all registered backends.
func (s *Selector) RegisteredTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]string, 0, len(s.backends))
	for t := range s.backends {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ReadyTypes returns the sorted identifiers of registered backends that currently
// report themselves available.
func (s *Selector) ReadyTypes(ctx context.Context) []string {
	s.mu.RLock()
	backends := make([]Backend, 0, len(s.backends))
	for _, b := range s.backends {
		backends = append(backends, b)
	}
	s.mu.RUnlock()

	ready := make([]string, 0, len(backends))
	for _, b := range backends {
		if b.IsAvailable(ctx) {
			ready = append(ready, b.Type())
		}
	}
	sort.Strings(ready)
	return ready
}
