package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/crocodile-words/internal/generation"
)

// MockBackend implements generation.Backend for testing
type MockBackend struct {
	// BackendType is returned by Type. Defaults to "mock" when empty.
	BackendType string

	// GenerateWordsFn allows test cases to mock the GenerateWords behavior
	GenerateWordsFn func(ctx context.Context, theme string, count int) ([]string, error)

	// IsAvailableFn allows test cases to mock the IsAvailable behavior.
	// When nil, the backend reports itself available.
	IsAvailableFn func(ctx context.Context) bool

	// Default response values
	Words []string
	Err   error

	// Call tracking for verification
	GenerateWordsCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times GenerateWords was called
		Count int

		// Themes contains all themes passed to GenerateWords calls
		Themes []string

		// Counts contains all requested word counts
		Counts []int
	}

	IsAvailableCalls struct {
		mu    sync.Mutex
		Count int
	}
}

var _ generation.Backend = (*MockBackend)(nil)

// GenerateWords implements the generation.Backend interface
func (m *MockBackend) GenerateWords(ctx context.Context, theme string, count int) ([]string, error) {
	m.GenerateWordsCalls.mu.Lock()
	m.GenerateWordsCalls.Count++
	m.GenerateWordsCalls.Themes = append(m.GenerateWordsCalls.Themes, theme)
	m.GenerateWordsCalls.Counts = append(m.GenerateWordsCalls.Counts, count)
	m.GenerateWordsCalls.mu.Unlock()

	if m.GenerateWordsFn != nil {
		return m.GenerateWordsFn(ctx, theme, count)
	}

	if m.Words == nil {
		return nil, m.Err
	}
	words := make([]string, len(m.Words))
	copy(words, m.Words)
	return words, m.Err
}

// IsAvailable implements the generation.Backend interface
func (m *MockBackend) IsAvailable(ctx context.Context) bool {
	m.IsAvailableCalls.mu.Lock()
	m.IsAvailableCalls.Count++
	m.IsAvailableCalls.mu.Unlock()

	if m.IsAvailableFn != nil {
		return m.IsAvailableFn(ctx)
	}
	return true
}

// Type implements the generation.Backend interface
func (m *MockBackend) Type() string {
	if m.BackendType == "" {
		return "mock"
	}
	return m.BackendType
}

// GenerateCallCount returns how many times GenerateWords was called
func (m *MockBackend) GenerateCallCount() int {
	m.GenerateWordsCalls.mu.Lock()
	defer m.GenerateWordsCalls.mu.Unlock()
	return m.GenerateWordsCalls.Count
}

// AvailabilityCallCount returns how many times IsAvailable was called
func (m *MockBackend) AvailabilityCallCount() int {
	m.IsAvailableCalls.mu.Lock()
	defer m.IsAvailableCalls.mu.Unlock()
	return m.IsAvailableCalls.Count
}

// NewMockBackendWithWords creates a MockBackend that returns the specified words
func NewMockBackendWithWords(words ...string) *MockBackend {
	return &MockBackend{
		Words: words,
	}
}

// NewMockBackendWithError creates a MockBackend whose GenerateWords always fails
func NewMockBackendWithError(err error) *MockBackend {
	return &MockBackend{
		Err: err,
	}
}

// NewUnavailableMockBackend creates a MockBackend that reports itself unavailable
func NewUnavailableMockBackend(backendType string) *MockBackend {
	return &MockBackend{
		BackendType:   backendType,
		IsAvailableFn: func(ctx context.Context) bool { return false },
	}
}

// Reset resets the call tracking state
func (m *MockBackend) Reset() {
	m.GenerateWordsCalls.mu.Lock()
	m.GenerateWordsCalls.Count = 0
	m.GenerateWordsCalls.Themes = nil
	m.GenerateWordsCalls.Counts = nil
	m.GenerateWordsCalls.mu.Unlock()

	m.IsAvailableCalls.mu.Lock()
	m.IsAvailableCalls.Count = 0
	m.IsAvailableCalls.mu.Unlock()
}
