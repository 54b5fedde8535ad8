package mocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/crocodile-words/internal/mocks"
	"github.com/stretchr/testify/assert"
)

func TestMockBackend(t *testing.T) {
	t.Parallel()

	t.Run("Default success case", func(t *testing.T) {
		t.Parallel()

		backend := mocks.NewMockBackendWithWords("Cat", "Dog")

		words, err := backend.GenerateWords(context.Background(), "animals", 2)

		assert.NoError(t, err)
		assert.Equal(t, []string{"Cat", "Dog"}, words)
		assert.Equal(t, 1, backend.GenerateCallCount())
		assert.Equal(t, "animals", backend.GenerateWordsCalls.Themes[0])
		assert.Equal(t, 2, backend.GenerateWordsCalls.Counts[0])
		assert.Equal(t, "mock", backend.Type())
		assert.True(t, backend.IsAvailable(context.Background()))
	})

	t.Run("Error case", func(t *testing.T) {
		t.Parallel()

		backendErr := errors.New("boom")
		backend := mocks.NewMockBackendWithError(backendErr)

		words, err := backend.GenerateWords(context.Background(), "animals", 3)

		assert.ErrorIs(t, err, backendErr)
		assert.Empty(t, words)
	})

	t.Run("Unavailable backend", func(t *testing.T) {
		t.Parallel()

		backend := mocks.NewUnavailableMockBackend("lm-studio")

		assert.False(t, backend.IsAvailable(context.Background()))
		assert.Equal(t, "lm-studio", backend.Type())
		assert.Equal(t, 1, backend.AvailabilityCallCount())

		backend.Reset()
		assert.Equal(t, 0, backend.AvailabilityCallCount())
	})
}
