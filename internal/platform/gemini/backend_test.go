package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/crocodile-words/internal/config"
	"github.com/phrazzld/crocodile-words/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeModels implements modelsAPI with configurable responses
type fakeModels struct {
	mu         sync.Mutex
	text       string
	finish     genai.FinishReason
	genErr     error
	getErr     error
	getCalls   int
	genCalls   int
	lastPrompt string
	lastConfig *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	_ string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.genCalls++
	f.lastConfig = cfg
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.lastPrompt = contents[0].Parts[0].Text
	}
	if f.genErr != nil {
		return nil, f.genErr
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
			FinishReason: f.finish,
		}},
	}, nil
}

func (f *fakeModels) Get(_ context.Context, model string, _ *genai.GetModelConfig) (*genai.Model, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &genai.Model{Name: model}, nil
}

func testConfig() config.GeminiConfig {
	return config.GeminiConfig{
		Enabled:     true,
		APIKey:      "test-key",
		ModelName:   "gemini-2.0-flash",
		Temperature: 0.9,
	}
}

func newTestBackend(t *testing.T, cfg config.GeminiConfig, models modelsAPI) *Backend {
	t.Helper()
	b, err := newBackend(cfg, models, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return b
}

func TestGenerateWords_JSONResponse(t *testing.T) {
	t.Parallel()

	models := &fakeModels{text: `{"words": ["lion", " tiger ", "", "bear"]}`}
	b := newTestBackend(t, testConfig(), models)

	words, err := b.GenerateWords(context.Background(), "animals", 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"lion", "tiger", "bear"}, words)
	assert.Contains(t, models.lastPrompt, `"animals"`)
	assert.Contains(t, models.lastPrompt, "3 distinct")
	require.NotNil(t, models.lastConfig)
	assert.Equal(t, "application/json", models.lastConfig.ResponseMIMEType)
	require.NotNil(t, models.lastConfig.Temperature)
	assert.InDelta(t, 0.9, *models.lastConfig.Temperature, 0.0001)
}

func TestGenerateWords_FencedJSON(t *testing.T) {
	t.Parallel()

	models := &fakeModels{text: "```json\n{\"words\": [\"apple\"]}\n```"}
	b := newTestBackend(t, testConfig(), models)

	words, err := b.GenerateWords(context.Background(), "fruit", 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"apple"}, words)
}

func TestGenerateWords_PlainTextFallback(t *testing.T) {
	t.Parallel()

	models := &fakeModels{text: "1. apple\n2. pear\n"}
	b := newTestBackend(t, testConfig(), models)

	words, err := b.GenerateWords(context.Background(), "fruit", 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "pear"}, words)
}

func TestGenerateWords_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		models  *fakeModels
		count   int
		wantErr error
	}{
		{
			name:    "invalid count",
			models:  &fakeModels{text: "x"},
			count:   0,
			wantErr: generation.ErrInvalidCount,
		},
		{
			name:    "empty json list",
			models:  &fakeModels{text: `{"words": []}`},
			count:   3,
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "safety block",
			models:  &fakeModels{text: "x", finish: genai.FinishReasonSafety},
			count:   3,
			wantErr: ErrContentBlocked,
		},
		{
			name:    "blank text",
			models:  &fakeModels{text: "  "},
			count:   3,
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "unavailable",
			models:  &fakeModels{getErr: errors.New("404 model not found")},
			count:   3,
			wantErr: generation.ErrBackendUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			b := newTestBackend(t, testConfig(), tc.models)

			_, err := b.GenerateWords(context.Background(), "animals", tc.count)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestGenerateWords_APIErrorInvalidatesAvailability(t *testing.T) {
	t.Parallel()

	apiErr := errors.New("quota exceeded")
	models := &fakeModels{genErr: apiErr}
	b := newTestBackend(t, testConfig(), models)

	_, err := b.GenerateWords(context.Background(), "animals", 3)
	require.ErrorIs(t, err, apiErr)

	_, _, ok := b.availability.LastChecked()
	assert.False(t, ok, "failed call drops the cached verdict")
}

func TestIsAvailable(t *testing.T) {
	t.Parallel()

	t.Run("cached", func(t *testing.T) {
		t.Parallel()
		models := &fakeModels{}
		b := newTestBackend(t, testConfig(), models)

		assert.True(t, b.IsAvailable(context.Background()))
		assert.True(t, b.IsAvailable(context.Background()))
		assert.Equal(t, 1, models.getCalls)
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.Enabled = false
		models := &fakeModels{}
		b := newTestBackend(t, cfg, models)

		assert.False(t, b.IsAvailable(context.Background()))
		assert.Zero(t, models.getCalls)
	})

	t.Run("no client", func(t *testing.T) {
		t.Parallel()
		b := newTestBackend(t, testConfig(), nil)
		assert.False(t, b.IsAvailable(context.Background()))
	})
}

func TestNewBackend_WithoutKeyCreatesNoClient(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.APIKey = ""

	b, err := NewBackend(context.Background(), cfg, time.Minute, nil)

	require.NoError(t, err)
	assert.Equal(t, generation.TypeGemini, b.Type())
	assert.False(t, b.IsAvailable(context.Background()))
}

func TestPromptTemplate(t *testing.T) {
	t.Parallel()

	t.Run("custom file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "prompt.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("{{.Count}} words about {{.Theme}}"), 0o600))

		cfg := testConfig()
		cfg.PromptTemplatePath = path
		models := &fakeModels{text: `{"words": ["a"]}`}
		b := newTestBackend(t, cfg, models)

		_, err := b.GenerateWords(context.Background(), "space", 4)
		require.NoError(t, err)
		assert.Equal(t, "4 words about space", models.lastPrompt)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.PromptTemplatePath = filepath.Join(t.TempDir(), "missing.tmpl")

		_, err := newBackend(cfg, &fakeModels{}, time.Minute, nil)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("malformed template", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("{{.Theme"), 0o600))

		cfg := testConfig()
		cfg.PromptTemplatePath = path
		_, err := newBackend(cfg, &fakeModels{}, time.Minute, nil)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})
}
