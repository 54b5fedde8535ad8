package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/phrazzld/crocodile-words/internal/config"
	"github.com/phrazzld/crocodile-words/internal/generation"
	"google.golang.org/genai"
)

// modelsAPI is the subset of genai.Models used by the backend.
type modelsAPI interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
}

// wordsResponse is the JSON shape requested from the model
type wordsResponse struct {
	Words []string `json:"words"`
}

// Backend generates words with a Gemini model.
type Backend struct {
	cfg            config.GeminiConfig
	models         modelsAPI
	promptTemplate *template.Template
	availability   *generation.AvailabilityCache
	logger         *slog.Logger
}

// NewBackend creates a Gemini backend. When the backend is disabled or has no API
// key, no client is created and the backend reports unavailable.
func NewBackend(
	ctx context.Context,
	cfg config.GeminiConfig,
	availabilityTTL time.Duration,
	logger *slog.Logger,
) (*Backend, error) {
	var models modelsAPI
	if cfg.Enabled && cfg.APIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
		}
		models = client.Models
	}
	return newBackend(cfg, models, availabilityTTL, logger)
}

func newBackend(
	cfg config.GeminiConfig,
	models modelsAPI,
	availabilityTTL time.Duration,
	logger *slog.Logger,
) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Enabled && cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	tmpl, err := loadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	return &Backend{
		cfg:            cfg,
		models:         models,
		promptTemplate: tmpl,
		availability:   generation.NewAvailabilityCache(generation.TypeGemini, availabilityTTL),
		logger:         logger.With("component", "gemini_backend"),
	}, nil
}

// Type implements generation.Backend.
func (b *Backend) Type() string {
	return generation.TypeGemini
}

// IsAvailable implements generation.Backend. Liveness is a model metadata lookup,
// cached for the availability TTL.
func (b *Backend) IsAvailable(ctx context.Context) bool {
	if !b.cfg.Enabled || b.models == nil {
		b.logger.DebugContext(ctx, "gemini backend disabled or missing api key")
		return false
	}
	return b.availability.Check(ctx, func(ctx context.Context) bool {
		if _, err := b.models.Get(ctx, b.cfg.ModelName, nil); err != nil {
			b.logger.WarnContext(ctx, "gemini model lookup failed",
				"model", b.cfg.ModelName,
				"error", err)
			return false
		}
		return true
	})
}

// GenerateWords implements generation.Backend.
func (b *Backend) GenerateWords(ctx context.Context, theme string, count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", generation.ErrInvalidCount, count)
	}
	if !b.IsAvailable(ctx) {
		return nil, fmt.Errorf("%w: %s", generation.ErrBackendUnavailable, generation.TypeGemini)
	}

	prompt, err := renderPrompt(b.promptTemplate, theme, count)
	if err != nil {
		return nil, err
	}

	temperature := float32(b.cfg.Temperature)
	genCfg := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}

	b.logger.DebugContext(ctx, "making gemini api call",
		"theme", theme,
		"count", count,
		"model", b.cfg.ModelName)

	resp, err := b.models.GenerateContent(ctx, b.cfg.ModelName, genai.Text(prompt), genCfg)
	if err != nil {
		b.availability.Invalidate()
		return nil, fmt.Errorf("gemini api call failed: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	words, err := parseWords(text, count)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to parse words from gemini response",
			"theme", theme,
			"response", text)
		return nil, err
	}

	b.logger.InfoContext(ctx, "gemini generated words",
		"theme", theme,
		"requested", count,
		"generated", len(words))

	return words, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: %w", generation.ErrInvalidResponse, ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}
	return sb.String(), nil
}

// parseWords decodes the JSON word list and falls back to free-form parsing.
func parseWords(text string, count int) ([]string, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	var parsed wordsResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil {
		words := make([]string, 0, len(parsed.Words))
		for _, w := range parsed.Words {
			if w = strings.TrimSpace(w); w != "" {
				words = append(words, w)
			}
		}
		if len(words) > 0 {
			return words, nil
		}
		return nil, fmt.Errorf("%w: no words in JSON response", generation.ErrInvalidResponse)
	}

	return generation.ParseWordList(text, count)
}
