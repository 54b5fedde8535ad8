package lmstudio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/crocodile-words/internal/config"
	"github.com/phrazzld/crocodile-words/internal/generation"
	"golang.org/x/time/rate"
)

const (
	chatCompletionsPath = "/v1/chat/completions"
	modelsPath          = "/v1/models"

	// tokensPerWord and tokenOverhead size max_tokens for a batch request
	tokensPerWord = 20
	tokenOverhead = 50

	maxErrorBodyBytes = 512
)

// Backend generates words with a model served by LM Studio.
type Backend struct {
	cfg          config.LMStudioConfig
	baseURL      string
	client       *http.Client
	limiter      *rate.Limiter
	availability *generation.AvailabilityCache
	logger       *slog.Logger
}

// Option customizes a Backend.
type Option func(*Backend)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Backend) {
		b.client = c
	}
}

// WithAvailabilityTTL overrides the liveness cache TTL.
func WithAvailabilityTTL(ttl time.Duration) Option {
	return func(b *Backend) {
		b.availability = generation.NewAvailabilityCache(generation.TypeLMStudio, ttl)
	}
}

// NewBackend creates an LM Studio backend. It performs no I/O.
func NewBackend(cfg config.LMStudioConfig, logger *slog.Logger, opts ...Option) (*Backend, error) {
	if cfg.Enabled && strings.TrimSpace(cfg.UserPromptTemplate) == "" {
		return nil, fmt.Errorf("%w: lm_studio.user_prompt_template is empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	b := &Backend{
		cfg:          cfg,
		baseURL:      strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		client:       &http.Client{Timeout: timeout},
		limiter:      rate.NewLimiter(limit, burst),
		availability: generation.NewAvailabilityCache(generation.TypeLMStudio, generation.DefaultAvailabilityTTL),
		logger:       logger.With("component", "lmstudio_backend"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Type implements generation.Backend.
func (b *Backend) Type() string {
	return generation.TypeLMStudio
}

// IsAvailable implements generation.Backend. The verdict of a GET /v1/models probe
// is cached for the configured TTL.
func (b *Backend) IsAvailable(ctx context.Context) bool {
	if !b.cfg.Enabled {
		b.logger.DebugContext(ctx, "lm studio backend disabled in configuration")
		return false
	}
	if b.baseURL == "" {
		b.logger.WarnContext(ctx, "lm studio url is not configured")
		return false
	}
	return b.availability.Check(ctx, b.probe)
}

func (b *Backend) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+modelsPath, nil)
	if err != nil {
		b.logger.WarnContext(ctx, "failed to build lm studio probe request", "error", err)
		return false
	}

	resp, err := b.client.Do(req)
	if err != nil {
		b.logger.WarnContext(ctx, "lm studio is not reachable", "url", b.baseURL, "error", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	available := resp.StatusCode >= 200 && resp.StatusCode < 300
	b.logger.DebugContext(ctx, "lm studio availability probed",
		"url", b.baseURL,
		"status", resp.StatusCode,
		"available", available)
	return available
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateWords implements generation.Backend.
func (b *Backend) GenerateWords(ctx context.Context, theme string, count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", generation.ErrInvalidCount, count)
	}
	if !b.IsAvailable(ctx) {
		return nil, fmt.Errorf("%w: %s", generation.ErrBackendUnavailable, generation.TypeLMStudio)
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("lm studio rate limiter: %w", err)
	}

	payload := chatCompletionRequest{
		Model: b.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: b.cfg.SystemPrompt},
			{Role: "user", Content: fmt.Sprintf(b.cfg.UserPromptTemplate, count, theme)},
		},
		Temperature: b.cfg.Temperature,
		MaxTokens:   max(b.cfg.MaxTokens, count*tokensPerWord+tokenOverhead),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode lm studio request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+chatCompletionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build lm studio request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	b.logger.DebugContext(ctx, "sending batch request to lm studio",
		"theme", theme,
		"count", count,
		"max_tokens", payload.MaxTokens)

	resp, err := b.client.Do(req)
	if err != nil {
		b.availability.Invalidate()
		return nil, fmt.Errorf("failed to communicate with lm studio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("%w: lm studio returned status %d: %s",
			generation.ErrInvalidResponse, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", generation.ErrInvalidResponse, err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%w: lm studio returned no choices", generation.ErrInvalidResponse)
	}

	text := parsed.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: lm studio returned empty text content", generation.ErrInvalidResponse)
	}

	words, err := generation.ParseWordList(text, count)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to parse words from lm studio response",
			"theme", theme,
			"response", text)
		return nil, err
	}

	b.logger.InfoContext(ctx, "lm studio generated words",
		"theme", theme,
		"requested", count,
		"generated", len(words))

	return words, nil
}
