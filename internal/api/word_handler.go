package api

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/crocodile-words/internal/api/shared"
	"github.com/phrazzld/crocodile-words/internal/platform/logger"
	"github.com/phrazzld/crocodile-words/internal/service"
)

const maxThemeLength = 100

// PoolManager is the subset of the word pool exposed over HTTP
type PoolManager interface {
	AddWords(theme string, words []string)
	PoolSize(theme string) int
	NeedsRefill(theme string) bool
	ClearPool(theme string)
	ClearAllPools()
	MinThreshold() int
	Sizes() map[string]int
}

// RefillController reports and schedules background refills
type RefillController interface {
	TriggerAsyncRefill(theme string)
	InFlight(theme string) bool
}

// BackendRegistry describes the generation backends
type BackendRegistry interface {
	ActiveType() string
	RegisteredTypes() []string
	ReadyTypes(ctx context.Context) []string
}

// ThemeLister lists curated themes
type ThemeLister interface {
	Themes(ctx context.Context) ([]string, error)
}

// WordHandler handles word and pool related HTTP requests
type WordHandler struct {
	provider service.WordProvider
	pool     PoolManager
	refills  RefillController
	backends BackendRegistry
	themes   ThemeLister
}

// NewWordHandler creates a new WordHandler. themes may be nil, in which case the
// theme listing reports the themes that currently have a pool.
func NewWordHandler(
	provider service.WordProvider,
	pool PoolManager,
	refills RefillController,
	backends BackendRegistry,
	themes ThemeLister,
) *WordHandler {
	return &WordHandler{
		provider: provider,
		pool:     pool,
		refills:  refills,
		backends: backends,
		themes:   themes,
	}
}

// Routes registers the handler's endpoints on r.
func (h *WordHandler) Routes(r chi.Router) {
	r.Get("/themes", h.ListThemes)
	r.Route("/themes/{theme}", func(r chi.Router) {
		r.Get("/word", h.GetWord)
		r.Get("/pool", h.GetPool)
		r.Post("/pool", h.AddWords)
		r.Delete("/pool", h.ClearPool)
		r.Post("/refill", h.TriggerRefill)
	})
	r.Get("/pools", h.ListPools)
	r.Delete("/pools", h.ClearAllPools)
	r.Get("/backends", h.ListBackends)
}

// GetWord handles GET /api/themes/{theme}/word requests
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	theme, ok := themeParam(w, r)
	if !ok {
		return
	}

	word, err := h.provider.GenerateWord(r.Context(), theme)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, WordResponse{Theme: theme, Word: word})
}

// GetPool handles GET /api/themes/{theme}/pool requests
func (h *WordHandler) GetPool(w http.ResponseWriter, r *http.Request) {
	theme, ok := themeParam(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.poolStatus(theme))
}

// AddWords handles POST /api/themes/{theme}/pool requests
func (h *WordHandler) AddWords(w http.ResponseWriter, r *http.Request) {
	theme, ok := themeParam(w, r)
	if !ok {
		return
	}

	var req AddWordsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: words must be a non-empty list")
		return
	}

	words := make([]string, 0, len(req.Words))
	for _, word := range req.Words {
		if word = strings.TrimSpace(word); word != "" {
			words = append(words, word)
		}
	}
	h.pool.AddWords(theme, words)

	logger.FromContext(r.Context()).Info("words added to pool manually",
		"theme", theme,
		"count", len(words))

	shared.RespondWithJSON(w, r, http.StatusOK, h.poolStatus(theme))
}

// ClearPool handles DELETE /api/themes/{theme}/pool requests
func (h *WordHandler) ClearPool(w http.ResponseWriter, r *http.Request) {
	theme, ok := themeParam(w, r)
	if !ok {
		return
	}
	h.pool.ClearPool(theme)
	w.WriteHeader(http.StatusNoContent)
}

// TriggerRefill handles POST /api/themes/{theme}/refill requests
func (h *WordHandler) TriggerRefill(w http.ResponseWriter, r *http.Request) {
	theme, ok := themeParam(w, r)
	if !ok {
		return
	}
	h.refills.TriggerAsyncRefill(theme)
	shared.RespondWithJSON(w, r, http.StatusAccepted, h.poolStatus(theme))
}

// ListPools handles GET /api/pools requests
func (h *WordHandler) ListPools(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, PoolsResponse{Pools: h.pool.Sizes()})
}

// ClearAllPools handles DELETE /api/pools requests
func (h *WordHandler) ClearAllPools(w http.ResponseWriter, r *http.Request) {
	h.pool.ClearAllPools()
	w.WriteHeader(http.StatusNoContent)
}

// ListBackends handles GET /api/backends requests
func (h *WordHandler) ListBackends(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, BackendsResponse{
		Active:     h.backends.ActiveType(),
		Registered: h.backends.RegisteredTypes(),
		Ready:      h.backends.ReadyTypes(r.Context()),
	})
}

// ListThemes handles GET /api/themes requests
func (h *WordHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	if h.themes != nil {
		themes, err := h.themes.Themes(r.Context())
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		if themes == nil {
			themes = []string{}
		}
		shared.RespondWithJSON(w, r, http.StatusOK, ThemesResponse{Themes: themes})
		return
	}

	sizes := h.pool.Sizes()
	themes := make([]string, 0, len(sizes))
	for theme := range sizes {
		themes = append(themes, theme)
	}
	sort.Strings(themes)
	shared.RespondWithJSON(w, r, http.StatusOK, ThemesResponse{Themes: themes})
}

func (h *WordHandler) poolStatus(theme string) PoolStatusResponse {
	return PoolStatusResponse{
		Theme:        theme,
		Size:         h.pool.PoolSize(theme),
		MinThreshold: h.pool.MinThreshold(),
		NeedsRefill:  h.pool.NeedsRefill(theme),
		Refilling:    h.refills.InFlight(theme),
	}
}

// themeParam extracts and validates the {theme} path parameter, writing a 400
// response when it is missing or malformed.
func themeParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	theme := chi.URLParam(r, "theme")
	// chi matches on RawPath when the request carries one, leaving the parameter
	// escaped; otherwise it is already decoded and must not be unescaped again.
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(theme)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid theme")
			return "", false
		}
		theme = unescaped
	}
	theme = strings.TrimSpace(theme)
	if theme == "" || utf8.RuneCountInString(theme) > maxThemeLength {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid theme")
		return "", false
	}
	return theme, true
}
