package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/crocodile-words/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	t.Run("with body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"word": "Кошка"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"word":"Кошка"}`, rec.Body.String())
	})

	t.Run("nil body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RespondWithJSON(rec, req, http.StatusAccepted, nil)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestRespondWithError_IncludesTraceID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithTraceID(req.Context(), "trace-123"))
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusBadRequest, "Invalid theme")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Invalid theme", resp.Error)
	assert.Equal(t, "trace-123", resp.TraceID)
}

func TestRespondWithErrorAndLog_RedactsError(t *testing.T) {
	t.Parallel()

	log, buf := logger.GetTestLogger(t)
	ctx := logger.WithLogger(context.Background(), log)
	req := httptest.NewRequest(http.MethodGet, "/api/themes/x/word", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	err := errors.New("dial failed: postgres://crocodile:hunter2@db:5432/words")
	RespondWithErrorAndLog(rec, req, http.StatusServiceUnavailable, "Word generation unavailable", err)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.NotContains(t, buf.String(), "hunter2")
	logger.AssertLogContains(t, buf, "API error response")
	logger.AssertLogField(t, buf, "level", "ERROR")
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Words []string `json:"words" validate:"required,min=1"`
	}

	testCases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"words":["a"]}`},
		{name: "unknown field", body: `{"words":["a"],"x":1}`, wantErr: true},
		{name: "trailing object", body: `{"words":["a"]}{"words":["b"]}`, wantErr: true},
		{name: "malformed", body: `{"words":`, wantErr: true},
		{name: "too large", body: `{"words":["` + strings.Repeat("a", maxRequestBodyBytes) + `"]}`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))

			var p payload
			err := DecodeJSON(req, &p)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, ValidateRequest(&p))
		})
	}
}

func TestValidateRequest_Fails(t *testing.T) {
	t.Parallel()

	type payload struct {
		Words []string `validate:"required,min=1"`
	}
	assert.Error(t, ValidateRequest(&payload{}))
}

func TestTraceIDContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	assert.Len(t, GetTraceID(ctx), 36)
}
