package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navdisha/career-advisor/internal/adapter/ai/gemini"
	"github.com/navdisha/career-advisor/internal/config"
	"github.com/navdisha/career-advisor/internal/domain"
)

func newTestConfig(baseURL string) config.Config {
	return config.Config{
		GeminiAPIKey:  "test-key",
		GeminiBaseURL: baseURL,
		GeminiModel:   "gemini-2.0-flash",
		GeminiTimeout: 2 * time.Second,
	}
}

func candidateReply(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
}

func TestGenerateJSON_ExtractsObjectFromProse(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Contains(t, r.URL.Path, "gemini-2.0-flash:generateContent")
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(candidateReply("Here you go:\n```json\n{\"institutes\": []}\n```"))
	}))
	defer srv.Close()

	c := gemini.New(newTestConfig(srv.URL))
	got, err := c.GenerateJSON(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Contains(t, got, "institutes")
}

func TestGenerateJSON_ServerError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := gemini.New(newTestConfig(srv.URL))
	_, err := c.GenerateJSON(context.Background(), "system", "user")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestGenerateJSON_NoJSONInReply(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(candidateReply("I cannot help with that."))
	}))
	defer srv.Close()

	c := gemini.New(newTestConfig(srv.URL))
	_, err := c.GenerateJSON(context.Background(), "system", "user")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
}

func TestGenerateJSON_EmptyCandidates(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	c := gemini.New(newTestConfig(srv.URL))
	_, err := c.GenerateJSON(context.Background(), "system", "user")
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestGenerateJSON_Timeout(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	cfg := newTestConfig(srv.URL)
	cfg.GeminiTimeout = 100 * time.Millisecond
	c := gemini.New(cfg)
	_, err := c.GenerateJSON(context.Background(), "system", "user")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestGenerateJSON_MissingKey(t *testing.T) {
	t.Parallel()
	c := gemini.New(config.Config{GeminiTimeout: time.Second})
	_, err := c.GenerateJSON(context.Background(), "system", "user")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
