package app_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "github.com/navdisha/career-advisor/internal/adapter/httpserver"
	"github.com/navdisha/career-advisor/internal/app"
	"github.com/navdisha/career-advisor/internal/config"
	"github.com/navdisha/career-advisor/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		RateLimitPerMin: 100,
		GeminiTimeout:   5 * time.Second,
	}
	srv := httpserver.NewServer(
		cfg,
		usecase.NewSuggestService(nil),
		usecase.NewStreamService(),
		usecase.NewScholarshipService(nil),
		nil,
	)
	return app.BuildRouter(cfg, srv)
}

func TestRouter_Root(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Service is running"}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouter_UnknownRouteIs404(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestRouter_WrongMethodIs404(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/career-suggestions", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestRouter_CareerSuggestionsEndToEnd(t *testing.T) {
	r := newTestRouter(t)
	body := `{"quizResult":{"strengths":["Commerce"],"interests":["Business & Finance"]},"filters":{"type":"government"}}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/career-suggestions", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Institutes []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"institutes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Institutes, 6)
	for _, in := range resp.Institutes {
		assert.Equal(t, "Government", in.Type)
	}
}

func TestRouter_StreamRecommendationsEndToEnd(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/stream-recommendations", strings.NewReader(`{}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Streams []struct {
			Stream string `json:"stream"`
			Match  int    `json:"match"`
		} `json:"streams"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Streams, 4)
}

func TestRouter_ScholarshipsEndToEnd(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scholarships", strings.NewReader(`{"chosenCourse":"MBBS"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"scholarships":[]}`, rec.Body.String())
}

func TestRouter_Healthz(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestParseOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, app.ParseOrigins(""))
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, app.ParseOrigins(" http://a.example , http://b.example "))
}
