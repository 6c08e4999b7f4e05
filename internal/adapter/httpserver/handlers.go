package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/navdisha/career-advisor/internal/config"
	"github.com/navdisha/career-advisor/internal/domain"
	"github.com/navdisha/career-advisor/internal/usecase"
)

// maxBodyBytes caps recommendation request bodies.
const maxBodyBytes = 1 << 20 // 1MB

// Server aggregates handler dependencies.
type Server struct {
	Cfg          config.Config
	Suggest      usecase.SuggestService
	Streams      usecase.StreamService
	Scholarships usecase.ScholarshipService
	RedisCheck   func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers wired.
func NewServer(cfg config.Config, suggest usecase.SuggestService, streams usecase.StreamService, scholarships usecase.ScholarshipService, redisCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Suggest: suggest, Streams: streams, Scholarships: scholarships, RedisCheck: redisCheck}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// decodeLenient fills v from the request body. Every request field is
// optional, so a missing, empty or malformed body degrades to the zero value
// instead of a 4xx — the endpoints functionally never fail.
func decodeLenient(r *http.Request, w http.ResponseWriter, v any) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		LoggerFrom(r).Debug("request body ignored", slog.Any("error", err))
	}
}

// RootHandler reports service liveness at GET /.
func (s *Server) RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Service is running"})
	}
}

// CareerSuggestionsHandler answers POST /api/career-suggestions with exactly
// six institutes, AI-generated when possible, deterministic otherwise.
func (s *Server) CareerSuggestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.RecommendationRequest
		decodeLenient(r, w, &req)
		if err := getValidator().Struct(req); err != nil {
			// An out-of-range type filter is dropped rather than rejected.
			LoggerFrom(r).Debug("invalid filters normalized", slog.Any("error", err))
			req.Filters.Type = ""
		}
		institutes := s.Suggest.Institutes(r.Context(), req)
		writeJSON(w, http.StatusOK, map[string]any{"institutes": institutes})
	}
}

// StreamRecommendationsHandler answers POST /api/stream-recommendations with
// the four streams scored against the quiz result. Purely local.
func (s *Server) StreamRecommendationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuizResult domain.QuizResult `json:"quizResult"`
		}
		decodeLenient(r, w, &req)
		streams := s.Streams.Recommend(req.QuizResult)
		writeJSON(w, http.StatusOK, map[string]any{"streams": streams})
	}
}

// ScholarshipsHandler answers POST /api/scholarships with at least six
// scholarships, or an empty list when generation fails outright.
func (s *Server) ScholarshipsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.ScholarshipRequest
		decodeLenient(r, w, &req)
		scholarships := s.Scholarships.Find(r.Context(), req)
		writeJSON(w, http.StatusOK, map[string]any{"scholarships": scholarships})
	}
}

// NotFoundHandler answers every unmatched route, regardless of method.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	}
}

// ReadyzHandler probes optional dependencies. The AI provider has no cheap
// health endpoint, so readiness reports whether it is configured at all.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := []check{{Name: "gemini", OK: true, Details: geminiState(s.Cfg)}}
		if s.RedisCheck != nil {
			if err := s.RedisCheck(ctx); err != nil {
				checks = append(checks, check{Name: "redis", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "redis", OK: true})
			}
		}
		st := http.StatusOK
		for _, c := range checks {
			if !c.OK {
				st = http.StatusServiceUnavailable
				break
			}
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}

func geminiState(cfg config.Config) string {
	if cfg.GeminiEnabled() {
		return "configured"
	}
	return "unconfigured; serving fallback data"
}
