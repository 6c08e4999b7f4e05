// Package usecase implements the recommendation services behind the HTTP
// endpoints: AI-backed career suggestions with a deterministic fallback,
// local stream scoring, and AI-backed scholarship listings.
package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/navdisha/career-advisor/internal/adapter/observability"
	"github.com/navdisha/career-advisor/internal/catalog"
	"github.com/navdisha/career-advisor/internal/domain"
	obsctx "github.com/navdisha/career-advisor/internal/observability"
	"github.com/navdisha/career-advisor/pkg/textx"
)

const careerSystemPrompt = `You are a career counsellor for Indian students and parents. ` +
	`Recommend institutions matching the student's profile, quiz results, preferences and filters. ` +
	`Respond with a JSON object {"institutes": [...]} containing exactly 6 institutes. ` +
	`Each institute must have: name (string), location (string), established (integer year), ` +
	`rating (number 0.0-5.0), type ("Government" or "Private"), fees (string like "₹X/year"), ` +
	`courses (array of 3-4 strings), cutoff (string naming the entrance exam and percentile or rank).`

// SuggestService produces career suggestions. When a Generator is wired it
// tries one generation attempt and repairs whatever comes back; without one,
// or on any failure, it serves the deterministic catalog generator. Either
// way the response holds exactly domain.InstituteCount institutes.
type SuggestService struct {
	gen domain.Generator
}

// NewSuggestService constructs a SuggestService. gen may be nil when no API
// key is configured; the service then skips external generation entirely.
func NewSuggestService(gen domain.Generator) SuggestService {
	return SuggestService{gen: gen}
}

// Institutes returns exactly domain.InstituteCount institutes for the request.
// It never fails: every error path lands on the deterministic generator.
func (s SuggestService) Institutes(ctx context.Context, req domain.RecommendationRequest) []domain.Institute {
	lg := obsctx.LoggerFromContext(ctx)

	req.QuizResult.Strengths = textx.SanitizeAll(req.QuizResult.Strengths)
	req.QuizResult.Interests = textx.SanitizeAll(req.QuizResult.Interests)
	req.Preferences.Goal = textx.SanitizeText(req.Preferences.Goal)
	req.Filters.Term = textx.SanitizeText(req.Filters.Term)

	if s.gen == nil {
		observability.FallbackTotal.WithLabelValues("career-suggestions", "unconfigured").Inc()
		lg.Debug("generation unconfigured; serving deterministic institutes")
		return catalog.BuildInstitutes(req.Profile, req.QuizResult, req.Preferences, req.Filters)
	}

	out, err := s.gen.GenerateJSON(ctx, careerSystemPrompt, marshalPayload(map[string]any{
		"profile":     req.Profile,
		"quizResult":  req.QuizResult,
		"preferences": req.Preferences,
		"filters":     req.Filters,
	}))
	if err != nil {
		observability.FallbackTotal.WithLabelValues("career-suggestions", "error").Inc()
		lg.Warn("institute generation failed; serving deterministic fallback", slog.Any("error", err))
		return catalog.BuildInstitutes(req.Profile, req.QuizResult, req.Preferences, req.Filters)
	}
	items, ok := out["institutes"].([]any)
	if !ok {
		observability.FallbackTotal.WithLabelValues("career-suggestions", "malformed_shape").Inc()
		lg.Warn("institute generation returned no institutes array; serving deterministic fallback")
		return catalog.BuildInstitutes(req.Profile, req.QuizResult, req.Preferences, req.Filters)
	}

	normalized := normalizeInstitutes(items)
	if len(normalized) < domain.InstituteCount {
		observability.FallbackTotal.WithLabelValues("career-suggestions", "short_result").Inc()
		lg.Debug("institute generation came back short; padding", slog.Int("got", len(normalized)))
		for _, wk := range catalog.WellKnownInstitutes() {
			if len(normalized) == domain.InstituteCount {
				break
			}
			normalized = append(normalized, wk)
		}
	}

	filtered := catalog.Filter(normalized, req.Filters)
	return catalog.PadCycle(filtered, catalog.PadSource(filtered, normalized, req.Filters), domain.InstituteCount)
}

// normalizeInstitutes coerces up to domain.InstituteCount loosely-typed
// entries into Institute values: missing strings become empty, missing
// numbers become zero, and courses are capped at domain.MaxCourses.
func normalizeInstitutes(items []any) []domain.Institute {
	out := make([]domain.Institute, 0, domain.InstituteCount)
	for _, item := range items {
		if len(out) == domain.InstituteCount {
			break
		}
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		courses := asStringSlice(m["courses"])
		if len(courses) > domain.MaxCourses {
			courses = courses[:domain.MaxCourses]
		}
		out = append(out, domain.Institute{
			Name:        asString(m["name"]),
			Location:    asString(m["location"]),
			Established: asInt(m["established"]),
			Rating:      asFloat(m["rating"]),
			Type:        asString(m["type"]),
			Fees:        asString(m["fees"]),
			Courses:     courses,
			Cutoff:      asString(m["cutoff"]),
		})
	}
	return out
}

func marshalPayload(v map[string]any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
