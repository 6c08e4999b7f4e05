package usecase

import (
	"context"
	"log/slog"

	"github.com/navdisha/career-advisor/internal/adapter/observability"
	"github.com/navdisha/career-advisor/internal/catalog"
	"github.com/navdisha/career-advisor/internal/domain"
	obsctx "github.com/navdisha/career-advisor/internal/observability"
	"github.com/navdisha/career-advisor/pkg/textx"
)

const scholarshipSystemPrompt = `You are a scholarship advisor for Indian students. ` +
	`Find scholarships matching the student's chosen course, location and academic score. ` +
	`Respond with a JSON object {"scholarships": [...]} containing at least 6 scholarships. ` +
	`Each scholarship must have: name, provider, amount (string like "₹X/year"), eligibility, ` +
	`deadline (string DD/MM/YYYY), applicants (string like "10,000+"), ` +
	`type (one of "Merit-based", "Need-based", "Research"), status ("Open" or "Closed").`

// ScholarshipService produces scholarship listings. Unlike career suggestions
// there is no rich local generator behind it: a failed or malformed generation
// yields an empty list, and a short result is padded from the fixed fallback
// listings only.
type ScholarshipService struct {
	gen domain.Generator
}

// NewScholarshipService constructs a ScholarshipService. gen may be nil when
// no API key is configured.
func NewScholarshipService(gen domain.Generator) ScholarshipService {
	return ScholarshipService{gen: gen}
}

// Find returns scholarships for the request: at least domain.ScholarshipMin
// entries on success, an empty (never nil) slice when generation fails.
func (s ScholarshipService) Find(ctx context.Context, req domain.ScholarshipRequest) []domain.Scholarship {
	lg := obsctx.LoggerFromContext(ctx)

	req.ChosenCourse = textx.SanitizeText(req.ChosenCourse)
	req.Location = textx.SanitizeText(req.Location)
	req.AcademicScore = textx.SanitizeText(req.AcademicScore)

	if s.gen == nil {
		observability.FallbackTotal.WithLabelValues("scholarships", "unconfigured").Inc()
		lg.Debug("generation unconfigured; no scholarships to serve")
		return []domain.Scholarship{}
	}

	out, err := s.gen.GenerateJSON(ctx, scholarshipSystemPrompt, marshalPayload(map[string]any{
		"chosenCourse":  req.ChosenCourse,
		"location":      req.Location,
		"academicScore": req.AcademicScore,
	}))
	if err != nil {
		observability.FallbackTotal.WithLabelValues("scholarships", "error").Inc()
		lg.Warn("scholarship generation failed; returning empty list", slog.Any("error", err))
		return []domain.Scholarship{}
	}
	items, ok := out["scholarships"].([]any)
	if !ok {
		observability.FallbackTotal.WithLabelValues("scholarships", "malformed_shape").Inc()
		lg.Warn("scholarship generation returned no scholarships array; returning empty list")
		return []domain.Scholarship{}
	}

	scholarships := normalizeScholarships(items)
	if len(scholarships) < domain.ScholarshipMin {
		observability.FallbackTotal.WithLabelValues("scholarships", "short_result").Inc()
		lg.Debug("scholarship generation came back short; padding", slog.Int("got", len(scholarships)))
		for _, fb := range catalog.FallbackScholarships() {
			if len(scholarships) == domain.ScholarshipMin {
				break
			}
			scholarships = append(scholarships, fb)
		}
	}
	return scholarships
}

// normalizeScholarships coerces every field to a string; entries that are not
// objects are dropped.
func normalizeScholarships(items []any) []domain.Scholarship {
	out := make([]domain.Scholarship, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, domain.Scholarship{
			Name:        asString(m["name"]),
			Provider:    asString(m["provider"]),
			Amount:      asString(m["amount"]),
			Eligibility: asString(m["eligibility"]),
			Deadline:    asString(m["deadline"]),
			Applicants:  asString(m["applicants"]),
			Type:        asString(m["type"]),
			Status:      asString(m["status"]),
		})
	}
	return out
}
