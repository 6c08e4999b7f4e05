package usecase

import (
	"sort"
	"strings"

	"github.com/navdisha/career-advisor/internal/domain"
)

// Stream scoring weights. Every stream starts at baseScore; a broad category
// hit adds categoryBonus, a tighter stream-specific keyword hit adds
// keywordBonus, and the result is clamped to [domain.MatchMin, domain.MatchMax].
const (
	baseScore     = 50
	categoryBonus = 25
	keywordBonus  = 10
)

// streamDef is a fixed stream definition with its two keyword tiers.
type streamDef struct {
	stream      string
	key         string
	description string
	topCourses  []string
	category    []string
	keywords    []string
}

var streamDefs = []streamDef{
	{
		stream:      "Science (Maths)",
		key:         "science_maths",
		description: "Physics, Chemistry and Mathematics — the gateway to engineering, technology and research careers.",
		topCourses:  []string{"B.Tech / B.E.", "B.Sc Computer Science", "B.Arch", "Integrated M.Sc"},
		category:    []string{"engineering", "technology", "computer", "mathematics"},
		keywords:    []string{"maths", "mathematics", "computer", "coding", "physics", "problem solving"},
	},
	{
		stream:      "Science (Biology)",
		key:         "science_biology",
		description: "Physics, Chemistry and Biology — for students aiming at medicine, life sciences and healthcare.",
		topCourses:  []string{"MBBS", "BDS", "B.Sc Nursing", "B.Pharm"},
		category:    []string{"medicine", "biology", "healthcare"},
		keywords:    []string{"doctor", "neet", "botany", "zoology", "nursing"},
	},
	{
		stream:      "Commerce",
		key:         "commerce",
		description: "Accountancy, Business Studies and Economics — the foundation for finance, management and entrepreneurship.",
		topCourses:  []string{"B.Com (Hons)", "BBA", "CA Foundation", "BA Economics"},
		category:    []string{"business", "finance", "commerce", "accounting"},
		keywords:    []string{"economics", "banking", "entrepreneurship", "accounts"},
	},
	{
		stream:      "Arts / Humanities",
		key:         "arts",
		description: "History, Political Science, Psychology and languages — for careers in media, design, law and civil services.",
		topCourses:  []string{"BA Psychology", "BA Journalism", "B.Des", "BA LLB"},
		category:    []string{"arts", "creative", "media", "psychology"},
		keywords:    []string{"design", "writing", "history", "languages", "journalism"},
	},
}

// StreamService scores the four academic streams against a quiz result.
// Purely local: no external calls, no state, no randomness.
type StreamService struct{}

// NewStreamService constructs a StreamService.
func NewStreamService() StreamService { return StreamService{} }

// Recommend returns all domain.StreamCount streams sorted by match descending.
// Scoring is idempotent: identical quiz results always yield identical output.
func (StreamService) Recommend(quiz domain.QuizResult) []domain.StreamRecommendation {
	terms := collectTerms(quiz)
	out := make([]domain.StreamRecommendation, 0, len(streamDefs))
	for _, def := range streamDefs {
		score := baseScore
		if anyLabelHit(def.category, terms) {
			score += categoryBonus
		}
		if anyLabelHit(def.keywords, terms) {
			score += keywordBonus
		}
		out = append(out, domain.StreamRecommendation{
			Stream:      def.stream,
			Key:         def.key,
			Description: def.description,
			TopCourses:  append([]string(nil), def.topCourses...),
			Match:       clampMatch(score),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Match > out[j].Match })
	if len(out) > domain.StreamCount {
		out = out[:domain.StreamCount]
	}
	return out
}

func collectTerms(quiz domain.QuizResult) []string {
	terms := make([]string, 0, len(quiz.Strengths)+len(quiz.Interests))
	for _, t := range append(append([]string{}, quiz.Strengths...), quiz.Interests...) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// anyLabelHit reports whether any student term is a substring of any label.
func anyLabelHit(labels, terms []string) bool {
	for _, l := range labels {
		for _, t := range terms {
			if strings.Contains(l, t) {
				return true
			}
		}
	}
	return false
}

func clampMatch(score int) int {
	if score < domain.MatchMin {
		return domain.MatchMin
	}
	if score > domain.MatchMax {
		return domain.MatchMax
	}
	return score
}
