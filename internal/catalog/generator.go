package catalog

import (
	"sort"
	"strings"

	"github.com/navdisha/career-advisor/internal/domain"
)

// Scoring weights. A tag matching an interest outweighs one matching a
// strength; the base rating breaks ties toward stronger institutions.
const (
	strengthWeight   = 2.0
	interestWeight   = 3.0
	higherGoalWeight = 1.0
)

// BuildInstitutes is the deterministic fallback generator: it ranks the static
// catalog against the student's quiz result and goal, applies the request
// filters, synthesizes city records when a known metro search finds nothing,
// and pads to exactly domain.InstituteCount entries. Same inputs always yield
// the same output; there is no randomness and no I/O.
//
// The profile is accepted for interface parity with the generative path but
// does not participate in scoring.
func BuildInstitutes(_ map[string]any, quiz domain.QuizResult, prefs domain.Preferences, filters domain.Filters) []domain.Institute {
	ranked := rank(quiz, prefs)
	result := Filter(ranked, filters)
	if len(result) == 0 && strings.TrimSpace(filters.Term) != "" {
		if city, ok := matchCity(filters.Term); ok {
			result = synthesizeCity(city)
		}
	}
	return PadCycle(result, PadSource(result, ranked, filters), domain.InstituteCount)
}

// PadSource picks the list a short result is padded from. A type filter that
// matched anything keeps padding within the filtered entries so the whole
// response honors the filter; every other case cycles the pre-filter list.
func PadSource(filtered, prefilter []domain.Institute, filters domain.Filters) []domain.Institute {
	if strings.TrimSpace(filters.Type) != "" && len(filtered) > 0 {
		return filtered
	}
	return prefilter
}

// rank scores every catalog entry and returns institutes sorted by score
// descending. The sort is stable so equal scores keep catalog order.
func rank(quiz domain.QuizResult, prefs domain.Preferences) []domain.Institute {
	type scored struct {
		inst  domain.Institute
		score float64
	}
	entries := make([]scored, 0, len(data.Institutes))
	goalHigher := strings.Contains(strings.ToLower(prefs.Goal), "higher")
	for _, e := range data.Institutes {
		score := e.Rating
		for _, tag := range e.Tags {
			lt := strings.ToLower(tag)
			if anyTermIn(lt, quiz.Strengths) {
				score += strengthWeight
			}
			if anyTermIn(lt, quiz.Interests) {
				score += interestWeight
			}
		}
		if goalHigher {
			score += higherGoalWeight
		}
		entries = append(entries, scored{inst: e.Institute, score: score})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].score > entries[j].score })
	out := make([]domain.Institute, len(entries))
	for i, e := range entries {
		out[i] = e.inst
		out[i].Courses = append([]string(nil), e.inst.Courses...)
	}
	return out
}

// anyTermIn reports whether any non-empty term is a substring of s.
func anyTermIn(s string, terms []string) bool {
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// Filter narrows insts by search term (substring over name, location and
// course names) and institution type (exact, case-insensitive). Shared by the
// deterministic generator and the generative suggestion path.
func Filter(insts []domain.Institute, filters domain.Filters) []domain.Institute {
	term := strings.ToLower(strings.TrimSpace(filters.Term))
	typ := strings.TrimSpace(filters.Type)
	out := make([]domain.Institute, 0, len(insts))
	for _, in := range insts {
		if typ != "" && !strings.EqualFold(in.Type, typ) {
			continue
		}
		if term != "" && !matchesTerm(in, term) {
			continue
		}
		out = append(out, in)
	}
	return out
}

func matchesTerm(in domain.Institute, term string) bool {
	if strings.Contains(strings.ToLower(in.Name), term) || strings.Contains(strings.ToLower(in.Location), term) {
		return true
	}
	for _, c := range in.Courses {
		if strings.Contains(strings.ToLower(c), term) {
			return true
		}
	}
	return false
}

// matchCity maps a search term onto one of the known metros, applying spelling
// aliases (bangalore -> bengaluru) first.
func matchCity(term string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(term))
	for alias, canonical := range data.CityAliases {
		t = strings.ReplaceAll(t, alias, canonical)
	}
	for _, city := range data.Cities {
		if strings.Contains(t, city) {
			return city, true
		}
	}
	return "", false
}

// synthesizeCity fabricates three plausible generic institutes for a metro the
// catalog has no match for. Names are templated from the capitalized city.
func synthesizeCity(city string) []domain.Institute {
	c := capitalize(city)
	return []domain.Institute{
		{
			Name:        "College of Engineering " + c,
			Location:    c,
			Established: 1985,
			Rating:      4.2,
			Type:        "Government",
			Fees:        "₹95,000/year",
			Courses:     []string{"B.Tech Computer Science", "B.Tech Civil", "B.Tech Mechanical"},
			Cutoff:      "State CET 90 percentile",
		},
		{
			Name:        c + " Institute of Technology",
			Location:    c,
			Established: 1998,
			Rating:      4.0,
			Type:        "Private",
			Fees:        "₹1,60,000/year",
			Courses:     []string{"B.Tech CSE", "B.Tech ECE", "BCA"},
			Cutoff:      "JEE Main 85 percentile",
		},
		{
			Name:        c + " University",
			Location:    c,
			Established: 1964,
			Rating:      4.1,
			Type:        "Government",
			Fees:        "₹45,000/year",
			Courses:     []string{"B.Sc", "B.Com", "BA"},
			Cutoff:      "Merit based on Class 12 marks",
		},
	}
}

func capitalize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// PadCycle tops result up to n entries by cycling through source, then
// truncates to exactly n. Even a filter that eliminates everything still
// yields a full response.
func PadCycle(result, source []domain.Institute, n int) []domain.Institute {
	out := make([]domain.Institute, 0, n)
	out = append(out, result...)
	for i := 0; len(out) < n && len(source) > 0; i++ {
		out = append(out, source[i%len(source)])
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}
