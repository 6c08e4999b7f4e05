// Package catalog holds the hand-authored reference data behind every
// deterministic fallback path: the scored institute catalog, the fixed pad
// lists, and the metro table used for city synthesis.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/navdisha/career-advisor/internal/domain"
)

//go:embed data.yaml
var rawData []byte

// taggedInstitute is a catalog entry: an institute plus the category tags that
// drive scoring. Tags are stripped before anything reaches a response.
type taggedInstitute struct {
	domain.Institute `yaml:",inline"`
	Tags             []string `yaml:"tags"`
}

type dataFile struct {
	Institutes   []taggedInstitute    `yaml:"institutes"`
	WellKnown    []domain.Institute   `yaml:"wellknown"`
	Scholarships []domain.Scholarship `yaml:"scholarships"`
	Cities       []string             `yaml:"cities"`
	CityAliases  map[string]string    `yaml:"cityaliases"`
}

var data dataFile

func init() {
	if err := yaml.Unmarshal(rawData, &data); err != nil {
		panic(fmt.Sprintf("catalog: parse embedded data: %v", err))
	}
	if len(data.Institutes) != domain.InstituteCount || len(data.WellKnown) != domain.InstituteCount {
		panic("catalog: institute lists must hold exactly six entries")
	}
	if len(data.Scholarships) != domain.ScholarshipMin {
		panic("catalog: scholarship pad list must hold exactly six entries")
	}
}

// WellKnownInstitutes returns the fixed ordered pad list for short AI results.
func WellKnownInstitutes() []domain.Institute {
	return cloneInstitutes(data.WellKnown)
}

// FallbackScholarships returns the fixed ordered scholarship pad list.
func FallbackScholarships() []domain.Scholarship {
	out := make([]domain.Scholarship, len(data.Scholarships))
	copy(out, data.Scholarships)
	return out
}

func cloneInstitutes(src []domain.Institute) []domain.Institute {
	out := make([]domain.Institute, len(src))
	for i, in := range src {
		out[i] = in
		out[i].Courses = append([]string(nil), in.Courses...)
	}
	return out
}
