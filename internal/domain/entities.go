// Package domain holds the entities, ports and error taxonomy shared by all layers.
package domain

import (
	"context"
	"errors"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrGenerationFailed = errors.New("generation failed")
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrUpstreamTimeout  = errors.New("upstream timeout")
	ErrInternal         = errors.New("internal error")
)

// Institute is one recommended institution. A career-suggestions response
// carries exactly InstituteCount of them, always.
type Institute struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Established int      `json:"established"`
	Rating      float64  `json:"rating"`
	Type        string   `json:"type"`
	Fees        string   `json:"fees"`
	Courses     []string `json:"courses"`
	Cutoff      string   `json:"cutoff"`
}

// InstituteCount is the fixed cardinality of a career-suggestions response.
const InstituteCount = 6

// MaxCourses caps the courses listed per institute.
const MaxCourses = 4

// StreamRecommendation scores one academic stream against a student's quiz result.
// Match is clamped to [MatchMin, MatchMax].
type StreamRecommendation struct {
	Stream      string   `json:"stream"`
	Key         string   `json:"key"`
	Description string   `json:"description"`
	TopCourses  []string `json:"topCourses"`
	Match       int      `json:"match"`
}

// Match bounds for stream recommendations.
const (
	MatchMin = 55
	MatchMax = 98
)

// StreamCount is the fixed cardinality of a stream-recommendations response.
const StreamCount = 4

// Scholarship is one scholarship listing. A scholarships response carries at
// least ScholarshipMin entries unless generation failed outright.
type Scholarship struct {
	Name        string `json:"name"`
	Provider    string `json:"provider"`
	Amount      string `json:"amount"`
	Eligibility string `json:"eligibility"`
	Deadline    string `json:"deadline"`
	Applicants  string `json:"applicants"`
	Type        string `json:"type"`
	Status      string `json:"status"`
}

// ScholarshipMin is the minimum cardinality of a successful scholarships response.
const ScholarshipMin = 6

// QuizResult carries the student's self-reported strengths and interests.
type QuizResult struct {
	Strengths []string `json:"strengths"`
	Interests []string `json:"interests"`
}

// Preferences carries the student's stated goal (e.g. "higher studies").
type Preferences struct {
	Goal string `json:"goal"`
}

// Filters narrows institute results. Type is "government", "private" or empty.
type Filters struct {
	Term string `json:"term"`
	Type string `json:"type" validate:"omitempty,oneof=government private"`
}

// RecommendationRequest is the career-suggestions request body. Every field is
// optional; absent fields decode to their zero values.
type RecommendationRequest struct {
	Profile     map[string]any `json:"profile"`
	QuizResult  QuizResult     `json:"quizResult"`
	Preferences Preferences    `json:"preferences"`
	Filters     Filters        `json:"filters"`
}

// ScholarshipRequest is the scholarships request body. All fields optional.
type ScholarshipRequest struct {
	ChosenCourse  string `json:"chosenCourse"`
	Location      string `json:"location"`
	AcademicScore string `json:"academicScore"`
}

// Generator (port)
//
// GenerateJSON sends a system/user prompt pair to a generative-text provider
// and returns the first JSON object extracted from its reply. The returned map
// carries no shape guarantee; callers must validate before use. Any transport,
// provider or parse failure comes back as an error wrapping ErrGenerationFailed
// so the caller can branch to its fallback path explicitly.
type Generator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (map[string]any, error)
}
