package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navdisha/career-advisor/internal/domain"
	"github.com/navdisha/career-advisor/internal/usecase"
)

func TestStreams_MathsStudentRanksScienceMathsFirst(t *testing.T) {
	t.Parallel()
	svc := usecase.NewStreamService()
	got := svc.Recommend(domain.QuizResult{
		Strengths: []string{"Mathematics"},
		Interests: []string{"Computer"},
	})
	require.Len(t, got, domain.StreamCount)
	assert.Equal(t, "Science (Maths)", got[0].Stream)
	assert.GreaterOrEqual(t, got[0].Match, 85)
}

func TestStreams_AlwaysFourSortedAndClamped(t *testing.T) {
	t.Parallel()
	svc := usecase.NewStreamService()
	cases := []domain.QuizResult{
		{},
		{Strengths: []string{"Biology"}, Interests: []string{"Doctor"}},
		{Interests: []string{"Finance", "Design", "Technology", "Medicine"}},
		{Strengths: []string{"  "}, Interests: []string{""}},
	}
	for _, quiz := range cases {
		got := svc.Recommend(quiz)
		require.Len(t, got, domain.StreamCount)
		for i, s := range got {
			assert.GreaterOrEqual(t, s.Match, domain.MatchMin)
			assert.LessOrEqual(t, s.Match, domain.MatchMax)
			assert.NotEmpty(t, s.Key)
			assert.NotEmpty(t, s.Description)
			assert.NotEmpty(t, s.TopCourses)
			if i > 0 {
				assert.GreaterOrEqual(t, got[i-1].Match, s.Match, "streams must be sorted by match descending")
			}
		}
	}
}

func TestStreams_EmptyQuizClampsToFloor(t *testing.T) {
	t.Parallel()
	svc := usecase.NewStreamService()
	got := svc.Recommend(domain.QuizResult{})
	require.Len(t, got, domain.StreamCount)
	for _, s := range got {
		assert.Equal(t, domain.MatchMin, s.Match)
	}
}

func TestStreams_Idempotent(t *testing.T) {
	t.Parallel()
	svc := usecase.NewStreamService()
	quiz := domain.QuizResult{Strengths: []string{"Business"}, Interests: []string{"Economics"}}
	assert.Equal(t, svc.Recommend(quiz), svc.Recommend(quiz))
}

func TestStreams_BonusesAreNonExclusive(t *testing.T) {
	t.Parallel()
	svc := usecase.NewStreamService()
	// A student referencing several categories lifts several streams at once.
	got := svc.Recommend(domain.QuizResult{
		Interests: []string{"Technology", "Media", "Healthcare"},
	})
	require.Len(t, got, domain.StreamCount)
	lifted := 0
	for _, s := range got {
		if s.Match >= 75 {
			lifted++
		}
	}
	assert.GreaterOrEqual(t, lifted, 3)
}
