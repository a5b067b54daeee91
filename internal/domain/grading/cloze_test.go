package grading

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexago/lexago-api/internal/domain"
)

func clozeQuestion(t *testing.T, blanks ...domain.ClozeBlank) *domain.Question {
	t.Helper()
	q := &domain.Question{
		ID:     uuid.New(),
		Type:   domain.QuestionTypeCloze,
		Prompt: "Fill in the blanks",
		Points: 3,
		Blanks: blanks,
	}
	require.NoError(t, q.Validate())
	return q
}

func TestGradeCloze_ExactMatch(t *testing.T) {
	t.Parallel() // Enable parallel execution
	grader := newTestGrader(t)

	q := clozeQuestion(t, domain.ClozeBlank{ID: "b1", Accepted: []string{"gehe"}})

	result := grader.Grade(q, domain.AnswerPayload{
		Kind:   domain.QuestionTypeCloze,
		Blanks: map[string]string{"b1": "Gehe "},
	}, 0)

	assert.True(t, result.IsCorrect)
	assert.InDelta(t, 1, result.PartialCredit, 1e-9)
	require.Len(t, result.AutoFeedback, 1)
	assert.Equal(t, domain.MatchTypeExact, result.AutoFeedback[0].MatchType)
}

func TestGradeCloze_AlternativeAnswers(t *testing.T) {
	t.Parallel() // Enable parallel execution
	grader := newTestGrader(t)

	q := clozeQuestion(t, domain.ClozeBlank{
		ID:       "b1",
		Accepted: []string{"laufe", "gehe", "renne"},
	})

	result := grader.Grade(q, domain.AnswerPayload{
		Kind:   domain.QuestionTypeCloze,
		Blanks: map[string]string{"b1": "gehe"},
	}, 0)

	assert.True(t, result.IsCorrect, "any accepted alternative earns full credit")
	assert.InDelta(t, 1, result.PartialCredit, 1e-9)
}

func TestGradeCloze_FuzzyMatch(t *testing.T) {
	t.Parallel() // Enable parallel execution
	grader := newTestGrader(t)

	q := clozeQuestion(t, domain.ClozeBlank{ID: "b1", Accepted: []string{"Restaurant"}})

	result := grader.Grade(q, domain.AnswerPayload{
		Kind:   domain.QuestionTypeCloze,
		Blanks: map[string]string{"b1": "Restaurannt"},
	}, 0)

	assert.True(t, result.IsCorrect, "a one-letter slip in a long word clears the fuzzy threshold")
	assert.InDelta(t, 1, result.PartialCredit, 1e-9)
	require.Len(t, result.AutoFeedback, 1)
	assert.Equal(t, domain.MatchTypeFuzzy, result.AutoFeedback[0].MatchType)
	assert.GreaterOrEqual(t, result.AutoFeedback[0].Similarity, 0.9)
}

func TestGradeCloze_FuzzyBelowThreshold(t *testing.T) {
	t.Parallel() // Enable parallel execution
	grader := NewGrader(nil, nil) // no resolver, so nothing falls through to morphology

	q := clozeQuestion(t, domain.ClozeBlank{ID: "b1", Accepted: []string{"Haus"}})

	result := grader.Grade(q, domain.AnswerPayload{
		Kind:   domain.QuestionTypeCloze,
		Blanks: map[string]string{"b1": "Hass"},
	}, 0)

	assert.False(t, result.IsCorrect, "a one-letter slip in a short word is below the threshold")
	assert.Zero(t, result.PartialCredit)
	require.Len(t, result.AutoFeedback, 1)
	assert.Equal(t, domain.MatchTypeNone, result.AutoFeedback[0].MatchType)
}

func TestGradeCloze_MorphologicalMatch(t *testing.T) {
	t.Parallel() // Enable parallel execution
	grader := newTestGrader(t)

	q := clozeQuestion(t, domain.ClozeBlank{ID: "b1", Accepted: []string{"gegangen"}})

	result := grader.Grade(q, domain.AnswerPayload{
		Kind:   domain.QuestionTypeCloze,
		Blanks: map[string]string{"b1": "ging"},
	}, 0)

	assert.True(t, result.IsCorrect, "0.8 morphological credit meets the 0.8 pass threshold")
	assert.InDelta(t, 0.8, result.PartialCredit, 1e-9)
	require.Len(t, result.AutoFeedback, 1)
	assert.Equal(t, domain.MatchTypeMorphological, result.AutoFeedback[0].MatchType)
}

func TestGradeCloze_MorphologyDisabledWithoutResolver(t *testing.T) {
	t.Parallel() // Enable parallel execution
	grader := NewGrader(nil, nil)

	q := clozeQuestion(t, domain.ClozeBlank{ID: "b1", Accepted: []string{"gegangen"}})

	result := grader.Grade(q, domain.AnswerPayload{
		Kind:   domain.QuestionTypeCloze,
		Blanks: map[string]string{"b1": "ging"},
	}, 0)

	assert.False(t, result.IsCorrect)
	assert.Zero(t, result.PartialCredit)
}

func TestGradeCloze_MultipleBlanks(t *testing.T) {
	t.Parallel() // Enable parallel execution
	grader := newTestGrader(t)

	q := clozeQuestion(t,
		domain.ClozeBlank{ID: "b1", Accepted: []string{"gehe"}},
		domain.ClozeBlank{ID: "b2", Accepted: []string{"Hause"}},
	)

	t.Run("one of two blanks", func(t *testing.T) {
		result := grader.Grade(q, domain.AnswerPayload{
			Kind:   domain.QuestionTypeCloze,
			Blanks: map[string]string{"b1": "gehe", "b2": "Schule"},
		}, 0)

		assert.False(t, result.IsCorrect, "0.5 is below the 0.8 pass threshold")
		assert.InDelta(t, 0.5, result.PartialCredit, 1e-9)
		assert.InDelta(t, 1.5, result.PointsEarned, 1e-9)
	})

	t.Run("exact plus morphological averages", func(t *testing.T) {
		morphQ := clozeQuestion(t,
			domain.ClozeBlank{ID: "b1", Accepted: []string{"gehe"}},
			domain.ClozeBlank{ID: "b2", Accepted: []string{"gegangen"}},
		)

		result := grader.Grade(morphQ, domain.AnswerPayload{
			Kind:   domain.QuestionTypeCloze,
			Blanks: map[string]string{"b1": "gehe", "b2": "ging"},
		}, 0)

		assert.True(t, result.IsCorrect, "(1 + 0.8) / 2 = 0.9 clears the threshold")
		assert.InDelta(t, 0.9, result.PartialCredit, 1e-9)
	})

	t.Run("unanswered blank earns nothing", func(t *testing.T) {
		result := grader.Grade(q, domain.AnswerPayload{
			Kind:   domain.QuestionTypeCloze,
			Blanks: map[string]string{"b1": "gehe"},
		}, 0)

		assert.InDelta(t, 0.5, result.PartialCredit, 1e-9)
		require.Len(t, result.AutoFeedback, 2)
		assert.Equal(t, domain.MatchTypeNone, result.AutoFeedback[1].MatchType)
		assert.Empty(t, result.AutoFeedback[1].Received)
	})
}
