package progress

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexago/lexago-api/internal/domain"
	"github.com/lexago/lexago-api/internal/domain/srs"
)

func buildCard(t *testing.T, mutate func(*domain.Card)) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(uuid.New(), uuid.New())
	require.NoError(t, err)
	if mutate != nil {
		mutate(card)
	}
	return card
}

func gradedResponse(correct bool, points float64) *domain.Response {
	return &domain.Response{
		ID:           uuid.New(),
		IsCorrect:    correct,
		PointsEarned: points,
	}
}

func TestSummarize_EmptyInputs(t *testing.T) {
	t.Parallel() // Enable parallel execution

	s := Summarize(nil, nil, time.Now().UTC(), srs.NewDefaultService())

	assert.Zero(t, s.TotalCards)
	assert.Zero(t, s.TotalReviews)
	assert.Zero(t, s.Accuracy, "no reviews means zero accuracy, not NaN")
	assert.Zero(t, s.BestStreak)
}

func TestSummarize_CardBuckets(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Now().UTC()

	cards := []*domain.Card{
		// New: active, never reviewed.
		buildCard(t, nil),
		// Learning: reviewed but below the maturity threshold.
		buildCard(t, func(c *domain.Card) {
			c.LastReviewedAt = now.Add(-24 * time.Hour)
			c.IntervalDays = 6
			c.NextReviewAt = now.Add(5 * 24 * time.Hour)
			c.CorrectCount = 2
			c.Streak = 2
		}),
		// Mature and due.
		buildCard(t, func(c *domain.Card) {
			c.LastReviewedAt = now.Add(-30 * 24 * time.Hour)
			c.IntervalDays = 25
			c.IsMature = true
			c.NextReviewAt = now.Add(-time.Hour)
			c.CorrectCount = 7
			c.IncorrectCount = 1
			c.Streak = 4
		}),
		// Retired: counted in totals only, never due even when overdue.
		buildCard(t, func(c *domain.Card) {
			c.IsActive = false
			c.NextReviewAt = now.Add(-48 * time.Hour)
			c.CorrectCount = 1
			c.IncorrectCount = 2
		}),
	}

	s := Summarize(cards, nil, now, srs.NewDefaultService())

	assert.Equal(t, 4, s.TotalCards)
	assert.Equal(t, 3, s.ActiveCards)
	assert.Equal(t, 1, s.NewCards)
	assert.Equal(t, 1, s.LearningCards)
	assert.Equal(t, 1, s.MatureCards)
	assert.Equal(t, 1, s.DueCards, "retired cards are never due")
	assert.Equal(t, 13, s.TotalReviews)
	assert.Equal(t, 10, s.CorrectReviews)
	assert.InDelta(t, 10.0/13.0, s.Accuracy, 1e-9)
	assert.Equal(t, 4, s.CurrentStreak, "best streak among active cards")
}

func TestSummarize_ResponseRollup(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// Newest first, as the response store returns them. Oldest-to-newest
	// the history reads: correct, correct, wrong, correct, correct, correct.
	responses := []*domain.Response{
		gradedResponse(true, 2),
		gradedResponse(true, 1),
		gradedResponse(true, 2),
		gradedResponse(false, 0),
		gradedResponse(true, 1.5),
		gradedResponse(true, 2),
	}

	s := Summarize(nil, responses, time.Now().UTC(), srs.NewDefaultService())

	assert.Equal(t, 6, s.ResponsesGraded)
	assert.InDelta(t, 8.5, s.PointsEarned, 1e-9)
	assert.Equal(t, 3, s.BestStreak, "streak is broken by the wrong answer")
}

func TestSummarize_BestStreakSpansWholeHistory(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// All correct: the run is the whole history.
	responses := []*domain.Response{
		gradedResponse(true, 1),
		gradedResponse(true, 1),
		gradedResponse(true, 1),
	}

	s := Summarize(nil, responses, time.Now().UTC(), srs.NewDefaultService())
	assert.Equal(t, 3, s.BestStreak)
}
