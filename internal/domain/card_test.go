package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ownerID := uuid.New()
	itemID := uuid.New()

	card, err := NewCard(ownerID, itemID)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, card.ID)
	assert.Equal(t, ownerID, card.OwnerID)
	assert.Equal(t, itemID, card.ItemID)
	assert.InDelta(t, 2.5, card.EaseFactor, 1e-9)
	assert.Equal(t, 1, card.IntervalDays)
	assert.Zero(t, card.RepetitionCount)
	assert.True(t, card.IsActive)
	assert.False(t, card.IsMature)
	assert.True(t, card.LastReviewedAt.IsZero())
	assert.Equal(t, card.CreatedAt.AddDate(0, 0, 1), card.NextReviewAt)
}

func TestNewCardWithDefaults(t *testing.T) {
	t.Parallel() // Enable parallel execution

	card, err := NewCardWithDefaults(uuid.New(), uuid.New(), 3.5, 3)
	require.NoError(t, err)

	assert.InDelta(t, 3.5, card.EaseFactor, 1e-9)
	assert.Equal(t, 3, card.IntervalDays)
	assert.Equal(t, card.CreatedAt.AddDate(0, 0, 3), card.NextReviewAt)

	_, err = NewCardWithDefaults(uuid.New(), uuid.New(), 5.0, 1)
	assert.ErrorIs(t, err, ErrCardInvalidEaseFactor)
}

func TestNewCard_Validation(t *testing.T) {
	t.Parallel() // Enable parallel execution

	_, err := NewCard(uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, ErrCardOwnerIDEmpty)

	_, err = NewCard(uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, ErrCardItemIDEmpty)
}

func TestCardValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	valid := func(t *testing.T) *Card {
		card, err := NewCard(uuid.New(), uuid.New())
		require.NoError(t, err)
		return card
	}

	testCases := []struct {
		name     string
		mutate   func(*Card)
		expected error
	}{
		{
			name:     "valid card",
			mutate:   func(c *Card) {},
			expected: nil,
		},
		{
			name:     "missing ID",
			mutate:   func(c *Card) { c.ID = uuid.Nil },
			expected: ErrCardIDEmpty,
		},
		{
			name:     "zero interval",
			mutate:   func(c *Card) { c.IntervalDays = 0 },
			expected: ErrCardInvalidInterval,
		},
		{
			name:     "ease below floor",
			mutate:   func(c *Card) { c.EaseFactor = 1.2 },
			expected: ErrCardInvalidEaseFactor,
		},
		{
			name:     "ease above ceiling",
			mutate:   func(c *Card) { c.EaseFactor = 4.1 },
			expected: ErrCardInvalidEaseFactor,
		},
		{
			name:     "negative streak",
			mutate:   func(c *Card) { c.Streak = -1 },
			expected: ErrCardNegativeCount,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			card := valid(t)
			tc.mutate(card)

			err := card.Validate()
			if tc.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expected)
			}
		})
	}
}

func TestCardClone(t *testing.T) {
	t.Parallel() // Enable parallel execution

	card, err := NewCard(uuid.New(), uuid.New())
	require.NoError(t, err)

	clone := card.Clone()
	require.NotSame(t, card, clone)
	assert.Equal(t, *card, *clone)

	clone.IntervalDays = 99
	assert.Equal(t, 1, card.IntervalDays, "mutating the clone must not touch the original")
}
