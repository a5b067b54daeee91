package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardOwnerIDEmpty is returned when a card's owner ID is empty or nil.
	ErrCardOwnerIDEmpty = errors.New("card owner ID cannot be empty")

	// ErrCardItemIDEmpty is returned when a card's vocabulary item ID is empty or nil.
	ErrCardItemIDEmpty = errors.New("card item ID cannot be empty")

	// ErrCardInvalidInterval is returned when a card's interval is below one day.
	ErrCardInvalidInterval = errors.New("card interval must be at least 1 day")

	// ErrCardInvalidEaseFactor is returned when a card's ease factor is outside
	// its allowed range.
	ErrCardInvalidEaseFactor = errors.New("card ease factor out of range")

	// ErrCardNegativeCount is returned when a lifetime counter is negative.
	ErrCardNegativeCount = errors.New("card counters cannot be negative")
)

// Hard outer bounds on a card's ease factor. The scheduler's configurable
// min/max must stay within these (config.Validate enforces it), so Validate
// never rejects a card the scheduler produced.
const (
	MinCardEaseFactor = 1.3
	MaxCardEaseFactor = 4.0
)

// Card holds one learner's spaced-repetition state for one vocabulary item.
// Cards are never physically deleted; retirement is IsActive=false, and a
// retired card is reactivated (keeping its scheduling state) if the learner
// encounters the item again.
type Card struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	ItemID          uuid.UUID `json:"item_id"`
	EaseFactor      float64   `json:"ease_factor"`
	IntervalDays    int       `json:"interval_days"`
	RepetitionCount int       `json:"repetition_count"` // successful reviews since last failure
	NextReviewAt    time.Time `json:"next_review_at"`
	LastReviewedAt  time.Time `json:"last_reviewed_at"` // zero until first review
	CorrectCount    int       `json:"correct_count"`
	IncorrectCount  int       `json:"incorrect_count"`
	Streak          int       `json:"streak"`
	IsActive        bool      `json:"is_active"`
	IsMature        bool      `json:"is_mature"` // derived: IntervalDays >= maturity threshold
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewCard creates a new Card for the given owner and vocabulary item with
// first-exposure defaults: ease 2.5, a one-day interval, and the first review
// due one day from now.
// Returns an error if validation fails.
func NewCard(ownerID, itemID uuid.UUID) (*Card, error) {
	return NewCardWithDefaults(ownerID, itemID, 2.5, 1)
}

// NewCardWithDefaults creates a new Card with the given first-exposure ease
// factor and interval, with the first review due intervalDays from now. The
// scheduler passes its configured parameters here so initial card state is
// tunable alongside the review arithmetic.
// Returns an error if validation fails.
func NewCardWithDefaults(
	ownerID, itemID uuid.UUID,
	easeFactor float64,
	intervalDays int,
) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		ItemID:          itemID,
		EaseFactor:      easeFactor,
		IntervalDays:    intervalDays,
		RepetitionCount: 0,
		NextReviewAt:    now.AddDate(0, 0, intervalDays),
		LastReviewedAt:  time.Time{},
		IsActive:        true,
		IsMature:        false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.OwnerID == uuid.Nil {
		return ErrCardOwnerIDEmpty
	}

	if c.ItemID == uuid.Nil {
		return ErrCardItemIDEmpty
	}

	if c.IntervalDays < 1 {
		return ErrCardInvalidInterval
	}

	if c.EaseFactor < MinCardEaseFactor || c.EaseFactor > MaxCardEaseFactor {
		return ErrCardInvalidEaseFactor
	}

	if c.RepetitionCount < 0 || c.CorrectCount < 0 || c.IncorrectCount < 0 || c.Streak < 0 {
		return ErrCardNegativeCount
	}

	return nil
}

// Clone returns a copy of the card. The scheduling algorithm follows an
// immutable update pattern and never modifies the card it was given.
func (c *Card) Clone() *Card {
	clone := *c
	return &clone
}
