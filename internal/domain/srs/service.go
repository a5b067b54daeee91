package srs

import (
	"errors"
	"time"

	"github.com/lexago/lexago-api/internal/domain"
)

// Common errors
var (
	ErrNilCard = errors.New("card cannot be nil")
)

// ReviewResult reports the state change produced by one review, carrying the
// prior interval and ease alongside the new values so callers can display
// delta feedback.
type ReviewResult struct {
	Card *domain.Card `json:"card"`

	PrevIntervalDays int     `json:"prev_interval_days"`
	PrevEaseFactor   float64 `json:"prev_ease_factor"`
	IntervalDays     int     `json:"interval_days"`
	EaseFactor       float64 `json:"ease_factor"`
}

// Service defines the interface for scheduling operations.
type Service interface {
	// Review computes the card state after a review with the given quality
	// rating (0 = total failure, 5 = perfect recall; out-of-range values
	// are clamped). The input card is not modified.
	Review(card *domain.Card, quality int, now time.Time) (*ReviewResult, error)

	// IsDue reports whether the card is due for review at the given time.
	IsDue(card *domain.Card, now time.Time) bool

	// Params returns the parameters the service schedules with.
	Params() *Params
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// Review implements the Service interface.
func (s *defaultService) Review(
	card *domain.Card,
	quality int,
	now time.Time,
) (*ReviewResult, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	next := ApplyReview(card, quality, now, s.params)

	return &ReviewResult{
		Card:             next,
		PrevIntervalDays: card.IntervalDays,
		PrevEaseFactor:   card.EaseFactor,
		IntervalDays:     next.IntervalDays,
		EaseFactor:       next.EaseFactor,
	}, nil
}

// IsDue implements the Service interface.
func (s *defaultService) IsDue(card *domain.Card, now time.Time) bool {
	return card != nil && card.IsActive && !card.NextReviewAt.After(now)
}

// Params implements the Service interface.
func (s *defaultService) Params() *Params {
	return s.params
}
