// Package scheduler exposes the spaced-repetition card operations: creating
// cards, applying reviews, listing due cards, and retiring cards. It owns
// transaction boundaries and ownership checks; the interval arithmetic lives
// in internal/domain/srs.
package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lexago/lexago-api/internal/domain"
	"github.com/lexago/lexago-api/internal/domain/srs"
)

// Common error types for SchedulerService
var (
	// ErrCardNotFound indicates that the card does not exist or does not
	// belong to the requesting owner. The two cases are deliberately not
	// distinguished, so owners cannot probe for other learners' cards.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardExists indicates an active card already exists for the
	// (owner, item) pair.
	ErrCardExists = errors.New("card already exists for this item")

	// ErrInvalidLimit indicates a non-positive due-card limit.
	ErrInvalidLimit = errors.New("limit must be at least 1")
)

// SchedulerService provides the spaced-repetition card operations.
type SchedulerService interface {
	// CreateCard creates a card for the owner's first exposure to a
	// vocabulary item. If a retired card exists for the pair it is
	// reactivated (keeping its scheduling state) instead of duplicated.
	// Returns ErrCardExists if an active card already exists.
	CreateCard(ctx context.Context, ownerID, itemID uuid.UUID) (*domain.Card, error)

	// SubmitReview applies a quality rating (0-5, out-of-range values
	// clamped) to a card and reschedules it. The result carries the prior
	// and new interval/ease so callers can display delta feedback.
	// Returns ErrCardNotFound if the card is missing or owned by someone
	// else.
	SubmitReview(ctx context.Context, ownerID, cardID uuid.UUID, quality int) (*srs.ReviewResult, error)

	// DueCards returns the owner's active cards due for review, most
	// overdue first, ties broken by card ID, truncated to limit.
	DueCards(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.Card, error)

	// DeactivateCard retires a card. Idempotent: retiring an already
	// retired card succeeds. Returns ErrCardNotFound if the card is
	// missing or owned by someone else.
	DeactivateCard(ctx context.Context, ownerID, cardID uuid.UUID) error
}

// ServiceError wraps errors from the scheduler service with operation
// context, so consumers can differentiate failures with errors.As instead of
// string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g. "create_card").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
