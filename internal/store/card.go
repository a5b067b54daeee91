package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/lexago/lexago-api/internal/domain"
)

// CardStore defines the interface for card persistence.
type CardStore interface {
	// Create saves a new card.
	// Returns ErrCardExists if a card for the same (owner, item) exists.
	// Returns validation errors wrapped in ErrInvalidEntity if the card
	// data is invalid.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// GetByIDForUpdate retrieves a card by ID, taking a row-level lock so
	// concurrent reviews of the same card are serialized.
	// MUST be called within a transaction; outside one the lock is
	// released immediately and provides no protection.
	// Returns ErrCardNotFound if the card does not exist.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// GetByOwnerAndItem retrieves the card (active or not) an owner holds
	// for a vocabulary item.
	// Returns ErrCardNotFound if no such card exists.
	GetByOwnerAndItem(ctx context.Context, ownerID, itemID uuid.UUID) (*domain.Card, error)

	// Update persists the full state of an existing card.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// Due returns the owner's active cards with NextReviewAt <= now,
	// ordered by NextReviewAt ascending with card ID as the tie-breaker so
	// pagination is deterministic, truncated to limit.
	Due(ctx context.Context, ownerID uuid.UUID, now time.Time, limit int) ([]*domain.Card, error)

	// ListByOwner returns all of the owner's cards, active and retired.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Card, error)

	// WithTx returns a CardStore bound to the given transaction, so
	// multiple operations can execute atomically. The transaction is
	// created and managed by the caller, typically via RunInTransaction.
	WithTx(tx *sql.Tx) CardStore
}
