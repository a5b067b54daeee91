package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lexago/lexago-api/internal/domain"
)

// ResponseStore defines the interface for graded-response persistence.
type ResponseStore interface {
	// Save upserts a response keyed by (attempt, question): a resubmission
	// before the attempt is finalized overwrites the earlier response.
	// Returns validation errors wrapped in ErrInvalidEntity if the
	// response data is invalid.
	Save(ctx context.Context, response *domain.Response) error

	// Get retrieves the response for an (attempt, question) pair.
	// Returns ErrResponseNotFound if no response exists.
	Get(ctx context.Context, attemptID, questionID uuid.UUID) (*domain.Response, error)

	// ListByOwner returns the owner's responses, newest first, truncated
	// to limit. A limit <= 0 returns all responses.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.Response, error)

	// WithTx returns a ResponseStore bound to the given transaction.
	WithTx(tx *sql.Tx) ResponseStore
}
