package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexago/lexago-api/internal/domain"
	"github.com/lexago/lexago-api/internal/store"
)

const cardColumns = `id, owner_id, item_id, ease_factor, interval_days, repetition_count,
	next_review_at, last_reviewed_at, correct_count, incorrect_count, streak,
	is_active, is_mature, created_at, updated_at`

// CardStore implements the store.CardStore interface using PostgreSQL.
type CardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCardStore creates a new PostgreSQL implementation of the CardStore
// interface. The database handle is initialized and managed by the caller.
// If logger is nil, the default logger is used.
func NewCardStore(db store.DBTX, logger *slog.Logger) *CardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure CardStore implements store.CardStore interface
var _ store.CardStore = (*CardStore)(nil)

// Create implements store.CardStore.Create.
func (s *CardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := s.db.ExecContext(ctx, query,
		card.ID, card.OwnerID, card.ItemID, card.EaseFactor, card.IntervalDays,
		card.RepetitionCount, card.NextReviewAt, nullableTime(card.LastReviewedAt),
		card.CorrectCount, card.IncorrectCount, card.Streak,
		card.IsActive, card.IsMature, card.CreatedAt, card.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrCardExists
		}
		return fmt.Errorf("failed to insert card: %w", err)
	}

	return nil
}

// GetByID implements store.CardStore.GetByID.
func (s *CardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate implements store.CardStore.GetByIDForUpdate.
func (s *CardStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 FOR UPDATE`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

// GetByOwnerAndItem implements store.CardStore.GetByOwnerAndItem.
func (s *CardStore) GetByOwnerAndItem(
	ctx context.Context,
	ownerID, itemID uuid.UUID,
) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE owner_id = $1 AND item_id = $2`
	return s.scanOne(s.db.QueryRowContext(ctx, query, ownerID, itemID))
}

// Update implements store.CardStore.Update.
func (s *CardStore) Update(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `UPDATE cards SET
			ease_factor = $2, interval_days = $3, repetition_count = $4,
			next_review_at = $5, last_reviewed_at = $6, correct_count = $7,
			incorrect_count = $8, streak = $9, is_active = $10, is_mature = $11,
			updated_at = $12
		WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query,
		card.ID, card.EaseFactor, card.IntervalDays, card.RepetitionCount,
		card.NextReviewAt, nullableTime(card.LastReviewedAt), card.CorrectCount,
		card.IncorrectCount, card.Streak, card.IsActive, card.IsMature, card.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return store.ErrCardNotFound
	}

	return nil
}

// Due implements store.CardStore.Due. Ordering is (next_review_at, id) so
// pagination stays deterministic when many cards share a due timestamp.
func (s *CardStore) Due(
	ctx context.Context,
	ownerID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE owner_id = $1 AND is_active AND next_review_at <= $2
		ORDER BY next_review_at ASC, id ASC
		LIMIT $3`
	rows, err := s.db.QueryContext(ctx, query, ownerID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query due cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanCards(rows)
}

// ListByOwner implements store.CardStore.ListByOwner.
func (s *CardStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanCards(rows)
}

// WithTx implements store.CardStore.WithTx.
func (s *CardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &CardStore{db: tx, logger: s.logger}
}

func (s *CardStore) scanOne(row *sql.Row) (*domain.Card, error) {
	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to scan card: %w", err)
	}
	return card, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	var lastReviewedAt sql.NullTime
	err := row.Scan(
		&card.ID, &card.OwnerID, &card.ItemID, &card.EaseFactor, &card.IntervalDays,
		&card.RepetitionCount, &card.NextReviewAt, &lastReviewedAt,
		&card.CorrectCount, &card.IncorrectCount, &card.Streak,
		&card.IsActive, &card.IsMature, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lastReviewedAt.Valid {
		card.LastReviewedAt = lastReviewedAt.Time
	}
	return &card, nil
}

func scanCards(rows *sql.Rows) ([]*domain.Card, error) {
	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}
	return cards, nil
}

// nullableTime maps a zero time to SQL NULL.
func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
