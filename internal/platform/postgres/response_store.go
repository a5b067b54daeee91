package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexago/lexago-api/internal/domain"
	"github.com/lexago/lexago-api/internal/store"
)

const responseColumns = `id, owner_id, attempt_id, question_id, user_answer, is_correct,
	partial_credit, points_earned, feedback, auto_feedback, time_taken_ms,
	created_at, updated_at`

// ResponseStore implements the store.ResponseStore interface using PostgreSQL.
// Answer payloads and per-unit feedback are stored as JSONB.
type ResponseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewResponseStore creates a new PostgreSQL implementation of the
// ResponseStore interface.
func NewResponseStore(db store.DBTX, logger *slog.Logger) *ResponseStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ResponseStore{
		db:     db,
		logger: logger.With(slog.String("component", "response_store")),
	}
}

// Ensure ResponseStore implements store.ResponseStore interface
var _ store.ResponseStore = (*ResponseStore)(nil)

// Save implements store.ResponseStore.Save. The (attempt, question) pair is
// unique; a resubmission overwrites the earlier grading outcome in place.
func (s *ResponseStore) Save(ctx context.Context, response *domain.Response) error {
	if err := response.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	answerJSON, err := json.Marshal(response.UserAnswer)
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	feedbackJSON, err := json.Marshal(response.AutoFeedback)
	if err != nil {
		return fmt.Errorf("failed to marshal auto feedback: %w", err)
	}

	query := `INSERT INTO responses (` + responseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (attempt_id, question_id) DO UPDATE SET
			user_answer = EXCLUDED.user_answer,
			is_correct = EXCLUDED.is_correct,
			partial_credit = EXCLUDED.partial_credit,
			points_earned = EXCLUDED.points_earned,
			feedback = EXCLUDED.feedback,
			auto_feedback = EXCLUDED.auto_feedback,
			time_taken_ms = EXCLUDED.time_taken_ms,
			updated_at = EXCLUDED.updated_at`
	_, err = s.db.ExecContext(ctx, query,
		response.ID, response.OwnerID, response.AttemptID, response.QuestionID,
		answerJSON, response.IsCorrect, response.PartialCredit, response.PointsEarned,
		response.Feedback, feedbackJSON, response.TimeTaken.Milliseconds(),
		response.CreatedAt, response.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save response: %w", err)
	}

	return nil
}

// Get implements store.ResponseStore.Get.
func (s *ResponseStore) Get(
	ctx context.Context,
	attemptID, questionID uuid.UUID,
) (*domain.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM responses
		WHERE attempt_id = $1 AND question_id = $2`
	response, err := scanResponse(s.db.QueryRowContext(ctx, query, attemptID, questionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrResponseNotFound
		}
		return nil, fmt.Errorf("failed to scan response: %w", err)
	}
	return response, nil
}

// ListByOwner implements store.ResponseStore.ListByOwner.
func (s *ResponseStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	limit int,
) ([]*domain.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM responses
		WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`
	args := []any{ownerID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var responses []*domain.Response
	for rows.Next() {
		response, err := scanResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, response)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate responses: %w", err)
	}
	return responses, nil
}

// WithTx implements store.ResponseStore.WithTx.
func (s *ResponseStore) WithTx(tx *sql.Tx) store.ResponseStore {
	return &ResponseStore{db: tx, logger: s.logger}
}

func scanResponse(row rowScanner) (*domain.Response, error) {
	var response domain.Response
	var answerJSON, feedbackJSON []byte
	var timeTakenMS int64
	err := row.Scan(
		&response.ID, &response.OwnerID, &response.AttemptID, &response.QuestionID,
		&answerJSON, &response.IsCorrect, &response.PartialCredit, &response.PointsEarned,
		&response.Feedback, &feedbackJSON, &timeTakenMS,
		&response.CreatedAt, &response.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(answerJSON, &response.UserAnswer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answer: %w", err)
	}
	if len(feedbackJSON) > 0 {
		if err := json.Unmarshal(feedbackJSON, &response.AutoFeedback); err != nil {
			return nil, fmt.Errorf("failed to unmarshal auto feedback: %w", err)
		}
	}
	response.TimeTaken = time.Duration(timeTakenMS) * time.Millisecond

	return &response, nil
}
