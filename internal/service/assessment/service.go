// Package assessment grades learner submissions and records them as
// responses. It also derives the spaced-repetition quality rating from a
// grading outcome so callers can feed assessment results straight into the
// scheduler.
package assessment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexago/lexago-api/internal/domain"
	"github.com/lexago/lexago-api/internal/domain/grading"
	"github.com/lexago/lexago-api/internal/platform/logger"
	"github.com/lexago/lexago-api/internal/store"
)

// ErrNilQuestion indicates a grading request without a question.
var ErrNilQuestion = errors.New("question cannot be nil")

// AssessmentService grades submissions and persists the outcomes.
type AssessmentService interface {
	// GradeSubmission scores the answer, stores the resulting Response
	// (overwriting any earlier response for the same attempt+question),
	// and returns it. Grading itself never fails; an error here means the
	// response could not be recorded.
	GradeSubmission(
		ctx context.Context,
		ownerID, attemptID uuid.UUID,
		question *domain.Question,
		answer domain.AnswerPayload,
		timeTaken time.Duration,
	) (*domain.Response, error)
}

// Verify interface compliance at compile time
var _ AssessmentService = (*assessmentServiceImpl)(nil)

type assessmentServiceImpl struct {
	db        *sql.DB
	grader    *grading.Grader
	responses store.ResponseStore
	logger    *slog.Logger
}

// NewAssessmentService creates a new AssessmentService implementation.
func NewAssessmentService(
	db *sql.DB,
	grader *grading.Grader,
	responses store.ResponseStore,
	log *slog.Logger,
) AssessmentService {
	if grader == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("grader cannot be nil")
	}
	if responses == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("responses cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &assessmentServiceImpl{
		db:        db,
		grader:    grader,
		responses: responses,
		logger:    log.With(slog.String("component", "assessment_service")),
	}
}

// GradeSubmission implements AssessmentService.GradeSubmission.
func (s *assessmentServiceImpl) GradeSubmission(
	ctx context.Context,
	ownerID, attemptID uuid.UUID,
	question *domain.Question,
	answer domain.AnswerPayload,
	timeTaken time.Duration,
) (*domain.Response, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if question == nil {
		return nil, ErrNilQuestion
	}

	result := s.grader.Grade(question, answer, timeTaken)

	log.Debug("graded submission",
		slog.String("owner_id", ownerID.String()),
		slog.String("question_id", question.ID.String()),
		slog.String("question_type", string(question.Type)),
		slog.Bool("is_correct", result.IsCorrect),
		slog.Float64("partial_credit", result.PartialCredit))

	response, err := domain.NewResponse(ownerID, attemptID, question.ID, answer, result, timeTaken)
	if err != nil {
		return nil, fmt.Errorf("failed to build response: %w", err)
	}

	if err := s.save(ctx, response); err != nil {
		log.Error("failed to save response",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()),
			slog.String("question_id", question.ID.String()))
		return nil, fmt.Errorf("failed to save response: %w", err)
	}

	return response, nil
}

func (s *assessmentServiceImpl) save(ctx context.Context, response *domain.Response) error {
	if s.db == nil {
		return s.responses.Save(ctx, response)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.responses.WithTx(tx).Save(ctx, response)
	})
}
