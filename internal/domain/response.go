package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Response-specific validation errors
var (
	ErrResponseIDEmpty         = errors.New("response ID cannot be empty")
	ErrResponseOwnerIDEmpty    = errors.New("response owner ID cannot be empty")
	ErrResponseAttemptIDEmpty  = errors.New("response attempt ID cannot be empty")
	ErrResponseQuestionIDEmpty = errors.New("response question ID cannot be empty")
	ErrResponseInvalidCredit   = errors.New("response partial credit must be in [0, 1]")
)

// Response records one learner submission together with its grading outcome.
// There is one response per (attempt, question) pair; resubmitting before the
// attempt is finalized overwrites the previous response.
type Response struct {
	ID            uuid.UUID      `json:"id"`
	OwnerID       uuid.UUID      `json:"owner_id"`
	AttemptID     uuid.UUID      `json:"attempt_id"`
	QuestionID    uuid.UUID      `json:"question_id"`
	UserAnswer    AnswerPayload  `json:"user_answer"`
	IsCorrect     bool           `json:"is_correct"`
	PartialCredit float64        `json:"partial_credit"`
	PointsEarned  float64        `json:"points_earned"`
	Feedback      string         `json:"feedback"`
	AutoFeedback  []UnitFeedback `json:"auto_feedback,omitempty"`
	TimeTaken     time.Duration  `json:"time_taken,omitempty"` // zero when not reported
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NewResponse creates a Response from a graded submission.
// Returns an error if validation fails.
func NewResponse(
	ownerID, attemptID, questionID uuid.UUID,
	answer AnswerPayload,
	result GradeResult,
	timeTaken time.Duration,
) (*Response, error) {
	now := time.Now().UTC()
	response := &Response{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		AttemptID:     attemptID,
		QuestionID:    questionID,
		UserAnswer:    answer,
		IsCorrect:     result.IsCorrect,
		PartialCredit: result.PartialCredit,
		PointsEarned:  result.PointsEarned,
		Feedback:      result.Feedback,
		AutoFeedback:  result.AutoFeedback,
		TimeTaken:     timeTaken,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := response.Validate(); err != nil {
		return nil, err
	}

	return response, nil
}

// GradeResult reconstructs the grading outcome recorded on the response.
func (r *Response) GradeResult() GradeResult {
	return GradeResult{
		IsCorrect:     r.IsCorrect,
		PartialCredit: r.PartialCredit,
		PointsEarned:  r.PointsEarned,
		Feedback:      r.Feedback,
		AutoFeedback:  r.AutoFeedback,
	}
}

// Validate checks if the Response has valid data.
// Returns an error if any field fails validation.
func (r *Response) Validate() error {
	if r.ID == uuid.Nil {
		return ErrResponseIDEmpty
	}

	if r.OwnerID == uuid.Nil {
		return ErrResponseOwnerIDEmpty
	}

	if r.AttemptID == uuid.Nil {
		return ErrResponseAttemptIDEmpty
	}

	if r.QuestionID == uuid.Nil {
		return ErrResponseQuestionIDEmpty
	}

	if r.PartialCredit < 0 || r.PartialCredit > 1 {
		return ErrResponseInvalidCredit
	}

	return nil
}
