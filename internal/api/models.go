package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/lexago/lexago-api/internal/domain"
)

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned from both register and login.
type AuthResponse struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"user_id"`
}

// CreateCardRequest is the request body for creating a card.
type CreateCardRequest struct {
	ItemID uuid.UUID `json:"item_id" validate:"required"`
}

// SubmitReviewRequest is the request body for reviewing a card.
// Quality outside 0-5 is accepted and clamped by the scheduler.
type SubmitReviewRequest struct {
	Quality int `json:"quality"`
}

// ReviewResponse is returned from a card review, carrying the prior and new
// scheduling state so clients can render the delta.
type ReviewResponse struct {
	Card             *domain.Card `json:"card"`
	PrevIntervalDays int          `json:"prev_interval_days"`
	PrevEaseFactor   float64      `json:"prev_ease_factor"`
	IntervalDays     int          `json:"interval_days"`
	EaseFactor       float64      `json:"ease_factor"`
}

// GradeRequest is the request body for grading a submission.
type GradeRequest struct {
	AttemptID   uuid.UUID            `json:"attempt_id" validate:"required"`
	Question    *domain.Question     `json:"question" validate:"required"`
	Answer      domain.AnswerPayload `json:"answer"`
	TimeTakenMs int64                `json:"time_taken_ms" validate:"gte=0"`

	// CardID, when set, applies the derived quality rating to that card in
	// the same request, so clients need not make a second call.
	CardID *uuid.UUID `json:"card_id,omitempty"`
}

// GradeResponse is returned from grading a submission.
type GradeResponse struct {
	ResponseID uuid.UUID          `json:"response_id"`
	Result     domain.GradeResult `json:"result"`
	Quality    int                `json:"quality"`

	// Review is set only when the request named a card to reschedule.
	Review *ReviewResponse `json:"review,omitempty"`
}

// TimeTaken converts the request's millisecond field to a duration.
func (r *GradeRequest) TimeTaken() time.Duration {
	return time.Duration(r.TimeTakenMs) * time.Millisecond
}
