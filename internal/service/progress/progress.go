// Package progress rolls grading and scheduling outcomes into learner-level
// summary statistics for dashboards. Summarize is a pure fold over historical
// state; the service wrapper only fetches the inputs.
package progress

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexago/lexago-api/internal/domain"
	"github.com/lexago/lexago-api/internal/domain/srs"
	"github.com/lexago/lexago-api/internal/platform/logger"
	"github.com/lexago/lexago-api/internal/store"
)

// Summary is a learner-level rollup of card and response state.
type Summary struct {
	TotalCards    int `json:"total_cards"`
	ActiveCards   int `json:"active_cards"`
	MatureCards   int `json:"mature_cards"`
	LearningCards int `json:"learning_cards"` // active, reviewed at least once, not yet mature
	NewCards      int `json:"new_cards"`      // active, never reviewed
	DueCards      int `json:"due_cards"`

	TotalReviews   int     `json:"total_reviews"`
	CorrectReviews int     `json:"correct_reviews"`
	Accuracy       float64 `json:"accuracy"` // correct / total, 0 when no reviews

	CurrentStreak int `json:"current_streak"` // best streak among active cards
	BestStreak    int `json:"best_streak"`    // best consecutive-pass run over all reviews

	ResponsesGraded int     `json:"responses_graded"`
	PointsEarned    float64 `json:"points_earned"`
}

// Summarize computes the learner summary from cards and responses. Responses
// are expected newest first, as ResponseStore.ListByOwner returns them. The
// scheduler decides which cards count as due, so the rollup and the review
// queue always agree.
func Summarize(
	cards []*domain.Card,
	responses []*domain.Response,
	now time.Time,
	scheduler srs.Service,
) Summary {
	var s Summary

	for _, card := range cards {
		s.TotalCards++
		s.TotalReviews += card.CorrectCount + card.IncorrectCount
		s.CorrectReviews += card.CorrectCount

		if !card.IsActive {
			continue
		}
		s.ActiveCards++

		switch {
		case card.IsMature:
			s.MatureCards++
		case card.LastReviewedAt.IsZero():
			s.NewCards++
		default:
			s.LearningCards++
		}

		if scheduler.IsDue(card, now) {
			s.DueCards++
		}
		if card.Streak > s.CurrentStreak {
			s.CurrentStreak = card.Streak
		}
	}

	if s.TotalReviews > 0 {
		s.Accuracy = float64(s.CorrectReviews) / float64(s.TotalReviews)
	}

	// Best consecutive-correct run, walking from the oldest response.
	run := 0
	for i := len(responses) - 1; i >= 0; i-- {
		response := responses[i]
		s.ResponsesGraded++
		s.PointsEarned += response.PointsEarned

		if response.IsCorrect {
			run++
			if run > s.BestStreak {
				s.BestStreak = run
			}
		} else {
			run = 0
		}
	}

	return s
}

// ProgressService reports learner summaries.
type ProgressService interface {
	// Summary computes the owner's current progress rollup.
	Summary(ctx context.Context, ownerID uuid.UUID) (*Summary, error)
}

// Verify interface compliance at compile time
var _ ProgressService = (*progressServiceImpl)(nil)

type progressServiceImpl struct {
	cards     store.CardStore
	responses store.ResponseStore
	scheduler srs.Service
	logger    *slog.Logger
	now       func() time.Time
}

// NewProgressService creates a new ProgressService implementation.
func NewProgressService(
	cards store.CardStore,
	responses store.ResponseStore,
	scheduler srs.Service,
	log *slog.Logger,
) ProgressService {
	if cards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cards cannot be nil")
	}
	if responses == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("responses cannot be nil")
	}
	if scheduler == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scheduler cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &progressServiceImpl{
		cards:     cards,
		responses: responses,
		scheduler: scheduler,
		logger:    log.With(slog.String("component", "progress_service")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Summary implements ProgressService.Summary.
func (s *progressServiceImpl) Summary(ctx context.Context, ownerID uuid.UUID) (*Summary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cards.ListByOwner(ctx, ownerID)
	if err != nil {
		log.Error("failed to list cards",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}

	responses, err := s.responses.ListByOwner(ctx, ownerID, 0)
	if err != nil {
		log.Error("failed to list responses",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}

	summary := Summarize(cards, responses, s.now(), s.scheduler)
	return &summary, nil
}
