package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexago/lexago-api/internal/domain"
	"github.com/lexago/lexago-api/internal/domain/srs"
	"github.com/lexago/lexago-api/internal/platform/logger"
	"github.com/lexago/lexago-api/internal/store"
)

// Verify interface compliance at compile time
var _ SchedulerService = (*schedulerServiceImpl)(nil)

// schedulerServiceImpl implements the SchedulerService interface.
type schedulerServiceImpl struct {
	db         *sql.DB
	cardStore  store.CardStore
	srsService srs.Service
	logger     *slog.Logger
	now        func() time.Time // injectable for testing
}

// NewSchedulerService creates a new SchedulerService implementation.
func NewSchedulerService(
	db *sql.DB,
	cardStore store.CardStore,
	srsService srs.Service,
	log *slog.Logger,
) SchedulerService {
	if cardStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardStore cannot be nil")
	}
	if srsService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("srsService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &schedulerServiceImpl{
		db:         db,
		cardStore:  cardStore,
		srsService: srsService,
		logger:     log.With(slog.String("component", "scheduler_service")),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateCard implements SchedulerService.CreateCard.
func (s *schedulerServiceImpl) CreateCard(
	ctx context.Context,
	ownerID, itemID uuid.UUID,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("creating card",
		slog.String("owner_id", ownerID.String()),
		slog.String("item_id", itemID.String()))

	var created *domain.Card
	err := s.runInTransaction(ctx, func(ctx context.Context, cards store.CardStore) error {
		existing, err := cards.GetByOwnerAndItem(ctx, ownerID, itemID)
		switch {
		case err == nil && existing.IsActive:
			return ErrCardExists
		case err == nil:
			// Retired card: reactivate instead of duplicating, keeping
			// its scheduling state intact.
			existing.IsActive = true
			existing.UpdatedAt = s.now()
			if err := cards.Update(ctx, existing); err != nil {
				return fmt.Errorf("failed to reactivate card: %w", err)
			}
			created = existing
			return nil
		case errors.Is(err, store.ErrNotFound):
			params := s.srsService.Params()
			card, err := domain.NewCardWithDefaults(
				ownerID, itemID,
				params.InitialEaseFactor, params.FirstIntervalDays)
			if err != nil {
				return fmt.Errorf("failed to build card: %w", err)
			}
			if err := cards.Create(ctx, card); err != nil {
				return fmt.Errorf("failed to create card: %w", err)
			}
			created = card
			return nil
		default:
			return fmt.Errorf("failed to look up card: %w", err)
		}
	})
	if err != nil {
		if errors.Is(err, ErrCardExists) {
			return nil, ErrCardExists
		}
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()),
			slog.String("item_id", itemID.String()))
		return nil, &ServiceError{Operation: "create_card", Message: "could not create card", Err: err}
	}

	log.Debug("card created",
		slog.String("owner_id", ownerID.String()),
		slog.String("card_id", created.ID.String()))
	return created, nil
}

// SubmitReview implements SchedulerService.SubmitReview.
// The card row is locked for the duration of the transaction so concurrent
// reviews of the same card are serialized and neither update is lost.
func (s *schedulerServiceImpl) SubmitReview(
	ctx context.Context,
	ownerID, cardID uuid.UUID,
	quality int,
) (*srs.ReviewResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing review",
		slog.String("owner_id", ownerID.String()),
		slog.String("card_id", cardID.String()),
		slog.Int("quality", quality))

	var result *srs.ReviewResult
	err := s.runInTransaction(ctx, func(ctx context.Context, cards store.CardStore) error {
		card, err := cards.GetByIDForUpdate(ctx, cardID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get card: %w", err)
		}

		if card.OwnerID != ownerID {
			log.Warn("owner does not hold card",
				slog.String("owner_id", ownerID.String()),
				slog.String("card_id", cardID.String()))
			return ErrCardNotFound
		}

		result, err = s.srsService.Review(card, quality, s.now())
		if err != nil {
			return fmt.Errorf("failed to compute review: %w", err)
		}

		if err := cards.Update(ctx, result.Card); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()),
			slog.String("card_id", cardID.String()))
		return nil, &ServiceError{Operation: "submit_review", Message: "could not apply review", Err: err}
	}

	log.Debug("review applied",
		slog.String("owner_id", ownerID.String()),
		slog.String("card_id", cardID.String()),
		slog.Int("interval_days", result.IntervalDays),
		slog.Float64("ease_factor", result.EaseFactor),
		slog.Time("next_review_at", result.Card.NextReviewAt))

	return result, nil
}

// DueCards implements SchedulerService.DueCards.
func (s *schedulerServiceImpl) DueCards(
	ctx context.Context,
	ownerID uuid.UUID,
	limit int,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit < 1 {
		return nil, ErrInvalidLimit
	}

	cards, err := s.cardStore.Due(ctx, ownerID, s.now(), limit)
	if err != nil {
		log.Error("failed to list due cards",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, &ServiceError{Operation: "due_cards", Message: "could not list due cards", Err: err}
	}

	log.Debug("listed due cards",
		slog.String("owner_id", ownerID.String()),
		slog.Int("count", len(cards)))
	return cards, nil
}

// DeactivateCard implements SchedulerService.DeactivateCard.
func (s *schedulerServiceImpl) DeactivateCard(
	ctx context.Context,
	ownerID, cardID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.runInTransaction(ctx, func(ctx context.Context, cards store.CardStore) error {
		card, err := cards.GetByID(ctx, cardID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get card: %w", err)
		}

		if card.OwnerID != ownerID {
			return ErrCardNotFound
		}

		if !card.IsActive {
			return nil
		}

		card.IsActive = false
		card.UpdatedAt = s.now()
		if err := cards.Update(ctx, card); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			return ErrCardNotFound
		}
		log.Error("failed to deactivate card",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()),
			slog.String("card_id", cardID.String()))
		return &ServiceError{Operation: "deactivate_card", Message: "could not deactivate card", Err: err}
	}

	log.Debug("card deactivated",
		slog.String("owner_id", ownerID.String()),
		slog.String("card_id", cardID.String()))
	return nil
}

// runInTransaction executes fn against a transaction-bound card store. When
// the service was constructed without a database (as in unit tests with an
// in-memory store) fn runs against the plain store instead.
func (s *schedulerServiceImpl) runInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, cards store.CardStore) error,
) error {
	if s.db == nil {
		return fn(ctx, s.cardStore)
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.cardStore.WithTx(tx))
	})
}
