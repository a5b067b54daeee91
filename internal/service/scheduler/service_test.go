package scheduler

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexago/lexago-api/internal/domain"
	"github.com/lexago/lexago-api/internal/domain/srs"
	"github.com/lexago/lexago-api/internal/store"
)

// fakeCardStore is an in-memory CardStore for unit tests.
type fakeCardStore struct {
	cards map[uuid.UUID]*domain.Card
}

var _ store.CardStore = (*fakeCardStore)(nil)

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{cards: make(map[uuid.UUID]*domain.Card)}
}

func (f *fakeCardStore) Create(_ context.Context, card *domain.Card) error {
	for _, existing := range f.cards {
		if existing.OwnerID == card.OwnerID && existing.ItemID == card.ItemID {
			return store.ErrCardExists
		}
	}
	f.cards[card.ID] = card.Clone()
	return nil
}

func (f *fakeCardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Card, error) {
	card, ok := f.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return card.Clone(), nil
}

func (f *fakeCardStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeCardStore) GetByOwnerAndItem(_ context.Context, ownerID, itemID uuid.UUID) (*domain.Card, error) {
	for _, card := range f.cards {
		if card.OwnerID == ownerID && card.ItemID == itemID {
			return card.Clone(), nil
		}
	}
	return nil, store.ErrCardNotFound
}

func (f *fakeCardStore) Update(_ context.Context, card *domain.Card) error {
	if _, ok := f.cards[card.ID]; !ok {
		return store.ErrCardNotFound
	}
	f.cards[card.ID] = card.Clone()
	return nil
}

func (f *fakeCardStore) Due(_ context.Context, ownerID uuid.UUID, now time.Time, limit int) ([]*domain.Card, error) {
	var due []*domain.Card
	for _, card := range f.cards {
		if card.OwnerID == ownerID && card.IsActive && !card.NextReviewAt.After(now) {
			due = append(due, card.Clone())
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReviewAt.Equal(due[j].NextReviewAt) {
			return due[i].NextReviewAt.Before(due[j].NextReviewAt)
		}
		return due[i].ID.String() < due[j].ID.String()
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (f *fakeCardStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*domain.Card, error) {
	var cards []*domain.Card
	for _, card := range f.cards {
		if card.OwnerID == ownerID {
			cards = append(cards, card.Clone())
		}
	}
	return cards, nil
}

func (f *fakeCardStore) WithTx(_ *sql.Tx) store.CardStore {
	return f
}

func newTestService(cards store.CardStore) SchedulerService {
	return NewSchedulerService(nil, cards, srs.NewDefaultService(), nil)
}

func TestCreateCard(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	cards := newFakeCardStore()
	service := newTestService(cards)

	ownerID := uuid.New()
	itemID := uuid.New()

	card, err := service.CreateCard(ctx, ownerID, itemID)
	require.NoError(t, err)
	require.NotNil(t, card)

	assert.Equal(t, ownerID, card.OwnerID)
	assert.Equal(t, itemID, card.ItemID)
	assert.InDelta(t, 2.5, card.EaseFactor, 1e-9)
	assert.Equal(t, 1, card.IntervalDays)
	assert.True(t, card.IsActive)
	assert.True(t, card.LastReviewedAt.IsZero(), "new cards have no review history")
}

func TestCreateCard_UsesConfiguredInitialState(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	cards := newFakeCardStore()
	params := srs.NewParams(srs.ParamsConfig{
		InitialEaseFactor: 3.5,
		FirstIntervalDays: 3,
	})
	service := NewSchedulerService(nil, cards, srs.NewServiceWithParams(params), nil)

	card, err := service.CreateCard(ctx, uuid.New(), uuid.New())
	require.NoError(t, err)

	assert.InDelta(t, 3.5, card.EaseFactor, 1e-9, "initial ease must come from the configured parameters")
	assert.Equal(t, 3, card.IntervalDays)
	wantDue := time.Now().UTC().AddDate(0, 0, 3)
	assert.WithinDuration(t, wantDue, card.NextReviewAt, time.Minute)
}

func TestCreateCard_DuplicateActive(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	service := newTestService(newFakeCardStore())

	ownerID := uuid.New()
	itemID := uuid.New()

	_, err := service.CreateCard(ctx, ownerID, itemID)
	require.NoError(t, err)

	_, err = service.CreateCard(ctx, ownerID, itemID)
	assert.ErrorIs(t, err, ErrCardExists)
}

func TestCreateCard_ReactivatesRetiredCard(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	cards := newFakeCardStore()
	service := newTestService(cards)

	ownerID := uuid.New()
	itemID := uuid.New()

	card, err := service.CreateCard(ctx, ownerID, itemID)
	require.NoError(t, err)

	// Build up some scheduling state, then retire the card.
	_, err = service.SubmitReview(ctx, ownerID, card.ID, 5)
	require.NoError(t, err)
	require.NoError(t, service.DeactivateCard(ctx, ownerID, card.ID))

	revived, err := service.CreateCard(ctx, ownerID, itemID)
	require.NoError(t, err)

	assert.Equal(t, card.ID, revived.ID, "reactivation must not mint a new card")
	assert.True(t, revived.IsActive)
	assert.Equal(t, 1, revived.RepetitionCount, "scheduling state survives retirement")
}

func TestSubmitReview(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	cards := newFakeCardStore()
	service := newTestService(cards)

	ownerID := uuid.New()
	card, err := service.CreateCard(ctx, ownerID, uuid.New())
	require.NoError(t, err)

	result, err := service.SubmitReview(ctx, ownerID, card.ID, 5)
	require.NoError(t, err)

	assert.Equal(t, 1, result.PrevIntervalDays)
	assert.InDelta(t, 2.5, result.PrevEaseFactor, 1e-9)
	assert.Equal(t, 1, result.IntervalDays)
	assert.InDelta(t, 2.6, result.EaseFactor, 1e-9)

	// The updated state must be persisted.
	stored, err := cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.RepetitionCount)
	assert.InDelta(t, 2.6, stored.EaseFactor, 1e-9)
	assert.False(t, stored.LastReviewedAt.IsZero())
}

func TestSubmitReview_CardNotFound(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	service := newTestService(newFakeCardStore())

	_, err := service.SubmitReview(ctx, uuid.New(), uuid.New(), 4)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestSubmitReview_WrongOwner(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	service := newTestService(newFakeCardStore())

	ownerID := uuid.New()
	card, err := service.CreateCard(ctx, ownerID, uuid.New())
	require.NoError(t, err)

	_, err = service.SubmitReview(ctx, uuid.New(), card.ID, 4)
	assert.ErrorIs(t, err, ErrCardNotFound,
		"another owner's card must be indistinguishable from a missing one")
}

func TestDueCards(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	cards := newFakeCardStore()
	service := newTestService(cards)

	ownerID := uuid.New()
	now := time.Now().UTC()

	overdue, err := service.CreateCard(ctx, ownerID, uuid.New())
	require.NoError(t, err)
	barely, err := service.CreateCard(ctx, ownerID, uuid.New())
	require.NoError(t, err)
	future, err := service.CreateCard(ctx, ownerID, uuid.New())
	require.NoError(t, err)

	// Adjust review times directly in the store.
	adjust := func(id uuid.UUID, next time.Time) {
		card, err := cards.GetByID(ctx, id)
		require.NoError(t, err)
		card.NextReviewAt = next
		require.NoError(t, cards.Update(ctx, card))
	}
	adjust(overdue.ID, now.Add(-48*time.Hour))
	adjust(barely.ID, now.Add(-time.Minute))
	adjust(future.ID, now.Add(24*time.Hour))

	due, err := service.DueCards(ctx, ownerID, 10)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, overdue.ID, due[0].ID, "most overdue card comes first")
	assert.Equal(t, barely.ID, due[1].ID)

	limited, err := service.DueCards(ctx, ownerID, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, overdue.ID, limited[0].ID)
}

func TestDueCards_InvalidLimit(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service := newTestService(newFakeCardStore())

	_, err := service.DueCards(context.Background(), uuid.New(), 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)

	_, err = service.DueCards(context.Background(), uuid.New(), -5)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestDueCards_ExcludesRetired(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	cards := newFakeCardStore()
	service := newTestService(cards)

	ownerID := uuid.New()
	card, err := service.CreateCard(ctx, ownerID, uuid.New())
	require.NoError(t, err)

	stored, err := cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	stored.NextReviewAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, cards.Update(ctx, stored))

	require.NoError(t, service.DeactivateCard(ctx, ownerID, card.ID))

	due, err := service.DueCards(ctx, ownerID, 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestDeactivateCard(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	cards := newFakeCardStore()
	service := newTestService(cards)

	ownerID := uuid.New()
	card, err := service.CreateCard(ctx, ownerID, uuid.New())
	require.NoError(t, err)

	require.NoError(t, service.DeactivateCard(ctx, ownerID, card.ID))

	stored, err := cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	// Idempotent: retiring again succeeds.
	require.NoError(t, service.DeactivateCard(ctx, ownerID, card.ID))
}

func TestDeactivateCard_WrongOwner(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	service := newTestService(newFakeCardStore())

	ownerID := uuid.New()
	card, err := service.CreateCard(ctx, ownerID, uuid.New())
	require.NoError(t, err)

	err = service.DeactivateCard(ctx, uuid.New(), card.ID)
	assert.ErrorIs(t, err, ErrCardNotFound)
}
