package assessment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexago/lexago-api/internal/domain"
	"github.com/lexago/lexago-api/internal/domain/grading"
	"github.com/lexago/lexago-api/internal/store"
)

// fakeResponseStore is an in-memory ResponseStore keyed by (attempt, question).
type fakeResponseStore struct {
	responses map[[2]uuid.UUID]*domain.Response
	saved     int
}

var _ store.ResponseStore = (*fakeResponseStore)(nil)

func newFakeResponseStore() *fakeResponseStore {
	return &fakeResponseStore{responses: make(map[[2]uuid.UUID]*domain.Response)}
}

func (f *fakeResponseStore) Save(_ context.Context, response *domain.Response) error {
	f.responses[[2]uuid.UUID{response.AttemptID, response.QuestionID}] = response
	f.saved++
	return nil
}

func (f *fakeResponseStore) Get(_ context.Context, attemptID, questionID uuid.UUID) (*domain.Response, error) {
	response, ok := f.responses[[2]uuid.UUID{attemptID, questionID}]
	if !ok {
		return nil, store.ErrResponseNotFound
	}
	return response, nil
}

func (f *fakeResponseStore) ListByOwner(_ context.Context, ownerID uuid.UUID, _ int) ([]*domain.Response, error) {
	var out []*domain.Response
	for _, response := range f.responses {
		if response.OwnerID == ownerID {
			out = append(out, response)
		}
	}
	return out, nil
}

func (f *fakeResponseStore) WithTx(_ *sql.Tx) store.ResponseStore {
	return f
}

func mcqQuestion(t *testing.T) *domain.Question {
	t.Helper()
	q := &domain.Question{
		ID:             uuid.New(),
		Type:           domain.QuestionTypeMCQ,
		Prompt:         "Pick the noun",
		Points:         2,
		Options:        []string{"Haus", "gehen"},
		CorrectOptions: []string{"Haus"},
	}
	require.NoError(t, q.Validate())
	return q
}

func TestGradeSubmission(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	responses := newFakeResponseStore()
	service := NewAssessmentService(nil, grading.NewGrader(nil, nil), responses, nil)

	ownerID := uuid.New()
	attemptID := uuid.New()
	question := mcqQuestion(t)

	response, err := service.GradeSubmission(ctx, ownerID, attemptID, question, domain.AnswerPayload{
		Kind:     domain.QuestionTypeMCQ,
		Selected: []string{"Haus"},
	}, 1500*time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, response)

	assert.True(t, response.IsCorrect)
	assert.InDelta(t, 1, response.PartialCredit, 1e-9)
	assert.InDelta(t, 2, response.PointsEarned, 1e-9)
	assert.Equal(t, ownerID, response.OwnerID)
	assert.Equal(t, question.ID, response.QuestionID)
	assert.Equal(t, 1500*time.Millisecond, response.TimeTaken)

	stored, err := responses.Get(ctx, attemptID, question.ID)
	require.NoError(t, err)
	assert.Equal(t, response.ID, stored.ID)
}

func TestGradeSubmission_MalformedAnswerIsRecorded(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	responses := newFakeResponseStore()
	service := NewAssessmentService(nil, grading.NewGrader(nil, nil), responses, nil)

	question := mcqQuestion(t)

	// A payload of the wrong kind grades to zero credit but is still saved;
	// a broken submission must never abort the attempt.
	response, err := service.GradeSubmission(ctx, uuid.New(), uuid.New(), question, domain.AnswerPayload{
		Kind: domain.QuestionTypeWriting,
		Text: "Haus",
	}, 0)
	require.NoError(t, err)

	assert.False(t, response.IsCorrect)
	assert.Zero(t, response.PartialCredit)
	assert.Equal(t, "Invalid answer format for mcq question", response.Feedback)
	assert.Equal(t, 1, responses.saved)
}

func TestGradeSubmission_ResubmissionOverwrites(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	responses := newFakeResponseStore()
	service := NewAssessmentService(nil, grading.NewGrader(nil, nil), responses, nil)

	ownerID := uuid.New()
	attemptID := uuid.New()
	question := mcqQuestion(t)

	_, err := service.GradeSubmission(ctx, ownerID, attemptID, question, domain.AnswerPayload{
		Kind:     domain.QuestionTypeMCQ,
		Selected: []string{"gehen"},
	}, 0)
	require.NoError(t, err)

	second, err := service.GradeSubmission(ctx, ownerID, attemptID, question, domain.AnswerPayload{
		Kind:     domain.QuestionTypeMCQ,
		Selected: []string{"Haus"},
	}, 0)
	require.NoError(t, err)

	stored, err := responses.Get(ctx, attemptID, question.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, stored.ID, "the later submission wins")
	assert.True(t, stored.IsCorrect)
}

func TestGradeSubmission_NilQuestion(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service := NewAssessmentService(nil, grading.NewGrader(nil, nil), newFakeResponseStore(), nil)

	_, err := service.GradeSubmission(context.Background(), uuid.New(), uuid.New(), nil, domain.AnswerPayload{}, 0)
	assert.ErrorIs(t, err, ErrNilQuestion)
}

func TestQualityForResult(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		credit   float64
		expected int
	}{
		{name: "perfect", credit: 1.0, expected: 5},
		{name: "strong partial", credit: 0.85, expected: 4},
		{name: "boundary 0.8", credit: 0.8, expected: 4},
		{name: "minimum pass", credit: 0.5, expected: 3},
		{name: "weak partial", credit: 0.4, expected: 2},
		{name: "boundary 0.3", credit: 0.3, expected: 2},
		{name: "trace credit", credit: 0.1, expected: 1},
		{name: "nothing", credit: 0, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			quality := QualityForResult(domain.GradeResult{PartialCredit: tc.credit})
			assert.Equal(t, tc.expected, quality)
		})
	}
}

func TestQualityForResult_FailureNeverPasses(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// Anything below half credit must land under the scheduler's pass
	// threshold of 3, so a failed answer always resets the card.
	for _, credit := range []float64{0, 0.1, 0.2, 0.3, 0.49} {
		quality := QualityForResult(domain.GradeResult{PartialCredit: credit})
		assert.Less(t, quality, 3, "credit %.2f must not pass", credit)
	}
}
