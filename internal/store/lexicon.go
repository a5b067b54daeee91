package store

import (
	"context"

	"github.com/lexago/lexago-api/internal/domain/grading"
)

// LexiconStore defines the interface for the morphology lexicon. The lexicon
// is loaded wholesale at startup and handed to the grader as an in-memory
// resolver, keeping lookup out of the grading hot path.
type LexiconStore interface {
	// ListEntries returns every lemma with its known inflected forms.
	ListEntries(ctx context.Context) ([]grading.LexiconEntry, error)
}
