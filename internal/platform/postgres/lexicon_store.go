package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexago/lexago-api/internal/domain/grading"
	"github.com/lexago/lexago-api/internal/store"
)

// LexiconStore implements the store.LexiconStore interface using PostgreSQL.
type LexiconStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewLexiconStore creates a new PostgreSQL implementation of the LexiconStore
// interface.
func NewLexiconStore(db store.DBTX, logger *slog.Logger) *LexiconStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LexiconStore{
		db:     db,
		logger: logger.With(slog.String("component", "lexicon_store")),
	}
}

// Ensure LexiconStore implements store.LexiconStore interface
var _ store.LexiconStore = (*LexiconStore)(nil)

// ListEntries implements store.LexiconStore.ListEntries.
func (s *LexiconStore) ListEntries(ctx context.Context) ([]grading.LexiconEntry, error) {
	query := `SELECT lemma, form FROM lexicon_forms ORDER BY lemma, form`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lexicon: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []grading.LexiconEntry
	var current *grading.LexiconEntry
	for rows.Next() {
		var lemma, form string
		if err := rows.Scan(&lemma, &form); err != nil {
			return nil, fmt.Errorf("failed to scan lexicon row: %w", err)
		}

		if current == nil || current.Lemma != lemma {
			entries = append(entries, grading.LexiconEntry{Lemma: lemma})
			current = &entries[len(entries)-1]
		}
		current.Forms = append(current.Forms, form)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lexicon: %w", err)
	}

	return entries, nil
}
