package grading

import "errors"

// ErrFormNotFound is returned by a Resolver when a word form is neither a
// known lemma nor a known inflected form. The cloze strategy treats it as a
// non-match, not as a grading failure.
var ErrFormNotFound = errors.New("word form not found in lexicon")

// Resolver resolves an inflected word form to its base form (lemma). It is
// injected as a collaborator so the grader carries no lexicon state of its
// own; implementations range from an in-memory table to a database lookup.
type Resolver interface {
	Resolve(form string) (string, error)
}

// LexiconEntry is one lemma with its known inflected surface forms.
type LexiconEntry struct {
	Lemma string
	Forms []string
}

// LexiconResolver is a Resolver backed by an in-memory lexicon. Lookup is
// exact-lemma first, then inflected-form.
type LexiconResolver struct {
	lemmas map[string]struct{}
	forms  map[string]string // inflected form -> lemma
}

// Ensure LexiconResolver implements the Resolver interface
var _ Resolver = (*LexiconResolver)(nil)

// NewLexiconResolver builds a resolver from lexicon entries. Lemmas and forms
// are normalized on the way in, so lookups are insensitive to case and
// punctuation the same way grading comparisons are.
func NewLexiconResolver(entries []LexiconEntry) *LexiconResolver {
	r := &LexiconResolver{
		lemmas: make(map[string]struct{}, len(entries)),
		forms:  make(map[string]string),
	}

	for _, entry := range entries {
		lemma := Normalize(entry.Lemma)
		if lemma == "" {
			continue
		}
		r.lemmas[lemma] = struct{}{}
		for _, form := range entry.Forms {
			if f := Normalize(form); f != "" {
				r.forms[f] = lemma
			}
		}
	}

	return r
}

// Resolve implements the Resolver interface. A known lemma resolves to
// itself; otherwise the inflected-form index is consulted.
func (r *LexiconResolver) Resolve(form string) (string, error) {
	f := Normalize(form)
	if f == "" {
		return "", ErrFormNotFound
	}

	if _, ok := r.lemmas[f]; ok {
		return f, nil
	}

	if lemma, ok := r.forms[f]; ok {
		return lemma, nil
	}

	return "", ErrFormNotFound
}
