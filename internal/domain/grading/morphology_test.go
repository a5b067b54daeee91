package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLexicon() []LexiconEntry {
	return []LexiconEntry{
		{Lemma: "gehen", Forms: []string{"gehe", "gehst", "geht", "ging", "gegangen"}},
		{Lemma: "Haus", Forms: []string{"Häuser", "Hauses"}},
	}
}

func TestLexiconResolver(t *testing.T) {
	t.Parallel() // Enable parallel execution
	resolver := NewLexiconResolver(testLexicon())

	testCases := []struct {
		name     string
		form     string
		expected string
		wantErr  bool
	}{
		{name: "lemma resolves to itself", form: "gehen", expected: "gehen"},
		{name: "inflected form resolves to lemma", form: "ging", expected: "gehen"},
		{name: "participle resolves to lemma", form: "gegangen", expected: "gehen"},
		{name: "lookup is case-insensitive", form: "GEHT", expected: "gehen"},
		{name: "lookup ignores punctuation", form: "häuser!", expected: "haus"},
		{name: "unknown form", form: "schwimmen", wantErr: true},
		{name: "empty form", form: "", wantErr: true},
		{name: "punctuation-only form", form: "?!", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lemma, err := resolver.Resolve(tc.form)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrFormNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, lemma)
		})
	}
}

func TestNewLexiconResolver_SkipsEmptyLemmas(t *testing.T) {
	t.Parallel() // Enable parallel execution

	resolver := NewLexiconResolver([]LexiconEntry{
		{Lemma: "  ", Forms: []string{"orphan"}},
		{Lemma: "sehen", Forms: []string{"sieht"}},
	})

	_, err := resolver.Resolve("orphan")
	assert.ErrorIs(t, err, ErrFormNotFound, "forms of an empty lemma are dropped")

	lemma, err := resolver.Resolve("sieht")
	require.NoError(t, err)
	assert.Equal(t, "sehen", lemma)
}
