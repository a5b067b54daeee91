package grading

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes free text for comparison: lowercase, surrounding
// whitespace stripped, internal whitespace collapsed to single spaces, and
// every rune that is neither a letter nor a digit removed. Letters are kept
// by Unicode class, so diacritics and ligatures of the target alphabet
// (ä, ö, ü, ß, ...) survive intact.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// normalizeAll maps Normalize over a slice.
func normalizeAll(values []string) []string {
	normalized := make([]string, len(values))
	for i, v := range values {
		normalized[i] = Normalize(v)
	}
	return normalized
}

// normalizedSet builds a set of normalized strings, discarding duplicates
// and empties.
func normalizedSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if n := Normalize(v); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
