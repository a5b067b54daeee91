package grading

import (
	"fmt"

	"github.com/lexago/lexago-api/internal/domain"
)

// gradeCloze scores a fill-in-the-blank answer. Each blank is matched against
// its accepted strings in three stages, strongest first:
//
//  1. exact: the normalized answer equals an accepted string — full credit;
//  2. fuzzy: the best edit-distance similarity reaches the fuzzy threshold —
//     full credit, with the ratio recorded in the per-blank feedback;
//  3. morphological: answer and an accepted string resolve to the same lemma —
//     reduced credit for "right lemma, wrong form".
//
// A blank matching none of the stages earns nothing. Overall credit is the
// mean per-blank credit; the answer is correct once it clears the cloze pass
// threshold.
func (g *Grader) gradeCloze(q *domain.Question, answer domain.AnswerPayload) domain.GradeResult {
	if answer.Blanks == nil {
		return g.invalidFormatResult(q)
	}
	if len(q.Blanks) == 0 {
		return g.zeroResult(q, "Question defines no blanks to grade")
	}

	var sum float64
	units := make([]domain.UnitFeedback, 0, len(q.Blanks))
	for _, blank := range q.Blanks {
		unit := g.gradeBlank(blank, answer.Blanks[blank.ID])
		sum += unit.Credit
		units = append(units, unit)
	}

	credit := sum / float64(len(q.Blanks))
	correct := credit >= g.params.ClozePassThreshold

	full := 0
	for _, unit := range units {
		if unit.Credit >= 1 {
			full++
		}
	}

	return g.result(q, correct, credit,
		fmt.Sprintf("%d of %d blanks answered correctly", full, len(q.Blanks)), units)
}

// gradeBlank matches one blank's answer through the exact/fuzzy/morphological
// cascade.
func (g *Grader) gradeBlank(blank domain.ClozeBlank, received string) domain.UnitFeedback {
	unit := domain.UnitFeedback{
		Unit:      blank.ID,
		MatchType: domain.MatchTypeNone,
		Expected:  blank.Accepted,
		Received:  received,
	}

	answer := Normalize(received)
	if answer == "" {
		return unit
	}

	accepted := normalizeAll(blank.Accepted)

	for _, want := range accepted {
		if answer == want {
			unit.MatchType = domain.MatchTypeExact
			unit.Credit = 1
			return unit
		}
	}

	best := 0.0
	for _, want := range accepted {
		if want == "" {
			continue
		}
		if ratio := g.similarity(answer, want); ratio > best {
			best = ratio
		}
	}
	if best >= g.params.FuzzyMatchThreshold {
		unit.MatchType = domain.MatchTypeFuzzy
		unit.Credit = 1
		unit.Similarity = best
		return unit
	}

	if lemma, ok := g.resolveLemma(answer); ok {
		for _, want := range accepted {
			if wantLemma, ok := g.resolveLemma(want); ok && wantLemma == lemma {
				unit.MatchType = domain.MatchTypeMorphological
				unit.Credit = g.params.MorphologicalCredit
				return unit
			}
		}
	}

	return unit
}
