package grading

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lexago/lexago-api/internal/domain"
)

// gradeMCQ scores a multiple-choice answer by normalized set equality: order
// and duplicate selections are irrelevant, and there is no partial credit.
func (g *Grader) gradeMCQ(q *domain.Question, answer domain.AnswerPayload) domain.GradeResult {
	if answer.Selected == nil {
		return g.invalidFormatResult(q)
	}

	selected := normalizedSet(answer.Selected)
	correct := normalizedSet(q.CorrectOptions)

	equal := len(selected) == len(correct)
	if equal {
		for option := range correct {
			if _, ok := selected[option]; !ok {
				equal = false
				break
			}
		}
	}

	if equal {
		return g.result(q, true, 1, "Correct", nil)
	}
	return g.result(q, false, 0,
		fmt.Sprintf("Incorrect; expected %d option(s)", len(correct)), nil)
}

// gradeMatching scores id->value pairs one by one: a pair is correct iff the
// learner's value normalizes to the correct value. Credit is the fraction of
// correct pairs.
func (g *Grader) gradeMatching(q *domain.Question, answer domain.AnswerPayload) domain.GradeResult {
	if answer.Pairs == nil {
		return g.invalidFormatResult(q)
	}
	if len(q.Pairs) == 0 {
		return g.zeroResult(q, "Question defines no pairs to grade")
	}

	// Iterate pairs in a stable order so feedback is deterministic.
	ids := make([]string, 0, len(q.Pairs))
	for id := range q.Pairs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	units := make([]domain.UnitFeedback, 0, len(ids))
	matched := 0
	for _, id := range ids {
		expected := q.Pairs[id]
		received := answer.Pairs[id]

		unit := domain.UnitFeedback{
			Unit:      id,
			MatchType: domain.MatchTypeNone,
			Expected:  []string{expected},
			Received:  received,
		}
		if Normalize(received) == Normalize(expected) {
			unit.MatchType = domain.MatchTypeExact
			unit.Credit = 1
			matched++
		}
		units = append(units, unit)
	}

	credit := float64(matched) / float64(len(ids))
	correct := credit >= g.params.MatchingPassThreshold

	return g.result(q, correct, credit,
		fmt.Sprintf("%d of %d pairs matched", matched, len(ids)), units)
}

// gradeReorder scores an ordered sequence positionally: the answer is correct
// only if it is identical element-wise, and partial credit counts positions
// holding the right element. An element in the wrong position earns nothing.
func (g *Grader) gradeReorder(q *domain.Question, answer domain.AnswerPayload) domain.GradeResult {
	if answer.Sequence == nil {
		return g.invalidFormatResult(q)
	}
	if len(q.Sequence) == 0 {
		return g.zeroResult(q, "Question defines no sequence to grade")
	}

	expected := normalizeAll(q.Sequence)
	received := normalizeAll(answer.Sequence)

	matched := 0
	units := make([]domain.UnitFeedback, 0, len(expected))
	for i, want := range expected {
		unit := domain.UnitFeedback{
			Unit:      strconv.Itoa(i),
			MatchType: domain.MatchTypeNone,
			Expected:  []string{q.Sequence[i]},
		}
		if i < len(received) {
			unit.Received = answer.Sequence[i]
			if received[i] == want {
				unit.MatchType = domain.MatchTypeExact
				unit.Credit = 1
				matched++
			}
		}
		units = append(units, unit)
	}

	credit := float64(matched) / float64(len(expected))
	correct := matched == len(expected) && len(received) == len(expected)

	return g.result(q, correct, credit,
		fmt.Sprintf("%d of %d positions correct", matched, len(expected)), units)
}

// gradeWriting scores free text by keyword coverage: the fraction of required
// keywords present as case-insensitive substrings. With no required keywords
// the heuristic cannot grade the answer and falls back to a neutral default
// credit.
func (g *Grader) gradeWriting(q *domain.Question, answer domain.AnswerPayload) domain.GradeResult {
	if len(q.RequiredKeywords) == 0 {
		return g.result(q, false, g.params.WritingDefaultCredit,
			"No required keywords defined; answer recorded for manual review", nil)
	}

	text := Normalize(answer.Text)
	found := 0
	units := make([]domain.UnitFeedback, 0, len(q.RequiredKeywords))
	for _, keyword := range q.RequiredKeywords {
		unit := domain.UnitFeedback{
			Unit:      keyword,
			MatchType: domain.MatchTypeNone,
			Expected:  []string{keyword},
			Received:  answer.Text,
		}
		if strings.Contains(text, Normalize(keyword)) {
			unit.MatchType = domain.MatchTypeExact
			unit.Credit = 1
			found++
		}
		units = append(units, unit)
	}

	credit := float64(found) / float64(len(q.RequiredKeywords))
	correct := credit >= g.params.WritingPassThreshold

	return g.result(q, correct, credit,
		fmt.Sprintf("%d of %d keywords covered", found, len(q.RequiredKeywords)), units)
}
