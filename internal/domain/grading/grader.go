package grading

import (
	"fmt"
	"time"

	"github.com/agext/levenshtein"

	"github.com/lexago/lexago-api/internal/domain"
)

// Grader scores a learner's answer to an assessment question. Grading never
// returns an error: malformed payloads and unrecognized question types are
// encoded as zero-credit results with explanatory feedback, so a broken
// question can never abort a learner's session.
type Grader struct {
	params   *Params
	resolver Resolver
	lev      *levenshtein.Params
}

// NewGrader creates a Grader with the given parameters and morphology
// resolver. A nil resolver disables morphological matching (cloze blanks then
// fall through to no credit); nil params select the defaults.
func NewGrader(params *Params, resolver Resolver) *Grader {
	if params == nil {
		params = NewDefaultParams()
	}

	return &Grader{
		params:   params,
		resolver: resolver,
		lev:      levenshtein.NewParams(),
	}
}

// Grade scores the answer payload against the question. timeTaken is
// informational and may be zero; it is carried through to the caller's
// Response, not used for scoring.
func (g *Grader) Grade(
	question *domain.Question,
	answer domain.AnswerPayload,
	timeTaken time.Duration,
) domain.GradeResult {
	_ = timeTaken

	if question == nil {
		return domain.GradeResult{Feedback: "No question supplied"}
	}

	if !domain.IsValidQuestionType(question.Type) {
		return g.zeroResult(question,
			fmt.Sprintf("Unsupported question type %q", question.Type))
	}

	if answer.Kind != question.Type {
		return g.invalidFormatResult(question)
	}

	switch question.Type {
	case domain.QuestionTypeMCQ:
		return g.gradeMCQ(question, answer)
	case domain.QuestionTypeCloze:
		return g.gradeCloze(question, answer)
	case domain.QuestionTypeMatching:
		return g.gradeMatching(question, answer)
	case domain.QuestionTypeReorder:
		return g.gradeReorder(question, answer)
	case domain.QuestionTypeWriting:
		return g.gradeWriting(question, answer)
	default:
		return g.zeroResult(question,
			fmt.Sprintf("Unsupported question type %q", question.Type))
	}
}

// similarity computes the edit-distance similarity ratio of two normalized
// strings, in [0, 1].
func (g *Grader) similarity(a, b string) float64 {
	return levenshtein.Similarity(a, b, g.lev)
}

// resolveLemma resolves a normalized form to its lemma, reporting found=false
// when no resolver is configured or the form is unknown.
func (g *Grader) resolveLemma(form string) (string, bool) {
	if g.resolver == nil {
		return "", false
	}
	lemma, err := g.resolver.Resolve(form)
	if err != nil {
		return "", false
	}
	return lemma, true
}

// result assembles a GradeResult from a credit fraction, clamping the credit
// into [0, 1] and deriving the points earned from the question's points.
func (g *Grader) result(
	question *domain.Question,
	correct bool,
	credit float64,
	feedback string,
	units []domain.UnitFeedback,
) domain.GradeResult {
	if credit < 0 {
		credit = 0
	}
	if credit > 1 {
		credit = 1
	}

	return domain.GradeResult{
		IsCorrect:     correct,
		PartialCredit: credit,
		PointsEarned:  question.Points * credit,
		Feedback:      feedback,
		AutoFeedback:  units,
	}
}

func (g *Grader) zeroResult(question *domain.Question, feedback string) domain.GradeResult {
	return g.result(question, false, 0, feedback, nil)
}

func (g *Grader) invalidFormatResult(question *domain.Question) domain.GradeResult {
	return g.zeroResult(question,
		fmt.Sprintf("Invalid answer format for %s question", question.Type))
}
