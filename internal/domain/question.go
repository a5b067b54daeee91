package domain

import (
	"errors"

	"github.com/google/uuid"
)

// QuestionType identifies the assessment format of a question and selects the
// grading strategy applied to a learner's answer.
type QuestionType string

// Supported question types.
const (
	QuestionTypeMCQ      QuestionType = "mcq"
	QuestionTypeCloze    QuestionType = "cloze"
	QuestionTypeMatching QuestionType = "matching"
	QuestionTypeReorder  QuestionType = "reorder"
	QuestionTypeWriting  QuestionType = "writing"
)

// Question-specific validation errors
var (
	ErrQuestionIDEmpty       = errors.New("question ID cannot be empty")
	ErrQuestionPromptEmpty   = errors.New("question prompt cannot be empty")
	ErrQuestionInvalidPoints = errors.New("question points must be greater than zero")
	ErrQuestionEmptyAnswer   = errors.New("question must define a correct answer")
)

// ClozeBlank is one gap in a cloze question. Accepted holds the canonical
// answer followed by any alternative acceptable strings.
type ClozeBlank struct {
	ID       string   `json:"id"`
	Accepted []string `json:"accepted"`
}

// Question is an assessment prompt authored externally. It is immutable once
// authored; the grading engine only reads it. Exactly one of the type-specific
// payload fields is populated, matching Type.
type Question struct {
	ID         uuid.UUID    `json:"id"`
	Type       QuestionType `json:"type"`
	Prompt     string       `json:"prompt"`
	Points     float64      `json:"points"`
	Difficulty string       `json:"difficulty,omitempty"` // informational only, e.g. a CEFR level

	// mcq: the options offered and the correct subset.
	Options        []string `json:"options,omitempty"`
	CorrectOptions []string `json:"correct_options,omitempty"`

	// cloze: ordered blanks with their acceptable answers.
	Blanks []ClozeBlank `json:"blanks,omitempty"`

	// matching: pair ID to its correct value.
	Pairs map[string]string `json:"pairs,omitempty"`

	// reorder: the correct element sequence.
	Sequence []string `json:"sequence,omitempty"`

	// writing: keywords the free-text answer is expected to cover.
	// May be empty, in which case the heuristic cannot grade the answer.
	RequiredKeywords []string `json:"required_keywords,omitempty"`
}

// IsValidQuestionType reports whether t is a recognized question type.
func IsValidQuestionType(t QuestionType) bool {
	switch t {
	case QuestionTypeMCQ, QuestionTypeCloze, QuestionTypeMatching,
		QuestionTypeReorder, QuestionTypeWriting:
		return true
	default:
		return false
	}
}

// Validate checks if the Question has valid data for its declared type.
// Returns an error if any field fails validation.
func (q *Question) Validate() error {
	if q.ID == uuid.Nil {
		return ErrQuestionIDEmpty
	}

	if q.Prompt == "" {
		return ErrQuestionPromptEmpty
	}

	if q.Points <= 0 {
		return ErrQuestionInvalidPoints
	}

	if !IsValidQuestionType(q.Type) {
		return ErrInvalidQuestionType
	}

	switch q.Type {
	case QuestionTypeMCQ:
		if len(q.CorrectOptions) == 0 {
			return ErrQuestionEmptyAnswer
		}
	case QuestionTypeCloze:
		if len(q.Blanks) == 0 {
			return ErrQuestionEmptyAnswer
		}
		for _, blank := range q.Blanks {
			if blank.ID == "" || len(blank.Accepted) == 0 {
				return ErrQuestionEmptyAnswer
			}
		}
	case QuestionTypeMatching:
		if len(q.Pairs) == 0 {
			return ErrQuestionEmptyAnswer
		}
	case QuestionTypeReorder:
		if len(q.Sequence) == 0 {
			return ErrQuestionEmptyAnswer
		}
	case QuestionTypeWriting:
		// RequiredKeywords may legitimately be empty; the grader then
		// falls back to a neutral default credit.
	}

	return nil
}
