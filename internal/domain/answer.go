package domain

// AnswerPayload is the tagged union carrying a learner's submission. Kind
// names the question type the payload was built for; each grading strategy
// reads only the field matching its type. A payload whose Kind does not match
// the question being graded is reported as an invalid-format result rather
// than an error, so a malformed submission can never abort a session.
type AnswerPayload struct {
	Kind QuestionType `json:"kind"`

	// mcq: the selected options. Order and duplicates are irrelevant.
	Selected []string `json:"selected,omitempty"`

	// cloze: blank ID to the learner's text for that blank.
	Blanks map[string]string `json:"blanks,omitempty"`

	// matching: pair ID to the learner's chosen value.
	Pairs map[string]string `json:"pairs,omitempty"`

	// reorder: the learner's element sequence.
	Sequence []string `json:"sequence,omitempty"`

	// writing: the learner's free text.
	Text string `json:"text,omitempty"`
}

// MatchType records how a single answer unit was matched during grading.
type MatchType string

// Possible match types, from strongest to weakest.
const (
	MatchTypeExact         MatchType = "exact"
	MatchTypeFuzzy         MatchType = "fuzzy"
	MatchTypeMorphological MatchType = "morphological"
	MatchTypeNone          MatchType = "none"
)

// UnitFeedback is the per-unit diagnostic emitted by the grader: one entry
// per blank, pair, or sequence position.
type UnitFeedback struct {
	Unit       string    `json:"unit"` // blank ID, pair ID, or position
	MatchType  MatchType `json:"match_type"`
	Expected   []string  `json:"expected"`
	Received   string    `json:"received"`
	Credit     float64   `json:"credit"`
	Similarity float64   `json:"similarity,omitempty"` // fuzzy ratio, set for fuzzy matches
}

// GradeResult is the outcome of grading one submission. Grading never fails:
// malformed input and unknown question types are encoded here as zero-credit
// results with explanatory feedback.
type GradeResult struct {
	IsCorrect     bool           `json:"is_correct"`
	PartialCredit float64        `json:"partial_credit"` // in [0, 1]
	PointsEarned  float64        `json:"points_earned"`  // question points * partial credit
	Feedback      string         `json:"feedback"`
	AutoFeedback  []UnitFeedback `json:"auto_feedback,omitempty"`
}
