package grading

// Params defines all configurable thresholds and weights of the grading
// strategies, hoisted out of the strategy code so they are testable and
// tunable without code changes.
type Params struct {
	// FuzzyMatchThreshold is the minimum similarity ratio (edit-distance
	// based, in [0, 1]) for a cloze answer to count as a full-credit
	// fuzzy match.
	FuzzyMatchThreshold float64

	// MorphologicalCredit is the per-blank credit awarded when the
	// learner's text and an accepted answer resolve to the same lemma
	// ("right lemma, wrong form").
	MorphologicalCredit float64

	// ClozePassThreshold is the minimum partial credit for a cloze answer
	// to count as correct overall.
	ClozePassThreshold float64

	// MatchingPassThreshold is the minimum fraction of correct pairs for
	// a matching answer to count as correct overall.
	MatchingPassThreshold float64

	// WritingPassThreshold is the minimum keyword coverage for a writing
	// answer to count as correct.
	WritingPassThreshold float64

	// WritingDefaultCredit is awarded when a writing question specifies no
	// required keywords: the heuristic cannot grade the answer, but the
	// learner should not be zeroed for it either.
	WritingDefaultCredit float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default untouched.
type ParamsConfig struct {
	FuzzyMatchThreshold   float64
	MorphologicalCredit   float64
	ClozePassThreshold    float64
	MatchingPassThreshold float64
	WritingPassThreshold  float64
	WritingDefaultCredit  float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		FuzzyMatchThreshold:   0.9,
		MorphologicalCredit:   0.8,
		ClozePassThreshold:    0.8,
		MatchingPassThreshold: 0.8,
		WritingPassThreshold:  0.7,
		WritingDefaultCredit:  0.5,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Only fields set to a positive value in config override the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.FuzzyMatchThreshold > 0 {
		params.FuzzyMatchThreshold = config.FuzzyMatchThreshold
	}
	if config.MorphologicalCredit > 0 {
		params.MorphologicalCredit = config.MorphologicalCredit
	}
	if config.ClozePassThreshold > 0 {
		params.ClozePassThreshold = config.ClozePassThreshold
	}
	if config.MatchingPassThreshold > 0 {
		params.MatchingPassThreshold = config.MatchingPassThreshold
	}
	if config.WritingPassThreshold > 0 {
		params.WritingPassThreshold = config.WritingPassThreshold
	}
	if config.WritingDefaultCredit > 0 {
		params.WritingDefaultCredit = config.WritingDefaultCredit
	}

	return params
}
