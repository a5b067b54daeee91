package srs

// Params defines all configurable parameters for the scheduling algorithm.
// Every numeric constant of the SM-2 variant lives here so the algorithm is
// tunable without code changes.
type Params struct {
	// Ease factor limits and the value assigned to new cards.
	MinEaseFactor     float64
	MaxEaseFactor     float64
	InitialEaseFactor float64

	// Fixed early intervals: the first successful review schedules
	// FirstIntervalDays, the second SecondIntervalDays; from then on the
	// interval grows by the ease factor.
	FirstIntervalDays  int
	SecondIntervalDays int

	// Quality ratings at or above PassThreshold count as successful recall.
	// Ratings are clamped into [0, MaxQuality].
	PassThreshold int
	MaxQuality    int

	// FailureEasePenalty is subtracted from the ease factor on a failed
	// review, floored at MinEaseFactor.
	FailureEasePenalty float64

	// Cards with an interval of at least MatureIntervalDays are mature.
	MatureIntervalDays int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default untouched.
type ParamsConfig struct {
	MinEaseFactor      float64
	MaxEaseFactor      float64
	InitialEaseFactor  float64
	FirstIntervalDays  int
	SecondIntervalDays int
	PassThreshold      int
	MaxQuality         int
	FailureEasePenalty float64
	MatureIntervalDays int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:      1.3,
		MaxEaseFactor:      4.0,
		InitialEaseFactor:  2.5,
		FirstIntervalDays:  1,
		SecondIntervalDays: 6,
		PassThreshold:      3,
		MaxQuality:         5,
		FailureEasePenalty: 0.2,
		MatureIntervalDays: 21,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Only fields set to a positive value in config override the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}
	if config.InitialEaseFactor > 0 {
		params.InitialEaseFactor = config.InitialEaseFactor
	}
	if config.FirstIntervalDays > 0 {
		params.FirstIntervalDays = config.FirstIntervalDays
	}
	if config.SecondIntervalDays > 0 {
		params.SecondIntervalDays = config.SecondIntervalDays
	}
	if config.PassThreshold > 0 {
		params.PassThreshold = config.PassThreshold
	}
	if config.MaxQuality > 0 {
		params.MaxQuality = config.MaxQuality
	}
	if config.FailureEasePenalty > 0 {
		params.FailureEasePenalty = config.FailureEasePenalty
	}
	if config.MatureIntervalDays > 0 {
		params.MatureIntervalDays = config.MatureIntervalDays
	}

	return params
}
