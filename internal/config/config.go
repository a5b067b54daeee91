// Package config loads and validates application configuration from the
// environment and an optional config file.
package config

// Config holds all application configuration, organized into logical groups.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	SRS      SRSConfig      `mapstructure:"srs"`
	Grading  GradingConfig  `mapstructure:"grading"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// SRSConfig exposes the scheduler's tunable parameters. Zero values fall back
// to the algorithm defaults. The ease factor fields are confined to the card
// domain's hard bounds [1.3, 4.0] so the scheduler can never produce a card
// that fails validation.
type SRSConfig struct {
	MinEaseFactor      float64 `mapstructure:"min_ease_factor"      validate:"omitempty,gte=1.3,lte=4"`
	MaxEaseFactor      float64 `mapstructure:"max_ease_factor"      validate:"omitempty,gtefield=MinEaseFactor,gte=1.3,lte=4"`
	InitialEaseFactor  float64 `mapstructure:"initial_ease_factor"  validate:"omitempty,gte=1.3,lte=4"`
	FirstIntervalDays  int     `mapstructure:"first_interval_days"  validate:"omitempty,gte=1"`
	SecondIntervalDays int     `mapstructure:"second_interval_days" validate:"omitempty,gte=1"`
	PassThreshold      int     `mapstructure:"pass_threshold"       validate:"omitempty,gte=1,lte=5"`
	FailureEasePenalty float64 `mapstructure:"failure_ease_penalty" validate:"omitempty,gt=0"`
	MatureIntervalDays int     `mapstructure:"mature_interval_days" validate:"omitempty,gte=1"`
}

// GradingConfig exposes the grader's tunable thresholds and weights. Zero
// values fall back to the grading defaults.
type GradingConfig struct {
	FuzzyMatchThreshold   float64 `mapstructure:"fuzzy_match_threshold"   validate:"omitempty,gt=0,lte=1"`
	MorphologicalCredit   float64 `mapstructure:"morphological_credit"    validate:"omitempty,gt=0,lte=1"`
	ClozePassThreshold    float64 `mapstructure:"cloze_pass_threshold"    validate:"omitempty,gt=0,lte=1"`
	MatchingPassThreshold float64 `mapstructure:"matching_pass_threshold" validate:"omitempty,gt=0,lte=1"`
	WritingPassThreshold  float64 `mapstructure:"writing_pass_threshold"  validate:"omitempty,gt=0,lte=1"`
	WritingDefaultCredit  float64 `mapstructure:"writing_default_credit"  validate:"omitempty,gte=0,lte=1"`
}
