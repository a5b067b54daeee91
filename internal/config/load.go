package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional YAML
// config file (config.yaml in the working directory). Environment variables
// use the LEXAGO_ prefix with underscores for nesting, e.g.
// LEXAGO_SERVER_PORT, and take precedence over file values.
// Returns a populated, validated Config or an error.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEXAGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment can supply
		// everything. Any other read error is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)

	// Bind nested keys explicitly so AutomaticEnv sees them even when no
	// config file provides the section.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"database.url",
		"auth.jwt_secret",
		"auth.token_lifetime_minutes",
		"srs.min_ease_factor",
		"srs.max_ease_factor",
		"srs.initial_ease_factor",
		"srs.first_interval_days",
		"srs.second_interval_days",
		"srs.pass_threshold",
		"srs.failure_ease_penalty",
		"srs.mature_interval_days",
		"grading.fuzzy_match_threshold",
		"grading.morphological_credit",
		"grading.cloze_pass_threshold",
		"grading.matching_pass_threshold",
		"grading.writing_pass_threshold",
		"grading.writing_default_credit",
	} {
		if err := v.BindEnv(key); err != nil {
			// BindEnv only fails on an empty key list.
			panic(err)
		}
	}
}
