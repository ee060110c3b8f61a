// Package config provides Viper-based configuration loading for the DSA tool.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/dsa/internal/game/dice"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path. Results go to stdout, so
	// logs default to stderr.
	Output string `mapstructure:"output"`
}

// RulesConfig selects optional rule variants.
type RulesConfig struct {
	// CritRules is the crit rule of skill, spell and chant checks:
	// "none", "default" or "alternative".
	CritRules string `mapstructure:"crit_rules"`
	// RequiredCrits is the number of 1s (or 20s) the default crit rules need.
	RequiredCrits int `mapstructure:"required_crits"`
}

// DiceConfig bounds dice expressions and optionally fixes the random seed.
type DiceConfig struct {
	MaxDice  int `mapstructure:"max_dice"`
	MaxTerms int `mapstructure:"max_terms"`
	// Seed makes every roll reproducible when non-zero.
	Seed int64 `mapstructure:"seed"`
}

// Limits returns the parser limits described by d.
func (d DiceConfig) Limits() dice.Limits {
	return dice.Limits{MaxDice: d.MaxDice, MaxTerms: d.MaxTerms}
}

// InitiativeConfig tunes initiative ordering.
type InitiativeConfig struct {
	// MaxRounds bounds tie-break rounds before input order decides.
	MaxRounds int `mapstructure:"max_rounds"`
}

// DataConfig locates the rule dataset and the default character sheet.
type DataConfig struct {
	// Ruleset is a YAML file or a directory of YAML files.
	Ruleset string `mapstructure:"ruleset"`
	// Character is an optional YAML or JSON character sheet.
	Character string `mapstructure:"character"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	// Color is "auto", "always" or "never".
	Color string `mapstructure:"color"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Rules      RulesConfig      `mapstructure:"rules"`
	Dice       DiceConfig       `mapstructure:"dice"`
	Initiative InitiativeConfig `mapstructure:"initiative"`
	Data       DataConfig       `mapstructure:"data"`
	Output     OutputConfig     `mapstructure:"output"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRules(c.Rules); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDice(c.Dice); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Initiative.MaxRounds < 1 {
		errs = append(errs, fmt.Sprintf("initiative.max_rounds must be >= 1, got %d", c.Initiative.MaxRounds))
	}
	if c.Data.Ruleset == "" {
		errs = append(errs, "data.ruleset must not be empty")
	}
	if err := validateOutput(c.Output); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if l.Output == "" {
		errs = append(errs, "logging.output must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateRules(r RulesConfig) error {
	validRules := map[string]bool{"none": true, "default": true, "alternative": true}
	if !validRules[r.CritRules] {
		return fmt.Errorf("rules.crit_rules must be one of [none, default, alternative], got %q", r.CritRules)
	}
	if r.CritRules == "default" && r.RequiredCrits < 1 {
		return fmt.Errorf("rules.required_crits must be >= 1, got %d", r.RequiredCrits)
	}
	return nil
}

func validateDice(d DiceConfig) error {
	var errs []string
	if d.MaxDice < 1 {
		errs = append(errs, fmt.Sprintf("dice.max_dice must be >= 1, got %d", d.MaxDice))
	}
	if d.MaxTerms < 1 {
		errs = append(errs, fmt.Sprintf("dice.max_terms must be >= 1, got %d", d.MaxTerms))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateOutput(o OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[o.Color] {
		return fmt.Errorf("output.color must be one of [auto, always, never], got %q", o.Color)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Precondition: path must be empty or name a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with DSA_ prefix
	v.SetEnvPrefix("DSA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("rules.crit_rules", "default")
	v.SetDefault("rules.required_crits", 2)

	v.SetDefault("dice.max_dice", dice.DefaultMaxDice)
	v.SetDefault("dice.max_terms", dice.DefaultMaxTerms)
	v.SetDefault("dice.seed", 0)

	v.SetDefault("initiative.max_rounds", 16)

	v.SetDefault("data.ruleset", "content/ruleset.yaml")
	v.SetDefault("data.character", "")

	v.SetDefault("output.color", "auto")
}
