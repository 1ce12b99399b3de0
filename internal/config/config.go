package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/papapumpkin/linkrank/internal/rank"
)

// Config holds all runtime configuration for a linkrank run.
// Values are populated from .linkrank.yaml, LINKRANK_* env vars, and CLI flags.
type Config struct {
	Damping       float64 `mapstructure:"damping"`
	Samples       int     `mapstructure:"samples"`
	Seed          uint64  `mapstructure:"seed"` // 0 picks a fresh seed per run
	Epsilon       float64 `mapstructure:"epsilon"`
	MaxIterations int     `mapstructure:"max_iterations"`
	Criterion     string  `mapstructure:"criterion"`
	Renormalize   bool    `mapstructure:"renormalize"`
	TelemetryPath string  `mapstructure:"telemetry"`
	Verbose       bool    `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags, and validates the
// estimator settings.
func Load() (Config, error) {
	def := rank.DefaultOptions()
	viper.SetDefault("damping", def.Damping)
	viper.SetDefault("samples", def.Samples)
	viper.SetDefault("seed", 0)
	viper.SetDefault("epsilon", def.Epsilon)
	viper.SetDefault("max_iterations", def.MaxIterations)
	viper.SetDefault("criterion", def.Criterion.String())
	viper.SetDefault("renormalize", def.Renormalize)
	viper.SetDefault("telemetry", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if _, err := cfg.Options(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Options converts the configuration into validated estimator options.
func (c Config) Options() (rank.Options, error) {
	criterion, err := rank.ParseCriterion(c.Criterion)
	if err != nil {
		return rank.Options{}, err
	}
	opts := rank.Options{
		Damping:       c.Damping,
		Samples:       c.Samples,
		Epsilon:       c.Epsilon,
		MaxIterations: c.MaxIterations,
		Criterion:     criterion,
		Renormalize:   c.Renormalize,
	}
	if err := opts.Validate(); err != nil {
		return rank.Options{}, err
	}
	return opts, nil
}
