package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	Consensus ConsensusConfig
	Hotfix    HotfixConfig
	Redis     RedisConfig

	// RosterFile is an optional YAML roster that replaces the demo classes
	RosterFile string `env:"BALANCER_ROSTER_FILE"`
}

// ConsensusConfig selects and tunes the consensus routine
type ConsensusConfig struct {
	Routine      string        `env:"BALANCER_CONSENSUS" envDefault:"valence"`
	JoyThreshold float64       `env:"BALANCER_JOY_THRESHOLD" envDefault:"0.98"`
	URL          string        `env:"BALANCER_CONSENSUS_URL"`
	Timeout      time.Duration `env:"BALANCER_CONSENSUS_TIMEOUT" envDefault:"10s"`
}

// HotfixConfig controls how far an unbalanced archetype is nudged
type HotfixConfig struct {
	Rounds int     `env:"BALANCER_HOTFIX_ROUNDS" envDefault:"0"`
	Rate   float64 `env:"BALANCER_HOTFIX_RATE" envDefault:"0.5"`
}

// RedisConfig holds Redis-specific configuration.
// An empty URL means in-memory repositories.
type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field ranges; flag overrides should call it again
func (c *Config) Validate() error {
	if c.Consensus.JoyThreshold <= 0 || c.Consensus.JoyThreshold > 1 {
		return fmt.Errorf("BALANCER_JOY_THRESHOLD must be in (0, 1], got %v", c.Consensus.JoyThreshold)
	}
	if c.Consensus.Routine == "remote" && c.Consensus.URL == "" {
		return fmt.Errorf("BALANCER_CONSENSUS_URL is required for the remote routine")
	}
	if c.Hotfix.Rounds < 0 {
		return fmt.Errorf("BALANCER_HOTFIX_ROUNDS cannot be negative")
	}
	if c.Hotfix.Rate <= 0 || c.Hotfix.Rate > 1 {
		return fmt.Errorf("BALANCER_HOTFIX_RATE must be in (0, 1], got %v", c.Hotfix.Rate)
	}

	return nil
}
