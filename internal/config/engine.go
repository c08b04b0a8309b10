package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvEngineRulesPath         = "TERMSIGHT_ENGINE_RULES_PATH"
	EnvEngineValidationTimeout = "TERMSIGHT_ENGINE_VALIDATION_TIMEOUT"
)

// EngineConfig holds validation engine settings.
type EngineConfig struct {
	RulesPath         string `toml:"rules_path"`
	ValidationTimeout string `toml:"validation_timeout"`
}

// ValidationTimeoutDuration returns ValidationTimeout as a time.Duration.
func (c *EngineConfig) ValidationTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ValidationTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *EngineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *EngineConfig) Merge(overlay *EngineConfig) {
	if overlay.RulesPath != "" {
		c.RulesPath = overlay.RulesPath
	}
	if overlay.ValidationTimeout != "" {
		c.ValidationTimeout = overlay.ValidationTimeout
	}
}

func (c *EngineConfig) loadDefaults() {
	if c.RulesPath == "" {
		c.RulesPath = "validation_rules.json"
	}
	if c.ValidationTimeout == "" {
		c.ValidationTimeout = "2m"
	}
}

func (c *EngineConfig) loadEnv() {
	if v := os.Getenv(EnvEngineRulesPath); v != "" {
		c.RulesPath = v
	}
	if v := os.Getenv(EnvEngineValidationTimeout); v != "" {
		c.ValidationTimeout = v
	}
}

func (c *EngineConfig) validate() error {
	if c.RulesPath == "" {
		return fmt.Errorf("rules_path required")
	}
	if _, err := time.ParseDuration(c.ValidationTimeout); err != nil {
		return fmt.Errorf("invalid validation_timeout: %w", err)
	}
	return nil
}
