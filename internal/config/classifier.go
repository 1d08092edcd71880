package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvClassifierAPIKey  = "SHELLAC_CLASSIFIER_API_KEY"
	EnvClassifierModel   = "SHELLAC_CLASSIFIER_MODEL"
	EnvClassifierTimeout = "SHELLAC_CLASSIFIER_TIMEOUT"

	// EnvGeminiAPIKey is honored as a fallback so the service picks up the
	// standard Gemini SDK credential without extra wiring.
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// ClassifierConfig holds Gemini model parameters and the API credential.
// The credential is environment-only and never read from TOML.
type ClassifierConfig struct {
	Model   string `toml:"model"`
	Timeout string `toml:"timeout"`
	APIKey  string `toml:"-"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *ClassifierConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
// A missing API key is a startup failure.
func (c *ClassifierConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ClassifierConfig) Merge(overlay *ClassifierConfig) {
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *ClassifierConfig) loadDefaults() {
	if c.Model == "" {
		c.Model = "gemini-2.5-flash"
	}
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
}

func (c *ClassifierConfig) loadEnv() {
	if v := os.Getenv(EnvClassifierModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvClassifierTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvClassifierAPIKey); v != "" {
		c.APIKey = v
	} else if v := os.Getenv(EnvGeminiAPIKey); v != "" {
		c.APIKey = v
	}
}

func (c *ClassifierConfig) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf(
			"api key required: set %s or %s",
			EnvClassifierAPIKey, EnvGeminiAPIKey,
		)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
