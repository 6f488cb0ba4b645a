package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvGeneratorAPIKey  = "HERITAGE_GENERATOR_API_KEY"
	EnvGeneratorModel   = "HERITAGE_GENERATOR_MODEL"
	EnvGeneratorBaseURL = "HERITAGE_GENERATOR_BASE_URL"
	EnvGeneratorTimeout = "HERITAGE_GENERATOR_TIMEOUT"
	EnvGeneratorRetries = "HERITAGE_GENERATOR_RETRIES"

	// EnvGeminiAPIKey is read when no HERITAGE_GENERATOR_API_KEY is set.
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// GeneratorConfig configures the text generation client.
// Generation is disabled when APIKey is empty.
// Retries is a pointer so retries = 0 turns retrying off; it is non-nil after Finalize.
type GeneratorConfig struct {
	APIKey  string  `toml:"api_key"`
	Model   string  `toml:"model"`
	BaseURL string  `toml:"base_url"`
	Timeout string  `toml:"timeout"`
	Retries *uint64 `toml:"retries"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *GeneratorConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *GeneratorConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *GeneratorConfig) Merge(overlay *GeneratorConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Retries != nil {
		c.Retries = new(*overlay.Retries)
	}
}

func (c *GeneratorConfig) loadDefaults() {
	if c.Model == "" {
		c.Model = "gemini-1.5-flash"
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if c.Timeout == "" {
		c.Timeout = "15s"
	}
	if c.Retries == nil {
		c.Retries = new(uint64(2))
	}
}

func (c *GeneratorConfig) loadEnv() error {
	if v := os.Getenv(EnvGeneratorAPIKey); v != "" {
		c.APIKey = v
	} else if v := os.Getenv(EnvGeminiAPIKey); v != "" && c.APIKey == "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvGeneratorModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvGeneratorBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvGeneratorTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvGeneratorRetries); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvGeneratorRetries, err)
		}
		c.Retries = &n
	}
	return nil
}

func (c *GeneratorConfig) validate() error {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
