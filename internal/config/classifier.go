package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvClassifierEndpoint   = "HERITAGE_CLASSIFIER_ENDPOINT"
	EnvClassifierTimeout    = "HERITAGE_CLASSIFIER_TIMEOUT"
	EnvClassifierThreshold  = "HERITAGE_CLASSIFIER_THRESHOLD"
	EnvClassifierImageSize  = "HERITAGE_CLASSIFIER_IMAGE_SIZE"
	EnvClassifierMaxPixels  = "HERITAGE_CLASSIFIER_MAX_PIXELS"
	EnvClassifierCatalogKey = "HERITAGE_CLASSIFIER_CATALOG_KEY"
	EnvClassifierLabelsKey  = "HERITAGE_CLASSIFIER_LABELS_KEY"
	EnvClassifierTempDir    = "HERITAGE_CLASSIFIER_TEMP_DIR"
)

// ClassifierConfig locates the model server and the artifacts the model was trained against.
// An empty LabelsKey means the catalog's key order is the label order.
// Threshold is a pointer so an explicit 0 survives defaulting; it is non-nil after Finalize.
// MaxPixels bounds the declared width×height of an upload before it is decoded.
type ClassifierConfig struct {
	Endpoint   string   `toml:"endpoint"`
	Timeout    string   `toml:"timeout"`
	Threshold  *float64 `toml:"threshold"`
	ImageSize  int      `toml:"image_size"`
	MaxPixels  int      `toml:"max_pixels"`
	CatalogKey string   `toml:"catalog_key"`
	LabelsKey  string   `toml:"labels_key"`
	TempDir    string   `toml:"temp_dir"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *ClassifierConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ClassifierConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ClassifierConfig) Merge(overlay *ClassifierConfig) {
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Threshold != nil {
		c.Threshold = new(*overlay.Threshold)
	}
	if overlay.ImageSize != 0 {
		c.ImageSize = overlay.ImageSize
	}
	if overlay.MaxPixels != 0 {
		c.MaxPixels = overlay.MaxPixels
	}
	if overlay.CatalogKey != "" {
		c.CatalogKey = overlay.CatalogKey
	}
	if overlay.LabelsKey != "" {
		c.LabelsKey = overlay.LabelsKey
	}
	if overlay.TempDir != "" {
		c.TempDir = overlay.TempDir
	}
}

func (c *ClassifierConfig) loadDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "http://localhost:8501/v1/models/heritage:predict"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.Threshold == nil {
		c.Threshold = new(0.80)
	}
	if c.ImageSize == 0 {
		c.ImageSize = 224
	}
	if c.MaxPixels == 0 {
		c.MaxPixels = 50_000_000
	}
	if c.CatalogKey == "" {
		c.CatalogKey = "site_info.json"
	}
}

func (c *ClassifierConfig) loadEnv() error {
	if v := os.Getenv(EnvClassifierEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvClassifierTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvClassifierThreshold); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvClassifierThreshold, err)
		}
		c.Threshold = &t
	}
	if v := os.Getenv(EnvClassifierImageSize); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvClassifierImageSize, err)
		}
		c.ImageSize = size
	}
	if v := os.Getenv(EnvClassifierMaxPixels); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvClassifierMaxPixels, err)
		}
		c.MaxPixels = n
	}
	if v := os.Getenv(EnvClassifierCatalogKey); v != "" {
		c.CatalogKey = v
	}
	if v := os.Getenv(EnvClassifierLabelsKey); v != "" {
		c.LabelsKey = v
	}
	if v := os.Getenv(EnvClassifierTempDir); v != "" {
		c.TempDir = v
	}
	return nil
}

func (c *ClassifierConfig) validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if t := *c.Threshold; t < 0 || t > 1 {
		return fmt.Errorf("threshold must be within [0, 1]: %v", t)
	}
	if c.ImageSize <= 0 {
		return fmt.Errorf("image_size must be positive: %d", c.ImageSize)
	}
	if c.MaxPixels <= 0 {
		return fmt.Errorf("max_pixels must be positive: %d", c.MaxPixels)
	}
	return nil
}
