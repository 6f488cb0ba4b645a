package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/heritage/pkg/formatting"
	"github.com/JaimeStill/heritage/pkg/middleware"
	"github.com/JaimeStill/heritage/pkg/module"
	"github.com/JaimeStill/heritage/pkg/openapi"
	"github.com/JaimeStill/heritage/pkg/pagination"
)

const (
	EnvAPIBasePath      = "HERITAGE_API_BASE_PATH"
	EnvAPIMaxUploadSize = "HERITAGE_API_MAX_UPLOAD_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "HERITAGE_CORS_ENABLED",
	Origins:          "HERITAGE_CORS_ORIGINS",
	AllowedMethods:   "HERITAGE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "HERITAGE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "HERITAGE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "HERITAGE_CORS_MAX_AGE",
}

var paginationEnv = &pagination.Env{
	DefaultPageSize: "HERITAGE_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "HERITAGE_PAGINATION_MAX_PAGE_SIZE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "HERITAGE_OPENAPI_TITLE",
	Description: "HERITAGE_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, upload limits, CORS, pagination, and OpenAPI settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes. Call after Finalize.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxUploadSize)
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "16MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *APIConfig) validate() error {
	if err := module.ValidatePrefix(c.BasePath); err != nil {
		return fmt.Errorf("base_path: %w", err)
	}
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	return nil
}
