package storage

import (
	"fmt"
	"os"
)

// Supported storage providers.
const (
	ProviderLocal = "local"
	ProviderAzure = "azure"
	ProviderS3    = "s3"
)

// Config selects and parameterizes the artifact store.
// Container names the Azure container or S3 bucket.
type Config struct {
	Provider         string `toml:"provider"`
	Root             string `toml:"root"`
	Container        string `toml:"container"`
	ConnectionString string `toml:"connection_string"`
	AccountURL       string `toml:"account_url"`
	Endpoint         string `toml:"endpoint"`
	Region           string `toml:"region"`
	AccessKey        string `toml:"access_key"`
	SecretKey        string `toml:"secret_key"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Provider         string
	Root             string
	Container        string
	ConnectionString string
	AccountURL       string
	Endpoint         string
	Region           string
	AccessKey        string
	SecretKey        string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	merge(&c.Provider, overlay.Provider)
	merge(&c.Root, overlay.Root)
	merge(&c.Container, overlay.Container)
	merge(&c.ConnectionString, overlay.ConnectionString)
	merge(&c.AccountURL, overlay.AccountURL)
	merge(&c.Endpoint, overlay.Endpoint)
	merge(&c.Region, overlay.Region)
	merge(&c.AccessKey, overlay.AccessKey)
	merge(&c.SecretKey, overlay.SecretKey)
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderLocal
	}
	if c.Root == "" {
		c.Root = "data"
	}
	if c.Container == "" {
		c.Container = "artifacts"
	}
	if c.Region == "" {
		c.Region = "us-east-1"
	}
}

func (c *Config) loadEnv(env *Env) {
	set := func(dst *string, name string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	set(&c.Provider, env.Provider)
	set(&c.Root, env.Root)
	set(&c.Container, env.Container)
	set(&c.ConnectionString, env.ConnectionString)
	set(&c.AccountURL, env.AccountURL)
	set(&c.Endpoint, env.Endpoint)
	set(&c.Region, env.Region)
	set(&c.AccessKey, env.AccessKey)
	set(&c.SecretKey, env.SecretKey)
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderLocal:
		if c.Root == "" {
			return fmt.Errorf("root required for local provider")
		}
	case ProviderAzure:
		if c.ConnectionString == "" && c.AccountURL == "" {
			return fmt.Errorf("connection_string or account_url required for azure provider")
		}
	case ProviderS3:
		if c.Container == "" {
			return fmt.Errorf("container required for s3 provider")
		}
	default:
		return fmt.Errorf("unknown storage provider: %q", c.Provider)
	}
	return nil
}
