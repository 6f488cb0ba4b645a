package api

import (
	"github.com/JaimeStill/heritage/internal/config"
	"github.com/JaimeStill/heritage/internal/infrastructure"
	"github.com/JaimeStill/heritage/pkg/pagination"
)

// Runtime extends Infrastructure with the configuration the domain systems need.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Classifier config.ClassifierConfig
	Generator  config.GeneratorConfig
}

// NewRuntime creates a runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Cache:     infra.Cache,
		},
		Pagination: cfg.API.Pagination,
		Classifier: cfg.Classifier,
		Generator:  cfg.Generator,
	}
}
