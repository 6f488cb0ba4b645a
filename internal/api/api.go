// Package api assembles the domain systems and the JSON API module.
package api

import (
	"net/http"

	"github.com/JaimeStill/heritage/internal/config"
	"github.com/JaimeStill/heritage/pkg/middleware"
	"github.com/JaimeStill/heritage/pkg/module"
	"github.com/JaimeStill/heritage/pkg/routes"
)

// NewModule creates the API module serving prediction history and the OpenAPI
// document. public lists the root route groups to include in that document.
func NewModule(cfg *config.Config, runtime *Runtime, domain *Domain, public ...routes.Group) (*module.Module, error) {
	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, public); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
