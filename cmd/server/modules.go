package main

import (
	"context"
	"net/http"

	"github.com/JaimeStill/heritage/internal/api"
	"github.com/JaimeStill/heritage/internal/config"
	"github.com/JaimeStill/heritage/internal/infrastructure"
	"github.com/JaimeStill/heritage/pkg/handlers"
	"github.com/JaimeStill/heritage/pkg/middleware"
	"github.com/JaimeStill/heritage/pkg/module"
	"github.com/JaimeStill/heritage/pkg/routes"
	"github.com/JaimeStill/heritage/web/app"
	"github.com/JaimeStill/heritage/web/scalar"
)

// Modules holds the prefixed modules and the root route groups.
type Modules struct {
	API    *module.Module
	Scalar *module.Module
	Public []routes.Group
}

// NewModules builds the domain and every HTTP surface over it.
func NewModules(ctx context.Context, infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	runtime := api.NewRuntime(cfg, infra)

	domain, err := api.NewDomain(ctx, runtime)
	if err != nil {
		return nil, err
	}

	pages, err := app.New(domain.Recognition, "", cfg.API.MaxUploadSizeBytes(), infra.Logger)
	if err != nil {
		return nil, err
	}

	public := []routes.Group{
		pages.Routes(),
		domain.Sites.Handler().Routes(),
	}

	apiModule, err := api.NewModule(cfg, runtime, domain, public...)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar", cfg.API.OpenAPI.Title, cfg.API.BasePath+"/openapi.json")
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
		Public: public,
	}, nil
}

// Mount attaches the modules and registers the root routes on router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
	router.Handle(m.Public...)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()
	router.Use(middleware.Logger(infra.Logger))

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	return router
}
