package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/heritage/internal/config"
	"github.com/JaimeStill/heritage/internal/predictions"
	"github.com/JaimeStill/heritage/internal/sites"
	"github.com/JaimeStill/heritage/pkg/openapi"
	"github.com/JaimeStill/heritage/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	public []routes.Group,
) error {
	groups := []routes.Group{
		domain.Predictions.Handler().Routes(),
	}
	routes.Register(mux, groups...)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddSchemas(predictions.Schemas())
	spec.AddSchemas(sites.Schemas())
	routes.Describe(spec, "", public...)
	routes.Describe(spec, cfg.API.BasePath, groups...)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))
	return nil
}
