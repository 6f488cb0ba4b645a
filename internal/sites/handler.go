package sites

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/heritage/pkg/handlers"
	"github.com/JaimeStill/heritage/pkg/openapi"
	"github.com/JaimeStill/heritage/pkg/routes"
)

const notFoundMessage = "Site info not found"

// Handler serves site information as JSON.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler for sys.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "sites"),
	}
}

// Routes returns the route group for site information.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/site",
		Tags:   []string{"Sites"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{name}", Handler: h.Info, OpenAPI: infoOp},
		},
	}
}

// Info writes the site's content. A site with no content is still a 200,
// carrying {"error": "Site info not found"} for the page script to detect.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	info, err := h.sys.Info(r.Context(), name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.logger.Info("no content for site", "site", name)
			handlers.RespondJSON(w, http.StatusOK, map[string]string{"error": notFoundMessage})
			return
		}
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, info)
}

// Schemas returns the component schemas referenced by site operations.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"SiteInfo": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"history":  {Type: "string"},
				"overview": {Type: "string"},
				"facts":    {Type: "string", Description: "Semicolon-separated facts"},
				"video":    {Type: "string", Description: "Embeddable video URL"},
				"error":    {Type: "string", Description: "Set to 'Site info not found' when no content exists"},
			},
		},
	}
}

var infoOp = &openapi.Operation{
	Summary:     "Get site information",
	Description: "Generated history, overview, and facts with catalog fallback. Unknown sites return 200 with an error field.",
	Parameters:  []*openapi.Parameter{openapi.PathParam("name", "string", "", "Site name")},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Site information or not-found marker", "SiteInfo"),
	},
}
