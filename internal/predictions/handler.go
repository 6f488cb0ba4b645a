package predictions

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/heritage/pkg/handlers"
	"github.com/JaimeStill/heritage/pkg/openapi"
	"github.com/JaimeStill/heritage/pkg/pagination"
	"github.com/JaimeStill/heritage/pkg/routes"
)

// Handler provides HTTP endpoints for prediction history.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "predictions"),
		pagination: pagination,
	}
}

// Routes returns the route group for prediction endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/predictions",
		Tags:   []string{"Predictions"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: listOp},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: findOp},
		},
	}
}

// List returns a page of predictions, newest first unless sort is given.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single prediction by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	p, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// Schemas returns the component schemas referenced by prediction operations.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Prediction": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"label":      {Type: "string", Nullable: true, Description: "Recognized site, null when unknown"},
				"confidence": {Type: "number", Format: "double"},
				"known":      {Type: "boolean"},
				"filename":   {Type: "string"},
				"image_hash": {Type: "string", Description: "Perceptual difference hash of the upload"},
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
		"PredictionPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Prediction")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}

var listOp = &openapi.Operation{
	Summary: "List predictions",
	Parameters: []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number (1-based)", false),
		openapi.QueryParam("page_size", "integer", "Results per page", false),
		openapi.QueryParam("search", "string", "Match label or filename", false),
		openapi.QueryParam("sort", "string", "Comma-separated fields, '-' prefix for descending", false),
		openapi.QueryParam("label", "string", "Exact site label", false),
		openapi.QueryParam("known", "boolean", "Filter by recognition outcome", false),
	},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Prediction page", "PredictionPage"),
		500: openapi.ResponseJSON("Query failed", "Error"),
	},
}

var findOp = &openapi.Operation{
	Summary:    "Find prediction",
	Parameters: []*openapi.Parameter{openapi.PathParam("id", "string", "uuid", "Prediction ID")},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Prediction", "Prediction"),
		400: openapi.ResponseJSON("Malformed ID", "Error"),
		404: openapi.ResponseJSON("Not found", "Error"),
	},
}
