// Package app serves the browser-facing pages: the upload screen, the
// recognition result pages, and the marker-based AR view.
package app

import (
	"embed"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/JaimeStill/heritage/internal/recognition"
	"github.com/JaimeStill/heritage/pkg/handlers"
	"github.com/JaimeStill/heritage/pkg/openapi"
	"github.com/JaimeStill/heritage/pkg/routes"
	"github.com/JaimeStill/heritage/pkg/web"
)

//go:embed templates static
var content embed.FS

const (
	layout             = "app"
	noFileMessage      = "No file uploaded"
	classifyErrMessage = "We could not process this photo. Please try again."
	decodeErrMessage   = "The uploaded file is not a supported image."
)

var (
	homeView     = web.ViewDef{Route: "/{$}", Template: "home.html", Title: "Identify"}
	arView       = web.ViewDef{Template: "ar.html", Title: "Site"}
	notFoundView = web.ViewDef{Template: "not_found.html", Title: "Not recognized"}
	errorView    = web.ViewDef{Template: "error.html", Title: "Error"}
	anchorView   = web.ViewDef{Route: "/ar/{name}/anchor", Template: "ar_anchor.html", Title: "AR"}

	views = []web.ViewDef{homeView, arView, notFoundView, errorView, anchorView}
)

// SiteView is the data rendered on the AR result and anchor pages.
type SiteView struct {
	SiteName   string
	Percent    float64
	AnchorPath string
}

type errorPage struct {
	Message string
}

// App renders the application pages around a recognition system.
type App struct {
	templates   *web.TemplateSet
	recognition recognition.System
	maxUpload   int64
	logger      *slog.Logger
}

// New parses the embedded templates. basePath prefixes every generated link.
func New(rec recognition.System, basePath string, maxUpload int64, logger *slog.Logger) (*App, error) {
	ts, err := web.NewTemplateSet(content, "templates/layouts/*.html", "templates/views", basePath, views)
	if err != nil {
		return nil, err
	}

	return &App{
		templates:   ts,
		recognition: rec,
		maxUpload:   maxUpload,
		logger:      logger.With("handler", "app"),
	}, nil
}

// Routes returns the page routes and the static asset route.
func (a *App) Routes() routes.Group {
	return routes.Group{
		Tags: []string{"Pages"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: homeView.Route, Handler: a.templates.PageHandler(layout, homeView)},
			{Method: "POST", Pattern: "/predict", Handler: a.Predict, OpenAPI: predictOp},
			{Method: "GET", Pattern: anchorView.Route, Handler: a.Anchor},
			{Method: "GET", Pattern: "/static/", Handler: web.Static(content, "static", "/static/")},
		},
	}
}

// Predict classifies the uploaded "file" field. A request without a file gets a
// 200 JSON error and never reaches the classifier.
func (a *App) Predict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload)

	file, header, err := r.FormFile("file")
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, a.logger, http.StatusRequestEntityTooLarge, err)
			return
		}
		a.logger.Info("predict without file", "error", err)
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"error": noFileMessage})
		return
	}
	defer file.Close()

	d, err := a.recognition.Recognize(r.Context(), recognition.Upload{
		Filename: header.Filename,
		Body:     file,
	})
	if err != nil {
		status := recognition.MapHTTPStatus(err)
		msg := classifyErrMessage
		if status == http.StatusBadRequest {
			msg = decodeErrMessage
		}
		a.logger.Error("recognition failed", "status", status, "error", err)
		a.templates.Render(w, status, layout, errorView, errorPage{Message: msg})
		return
	}

	if !d.Known {
		a.templates.Render(w, http.StatusOK, layout, notFoundView, nil)
		return
	}

	a.templates.Render(w, http.StatusOK, layout, arView, newSiteView(d.Label, d.Confidence))
}

// Anchor renders the marker-based AR page for a site.
func (a *App) Anchor(w http.ResponseWriter, r *http.Request) {
	a.templates.Render(w, http.StatusOK, layout, anchorView, newSiteView(r.PathValue("name"), 0))
}

func newSiteView(name string, confidence float64) SiteView {
	return SiteView{
		SiteName:   name,
		Percent:    confidence * 100,
		AnchorPath: "/ar/" + url.PathEscape(name) + "/anchor",
	}
}

var predictOp = &openapi.Operation{
	Summary:     "Recognize a site from a photo",
	Description: "Returns an HTML page: the AR page on a confident match, otherwise the not-found page. A request without a file returns 200 JSON {\"error\": \"No file uploaded\"}.",
	RequestBody: openapi.MultipartFile("file", "Photograph of the site"),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseHTML("AR page, not-found page, or JSON error when no file was sent"),
		400: openapi.ResponseHTML("Upload is not a decodable image"),
		413: openapi.ResponseJSON("Upload exceeds the size limit", "Error"),
		500: openapi.ResponseHTML("Classification failed"),
	},
}
