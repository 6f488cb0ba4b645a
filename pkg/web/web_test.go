package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/heritage/pkg/web"
)

var testFS = fstest.MapFS{
	"layouts/app.html":  {Data: []byte(`{{ define "app" }}<title>{{ .Title }}</title><base href="{{ .BasePath }}">{{ template "content" . }}{{ end }}`)},
	"views/ar.html":     {Data: []byte(`{{ define "content" }}<h1>{{ .Data }}</h1>{{ end }}`)},
	"views/broken.html": {Data: []byte(`{{ define "content" }}{{ .Data.Missing }}{{ end }}`)},
	"static/app.css":    {Data: []byte(`body{}`)},
}

var (
	arView     = web.ViewDef{Route: "/ar", Template: "ar.html", Title: "AR"}
	brokenView = web.ViewDef{Route: "/broken", Template: "broken.html", Title: "Broken"}
)

func newSet(t *testing.T) *web.TemplateSet {
	t.Helper()
	ts, err := web.NewTemplateSet(testFS, "layouts/*.html", "views", "/", []web.ViewDef{arView, brokenView})
	require.NoError(t, err)
	return ts
}

func TestRenderEscapesData(t *testing.T) {
	ts := newSet(t)
	rec := httptest.NewRecorder()

	require.NoError(t, ts.Render(rec, http.StatusOK, "app", arView, "<Petra>"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<title>AR</title>")
	assert.Contains(t, rec.Body.String(), "&lt;Petra&gt;")
}

func TestRenderStatus(t *testing.T) {
	ts := newSet(t)
	rec := httptest.NewRecorder()

	require.NoError(t, ts.Render(rec, http.StatusInternalServerError, "app", arView, "x"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRenderUnknownView(t *testing.T) {
	ts := newSet(t)
	rec := httptest.NewRecorder()

	err := ts.Render(rec, http.StatusOK, "app", web.ViewDef{Template: "nope.html"}, nil)
	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRenderTemplateErrorIsClean500(t *testing.T) {
	ts := newSet(t)
	rec := httptest.NewRecorder()

	err := ts.Render(rec, http.StatusOK, "app", brokenView, "not a struct")
	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<title>")
}

func TestStatic(t *testing.T) {
	handler := web.Static(testFS, "static", "/static/")
	rec := httptest.NewRecorder()

	handler(rec, httptest.NewRequest("GET", "/static/app.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
}
