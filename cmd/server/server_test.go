package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/heritage/internal/config"
	"github.com/JaimeStill/heritage/internal/infrastructure"
)

const catalogDoc = `{"Taj Mahal": {"history": "Mughal mausoleum."}, "Hampi": {"overview": "Ruins."}}`

func newTestRouter(t *testing.T) (http.Handler, *infrastructure.Infrastructure) {
	t.Helper()
	return newTestRouterWith(t, catalogDoc, nil)
}

// newTestRouterWith serves doc as the site catalog and applies env after isolating the host environment.
func newTestRouterWith(t *testing.T, doc string, env map[string]string) (http.Handler, *infrastructure.Infrastructure) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(
		"[storage]\nroot = \""+filepath.ToSlash(dir)+"\"\n",
	), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site_info.json"), []byte(doc), 0644))

	for _, name := range []string{
		config.EnvHeritageEnv, config.EnvGeneratorAPIKey, config.EnvGeminiAPIKey,
		config.EnvClassifierEndpoint, config.EnvClassifierMaxPixels,
		"HERITAGE_DB_ENABLED", "HERITAGE_STORAGE_PROVIDER", "HERITAGE_STORAGE_ROOT", "HERITAGE_CACHE_PROVIDER",
	} {
		t.Setenv(name, "")
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := config.LoadDir(dir)
	require.NoError(t, err)

	infra, err := infrastructure.NewWithLogger(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	modules, err := NewModules(context.Background(), infra, cfg)
	require.NoError(t, err)

	router := buildRouter(infra)
	modules.Mount(router)
	return router, infra
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func TestHealthAndReadiness(t *testing.T) {
	router, infra := newTestRouter(t)

	assert.Equal(t, http.StatusOK, get(t, router, "/healthz").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, router, "/readyz").Code)

	require.NoError(t, infra.Start())
	infra.Lifecycle.WaitForStartup()
	assert.Equal(t, http.StatusOK, get(t, router, "/readyz").Code)
}

func TestRootRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	home := get(t, router, "/")
	require.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), `action="/predict"`)

	site := get(t, router, "/site/Taj%20Mahal")
	require.Equal(t, http.StatusOK, site.Code)
	var info map[string]string
	require.NoError(t, json.NewDecoder(site.Body).Decode(&info))
	assert.Equal(t, "Mughal mausoleum.", info["history"])

	missing := get(t, router, "/site/Atlantis")
	require.Equal(t, http.StatusOK, missing.Code)
	assert.Contains(t, missing.Body.String(), "Site info not found")

	anchor := get(t, router, "/ar/Hampi/anchor")
	require.Equal(t, http.StatusOK, anchor.Code)
	assert.Contains(t, anchor.Body.String(), `preset="hiro"`)
}

func TestPredictWithoutFile(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httptest.NewRequest("POST", "/predict", strings.NewReader("")))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"error":"No file uploaded"}`, rec.Body.String())
}

func TestSiteReturnsCatalogEntryWithoutGeneration(t *testing.T) {
	router, _ := newTestRouterWith(t, `{"Taj Mahal":{"history":"H","overview":"O","facts":"F","video":"V"}}`, nil)

	rec := get(t, router, "/site/Taj%20Mahal")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"history":"H","overview":"O","facts":"F","video":"V"}`, rec.Body.String())
}

func TestPredictRejectsOversizedImage(t *testing.T) {
	var calls atomic.Int32
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"predictions": [[1, 0]]}`))
	}))
	defer model.Close()

	router, _ := newTestRouterWith(t, catalogDoc, map[string]string{
		config.EnvClassifierEndpoint:  model.URL,
		config.EnvClassifierMaxPixels: "1000000",
	})

	var img bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	require.NoError(t, enc.Encode(&img, image.NewGray(image.Rect(0, 0, 2048, 2048))))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "panorama.png")
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/predict", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int32(0), calls.Load())
}

func TestModules(t *testing.T) {
	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, get(t, router, "/api/predictions").Code)
	assert.Equal(t, http.StatusOK, get(t, router, "/api/openapi.json").Code)
	assert.Equal(t, http.StatusOK, get(t, router, "/scalar").Code)
}
