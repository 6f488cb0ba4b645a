package api_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/heritage/internal/api"
	"github.com/JaimeStill/heritage/internal/config"
	"github.com/JaimeStill/heritage/internal/infrastructure"
	"github.com/JaimeStill/heritage/internal/sites"
	"github.com/JaimeStill/heritage/pkg/cache"
	"github.com/JaimeStill/heritage/pkg/pagination"
	"github.com/JaimeStill/heritage/pkg/storage"
)

var discard = slog.New(slog.DiscardHandler)

const catalogDoc = `{
	"Taj Mahal": {"history": "Mughal mausoleum.", "video": "https://www.youtube.com/embed/taj"},
	"Hampi": {"overview": "Vijayanagara ruins."},
	"Petra": {"facts": ["Rose city", "Nabataean"]}
}`

func testConfig(t *testing.T, root string) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Version: "0.1.0",
		API: config.APIConfig{
			BasePath:   "/api",
			Pagination: pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		},
		Storage: storage.Config{Provider: storage.ProviderLocal, Root: root},
		Cache:   cache.Config{Provider: cache.ProviderNone},
		Classifier: config.ClassifierConfig{
			Endpoint:   "http://127.0.0.1:1/v1/models/heritage:predict",
			Timeout:    "1s",
			Threshold:  new(0.8),
			ImageSize:  8,
			CatalogKey: "site_info.json",
			TempDir:    t.TempDir(),
		},
	}
	require.NoError(t, cfg.API.OpenAPI.Finalize(nil))
	return cfg
}

func setup(t *testing.T, files map[string]string) (*config.Config, *api.Runtime) {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
	}

	cfg := testConfig(t, root)
	infra, err := infrastructure.NewWithLogger(cfg, discard)
	require.NoError(t, err)
	return cfg, api.NewRuntime(cfg, infra)
}

func TestNewRuntime(t *testing.T) {
	cfg, runtime := setup(t, nil)

	assert.Equal(t, cfg.API.Pagination, runtime.Pagination)
	assert.Equal(t, cfg.Classifier.CatalogKey, runtime.Classifier.CatalogKey)
	assert.NotNil(t, runtime.Logger)
	assert.NotNil(t, runtime.Storage)
	assert.NotNil(t, runtime.Cache)
	assert.Nil(t, runtime.Database)
}

func TestNewDomainCatalogOrderLabels(t *testing.T) {
	_, runtime := setup(t, map[string]string{"site_info.json": catalogDoc})

	domain, err := api.NewDomain(context.Background(), runtime)
	require.NoError(t, err)

	assert.Equal(t, []string{"Taj Mahal", "Hampi", "Petra"}, domain.Catalog.Keys())
	assert.NotNil(t, domain.Recognition)
	assert.NotNil(t, domain.Sites)
	assert.NotNil(t, domain.Predictions)
}

func TestNewDomainLabelsArtifact(t *testing.T) {
	_, runtime := setup(t, map[string]string{
		"site_info.json": catalogDoc,
		"labels.yaml":    "- Hampi\n- Petra\n- Taj Mahal\n",
	})
	runtime.Classifier.LabelsKey = "labels.yaml"

	_, err := api.NewDomain(context.Background(), runtime)
	require.NoError(t, err)
}

func TestNewDomainMissingArtifacts(t *testing.T) {
	t.Run("catalog", func(t *testing.T) {
		_, runtime := setup(t, nil)
		_, err := api.NewDomain(context.Background(), runtime)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("labels", func(t *testing.T) {
		_, runtime := setup(t, map[string]string{"site_info.json": catalogDoc})
		runtime.Classifier.LabelsKey = "labels.yaml"
		_, err := api.NewDomain(context.Background(), runtime)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestNewDomainSitesUseCatalog(t *testing.T) {
	_, runtime := setup(t, map[string]string{"site_info.json": catalogDoc})

	domain, err := api.NewDomain(context.Background(), runtime)
	require.NoError(t, err)

	info, err := domain.Sites.Info(context.Background(), "Petra")
	require.NoError(t, err)
	assert.Equal(t, &sites.Info{Facts: "Rose city; Nabataean"}, info)
}

func TestNewModule(t *testing.T) {
	cfg, runtime := setup(t, map[string]string{"site_info.json": catalogDoc})
	domain, err := api.NewDomain(context.Background(), runtime)
	require.NoError(t, err)

	m, err := api.NewModule(cfg, runtime, domain, domain.Sites.Handler().Routes())
	require.NoError(t, err)
	assert.Equal(t, "/api", m.Prefix())

	t.Run("predictions list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.Serve(rec, httptest.NewRequest("GET", "/api/predictions", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var page pagination.PageResult[json.RawMessage]
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
		assert.Zero(t, page.Total)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("openapi document", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.Serve(rec, httptest.NewRequest("GET", "/api/openapi.json", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var doc struct {
			Paths      map[string]json.RawMessage `json:"paths"`
			Components struct {
				Schemas map[string]json.RawMessage `json:"schemas"`
			} `json:"components"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))
		assert.Contains(t, doc.Paths, "/api/predictions")
		assert.Contains(t, doc.Paths, "/api/predictions/{id}")
		assert.Contains(t, doc.Paths, "/site/{name}")
		assert.Contains(t, doc.Components.Schemas, "Prediction")
		assert.Contains(t, doc.Components.Schemas, "SiteInfo")
	})
}

