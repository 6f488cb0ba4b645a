package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/heritage/pkg/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestApplyOrder(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	sys := middleware.New()
	sys.Use(tag("first"))
	sys.Use(tag("second"))

	rec := httptest.NewRecorder()
	sys.Apply(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/site/Petra", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, buf.String(), "status=418")
	assert.Contains(t, buf.String(), "uri=/site/Petra")
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		cfg        middleware.CORSConfig
		origin     string
		wantOrigin string
	}{
		{
			name:       "disabled",
			cfg:        middleware.CORSConfig{Enabled: false, Origins: []string{"http://a.test"}},
			origin:     "http://a.test",
			wantOrigin: "",
		},
		{
			name:       "allowed origin",
			cfg:        middleware.CORSConfig{Enabled: true, Origins: []string{"http://a.test"}},
			origin:     "http://a.test",
			wantOrigin: "http://a.test",
		},
		{
			name:       "rejected origin",
			cfg:        middleware.CORSConfig{Enabled: true, Origins: []string{"http://a.test"}},
			origin:     "http://b.test",
			wantOrigin: "",
		},
		{
			name:       "wildcard",
			cfg:        middleware.CORSConfig{Enabled: true, Origins: []string{"*"}},
			origin:     "http://b.test",
			wantOrigin: "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.cfg.Finalize(nil))

			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			middleware.CORS(&tt.cfg)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := middleware.CORSConfig{Enabled: true, Origins: []string{"http://a.test"}}
	require.NoError(t, cfg.Finalize(nil))

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest("OPTIONS", "/predict", nil)
	req.Header.Set("Origin", "http://a.test")
	rec := httptest.NewRecorder()

	middleware.CORS(&cfg)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called)
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSConfigEnv(t *testing.T) {
	t.Setenv("TEST_CORS_ENABLED", "true")
	t.Setenv("TEST_CORS_ORIGINS", " http://a.test , ,http://b.test")

	var cfg middleware.CORSConfig
	require.NoError(t, cfg.Finalize(&middleware.CORSEnv{
		Enabled: "TEST_CORS_ENABLED",
		Origins: "TEST_CORS_ORIGINS",
	}))

	assert.True(t, cfg.Enabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins)
	assert.Equal(t, 3600, cfg.MaxAge)
}
