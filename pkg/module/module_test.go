package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/heritage/pkg/module"
	"github.com/JaimeStill/heritage/pkg/routes"
)

func TestNewValidPrefix(t *testing.T) {
	for _, prefix := range []string{"/api", "/site", "/ar"} {
		t.Run(prefix, func(t *testing.T) {
			m := module.New(prefix, http.NewServeMux())
			assert.Equal(t, prefix, m.Prefix())
		})
	}
}

func TestNewInvalidPrefixPanics(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"empty", ""},
		{"no leading slash", "api"},
		{"nested path", "/api/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { module.New(tt.prefix, http.NewServeMux()) })
		})
	}
}

func TestServePrefixStripping(t *testing.T) {
	mux := http.NewServeMux()

	var receivedPath string
	mux.HandleFunc("GET /predictions", func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	router := module.NewRouter()
	router.Mount(module.New("/api", mux))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/predictions/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/predictions", receivedPath)
}

func TestNativeRoutesAndMiddleware(t *testing.T) {
	router := module.NewRouter()

	var wrapped bool
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped = true
			next.ServeHTTP(w, r)
		})
	})

	router.Handle(routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/ar/{site}/anchor", Handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(r.PathValue("site")))
			}},
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/ar/Petra/anchor", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Petra", rec.Body.String())
	assert.True(t, wrapped)
}

func TestModuleMiddlewareIsolation(t *testing.T) {
	router := module.NewRouter()

	var nativeHits int
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nativeHits++
			next.ServeHTTP(w, r)
		})
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {})
	router.Mount(module.New("/api", mux))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, nativeHits)
}

func TestValidatePrefix(t *testing.T) {
	assert.NoError(t, module.ValidatePrefix("/api"))
	for _, prefix := range []string{"", "/", "api", "/api/v1"} {
		assert.ErrorIs(t, module.ValidatePrefix(prefix), module.ErrInvalidPrefix, prefix)
	}
}
