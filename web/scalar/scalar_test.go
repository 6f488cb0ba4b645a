package scalar_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/heritage/web/scalar"
)

func TestModuleServesIndex(t *testing.T) {
	m := scalar.NewModule("/scalar", "Heritage API", "/api/openapi.json")
	rec := httptest.NewRecorder()

	m.Serve(rec, httptest.NewRequest("GET", "/scalar", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-url="/api/openapi.json"`)
	assert.Contains(t, rec.Body.String(), "<title>Heritage API</title>")
}

func TestModuleUnknownPath(t *testing.T) {
	m := scalar.NewModule("/scalar", "Heritage API", "/api/openapi.json")
	rec := httptest.NewRecorder()

	m.Serve(rec, httptest.NewRequest("GET", "/scalar/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
