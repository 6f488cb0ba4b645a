package routes

import (
	"net/http"

	"github.com/JaimeStill/heritage/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler.
// OpenAPI is optional; routes without it are left out of the generated spec.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
