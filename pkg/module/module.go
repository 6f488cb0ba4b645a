// Package module mounts self-contained HTTP modules under single-level path prefixes.
package module

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/heritage/pkg/middleware"
)

// ErrInvalidPrefix reports a module prefix that is not a single "/name" segment.
var ErrInvalidPrefix = errors.New("invalid module prefix")

// Module strips its prefix from each request and delegates to an inner router
// wrapped in the module's own middleware stack.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
}

// New creates a Module at prefix (e.g. "/api"). It panics on a prefix that
// ValidatePrefix rejects; validate configured prefixes before calling.
func New(prefix string, router http.Handler) *Module {
	if err := ValidatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// ValidatePrefix accepts a single path segment with a leading slash.
func ValidatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("%w: empty", ErrInvalidPrefix)
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("%w: %q must start with /", ErrInvalidPrefix, prefix)
	case prefix == "/" || strings.Count(prefix, "/") != 1:
		return fmt.Errorf("%w: %q must be a single-level path", ErrInvalidPrefix, prefix)
	}
	return nil
}

// Handler returns the inner router wrapped with the module's middleware stack.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.router)
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Serve dispatches req to the inner router with the prefix removed from its path.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.Handler().ServeHTTP(w, stripPrefix(req, m.prefix))
}

// Use adds middleware to the module's stack.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

func stripPrefix(req *http.Request, prefix string) *http.Request {
	path := strings.TrimPrefix(req.URL.Path, prefix)
	if path == "" {
		path = "/"
	}

	r := req.Clone(req.Context())
	u := *req.URL
	u.Path = path
	u.RawPath = ""
	r.URL = &u
	return r
}

