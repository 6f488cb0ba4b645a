// Package scalar serves the Scalar API reference page for the OpenAPI document.
package scalar

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/heritage/pkg/module"
)

//go:embed index.html
var staticFS embed.FS

var index = template.Must(template.ParseFS(staticFS, "index.html"))

// NewModule creates a module at prefix whose index page renders the document at specURL.
func NewModule(prefix, title, specURL string) *module.Module {
	return module.New(prefix, buildRouter(title, specURL))
}

func buildRouter(title, specURL string) http.Handler {
	mux := http.NewServeMux()
	data := map[string]string{"Title": title, "SpecURL": specURL}

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		index.Execute(w, data)
	})

	return mux
}
