// Package web renders server-side pages from pre-parsed Go templates and
// serves embedded static assets.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ViewDef defines a page with its route, template file, and title.
type ViewDef struct {
	Route    string
	Template string
	Title    string
}

// ViewData contains the data passed to page templates during rendering.
// BasePath enables portable URL generation in templates via {{ .BasePath }}.
type ViewData struct {
	Title    string
	BasePath string
	Data     any
}

// TemplateSet holds pre-parsed templates and a base path for URL generation.
// Templates are parsed once at startup.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses the layout templates matching layoutGlob and clones them
// for each view found under viewSubdir.
func NewTemplateSet(fsys fs.FS, layoutGlob, viewSubdir, basePath string, views []ViewDef) (*TemplateSet, error) {
	layouts, err := template.ParseFS(fsys, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	viewSub, err := fs.Sub(fsys, viewSubdir)
	if err != nil {
		return nil, err
	}

	viewTemplates := make(map[string]*template.Template, len(views))
	for _, v := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err := t.ParseFS(viewSub, v.Template); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", v.Template, err)
		}
		viewTemplates[v.Template] = t
	}

	return &TemplateSet{
		views:    viewTemplates,
		basePath: basePath,
	}, nil
}

// PageHandler returns an HTTP handler that renders the given view without page data.
func (ts *TemplateSet) PageHandler(layout string, view ViewDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts.Render(w, http.StatusOK, layout, view, nil)
	}
}

// Render executes the named layout for view with data and writes it with status.
// The page is rendered to a buffer first so a template error yields a clean 500.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, layout string, view ViewDef, data any) error {
	t, ok := ts.views[view.Template]
	if !ok {
		err := fmt.Errorf("template not found: %s", view.Template)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return err
	}

	var buf bytes.Buffer
	vd := ViewData{
		Title:    view.Title,
		BasePath: ts.basePath,
		Data:     data,
	}
	if err := t.ExecuteTemplate(&buf, layout, vd); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
