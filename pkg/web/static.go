package web

import (
	"io/fs"
	"net/http"
)

// Static returns a handler that serves files from subdir of fsys with urlPrefix stripped.
func Static(fsys fs.FS, subdir, urlPrefix string) http.HandlerFunc {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		panic("failed to create sub-filesystem: " + err.Error())
	}
	server := http.StripPrefix(urlPrefix, http.FileServer(http.FS(sub)))
	return server.ServeHTTP
}
