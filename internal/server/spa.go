package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// handleSPA serves the built client. A path containing a dot anywhere is a
// static asset and 404s when missing; anything else gets index.html so the
// client router can handle it.
func handleSPA(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, ".") {
			p := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
			if info, err := os.Stat(p); err != nil || info.IsDir() {
				http.NotFound(w, r)
				return
			}
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	}
}
