package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog/hlog"
)

// spaHandler serves the built frontend from dir. Paths that are not files fall back
// to index.html so client-side routes such as /login resolve. Non-GET requests
// that reach it get 405.
func spaHandler(dir string) http.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		p := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			serveFile(w, r, p)
			return
		}
		serveFile(w, r, index)
	}
}

// serveFile writes the file at p. Unlike http.ServeFile it does not inspect the
// request path, so cleaned traversal paths still get the fallback.
func serveFile(w http.ResponseWriter, r *http.Request, p string) {
	f, err := os.Open(p)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("file", p).Msg("static file unavailable")
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("file", p).Msg("static file unavailable")
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, filepath.Base(p), info.ModTime(), f)
}
