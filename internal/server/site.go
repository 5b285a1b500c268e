package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/lightpack/internal/dom"
	"github.com/ziadkadry99/lightpack/internal/theme"
)

// handleSite serves files from the site directory. HTML pages are rendered
// with the client's theme preference applied to <body>.
func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	p := path.Clean("/" + r.URL.Path)
	full := filepath.Join(s.cfg.SiteDir, filepath.FromSlash(p))
	if fi, err := os.Stat(full); err == nil && fi.IsDir() {
		full = filepath.Join(full, "index.html")
	}

	if s.themes == nil || !isHTML(full) {
		http.ServeFile(w, r, full)
		return
	}

	f, err := os.Open(full)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		s.log.Warn("Unparsable page", zap.String("path", full), zap.Error(err))
		http.ServeFile(w, r, full)
		return
	}
	v, err := s.themes.Get(r.Context(), clientID(w, r))
	if err != nil {
		s.log.Warn("Theme lookup failed", zap.Error(err))
	}
	theme.Apply(doc, v)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(dom.Render(doc)))
}

func isHTML(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".html", ".htm":
		return true
	}
	return false
}
