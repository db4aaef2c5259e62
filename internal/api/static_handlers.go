package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/stillframe/stillframe-server/internal/http/response"
)

// handleManifest serves the manifest document for the client renderer.
// GET /manifest.json
func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	path := s.cfg.Gallery.ManifestPath
	if _, err := os.Stat(path); err != nil {
		s.logger.Warn("manifest not available", "path", path, "error", err)
		response.NotFound(w, "manifest not found", s.logger)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	http.ServeFile(w, r, path)
}

// handleStatic serves gallery assets from the web root (gated).
// GET /*
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	s.serveFromRoot(w, r, r.URL.Path)
}

// handlePublicAsset serves the small public set the login page needs
// (stylesheet, favicon) without a session.
func (s *Server) handlePublicAsset(w http.ResponseWriter, r *http.Request) {
	s.serveFromRoot(w, r, r.URL.Path)
}

// serveFromRoot resolves urlPath inside the web root and serves it.
// Traversal attempts fail closed with a generic not-found; directories
// resolve to their index.html and are never listed.
func (s *Server) serveFromRoot(w http.ResponseWriter, r *http.Request, urlPath string) {
	root := s.cfg.Gallery.WebRoot

	// Rooted clean collapses any ".." segments before joining.
	clean := filepath.Clean("/" + filepath.FromSlash(urlPath))
	full := filepath.Join(root, clean)

	// Containment check: the resolved path must stay inside the root.
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(full)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		full = filepath.Join(full, "index.html")
		if _, err := os.Stat(full); err != nil {
			http.NotFound(w, r)
			return
		}
	}

	http.ServeFile(w, r, full)
}
