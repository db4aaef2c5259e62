// Package api provides the HTTP server, access gate, and handlers for the Stillframe gallery.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stillframe/stillframe-server/internal/auth"
	"github.com/stillframe/stillframe-server/internal/config"
	"github.com/stillframe/stillframe-server/internal/ratelimit"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	cfg          *config.Config
	auth         auth.Authenticator
	loginLimiter *ratelimit.KeyedRateLimiter
	router       *chi.Mux
	logger       *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, authenticator auth.Authenticator, loginLimiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	s := &Server{
		cfg:          cfg,
		auth:         authenticator,
		loginLimiter: loginLimiter,
		router:       chi.NewRouter(),
		logger:       logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures all HTTP routes. Everything outside the public
// set sits behind the session gate.
func (s *Server) setupRoutes() {
	// Public: health, the login flow, and the assets the login page needs.
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/login", s.handleLoginPage)
	s.router.Post("/login", s.handleLogin)
	s.router.Post("/logout", s.handleLogout)
	s.router.Get("/styles.css", s.handlePublicAsset)
	s.router.Get("/favicon.ico", s.handlePublicAsset)

	// Gated: the manifest and every static gallery asset.
	s.router.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/manifest.json", s.handleManifest)
		r.Get("/*", s.handleStatic)
	})
}
