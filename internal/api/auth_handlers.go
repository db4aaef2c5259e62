package api

import (
	"embed"
	"html/template"
	"net"
	"net/http"

	"github.com/stillframe/stillframe-server/internal/auth"
	"github.com/stillframe/stillframe-server/internal/errors"
	"github.com/stillframe/stillframe-server/internal/http/response"
)

//go:embed templates/*.html
var templates embed.FS

var loginTemplate = template.Must(template.ParseFS(templates, "templates/login.html"))

// loginPageData contains data for the login page template.
type loginPageData struct {
	Error   bool
	Message string
}

// handleHealth reports liveness.
// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{"status": "ok"}, s.logger)
}

// handleLoginPage serves the login form.
// GET /login
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	data := loginPageData{}
	if r.URL.Query().Get("error") == "1" {
		data.Error = true
		data.Message = "Incorrect password. Please try again."
	}
	s.renderLogin(w, http.StatusOK, data)
}

// handleLogin checks the submitted password and issues the session cookie.
// POST /login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.Allow(clientIP(r)) {
		s.logger.Warn("login throttled", "ip", clientIP(r))
		s.renderLogin(w, http.StatusTooManyRequests, loginPageData{
			Error:   true,
			Message: "Too many attempts. Please wait a moment and try again.",
		})
		return
	}

	token, err := s.auth.Login(r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrValidation):
			// Empty submission: re-render with a message rather than redirect.
			s.renderLogin(w, http.StatusBadRequest, loginPageData{
				Error:   true,
				Message: "Please enter the gallery password.",
			})
		case errors.Is(err, errors.ErrAuthMismatch):
			http.Redirect(w, r, "/login?error=1", http.StatusSeeOther)
		default:
			s.logger.Error("login failed", "error", err)
			response.InternalError(w, "internal server error", s.logger)
		}
		return
	}

	http.SetCookie(w, auth.SessionCookie(token))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout clears the session cookie.
// POST /logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearedCookie())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// renderLogin writes the login page with the given status.
func (s *Server) renderLogin(w http.ResponseWriter, status int, data loginPageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := loginTemplate.Execute(w, data); err != nil {
		s.logger.Error("failed to render login page", "error", err)
	}
}

// clientIP extracts the client address for rate limiting. RemoteAddr has
// already been rewritten by the RealIP middleware.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
