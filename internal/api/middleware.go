package api

import (
	"net/http"

	"github.com/stillframe/stillframe-server/internal/auth"
)

// requireSession is the access gate: every request through it must carry
// a valid session cookie. Unauthenticated requests are redirected to the
// login page. The original destination is not preserved across login; a
// known limitation kept for simplicity.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromRequest(r)
		if !s.auth.Valid(token) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
