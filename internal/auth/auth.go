// Package auth implements the shared-secret session token scheme.
//
// The token is deterministic: sha256 over the password and a session
// secret, hex encoded. There is one shared password and no per-user
// identity; possession of the token is the whole authorization model.
// The scheme sits behind the Authenticator interface so a stronger one
// (per-user credentials, constant-time compare) can replace it without
// touching the access gate.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/stillframe/stillframe-server/internal/errors"
)

const (
	// CookieName is the fixed session cookie name.
	CookieName = "stillframe_session"

	// CookieMaxAge is the session lifetime enforced by the cookie itself;
	// the server performs no additional expiry tracking.
	CookieMaxAge = 8 * time.Hour

	// applicationSalt is the fallback salt used to derive a session
	// secret when the operator supplies none. It is a known weak
	// default: two deployments sharing a password and no SESSION_SECRET
	// produce the same token. Acceptable here because the password is
	// the real secret.
	applicationSalt = "stillframe-session-v1"
)

// Authenticator validates login submissions and session tokens.
type Authenticator interface {
	// Login checks a submitted password and returns the session token on
	// success. Empty submissions fail validation before hashing; wrong
	// passwords fail with an auth mismatch.
	Login(password string) (string, error)

	// Valid reports whether a presented token matches the session.
	Valid(token string) bool
}

// SharedSecret is the deterministic single-password Authenticator.
type SharedSecret struct {
	secret   string
	expected string
}

var _ Authenticator = (*SharedSecret)(nil)

// NewSharedSecret builds the authenticator for the configured password.
// secret overrides the session secret; when empty it is derived from the
// password and the application salt.
func NewSharedSecret(password, secret string) (*SharedSecret, error) {
	if password == "" {
		return nil, errors.Validation("gallery password must be configured")
	}
	if secret == "" {
		secret = DeriveSecret(password)
	}
	return &SharedSecret{
		secret:   secret,
		expected: deriveToken(password, secret),
	}, nil
}

// DeriveSecret computes the default session secret for a password.
func DeriveSecret(password string) string {
	return hashHex(password + applicationSalt)
}

// deriveToken computes the session token for a password and secret.
func deriveToken(password, secret string) string {
	return hashHex(password + "|" + secret)
}

func hashHex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Login implements Authenticator.
func (a *SharedSecret) Login(password string) (string, error) {
	if password == "" {
		return "", errors.Validation("password is required")
	}
	token := deriveToken(password, a.secret)
	// Plain comparison, not constant-time: the shared-password model
	// already leaks nothing an attacker cannot get by submitting guesses.
	if token != a.expected {
		return "", errors.AuthMismatch("incorrect password")
	}
	return token, nil
}

// Valid implements Authenticator.
func (a *SharedSecret) Valid(token string) bool {
	return token != "" && token == a.expected
}

// SessionCookie builds the cookie carrying a freshly issued token.
func SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearedCookie builds the cookie that removes the session.
func ClearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// TokenFromRequest extracts the session token from the request cookie.
// Returns "" when the cookie is absent.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
