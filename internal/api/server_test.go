package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillframe/stillframe-server/internal/auth"
	"github.com/stillframe/stillframe-server/internal/config"
	"github.com/stillframe/stillframe-server/internal/ratelimit"
)

const testPassword = "hunter2"

// setupTestServer builds a server over a temp web root with a generous
// login limiter.
func setupTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	webRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(webRoot, "index.html"), []byte("<html>gallery</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(webRoot, "styles.css"), []byte("body{}"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(webRoot, "photos"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(webRoot, "photos", "beach_small.jpg"), []byte("jpegbytes"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(webRoot, "manifest.generated.json"), []byte(`{"photos":[]}`), 0644))

	cfg := &config.Config{
		Gallery: config.GalleryConfig{
			WebRoot:      webRoot,
			ManifestPath: filepath.Join(webRoot, "manifest.generated.json"),
		},
	}

	authenticator, err := auth.NewSharedSecret(testPassword, "")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(cfg, authenticator, ratelimit.New(100, 100), logger), webRoot
}

// sessionToken logs in with the shared password and returns the token.
func sessionToken(t *testing.T) string {
	t.Helper()
	a, err := auth.NewSharedSecret(testPassword, "")
	require.NoError(t, err)
	token, err := a.Login(testPassword)
	require.NoError(t, err)
	return token
}

func get(srv *Server, path string, token string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func TestHealthIsPublic(t *testing.T) {
	srv, _ := setupTestServer(t)
	w := get(srv, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestLoginPage(t *testing.T) {
	srv, _ := setupTestServer(t)

	t.Run("serves the form", func(t *testing.T) {
		w := get(srv, "/login", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="password"`)
	})

	t.Run("shows the failure message after a redirect", func(t *testing.T) {
		w := get(srv, "/login?error=1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Incorrect password")
	})
}

func TestLoginFlow(t *testing.T) {
	t.Run("correct password sets the session cookie", func(t *testing.T) {
		srv, _ := setupTestServer(t)
		w := postForm(srv, "/login", url.Values{"password": {testPassword}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, auth.CookieName, c.Name)
		assert.Equal(t, sessionToken(t), c.Value)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	})

	t.Run("wrong password redirects back with the error flag", func(t *testing.T) {
		srv, _ := setupTestServer(t)
		w := postForm(srv, "/login", url.Values{"password": {"wrong"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login?error=1", w.Header().Get("Location"))
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("empty password re-renders the form", func(t *testing.T) {
		srv, _ := setupTestServer(t)
		w := postForm(srv, "/login", url.Values{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "enter the gallery password")
	})
}

func TestLoginThrottled(t *testing.T) {
	webRoot := t.TempDir()
	cfg := &config.Config{Gallery: config.GalleryConfig{WebRoot: webRoot}}
	authenticator, err := auth.NewSharedSecret(testPassword, "")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewServer(cfg, authenticator, ratelimit.New(0.1, 1), logger)

	w := postForm(srv, "/login", url.Values{"password": {"wrong"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = postForm(srv, "/login", url.Values{"password": {testPassword}})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many attempts")
	assert.Empty(t, w.Result().Cookies())
}

func TestLogout(t *testing.T) {
	srv, _ := setupTestServer(t)
	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: sessionToken(t)})
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestAccessGate(t *testing.T) {
	srv, _ := setupTestServer(t)
	token := sessionToken(t)

	t.Run("no cookie redirects to login", func(t *testing.T) {
		w := get(srv, "/", "")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("garbage token redirects to login", func(t *testing.T) {
		w := get(srv, "/", "not-a-token")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("valid token serves the page", func(t *testing.T) {
		w := get(srv, "/", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "gallery")
	})

	t.Run("manifest is gated too", func(t *testing.T) {
		w := get(srv, "/manifest.json", "")
		assert.Equal(t, http.StatusSeeOther, w.Code)
	})

	t.Run("stylesheet stays public for the login page", func(t *testing.T) {
		w := get(srv, "/styles.css", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestManifestEndpoint(t *testing.T) {
	srv, webRoot := setupTestServer(t)
	token := sessionToken(t)

	t.Run("serves the document", func(t *testing.T) {
		w := get(srv, "/manifest.json", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.Contains(t, w.Body.String(), `"photos"`)
	})

	t.Run("missing manifest is a 404", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(webRoot, "manifest.generated.json")))
		w := get(srv, "/manifest.json", token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStaticServing(t *testing.T) {
	srv, webRoot := setupTestServer(t)
	token := sessionToken(t)

	t.Run("nested asset", func(t *testing.T) {
		w := get(srv, "/photos/beach_small.jpg", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "jpegbytes", w.Body.String())
	})

	t.Run("missing asset is a 404", func(t *testing.T) {
		w := get(srv, "/photos/nope.jpg", token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("directory without index.html is never listed", func(t *testing.T) {
		w := get(srv, "/photos/", token)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NotContains(t, w.Body.String(), "beach_small.jpg")
	})

	t.Run("traversal attempts fail closed", func(t *testing.T) {
		secret := filepath.Join(filepath.Dir(webRoot), "secret.txt")
		require.NoError(t, os.WriteFile(secret, []byte("keep out"), 0644))

		r := httptest.NewRequest(http.MethodGet, "/photos/x", nil)
		r.URL.Path = "/photos/../../secret.txt"
		r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NotContains(t, w.Body.String(), "keep out")
	})
}
