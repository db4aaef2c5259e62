package response

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stillframe/stillframe-server/internal/errors"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]string{"status": "ok"}, testLogger)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"data":{"status":"ok"},"success":true}`, w.Body.String())
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, "manifest not found", testLogger)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"manifest not found","success":false}`, w.Body.String())
}

func TestHandleError(t *testing.T) {
	t.Run("domain error maps to its status", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleError(w, errors.Validation("bad input"), testLogger)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "bad input")
	})

	t.Run("wrapped domain error still maps", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleError(w, errors.Wrap(io.ErrUnexpectedEOF, errors.CodeConflict, "collision"), testLogger)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown error becomes 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleError(w, io.ErrUnexpectedEOF, testLogger)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal server error")
	})
}
