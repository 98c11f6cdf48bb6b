package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newCORSHandler(t *testing.T, origins []string) (http.Handler, *bool) {
	t.Helper()
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})
	return NewCORS(origins).Handler(next), &called
}

func TestCORSAllowedOrigin(t *testing.T) {
	handler, called := newCORSHandler(t, []string{"http://localhost:5000"})

	req := httptest.NewRequest(http.MethodGet, "/inventory/items", nil)
	req.Header.Set("Origin", "http://localhost:5000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, *called)
	assert.Equal(t, "http://localhost:5000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	handler, called := newCORSHandler(t, []string{"http://localhost:5000"})

	req := httptest.NewRequest(http.MethodGet, "/inventory/items", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// The request still proceeds; the browser enforces the missing header.
	assert.True(t, *called)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	handler, called := newCORSHandler(t, []string{"http://localhost:5000"})

	req := httptest.NewRequest(http.MethodOptions, "/inventory/items", nil)
	req.Header.Set("Origin", "http://localhost:5000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, *called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORSTrimsConfiguredOrigins(t *testing.T) {
	handler, _ := newCORSHandler(t, []string{" http://localhost:5000 ", ""})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5000", rec.Header().Get("Access-Control-Allow-Origin"))
}
