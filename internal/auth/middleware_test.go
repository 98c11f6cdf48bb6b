package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(t *testing.T, tokens *TokenService) *mux.Router {
	t.Helper()
	r := mux.NewRouter()
	r.Use(Middleware(tokens))
	r.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(UserIDFromContext(r.Context())))
	}).Methods("GET")
	return r
}

func TestMiddlewareRequiresHeader(t *testing.T) {
	router := newProtectedRouter(t, NewTokenService("test-secret"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization header required")
}

func TestMiddlewareRejectsMalformedHeader(t *testing.T) {
	router := newProtectedRouter(t, NewTokenService("test-secret"))

	for _, header := range []string{"Basic abc123", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Contains(t, rec.Body.String(), "Invalid authorization format")
	}
}

func TestMiddlewareRejectsInvalidToken(t *testing.T) {
	router := newProtectedRouter(t, NewTokenService("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestMiddlewarePassesUserID(t *testing.T) {
	tokens := NewTokenService("test-secret")
	router := newProtectedRouter(t, tokens)

	token, err := tokens.Issue("user-123")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-123", rec.Body.String())
}
