package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authtoken "github.com/grocery-assistant/backend/internal/auth"
	"github.com/grocery-assistant/backend/internal/database"
)

func newTestService(t *testing.T, db database.RepositoryInterface) (*Service, *mux.Router) {
	t.Helper()
	svc, err := New(Config{
		DB:     db,
		Tokens: authtoken.NewTokenService("test-secret"),
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	return svc, svc.Router()
}

func postJSON(t *testing.T, router *mux.Router, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, router *mux.Router, username, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return postJSON(t, router, "/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

func TestRegisterSuccess(t *testing.T) {
	_, router := newTestService(t, database.NewMemoryRepository())

	rec := register(t, router, "alice", "alice@example.com", "password123")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Registration successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	// The token must verify against the same secret.
	userID, err := authtoken.NewTokenService("test-secret").Verify(resp.Token)
	require.NoError(t, err)
	assert.NotEmpty(t, userID)
}

func TestRegisterValidation(t *testing.T) {
	_, router := newTestService(t, database.NewMemoryRepository())

	cases := []struct {
		name    string
		payload map[string]string
		message string
	}{
		{"missing fields", map[string]string{"username": "alice"}, "All fields are required"},
		{"short password", map[string]string{"username": "alice", "email": "a@b.com", "password": "short"}, "Password must be at least 8 characters"},
		{"bad email", map[string]string{"username": "alice", "email": "not-an-email", "password": "password123"}, "Invalid email format"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, router, "/auth/register", tc.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.message)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	_, router := newTestService(t, database.NewMemoryRepository())

	rec := register(t, router, "alice", "alice@example.com", "password123")
	require.Equal(t, http.StatusOK, rec.Code)

	// Same username, different email.
	rec = register(t, router, "alice", "other@example.com", "password123")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User exists")

	// Same email, different username.
	rec = register(t, router, "bob", "alice@example.com", "password123")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User exists")
}

func TestLoginSuccess(t *testing.T) {
	_, router := newTestService(t, database.NewMemoryRepository())
	register(t, router, "alice", "alice@example.com", "password123")

	rec := postJSON(t, router, "/auth/login", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Login successful")
	assert.Contains(t, rec.Body.String(), "token")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	_, router := newTestService(t, database.NewMemoryRepository())
	register(t, router, "alice", "alice@example.com", "password123")

	unknownUser := postJSON(t, router, "/auth/login", map[string]string{
		"username": "nobody",
		"password": "password123",
	})
	wrongPassword := postJSON(t, router, "/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknownUser.Body.String(), wrongPassword.Body.String())
}

func TestLoginValidation(t *testing.T) {
	_, router := newTestService(t, database.NewMemoryRepository())

	rec := postJSON(t, router, "/auth/login", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username and password required")
}

func TestRegisterStoreFailure(t *testing.T) {
	repo := database.NewMemoryRepository()
	_, router := newTestService(t, repo)

	repo.ErrorOnNextCall = fmt.Errorf("store down")
	rec := register(t, router, "alice", "alice@example.com", "password123")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Registration failed")
}

func TestHandlersWithoutStore(t *testing.T) {
	_, router := newTestService(t, nil)

	rec := register(t, router, "alice", "alice@example.com", "password123")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Database connection failed")
}

func TestHealth(t *testing.T) {
	_, router := newTestService(t, database.NewMemoryRepository())

	req := httptest.NewRequest(http.MethodGet, "/auth/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.Contains(t, rec.Body.String(), `"service":"auth"`)
}

func TestHealthWithoutStore(t *testing.T) {
	_, router := newTestService(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "unhealthy")
}
