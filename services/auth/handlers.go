package auth

import (
	"net/http"
	"strings"

	"github.com/grocery-assistant/backend/internal/errors"
	"github.com/grocery-assistant/backend/internal/httputil"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	httputil.Envelope
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	if s.credentials == nil {
		httputil.WriteError(w, errors.Unavailable("Database connection failed"))
		return
	}

	var req registerRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		httputil.WriteError(w, errors.Validation("All fields are required"))
		return
	}
	if len(req.Password) < 8 {
		httputil.WriteError(w, errors.Validation("Password must be at least 8 characters"))
		return
	}
	if !strings.Contains(req.Email, "@") {
		httputil.WriteError(w, errors.Validation("Invalid email format"))
		return
	}

	user, err := s.credentials.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	s.logger.Info().Str("username", user.Username).Msg("user registered")
	httputil.WriteJSON(w, http.StatusOK, authResponse{
		Envelope: httputil.OK("Registration successful"),
		Token:    token,
		User:     userPayload{Username: user.Username, Email: user.Email},
	})
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.credentials == nil {
		httputil.WriteError(w, errors.Unavailable("Database connection failed"))
		return
	}

	var req loginRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if req.Username == "" || req.Password == "" {
		httputil.WriteError(w, errors.Validation("Username and password required"))
		return
	}

	user, err := s.credentials.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	s.logger.Info().Str("username", user.Username).Msg("user logged in")
	httputil.WriteJSON(w, http.StatusOK, authResponse{
		Envelope: httputil.OK("Login successful"),
		Token:    token,
		User:     userPayload{Username: user.Username, Email: user.Email},
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.credentials == nil {
		httputil.WriteJSON(w, http.StatusInternalServerError, healthResponse{
			Status:  "unhealthy",
			Message: "Database connection failed",
		})
		return
	}
	if err := s.credentials.Ping(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("health check failed")
		httputil.WriteJSON(w, http.StatusInternalServerError, healthResponse{
			Status:  "unhealthy",
			Message: err.Error(),
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: ServiceID})
}
