// Package auth implements the authentication service: registration and login
// issuing bearer tokens.
package auth

import (
	"fmt"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	authtoken "github.com/grocery-assistant/backend/internal/auth"
	"github.com/grocery-assistant/backend/internal/database"
)

const (
	ServiceID   = "auth"
	ServiceName = "Auth Service"
	Version     = "1.0.0"
)

// Service implements the auth service.
type Service struct {
	credentials *CredentialStore
	tokens      *authtoken.TokenService
	logger      zerolog.Logger
}

// Config configures the auth service.
type Config struct {
	// DB may be nil when the store never came up; handlers then answer 500
	// before touching domain logic.
	DB     database.RepositoryInterface
	Tokens *authtoken.TokenService
	Logger zerolog.Logger
}

// New creates a new auth service.
func New(cfg Config) (*Service, error) {
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("auth service requires a token service")
	}

	var credentials *CredentialStore
	if cfg.DB != nil {
		credentials = NewCredentialStore(cfg.DB)
	}

	return &Service{
		credentials: credentials,
		tokens:      cfg.Tokens,
		logger:      cfg.Logger.With().Str("service", ServiceID).Logger(),
	}, nil
}

// Router returns the service's route table.
func (s *Service) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/auth/register", s.handleRegister).Methods("POST", "OPTIONS")
	r.HandleFunc("/auth/login", s.handleLogin).Methods("POST", "OPTIONS")
	r.HandleFunc("/auth/health", s.handleHealth).Methods("GET", "OPTIONS")
	return r
}
