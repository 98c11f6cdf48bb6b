// Package recipes implements the recipe service: model-backed recipe
// generation for authenticated users and food category/shelf-life prediction
// for the inventory service.
package recipes

import (
	"fmt"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	authtoken "github.com/grocery-assistant/backend/internal/auth"
)

const (
	ServiceID   = "recipe"
	ServiceName = "Recipe Service"
	Version     = "1.0.0"
)

// Service implements the recipe service.
type Service struct {
	groq   *GroqClient
	tokens *authtoken.TokenService
	logger zerolog.Logger
}

// Config configures the recipe service.
type Config struct {
	Groq   *GroqClient
	Tokens *authtoken.TokenService
	Logger zerolog.Logger
}

// New creates a new recipe service.
func New(cfg Config) (*Service, error) {
	if cfg.Groq == nil {
		return nil, fmt.Errorf("recipe service requires a groq client")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("recipe service requires a token service")
	}

	return &Service{
		groq:   cfg.Groq,
		tokens: cfg.Tokens,
		logger: cfg.Logger.With().Str("service", ServiceID).Logger(),
	}, nil
}

// Router returns the service's route table. Generation requires a bearer
// token; prediction is called service-to-service and stays open, as does
// health.
func (s *Service) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/recipes/health", s.handleHealth).Methods("GET", "OPTIONS")
	r.HandleFunc("/recipes/predict_food_info", s.handlePredictFoodInfo).Methods("POST", "OPTIONS")

	protected := r.PathPrefix("/recipes").Subrouter()
	protected.Use(authtoken.Middleware(s.tokens))
	protected.HandleFunc("/generate", s.handleGenerate).Methods("GET")
	return r
}
