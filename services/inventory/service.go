// Package inventory implements the per-user inventory service. New items are
// enriched with a predicted category and shelf life via a best-effort call to
// the recipes service.
package inventory

import (
	"context"
	"fmt"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	authtoken "github.com/grocery-assistant/backend/internal/auth"
	"github.com/grocery-assistant/backend/internal/database"
	"github.com/grocery-assistant/backend/internal/prediction"
)

const (
	ServiceID   = "inventory"
	ServiceName = "Inventory Service"
	Version     = "1.0.0"
)

// Service implements the inventory service.
type Service struct {
	items     *ItemStore
	predictor *prediction.Client
	tokens    *authtoken.TokenService
	logger    zerolog.Logger
}

// Config configures the inventory service.
type Config struct {
	// DB may be nil when the store never came up; handlers then answer 500
	// before touching domain logic.
	DB        database.RepositoryInterface
	Predictor *prediction.Client
	Tokens    *authtoken.TokenService
	Logger    zerolog.Logger
}

// New creates a new inventory service.
func New(cfg Config) (*Service, error) {
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("inventory service requires a token service")
	}
	if cfg.Predictor == nil {
		return nil, fmt.Errorf("inventory service requires a prediction client")
	}

	var items *ItemStore
	if cfg.DB != nil {
		items = NewItemStore(cfg.DB)
	}

	return &Service{
		items:     items,
		predictor: cfg.Predictor,
		tokens:    cfg.Tokens,
		logger:    cfg.Logger.With().Str("service", ServiceID).Logger(),
	}, nil
}

// Router returns the service's route table. Item routes require a bearer
// token; health does not.
func (s *Service) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/inventory/health", s.handleHealth).Methods("GET", "OPTIONS")

	protected := r.PathPrefix("/inventory").Subrouter()
	protected.Use(authtoken.Middleware(s.tokens))
	protected.HandleFunc("/items", s.handleListItems).Methods("GET")
	protected.HandleFunc("/items", s.handleAddItem).Methods("POST")
	protected.HandleFunc("/items/{id}", s.handleDeleteItem).Methods("DELETE")
	return r
}

// createItem runs the item-creation pipeline: ask the prediction client for
// category/expiry (best-effort, bounded by the client's timeout), then persist
// with whatever values resulted. Prediction failure never blocks creation and
// persistence is terminal; there is nothing to roll back.
func (s *Service) createItem(ctx context.Context, userID, name string) (*database.Item, error) {
	result := s.predictor.Predict(ctx, name)
	if !result.Success {
		s.logger.Warn().Str("item", name).Str("reason", result.Message).Msg("prediction degraded, using sentinels")
	}

	item := newItem(userID, name, result.Category, result.Expiry)
	if err := s.items.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
