package inventory

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	authtoken "github.com/grocery-assistant/backend/internal/auth"
	"github.com/grocery-assistant/backend/internal/database"
	"github.com/grocery-assistant/backend/internal/errors"
	"github.com/grocery-assistant/backend/internal/httputil"
)

type addItemRequest struct {
	ItemName string `json:"item_name"`
}

type itemsResponse struct {
	httputil.Envelope
	Items []database.Item `json:"items"`
}

type itemResponse struct {
	httputil.Envelope
	Item *database.Item `json:"item"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *Service) handleListItems(w http.ResponseWriter, r *http.Request) {
	if s.items == nil {
		httputil.WriteError(w, errors.Unavailable("Database connection failed"))
		return
	}

	userID := authtoken.UserIDFromContext(r.Context())
	items, err := s.items.ListByOwner(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, itemsResponse{
		Envelope: httputil.OK(""),
		Items:    items,
	})
}

func (s *Service) handleAddItem(w http.ResponseWriter, r *http.Request) {
	if s.items == nil {
		httputil.WriteError(w, errors.Unavailable("Database connection failed"))
		return
	}

	var req addItemRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	req.ItemName = strings.TrimSpace(req.ItemName)
	if req.ItemName == "" {
		httputil.WriteError(w, errors.Validation("Item name is required"))
		return
	}

	userID := authtoken.UserIDFromContext(r.Context())
	item, err := s.createItem(r.Context(), userID, req.ItemName)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	s.logger.Info().Str("item", item.Name).Str("category", item.Category).Msg("item added")
	httputil.WriteJSON(w, http.StatusCreated, itemResponse{
		Envelope: httputil.OK(""),
		Item:     item,
	})
}

func (s *Service) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if s.items == nil {
		httputil.WriteError(w, errors.Unavailable("Database connection failed"))
		return
	}

	userID := authtoken.UserIDFromContext(r.Context())
	itemID := mux.Vars(r)["id"]

	if err := s.items.Delete(r.Context(), userID, itemID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	s.logger.Info().Str("item_id", itemID).Msg("item deleted")
	httputil.WriteJSON(w, http.StatusOK, httputil.OK("Item deleted"))
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.items == nil {
		httputil.WriteJSON(w, http.StatusInternalServerError, healthResponse{
			Status:  "unhealthy",
			Message: "Database connection failed",
		})
		return
	}
	if err := s.items.Ping(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("health check failed")
		httputil.WriteJSON(w, http.StatusInternalServerError, healthResponse{
			Status:  "unhealthy",
			Message: err.Error(),
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: ServiceID})
}
