package recipes

import (
	"net/http"
	"strings"

	authtoken "github.com/grocery-assistant/backend/internal/auth"
	"github.com/grocery-assistant/backend/internal/errors"
	"github.com/grocery-assistant/backend/internal/httputil"
	"github.com/grocery-assistant/backend/internal/prediction"
)

type recipeResponse struct {
	httputil.Envelope
	Recipe string `json:"recipe"`
}

type predictRequest struct {
	ItemName string `json:"item_name"`
}

type predictResponse struct {
	httputil.Envelope
	Category string `json:"category"`
	Expiry   string `json:"expiry"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}

func (s *Service) handleGenerate(w http.ResponseWriter, r *http.Request) {
	userID := authtoken.UserIDFromContext(r.Context())
	s.logger.Info().Str("user_id", userID).Msg("recipe generation requested")

	itemsQuery := r.URL.Query().Get("items")
	if itemsQuery == "" {
		httputil.WriteError(w, errors.Validation("Missing 'items' query parameter"))
		return
	}

	var items []string
	for _, item := range strings.Split(itemsQuery, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		httputil.WriteError(w, errors.Validation("No items provided for recipe generation"))
		return
	}

	recipe, err := s.groq.GenerateRecipe(r.Context(), items)
	if err != nil {
		if errors.IsKind(err, errors.KindUnavailable) {
			httputil.WriteError(w, err)
			return
		}
		s.logger.Error().Err(err).Msg("recipe generation failed")
		httputil.WriteError(w, errors.Internal("Failed to generate recipe", err))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, recipeResponse{
		Envelope: httputil.OK(""),
		Recipe:   recipe,
	})
}

// handlePredictFoodInfo always answers with category and expiry fields so the
// inventory service can persist sentinels when prediction degrades. Only the
// missing-key case keeps status 200 with success=false.
func (s *Service) handlePredictFoodInfo(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	req.ItemName = strings.TrimSpace(req.ItemName)
	if req.ItemName == "" {
		httputil.WriteError(w, errors.Validation("Item name is required"))
		return
	}

	s.logger.Info().Str("item", req.ItemName).Msg("predicting food info")

	if !s.groq.Configured() {
		s.logger.Warn().Msg("prediction requested without API key")
		httputil.WriteJSON(w, http.StatusOK, predictResponse{
			Envelope: httputil.Envelope{Success: false, Message: "AI prediction not available"},
			Category: prediction.CategoryUnknown,
			Expiry:   "Check packaging for details",
		})
		return
	}

	info, err := s.groq.PredictFoodInfo(r.Context(), req.ItemName)
	if err != nil {
		se := errors.From(err)
		s.logger.Error().Err(err).Str("item", req.ItemName).Msg("food prediction failed")
		httputil.WriteJSON(w, se.HTTPStatus, predictResponse{
			Envelope: httputil.Envelope{Success: false, Message: se.Message},
			Category: prediction.CategoryUnknown,
			Expiry:   "Unknown",
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, predictResponse{
		Envelope: httputil.Envelope{Success: true},
		Category: info.Category,
		Expiry:   info.Expiry,
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: ServiceID})
}
