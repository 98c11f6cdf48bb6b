// Package httputil provides the JSON request/response plumbing shared by all
// services: a uniform success/message envelope, error shaping from the service
// error taxonomy, and bounded body readers.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/grocery-assistant/backend/internal/errors"
)

// Envelope is the uniform response wrapper. Handlers that return domain fields
// embed it so every payload carries success plus an optional message.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OK returns a success envelope with an optional message.
func OK(message string) Envelope {
	return Envelope{Success: true, Message: message}
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// WriteError converts err into the envelope shape using the fixed kind→status
// mapping. Internal detail is logged, never returned.
func WriteError(w http.ResponseWriter, err error) {
	se := errors.From(err)
	if se.Err != nil {
		log.Error().Err(se.Err).Str("kind", string(se.Kind)).Msg(se.Message)
	}
	WriteJSON(w, se.HTTPStatus, Envelope{Success: false, Message: se.Message})
}

// DecodeJSON decodes the request body into v. On failure it writes a 400
// envelope and returns false; callers should simply return.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteError(w, errors.Validation("Invalid request data"))
		return false
	}
	return true
}
