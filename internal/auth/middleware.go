package auth

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/grocery-assistant/backend/internal/errors"
	"github.com/grocery-assistant/backend/internal/httputil"
)

// Middleware rejects requests without a valid bearer token before they reach
// domain logic, and stores the token subject in the request context.
func Middleware(tokens *TokenService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.WriteError(w, errors.Unauthenticated("Authorization header required"))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				httputil.WriteError(w, errors.Unauthenticated("Invalid authorization format"))
				return
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				httputil.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
