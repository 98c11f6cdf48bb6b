// Package middleware provides HTTP middleware shared by all services.
package middleware

import (
	"net/http"
	"strings"
)

// CORS enforces the cross-origin contract: an enumerated origin allow-list
// (never a wildcard, because credentials are permitted), a fixed method and
// header set, and preflight short-circuiting with an empty body.
type CORS struct {
	allowedOrigins []string
}

// NewCORS creates the CORS middleware for the given origin allow-list.
func NewCORS(allowedOrigins []string) *CORS {
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return &CORS{allowedOrigins: origins}
}

// Handler returns the middleware handler.
func (c *CORS) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && c.isAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Amz-Date, X-Api-Key, X-Amz-Security-Token")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (c *CORS) isAllowed(origin string) bool {
	for _, allowed := range c.allowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}
