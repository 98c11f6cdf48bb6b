package middleware

import (
	"net"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/grocery-assistant/backend/internal/auth"
	"github.com/grocery-assistant/backend/internal/httputil"
)

// RateLimiter applies a per-caller token bucket. The key is the authenticated
// user ID when present, otherwise the remote IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	logger   zerolog.Logger
}

// NewRateLimiter creates a rate limiter allowing requestsPerSecond with the
// given burst per caller.
func NewRateLimiter(requestsPerSecond int, burst int, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		logger:   logger,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Bound the map so unauthenticated scans cannot grow it without limit.
	if len(rl.limiters) > 10000 {
		rl.limiters = make(map[string]*rate.Limiter)
	}

	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// Handler returns the rate limiting middleware handler.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := auth.UserIDFromContext(r.Context())
		if key == "" {
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				key = host
			} else {
				key = r.RemoteAddr
			}
		}

		if !rl.getLimiter(key).Allow() {
			rl.logger.Warn().
				Str("key", key).
				Str("path", r.URL.Path).
				Msg("rate limit exceeded")
			httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.Envelope{
				Success: false,
				Message: "Too many requests",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
