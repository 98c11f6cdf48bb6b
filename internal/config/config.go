// Package config builds the immutable application configuration. All values
// are resolved once at process start and injected into constructors; request
// handlers never read ambient state.
package config

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/grocery-assistant/backend/internal/secrets"
)

// Development fallbacks. The JWT default exists so local stacks come up with
// matching secrets across services; it must be overridden in production.
const (
	defaultJWTSecret = "default_dev_secret_key_CHANGE_ME"
	defaultGroqURL   = "https://api.groq.com/openai/v1/chat/completions"

	defaultPredictionTimeout = 8 * time.Second
)

var defaultAllowedOrigins = []string{
	"https://d1k7vf5yu4148q.cloudfront.net",
	"http://localhost:5000",
}

// AppConfig holds every setting a service needs. Treated as read-only after
// LoadConfig returns.
type AppConfig struct {
	// JWTSecret signs and verifies identity tokens. All services must share it.
	JWTSecret string

	// StoreURL and StoreServiceKey locate the document store's REST endpoint.
	// An empty StoreURL selects the in-memory store (local development mode).
	StoreURL        string
	StoreServiceKey string

	// GroqAPIKey and GroqAPIURL configure the language-model provider. An
	// empty key puts the recipes service in degraded mode.
	GroqAPIKey string
	GroqAPIURL string

	// PredictionURL is the base URL of the recipes service used by the
	// inventory service for item enrichment. Empty disables enrichment.
	PredictionURL     string
	PredictionTimeout time.Duration

	// AllowedOrigins is the CORS origin allow-list.
	AllowedOrigins []string
}

// LoadConfig resolves the configuration. Secret-backed values follow a fixed
// preference order: secret store lookup, then environment variable, then the
// development default. A resolved-but-empty value falls through.
func LoadConfig(ctx context.Context, logger zerolog.Logger) *AppConfig {
	var store *secrets.Client
	secretsURL := os.Getenv("SECRETS_URL")
	secretsName := os.Getenv("SECRETS_NAME")
	if secretsURL != "" && secretsName != "" {
		client, err := secrets.New(secrets.Config{BaseURL: secretsURL})
		if err != nil {
			logger.Error().Err(err).Msg("secret store misconfigured, falling back to environment")
		} else {
			store = client
		}
	} else {
		logger.Warn().Msg("SECRETS_URL/SECRETS_NAME not set, loading secrets from environment")
	}

	resolve := func(key, envVar, fallback string) string {
		if store != nil {
			value, err := store.GetValue(ctx, secretsName, key)
			if err != nil {
				logger.Error().Err(err).Str("key", key).Msg("secret lookup failed, falling back")
			} else if value != "" {
				return value
			}
		}
		if value := os.Getenv(envVar); value != "" {
			return value
		}
		return fallback
	}

	jwtSecret := resolve("jwt_secret_key", "JWT_SECRET_KEY", "")
	if jwtSecret == "" {
		jwtSecret = defaultJWTSecret
		logger.Warn().Msg("JWT secret not found in secret store or environment, using development default")
	}

	storeURL := resolve("STORE_URL", "STORE_URL", "")
	if storeURL == "" {
		logger.Warn().Msg("STORE_URL not set, using in-memory store")
	}

	groqKey := resolve("GROQ_API_KEY", "GROQ_API_KEY", "")
	if groqKey == "" {
		logger.Warn().Msg("GROQ_API_KEY not found, prediction and recipe generation degraded")
	}

	groqURL := os.Getenv("GROQ_API_URL")
	if groqURL == "" {
		groqURL = defaultGroqURL
	}

	predictionTimeout := defaultPredictionTimeout
	if raw := os.Getenv("PREDICTION_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			predictionTimeout = d
		} else {
			logger.Error().Str("value", raw).Msg("invalid PREDICTION_TIMEOUT, using default")
		}
	}

	origins := defaultAllowedOrigins
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = splitAndTrimCSV(raw)
	}

	return &AppConfig{
		JWTSecret:         jwtSecret,
		StoreURL:          storeURL,
		StoreServiceKey:   resolve("STORE_SERVICE_KEY", "STORE_SERVICE_KEY", ""),
		GroqAPIKey:        groqKey,
		GroqAPIURL:        groqURL,
		PredictionURL:     os.Getenv("PREDICTION_URL"),
		PredictionTimeout: predictionTimeout,
		AllowedOrigins:    origins,
	}
}

func splitAndTrimCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
