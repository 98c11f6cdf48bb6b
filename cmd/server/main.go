// Command server starts one of the grocery assistant services. SERVICE_TYPE
// selects which service runs; each gets its own process and port so they can
// be deployed and scaled independently.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	authtoken "github.com/grocery-assistant/backend/internal/auth"
	"github.com/grocery-assistant/backend/internal/config"
	"github.com/grocery-assistant/backend/internal/database"
	"github.com/grocery-assistant/backend/internal/middleware"
	"github.com/grocery-assistant/backend/internal/prediction"
	"github.com/grocery-assistant/backend/services/auth"
	"github.com/grocery-assistant/backend/services/inventory"
	"github.com/grocery-assistant/backend/services/recipes"
)

func main() {
	// Local development only; deployed environments inject real env vars.
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("LOG_PRETTY") == "true" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = logger

	serviceType := os.Getenv("SERVICE_TYPE")
	if serviceType == "" {
		serviceType = "auth"
	}

	svcConfig := config.LoadServicesConfigOrDefault()
	if !svcConfig.IsEnabled(serviceType) {
		logger.Fatal().Str("service", serviceType).Msg("service is disabled or unknown")
	}

	ctx := context.Background()
	appConfig := config.LoadConfig(ctx, logger)

	db := openRepository(ctx, appConfig, logger)
	tokens := authtoken.NewTokenService(appConfig.JWTSecret)

	router, err := buildService(serviceType, appConfig, db, tokens, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("service", serviceType).Msg("failed to build service")
	}

	reg := prometheus.NewRegistry()
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")
	// Attached to the router so the metrics path label resolves to the route
	// template instead of raw URLs with item IDs in them.
	router.Use(middleware.NewMetrics(serviceType, reg).Handler)

	// CORS runs outermost so preflight requests short-circuit before rate
	// limiting sees them.
	var handler http.Handler = router
	handler = middleware.NewRateLimiter(50, 100, logger).Handler(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.NewCORS(appConfig.AllowedOrigins).Handler(handler)

	port := svcConfig.Port(serviceType)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("service", serviceType).Int("port", port).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openRepository connects to the document store, or falls back to the
// in-memory store when no store is configured. A configured store that fails
// its ping yields a nil repository; services then answer 500 until restart,
// matching a hard store outage.
func openRepository(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger) database.RepositoryInterface {
	if cfg.StoreURL == "" {
		logger.Info().Msg("using in-memory store")
		return database.NewMemoryRepository()
	}

	client, err := database.NewClient(database.Config{
		URL:        cfg.StoreURL,
		ServiceKey: cfg.StoreServiceKey,
	})
	if err != nil {
		logger.Error().Err(err).Msg("store client misconfigured")
		return nil
	}

	repo := database.NewRepository(client)
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := repo.Ping(pingCtx); err != nil {
		logger.Error().Err(err).Msg("store unreachable")
		return nil
	}
	return repo
}

func buildService(serviceType string, cfg *config.AppConfig, db database.RepositoryInterface, tokens *authtoken.TokenService, logger zerolog.Logger) (*mux.Router, error) {
	switch serviceType {
	case "auth":
		svc, err := auth.New(auth.Config{DB: db, Tokens: tokens, Logger: logger})
		if err != nil {
			return nil, err
		}
		return svc.Router(), nil

	case "inventory":
		predictor := prediction.New(prediction.Config{
			BaseURL: cfg.PredictionURL,
			Timeout: cfg.PredictionTimeout,
			Logger:  logger,
		})
		svc, err := inventory.New(inventory.Config{
			DB:        db,
			Predictor: predictor,
			Tokens:    tokens,
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}
		return svc.Router(), nil

	case "recipes":
		groq := recipes.NewGroqClient(recipes.GroqConfig{
			APIKey: cfg.GroqAPIKey,
			APIURL: cfg.GroqAPIURL,
		})
		svc, err := recipes.New(recipes.Config{Groq: groq, Tokens: tokens, Logger: logger})
		if err != nil {
			return nil, err
		}
		return svc.Router(), nil
	}
	return nil, fmt.Errorf("unknown service type %q", serviceType)
}
