package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"quotiza-connect/internal/application"
	"quotiza-connect/internal/application/webhook_handlers"
	"quotiza-connect/internal/domain"
	apiinfra "quotiza-connect/internal/infrastructure/api"
	"quotiza-connect/internal/infrastructure/lock"
	"quotiza-connect/internal/infrastructure/metrics"
	appmiddleware "quotiza-connect/internal/infrastructure/middleware"
	"quotiza-connect/internal/infrastructure/quotiza"
	"quotiza-connect/internal/infrastructure/repository"
	shopifyinfra "quotiza-connect/internal/infrastructure/shopify"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Get configuration from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	shopifyAPIKey := os.Getenv("SHOPIFY_API_KEY")
	shopifyAPISecret := os.Getenv("SHOPIFY_API_SECRET")
	if shopifyAPIKey == "" || shopifyAPISecret == "" {
		logger.Fatal().Msg("SHOPIFY_API_KEY and SHOPIFY_API_SECRET environment variables are required")
	}

	webhookSecret := os.Getenv("SHOPIFY_WEBHOOK_SECRET")
	if webhookSecret == "" {
		logger.Fatal().Msg("SHOPIFY_WEBHOOK_SECRET environment variable is required")
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(os.Getenv("MONGODB_DATABASE"))

	// Connect to Redis (per-shop sync locks)
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer redisClient.Close()

	// Initialize repositories
	configRepo := repository.NewMongoConfigurationRepository(db)
	historyRepo := repository.NewMongoSyncHistoryRepository(db)
	shopRepo := repository.NewMongoShopRepository(db)

	// Initialize infrastructure adapters
	syncMetrics := metrics.NewSyncMetrics(prometheus.DefaultRegisterer)
	lockFactory := lock.NewRedisLockFactory(redisClient, 0)
	catalogReader := shopifyinfra.NewReader(shopifyAPIKey, shopifyAPISecret, shopRepo, logger)
	quotizaClient := quotiza.NewClient(os.Getenv("QUOTIZA_BASE_URL"), logger)
	webhookVerifier := shopifyinfra.NewWebhookVerifier(webhookSecret)

	// Initialize application services
	transformer := application.NewProductTransformer(logger)
	syncService := application.NewSyncService(
		configRepo,
		historyRepo,
		catalogReader,
		quotizaClient,
		transformer,
		lockFactory,
		syncMetrics,
		logger,
	)
	settingsService := application.NewSettingsService(configRepo, logger)

	// Initialize webhook dispatcher and register handlers
	webhookDispatcher := application.NewWebhookDispatcher(logger)
	webhookDispatcher.RegisterHandler(webhook_handlers.NewAppUninstalledHandler(logger, configRepo, shopRepo))

	// Start the server-side sync scheduler
	scheduler := application.NewSyncScheduler(configRepo, syncService, logger, 0)
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	handlers := apiinfra.NewHandlers(syncService, settingsService, logger)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Webhook endpoint (HMAC-verified, no tenant header)
	r.Post("/webhooks/shopify", webhookHandler(webhookVerifier, webhookDispatcher, logger))

	// API routes requiring the tenant shop header
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(appmiddleware.ShopDomainMiddleware(logger))

		r.Post("/sync", handlers.TriggerSync)
		r.Get("/sync/history", handlers.SyncHistory)
		r.Get("/sync/status/{jobID}", handlers.ImportStatus)
		r.Get("/settings", handlers.GetSettings)
		r.Put("/settings", handlers.SaveSettings)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Starting API server")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

// webhookHandler verifies and dispatches Shopify webhook requests
func webhookHandler(
	verifier *shopifyinfra.WebhookVerifier,
	dispatcher *application.WebhookDispatcher,
	logger zerolog.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic := r.Header.Get("X-Shopify-Topic")
		if topic == "" {
			logger.Warn().Msg("Missing X-Shopify-Topic header")
			http.Error(w, "Missing X-Shopify-Topic header", http.StatusBadRequest)
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to read webhook payload")
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		hmacHeader := r.Header.Get("X-Shopify-Hmac-SHA256")
		if err := verifier.Verify(payload, hmacHeader); err != nil {
			logger.Warn().Err(err).Str("topic", topic).Msg("Webhook signature verification failed")
			http.Error(w, "Invalid signature", http.StatusUnauthorized)
			return
		}

		event := &domain.WebhookEvent{
			Topic:    topic,
			Shop:     r.Header.Get("X-Shopify-Shop-Domain"),
			Payload:  payload,
			Verified: true,
		}

		if err := dispatcher.Dispatch(r.Context(), event); err != nil {
			logger.Error().Err(err).Str("topic", topic).Msg("Failed to dispatch webhook event")
			// Return 500 to trigger Shopify retry
			http.Error(w, "Failed to process webhook event", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"received": "true"})
	}
}
