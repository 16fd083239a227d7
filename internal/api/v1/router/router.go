package router

import (
	"context"
	"net/http"
	"strings"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/pubsub"
	"app/internal/repository"
	"app/internal/service"
	"app/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *pgxpool.Pool, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	// 1. Open DB connection pool.
	dsn := cfg.DBConnectionString
	// In a development environment, ensure SSL is disabled for local
	// testing. In production, the connection string should be provided
	// with the correct SSL settings.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dsn += separator + "sslmode=disable"
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open DB connection pool")
		return nil, nil, err
	}
	if err := pool.Ping(context.Background()); err != nil {
		logger.Error().Err(err).Msg("Failed to ping DB")
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	// 2. Initialize object storage for generated payloads.
	store, err := storage.NewS3Store(context.Background(), cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize object storage")
		return nil, nil, err
	}

	// 3. Resolve the Gemini API key (may live in Secret Manager) and
	// build the client. The key is the minimum required configuration;
	// config.Load has already refused to start without it.
	apiKey, err := service.ResolveAPIKey(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to resolve Gemini API key")
		return nil, nil, err
	}
	gemini := service.NewGeminiClient(apiKey)

	// 4. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 5. Completion-event publisher is optional.
	var publisher pubsub.Publisher
	if cfg.GCPProjectID != "" {
		p, err := pubsub.NewPublisher(context.Background(), cfg.GCPProjectID)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create Pub/Sub publisher")
			return nil, nil, err
		}
		publisher = p
	} else {
		logger.Warn().Msg("GCP_PROJECT_ID not set, completion events disabled")
	}

	// 6. Initialize repositories & services & handlers
	userRepo := repository.NewUserRepo(pool)
	imageRepo := repository.NewImageRepo(pool)
	paymentRepo := repository.NewPaymentRepo(pool)
	contactRepo := repository.NewContactRepo(pool)

	userSvc := service.NewUserService(userRepo, cfg.AdminEmail)
	genSvc := service.NewGenerationService(gemini, gemini, userRepo, imageRepo, store, publisher, cfg.GenerationDoneTopic, logger)
	feedSvc := service.NewFeedService(imageRepo, logger)
	imageSvc := service.NewImageService(imageRepo, logger)
	paymentSvc := service.NewPaymentService(paymentRepo, userRepo, logger)
	contactSvc := service.NewContactService(contactRepo)

	imageHandler := handler.NewImageHandler(genSvc, feedSvc, imageSvc, userSvc, validate, logger)
	userHandler := handler.NewUserHandler(userSvc, imageSvc, logger)
	paymentHandler := handler.NewPaymentHandler(paymentSvc, validate, logger)
	contactHandler := handler.NewContactHandler(contactSvc, validate, logger)
	adminHandler := handler.NewAdminHandler(imageSvc, userSvc, logger)

	// 7. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, logger)

	// 8. Create ServeMux router
	mux := http.NewServeMux()

	apiV1Mux := http.NewServeMux()
	imageHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	userHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	paymentHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	contactHandler.RegisterRoutes(apiV1Mux)
	adminHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	apiV1Mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Mount the API v1 routes under /v1
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	// 9. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger, c.Handler(mux)), pool, nil
}
