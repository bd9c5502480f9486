package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/cache"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/database"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/logging"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/repository"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/routes"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == config.DefaultJWTSecret {
		if cfg.IsProduction() {
			slog.Error("JWT_SECRET must be set in production")
			os.Exit(1)
		}
		slog.Warn("using the default JWT secret; set JWT_SECRET")
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	logging.AttachSink(pgLogHandler)

	// Log cleanup
	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	// Catalog cache
	var catalogCache cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			slog.Warn("redis unavailable, catalog cache disabled", "error", err)
		} else {
			catalogCache = rc
			slog.Info("redis connected")
		}
	}

	// Document storage
	var objectStorage services.ObjectStorage
	switch cfg.StorageBackend {
	case "gcs":
		if cfg.GCSBucket == "" {
			slog.Error("GCS_BUCKET is required when STORAGE_BACKEND=gcs")
			os.Exit(1)
		}
		gcsClient, err := services.NewGCSClient(context.Background(), cfg.GCSCredentialsJSON)
		if err != nil {
			slog.Error("gcs client init failed", "error", err)
			os.Exit(1)
		}
		defer gcsClient.Close()
		objectStorage = services.NewGCSStorage(gcsClient, cfg.GCSBucket)
	default:
		objectStorage = services.NewLocalStorage(cfg.UploadDir)
	}
	slog.Info("document storage ready", "backend", cfg.StorageBackend)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	universityRepo := repository.NewUniversityRepository(db)
	scholarshipRepo := repository.NewScholarshipRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, services.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn), cfg.BcryptCost)
	profileService := services.NewProfileService(userRepo)
	catalogService := services.NewCatalogService(universityRepo, scholarshipRepo, catalogCache, cfg.CacheTTL)
	documentService := services.NewDocumentService(objectStorage)
	advisorService := services.NewAdvisorService(services.AdvisorConfig{
		APIURL:  cfg.AIAPIURL,
		APIKey:  cfg.AIAPIKey,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout,
	})
	if cfg.AIAPIKey == "" {
		slog.Warn("AI_API_KEY not set, advisory endpoints will return fallback replies")
	}

	// Handlers
	h := routes.Handlers{
		Health: handlers.NewHealthHandler(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}, catalogCache),
		Users:    handlers.NewUserHandler(authService, profileService),
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Document: handlers.NewDocumentHandler(documentService),
		AI:       handlers.NewAIHandler(advisorService),
		Admin:    handlers.NewAdminHandler(catalogService),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	// Fiber app. Uploads are capped at 10MB by the document service; the body
	// limit leaves room for multipart framing.
	app := fiber.New(fiber.Config{
		BodyLimit:    12 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, h, authService)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	pgLogHandler.Stop()
	close(cleanupDone)

	if err := catalogCache.Close(); err != nil {
		slog.Error("redis close error", "error", err)
	}
	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	sentry.Flush(2 * time.Second)
	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "route", c.Path(), "error", err.Error())
		message = "Server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Success: false,
		Message: message,
	})
}
