package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liturgia/config"
	"liturgia/database"
	"liturgia/handlers"
	"liturgia/handlers/admin"
	"liturgia/logging"
	"liturgia/middleware"
	"liturgia/push"
	"liturgia/realtime"
	"liturgia/services"
	"liturgia/verseparser"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Must("development").Fatal("failed to load configuration", zap.Error(err))
	}

	log := logging.Must(cfg.AppEnv)
	defer func() { _ = log.Sync() }()

	// Validate critical configuration
	validateEnvironment(cfg, log)

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	normalizer := verseparser.New(verseparser.PortugueseBooks)
	hub := realtime.NewHub(log.Named("realtime"))
	pushClient := push.New(cfg.Push.AppID, cfg.Push.APIKey, cfg.Push.Endpoint)
	if !pushClient.Configured() {
		log.Warn("push notifications disabled: PUSH_APP_ID or PUSH_API_KEY not set")
	}

	postService := services.NewPostService(db)
	liturgyService := services.NewLiturgyService(db, normalizer, cfg.LookupVersion)

	handlers.Init(handlers.Services{
		Posts:         postService,
		Liturgy:       liturgyService,
		SEO:           services.NewSEOService(postService, liturgyService, cfg.Site.Name, cfg.Site.BaseURL),
		OGImages:      services.NewOGImageService(cfg.Site.Name),
		Normalizer:    normalizer,
		LookupVersion: cfg.LookupVersion,
		Log:           log.Named("handlers"),
	})

	cleanupService := services.NewCleanupService(db, cfg.NotificationRetentionDays, log.Named("cleanup"))
	cleanupService.Start()
	defer cleanupService.Stop()

	auth := middleware.NewAuth(cfg.JWTSecret)
	admin.Init(admin.Deps{
		Auth:          auth,
		Users:         services.NewUserService(db),
		Posts:         postService,
		Liturgy:       liturgyService,
		Notifications: services.NewNotificationService(db, pushClient, hub, log.Named("push")),
		Cleanup:       cleanupService,
		BaseURL:       cfg.Site.BaseURL,
		Log:           log.Named("admin"),
	})

	limiters := middleware.NewLimiters(cfg.RateLimit)
	go limiters.Run(ctx)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler(cfg, log),
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	app.Use(limiters.RateLimit())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   version,
			"clients":   hub.Count(),
		})
	})

	handlers.RegisterRoutes(app)
	admin.RegisterRoutes(app.Group("/api"), limiters.AuthRateLimit())

	// Admin dashboard live feed
	app.Get("/ws/admin/notifications", realtime.Upgrade, auth.WebSocketAuthMiddleware, hub.Handler())

	// Serve static files
	app.Static("/", "./static")
	app.Static("/admin", "./static/admin")

	// HTML routes
	app.Get("/liturgia", serveFile("./static/liturgia.html"))
	app.Get("/liturgia/:day", serveFile("./static/liturgia.html"))
	app.Get("/blog", serveFile("./static/blog.html"))
	app.Get("/blog/:slug", serveFile("./static/post.html"))
	app.Get("/sobre", serveFile("./static/sobre.html"))
	app.Get("/admin", serveFile("./static/admin/index.html"))
	app.Get("/admin/login", serveFile("./static/admin/login.html"))

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("HTTP server starting",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
		zap.String("database", cfg.Database.Driver),
		zap.String("lookup_version", cfg.LookupVersion),
		zap.Bool("push", pushClient.Configured()))

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

// validateEnvironment stops startup on fatal configuration problems and logs
// the warnings.
func validateEnvironment(cfg *config.Config, log *zap.Logger) {
	warnings, err := cfg.Validate()
	for _, w := range warnings {
		log.Warn(w)
	}
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
}

// Helper functions
func serveFile(filepath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendFile(filepath)
	}
}

func customErrorHandler(cfg *config.Config, log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if code == fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
			// Don't expose internal errors in production
			if cfg.IsProduction() {
				message = "An error occurred. Please try again later."
			}
		}

		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   message,
		})
	}
}
