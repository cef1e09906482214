package main

import (
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/mapboard-app/mapboard/internal/config"
	"github.com/mapboard-app/mapboard/internal/database"
	"github.com/mapboard-app/mapboard/internal/handlers"
	"github.com/mapboard-app/mapboard/internal/logging"
	"github.com/mapboard-app/mapboard/internal/middleware"
	"github.com/mapboard-app/mapboard/internal/routes"
	"github.com/mapboard-app/mapboard/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Log cleanup goroutine, wired after reconciliation below.
	cleanupDone := make(chan struct{})
	var pgLogHandler atomic.Pointer[logging.PGHandler]

	// Schema reconciliation runs in the background so the server can accept
	// connections immediately. Data routes return 503 until it finishes.
	go func() {
		if err := database.Reconcile(database.DB); err != nil {
			slog.Error("schema reconciliation failed", "error", err)
			os.Exit(1)
		}
		if err := database.EnsureSuperAdmin(database.DB, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			slog.Error("super admin bootstrap failed", "error", err)
		}

		// system_logs exists now, safe to attach the DB log sink.
		dbHandler := logging.NewPGHandler(database.DB)
		pgLogHandler.Store(dbHandler)
		slog.SetDefault(slog.New(logging.NewFanout(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
			dbHandler,
		)))
		logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)

		slog.Info("database initialized")
	}()

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	voteService := services.NewVoteService(database.DB)
	drawingService := services.NewDrawingService(database.DB, voteService)
	commentService := services.NewCommentService(database.DB)
	forumService := services.NewForumService(database.DB, commentService)
	adminService := services.NewAdminService(database.DB, cfg.AdminUsername)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	drawingHandler := handlers.NewDrawingHandler(drawingService)
	commentHandler := handlers.NewCommentHandler(commentService, drawingService)
	voteHandler := handlers.NewVoteHandler(voteService, drawingService)
	forumHandler := handlers.NewForumHandler(forumService, commentService)
	adminHandler := handlers.NewAdminHandler(adminService)
	healthHandler := handlers.NewHealthHandler(database.DB)
	configHandler := handlers.NewConfigHandler(cfg)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, authHandler, drawingHandler, commentHandler,
		voteHandler, forumHandler, adminHandler, healthHandler, configHandler)

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

	close(cleanupDone)
	if h := pgLogHandler.Load(); h != nil {
		h.Stop()
	}
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
