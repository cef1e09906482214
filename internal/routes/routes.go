package routes

import (
	"time"

	"github.com/mapboard-app/mapboard/internal/config"
	"github.com/mapboard-app/mapboard/internal/database"
	"github.com/mapboard-app/mapboard/internal/handlers"
	"github.com/mapboard-app/mapboard/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	drawingHandler *handlers.DrawingHandler,
	commentHandler *handlers.CommentHandler,
	voteHandler *handlers.VoteHandler,
	forumHandler *handlers.ForumHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
	configHandler *handlers.ConfigHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health and client config bypass the readiness gate so the frontend can
	// load and poll while reconciliation is still running.
	api.Get("/health", healthHandler.Health)
	api.Get("/config", configHandler.ClientConfig)

	ready := middleware.DatabaseReady(database.Ready)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", ready, authHandler.Register)
	auth.Post("/login", ready, authHandler.Login)
	auth.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Drawings — reads are public, writes need a token
	api.Get("/drawings", ready, middleware.OptionalIdentity(cfg), drawingHandler.List)
	api.Get("/drawings/:id", ready, drawingHandler.Get)
	api.Post("/drawings", ready, middleware.JWTProtected(cfg), drawingHandler.Create)
	api.Delete("/drawings/:id", ready, middleware.JWTProtected(cfg), drawingHandler.Delete)

	// Per-drawing comments allow anonymous authors
	api.Get("/drawings/:id/comments", ready, commentHandler.ForDrawing)
	api.Post("/drawings/:id/comments", ready, middleware.OptionalIdentity(cfg), commentHandler.CreateForDrawing)

	// Votes
	api.Post("/drawings/:id/vote/:voteType", ready, middleware.JWTProtected(cfg), voteHandler.Vote)
	api.Get("/drawings/:id/votes", ready, middleware.JWTProtected(cfg), middleware.AdminRequired(db), voteHandler.Counts)

	// Global comment feed
	api.Get("/comments", ready, commentHandler.ListAll)
	api.Post("/comments", ready, middleware.OptionalIdentity(cfg), commentHandler.Create)
	api.Delete("/comments/:id", ready, middleware.JWTProtected(cfg), commentHandler.Delete)

	// Forum
	forum := api.Group("/forum", ready)
	forum.Get("/categories", forumHandler.Categories)
	forum.Get("/categories/:id/threads", forumHandler.CategoryThreads)
	forum.Get("/search", forumHandler.Search)
	forum.Post("/threads", middleware.OptionalIdentity(cfg), forumHandler.CreateThread)
	forum.Get("/threads/:id", forumHandler.Thread)
	forum.Delete("/threads/:id", middleware.JWTProtected(cfg), forumHandler.DeleteThread)
	forum.Post("/threads/:id/posts", middleware.OptionalIdentity(cfg), forumHandler.CreatePost)

	// Admin panel
	admin := api.Group("/admin", ready, middleware.JWTProtected(cfg), middleware.AdminRequired(db))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:id/admin", adminHandler.UpdateAdminStatus)
	admin.Put("/users/:id/drawer", adminHandler.UpdateDrawerStatus)
}
