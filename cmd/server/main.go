package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/author-clock/internal/cache"
	"github.com/localnerve/author-clock/internal/config"
	"github.com/localnerve/author-clock/internal/database"
	"github.com/localnerve/author-clock/internal/handlers"
	"github.com/localnerve/author-clock/internal/jobs"
	"github.com/localnerve/author-clock/internal/middleware"
	"github.com/localnerve/author-clock/internal/services"
	"github.com/localnerve/author-clock/internal/types"
	"github.com/localnerve/author-clock/internal/utils"

	_ "github.com/localnerve/author-clock/docs/api" // Swagger docs
)

// @title Author Clock API
// @version 1.0.0
// @description Rotating quote-of-the-day service with anonymous sessions, likes, and bookmarks
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/author-clock
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey SessionAuth
// @in header
// @name X-Session-ID

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Connect to cache
	store, err := cache.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to cache: %v", err)
	}
	defer store.Close()

	// Construct services with explicit dependencies
	sessions := services.NewSessionService(db, cfg.SessionMaxIdleDays)
	likes := services.NewLikeService(db)
	bookmarks := services.NewBookmarkService(db)
	quotes := services.NewQuoteService(db, store, time.Duration(cfg.DailyQuoteTTL)*time.Second, cfg.SiteBaseURL)

	// Background jobs
	cleanup := jobs.NewSessionCleanup(sessions)
	cleanup.Start()
	defer cleanup.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          newErrorHandler(cfg),
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("author-clock")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.Version())

	// Create handlers
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db, Store: store}
	quoteHandler := &handlers.QuoteHandler{Quotes: quotes, Likes: likes, Bookmarks: bookmarks}
	likeHandler := &handlers.LikeHandler{Likes: likes}
	bookmarkHandler := &handlers.BookmarkHandler{Bookmarks: bookmarks}
	sessionHandler := &handlers.SessionHandler{Sessions: sessions}
	seoHandler := &handlers.SEOHandler{Quotes: quotes}

	api.Get("/", healthHandler.GetIndex)
	api.Get("/health", healthHandler.GetHealth)

	// Quote routes. Static segments must register before /:id.
	api.Get("/quotes/today", middleware.OptionalSessionAuth(sessions), quoteHandler.GetTodayQuote)
	api.Get("/quotes/random", middleware.OptionalSessionAuth(sessions), quoteHandler.GetRandomQuote)
	api.Get("/quotes/liked", middleware.SessionAuth(sessions), likeHandler.LikedQuotes)
	api.Get("/quotes", quoteHandler.ListQuotes)
	api.Post("/quotes", quoteHandler.CreateQuote)
	api.Post("/quotes/today/refresh", quoteHandler.RefreshTodayCache)
	api.Get("/quotes/:id", middleware.OptionalSessionAuth(sessions), quoteHandler.GetQuoteByID)

	// Engagement routes (all require a session)
	api.Post("/quotes/:id/like", middleware.SessionAuth(sessions), likeHandler.AddLike)
	api.Delete("/quotes/:id/like", middleware.SessionAuth(sessions), likeHandler.RemoveLike)
	api.Get("/quotes/:id/like-status", middleware.SessionAuth(sessions), likeHandler.LikeStatus)
	api.Post("/quotes/:id/bookmark", middleware.SessionAuth(sessions), bookmarkHandler.AddBookmark)
	api.Delete("/quotes/:id/bookmark", middleware.SessionAuth(sessions), bookmarkHandler.RemoveBookmark)
	api.Get("/quotes/:id/bookmark-status", middleware.SessionAuth(sessions), bookmarkHandler.BookmarkStatus)
	api.Get("/bookmarks", middleware.SessionAuth(sessions), bookmarkHandler.ListBookmarks)
	api.Get("/bookmarks/count", middleware.SessionAuth(sessions), bookmarkHandler.BookmarkCount)

	// Session routes
	api.Get("/session", middleware.SessionAuth(sessions), sessionHandler.GetSessionInfo)
	api.Put("/session/preferences", middleware.SessionAuth(sessions), sessionHandler.UpdatePreferences)

	// SEO routes
	api.Get("/seo/sitemap", seoHandler.GetSitemapData)
	api.Get("/seo/meta/:id", seoHandler.GetQuoteMeta)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.ErrorResponse(c, fiber.StatusNotFound, types.CodeNotFound, "Resource not found: "+c.OriginalURL())
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// newErrorHandler builds the global error handler. Handler and service
// errors funnel here; typed errors keep their status and code, anything
// else becomes a 500 with internals hidden in production.
func newErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var customErr *types.CustomError
		if errors.As(err, &customErr) {
			return utils.ErrorResponse(c, customErr.Status, customErr.Code, customErr.Message)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return utils.ErrorResponse(c, fiberErr.Code, types.CodeInternalError, fiberErr.Message)
		}

		log.Printf("Unhandled error on %s: %v", c.OriginalURL(), err)

		message := "Internal server error"
		if !cfg.IsProduction() {
			message = err.Error()
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, types.CodeInternalError, message)
	}
}
