package router

import (
	"log"
	"net/http"
	"time"

	"github.com/antonv42/textpost/backend/internal/cache"
	"github.com/antonv42/textpost/backend/internal/handlers"
	"github.com/antonv42/textpost/backend/internal/middleware"
	"github.com/antonv42/textpost/backend/internal/models"
	"github.com/antonv42/textpost/backend/internal/repositories"
	"github.com/antonv42/textpost/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Uploaded post images
	e.Static("/media", cfg.MediaDir)

	// --- Initialize repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	groupRepo := repositories.NewPostgresGroupRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	// --- Session middleware ---
	// Public pages see the viewer when a session exists but never block.
	e.Use(middleware.OptionalAuth(cfg.JWTSecret))
	requireAuth := middleware.RequireAuth(cfg.JWTSecret)
	adminAuth := middleware.AdminAuth(userRepo)

	// --- Index page cache ---
	pageCache := cache.New(time.Duration(cfg.CacheIndexPage) * time.Second)
	cacheMW := middleware.PageCache(pageCache)
	log.Printf("Index page cache configured with TTL %ds.", cfg.CacheIndexPage)

	// --- Auth routes ---
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(e.Group("/auth"))
	log.Println("Auth routes configured.")

	// --- Feed routes ---
	feedHandler := handlers.NewFeedHandler(postRepo, followRepo, cfg.PostsOnPage)
	feedHandler.RegisterFeedRoutes(e, cacheMW, requireAuth)
	log.Println("Feed routes configured.")

	// --- Group routes ---
	groupHandler := handlers.NewGroupHandler(groupRepo, postRepo, cfg.PostsOnPage)
	groupHandler.RegisterGroupRoutes(e)
	log.Println("Group routes configured.")

	// --- Profile routes ---
	profileHandler := handlers.NewProfileHandler(userRepo, postRepo, followRepo, cfg.PostsOnPage)
	profileHandler.RegisterProfileRoutes(e)
	log.Println("Profile routes configured.")

	// --- Post routes ---
	postHandler := handlers.NewPostHandler(postRepo, groupRepo, commentRepo, cfg.MediaDir)
	postHandler.RegisterPostRoutes(e, requireAuth)
	log.Println("Post routes configured.")

	// --- Comment routes ---
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(e, requireAuth)
	log.Println("Comment routes configured.")

	// --- Follow routes ---
	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(e, requireAuth)
	log.Println("Follow routes configured.")

	// --- Admin routes ---
	adminHandler := handlers.NewAdminHandler(pageCache)
	adminHandler.RegisterAdminRoutes(e, requireAuth, adminAuth)
	log.Println("Admin routes configured.")

	e.HTTPErrorHandler = notFoundAwareErrorHandler(e)

	log.Println("All routes configured.")
}

// notFoundAwareErrorHandler renders the 404 page for unknown paths and
// missing entities; everything else falls through to echo's default.
func notFoundAwareErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusNotFound {
			viewer, _ := c.Get(middleware.ClaimsContextKey).(*models.JwtCustomClaims)
			if rerr := c.Render(http.StatusNotFound, "not_found.html", echo.Map{"Viewer": viewer}); rerr == nil {
				return
			}
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
