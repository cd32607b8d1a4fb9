package main

import (
	"log"

	"github.com/antonv42/textpost/backend/internal/render"
	"github.com/antonv42/textpost/backend/internal/router"
	"github.com/antonv42/textpost/backend/pkg/config"
	"github.com/antonv42/textpost/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg.PostgresConnStr)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	// Create Echo instance
	e := echo.New()

	// Template renderer
	renderer, err := render.New()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	e.Renderer = renderer

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
