// cmd/server/main.go
// Entry point for the Clubhouse API server. The cmd/ folder holds executable
// binaries, and internal/ holds packages that are not meant to be imported by
// other projects.
package main

import (
	"log"

	// fiber is a fast HTTP web framework inspired by Express.js
	"github.com/gofiber/fiber/v2"
	// cors allows the web/mobile clients to talk to the API even though
	// they're served from different origins
	"github.com/gofiber/fiber/v2/middleware/cors"
	// logger prints request details (method, path, status, duration) to stdout
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/mulliganhq/clubhouse/internal/config"
	"github.com/mulliganhq/clubhouse/internal/database"
	"github.com/mulliganhq/clubhouse/internal/handlers"
	"github.com/mulliganhq/clubhouse/internal/middleware"
	"github.com/mulliganhq/clubhouse/internal/websocket"
)

func main() {
	// Load configuration from environment variables (and optionally a .env file).
	cfg := config.Load()

	// Connect to PostgreSQL; the returned *gorm.DB is shared by middleware
	// and handlers.
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run any pending SQL migration files on startup so the schema is always
	// in sync when the server starts.
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// The Hub manages live connections — spectators watching a round get the
	// recomputed leaderboard pushed to them whenever a score lands.
	hub := websocket.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName: "Clubhouse API",
	})

	// --- Global middleware ---
	app.Use(logger.New())
	// Allow any origin in development; lock this down to specific domains in
	// production.
	app.Use(cors.New())

	// --- Public routes (no auth required) ---
	// Liveness check for load balancers and container probes.
	app.Get("/health", handlers.HealthCheck)

	// --- Authenticated API routes ---
	// Everything under /api/v1 requires a valid bearer token; Auth also
	// lazily syncs the user into our database.
	api := app.Group("/api/v1", middleware.Auth(cfg, db))

	// Tournaments — the tenant containers.
	api.Get("/tournaments", handlers.GetTournaments(db))
	api.Post("/tournaments", middleware.RequireRole("admin", "organizer"), handlers.CreateTournament(db))
	api.Get("/tournaments/:id/leaderboard", handlers.GetTournamentLeaderboard(db))

	// Courses — static scorecard data the scoring engine runs against.
	api.Get("/courses", handlers.GetCourses(db))
	api.Post("/courses", middleware.RequireRole("admin", "organizer"), handlers.CreateCourse(db))

	// Rounds — handicap profiles, score entry, live standings.
	api.Put("/rounds/:id/handicap", handlers.UpdateHandicap(db))
	api.Put("/rounds/:id/scores", handlers.SubmitScore(db, hub))
	api.Get("/rounds/:id/leaderboard", handlers.GetRoundLeaderboard(db))

	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
