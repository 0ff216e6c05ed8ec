// Package handlers contains the HTTP route handler functions for the Clubhouse API.
// Each handler corresponds to one API endpoint and is responsible for reading the
// request, calling any business logic, and writing a response. Handlers that need
// the database follow the "handler factory" pattern — func(db *gorm.DB) fiber.Handler —
// so the database is injected instead of living in a global.
package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health.
// It returns a simple JSON response indicating the server is alive and reachable.
// Intentionally lightweight — no database queries, no authentication — so load
// balancers and container probes can hit it cheaply.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
