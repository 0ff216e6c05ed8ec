// Package middleware contains HTTP middleware functions for the Clubhouse API.
// This file handles role-based access control — checking that the
// authenticated user has permission to perform the requested action.
package middleware

// roles.go — Role-based access control middleware.
// The app has three global roles: admin, organizer, player.

import "github.com/gofiber/fiber/v2"

// RequireRole returns a middleware handler that allows only users whose role
// matches one of the provided roles, returning HTTP 403 Forbidden otherwise.
//
// It accepts a variadic list of roles so a route can allow several with one
// call:
//
//	api.Post("/tournaments", middleware.RequireRole("admin", "organizer"), handlers.CreateTournament(db))
//
// RequireRole must be used AFTER the Auth middleware, because Auth is what
// populates the "userRole" value in the request context via c.Locals.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals("userRole").(string)
		if !ok || userRole == "" {
			// No readable role means Auth wasn't applied or failed silently —
			// deny with 403 (not 401: the user may be authenticated but
			// simply have no role set).
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}

		for _, role := range roles {
			if userRole == role {
				return c.Next()
			}
		}

		// Authenticated but not authorized for this action.
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}
