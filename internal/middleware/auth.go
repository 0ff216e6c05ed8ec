// Package middleware contains HTTP middleware functions for the Clubhouse API.
// Middleware sits between the HTTP server and route handlers — it runs on every
// request that passes through it, making it the right place for cross-cutting
// concerns like authentication and access control.
package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	// jwt parses and verifies JSON Web Tokens from the Authorization header
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/mulliganhq/clubhouse/internal/config"
	"github.com/mulliganhq/clubhouse/internal/models"
)

// Claims defines the data we expect inside a token payload. Beyond the
// standard fields (Subject = identity-provider user ID, expiry, etc.) the
// token carries custom claims used to populate our users table:
//
//	"role":  "admin", "organizer", or "player"
//	"email": the user's primary email address
//	"name":  the user's display name
type Claims struct {
	jwt.RegisteredClaims        // Standard JWT fields: Subject, ExpiresAt, IssuedAt, etc.
	Role                 string `json:"role"`
	Email                string `json:"email"`
	Name                 string `json:"name"`
}

// Auth returns a Fiber middleware handler that:
//  1. Verifies the JWT from the "Authorization: Bearer <token>" header
//  2. Finds the matching user in our database (or creates one on first visit)
//  3. Syncs the user's role from the token into the database
//  4. Stores the user's internal UUID and role in the request context
//     (c.Locals) so downstream handlers can read them without re-parsing
//
// This is a closure — it captures cfg and db so they're available on every
// request without globals.
func Auth(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid authorization header",
			})
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		// Verify the signature with our shared secret. Only HMAC-signed
		// tokens are accepted — a token claiming any other algorithm is
		// rejected before the claims are trusted.
		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token claims",
			})
		}

		// claims.Subject is the standard "sub" field — the identity
		// provider's user ID.
		externalID := claims.Subject
		if externalID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token missing subject",
			})
		}

		// Lazy user sync: the first time a user hits any authenticated
		// endpoint we create their record; afterwards we just look them up.
		role := roleFromClaim(claims.Role)

		// Placeholder email/name in case the token template doesn't include
		// them — deterministic and unique per external user.
		email := claims.Email
		if email == "" {
			email = fmt.Sprintf("%s@clubhouse.local", externalID)
		}
		name := claims.Name
		if name == "" {
			name = "Player"
		}

		var user models.User
		result := db.Where("external_id = ?", externalID).First(&user)
		if result.Error != nil {
			// gorm.ErrRecordNotFound is the expected "not found" error;
			// anything else is a real DB problem.
			if result.Error != gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "database error",
				})
			}
			user = models.User{
				ExternalID:  &externalID,
				DisplayName: name,
				Email:       email,
				Role:        role,
			}
			if err := db.Create(&user).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to create user record",
				})
			}
		} else {
			// Sync the role in case it changed at the identity provider.
			if user.Role != role && claims.Role != "" {
				db.Model(&user).Update("role", role)
				user.Role = role
			}
		}

		// c.Locals is a key-value store scoped to this single request.
		// Handlers read "userID" (our internal UUID) and "userRole" from here.
		c.Locals("userID", user.ID.String())
		c.Locals("userRole", string(user.Role))

		return c.Next()
	}
}

// roleFromClaim converts the raw role string from the token into our typed
// UserRole enum. Missing or unrecognised roles default to "player" (least
// privileged).
func roleFromClaim(s string) models.UserRole {
	switch s {
	case "admin":
		return models.UserRoleAdmin
	case "organizer":
		return models.UserRoleOrganizer
	default:
		return models.UserRolePlayer
	}
}
