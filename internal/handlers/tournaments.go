// tournaments.go — handlers for the /api/v1/tournaments routes.
//
// A tournament is the tenant container for everything else: rounds,
// registrations, and scores all hang off one tournament.
//
// --- Permission model ---
// Two layers of access control:
//
//  1. Route-level (middleware.RequireRole): only "admin" and "organizer"
//     global roles can create tournaments. All authenticated users can list.
//
//  2. Resource-level (isTournamentOrganizer, below): controls who can modify
//     a specific tournament.
//     - "admin" global role → can manage ANY tournament.
//     - everyone else → must hold the organizer flag on their
//       tournament_players row (granted automatically to the creator, or
//       manually by another organizer).
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mulliganhq/clubhouse/internal/models"
)

// TournamentResponse is what we send back to clients. A dedicated response
// struct (instead of the raw GORM model) controls exactly which fields are
// serialised and lets us add computed fields like PlayerCount.
type TournamentResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"` // null if not set
	Status      string  `json:"status"`      // "upcoming", "active", "completed", "cancelled"
	StartDate   *string `json:"start_date"`  // "YYYY-MM-DD" or null
	EndDate     *string `json:"end_date"`
	CreatorName string  `json:"creator_name"`
	PlayerCount int64   `json:"player_count"`
	CreatedAt   string  `json:"created_at"` // ISO 8601 timestamp
}

// CreateTournamentRequest is the JSON body we expect on POST /api/v1/tournaments.
type CreateTournamentRequest struct {
	Name        string  `json:"name"`        // Required
	Description *string `json:"description"` // Optional
	StartDate   *string `json:"start_date"`  // Optional: "YYYY-MM-DD"
	EndDate     *string `json:"end_date"`    // Optional: "YYYY-MM-DD"
}

// formatOptionalDate converts a *time.Time to a *string in "2006-01-02"
// format, preserving nil so the JSON field stays null.
func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02")
	return &s
}

// parseOptionalDate parses an optional "YYYY-MM-DD" string into a *time.Time.
// Nil or empty input yields nil; a non-empty invalid string is an error.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTournaments returns a handler for GET /api/v1/tournaments.
// Admins see every tournament; everyone else sees only tournaments they have
// a tournament_players row in.
func GetTournaments(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The Auth middleware stored these in the request context.
		userIDStr, _ := c.Locals("userID").(string)
		userRole, _ := c.Locals("userRole").(string)

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid user ID",
			})
		}

		// Preload("Creator") fetches the related User record for each
		// tournament's CreatedBy foreign key, avoiding N+1 queries.
		var tournaments []models.Tournament
		query := db.Preload("Creator")

		if userRole == "admin" {
			query = query.Find(&tournaments)
		} else {
			query = query.
				Joins("JOIN tournament_players ON tournament_players.tournament_id = tournaments.id").
				Where("tournament_players.user_id = ?", userID).
				Find(&tournaments)
		}
		if query.Error != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch tournaments",
			})
		}

		response := make([]TournamentResponse, 0, len(tournaments))
		for _, t := range tournaments {
			var playerCount int64
			db.Model(&models.TournamentPlayer{}).
				Where("tournament_id = ?", t.ID).
				Count(&playerCount)

			response = append(response, TournamentResponse{
				ID:          t.ID.String(),
				Name:        t.Name,
				Description: t.Description,
				Status:      string(t.Status),
				StartDate:   formatOptionalDate(t.StartDate),
				EndDate:     formatOptionalDate(t.EndDate),
				CreatorName: t.Creator.DisplayName,
				PlayerCount: playerCount,
				CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
			})
		}

		return c.JSON(response)
	}
}

// CreateTournament returns a handler for POST /api/v1/tournaments.
// Requires "admin" or "organizer" role (enforced by RequireRole on the route).
// Creates the tournament and registers the creator as its organizer in one
// transaction, so a failed registration rolls the tournament back too.
func CreateTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr, _ := c.Locals("userID").(string)
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid user ID",
			})
		}

		var req CreateTournamentRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name is required",
			})
		}

		startDate, err := parseOptionalDate(req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "start_date must be in YYYY-MM-DD format",
			})
		}
		endDate, err := parseOptionalDate(req.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "end_date must be in YYYY-MM-DD format",
			})
		}

		var created models.Tournament
		txErr := db.Transaction(func(tx *gorm.DB) error {
			tournament := models.Tournament{
				Name:        req.Name,
				Description: req.Description,
				Status:      models.TournamentStatusUpcoming,
				StartDate:   startDate,
				EndDate:     endDate,
				CreatedBy:   userID,
			}
			if err := tx.Create(&tournament).Error; err != nil {
				return err // rolls the transaction back
			}

			// Every tournament needs at least one organizer — the creator.
			player := models.TournamentPlayer{
				TournamentID: tournament.ID,
				UserID:       userID,
				IsOrganizer:  true,
				Status:       models.TournamentPlayerStatusRegistered,
			}
			if err := tx.Create(&player).Error; err != nil {
				return err
			}

			created = tournament
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create tournament",
			})
		}

		var creator models.User
		db.First(&creator, "id = ?", userID)

		return c.Status(fiber.StatusCreated).JSON(TournamentResponse{
			ID:          created.ID.String(),
			Name:        created.Name,
			Description: created.Description,
			Status:      string(created.Status),
			StartDate:   formatOptionalDate(created.StartDate),
			EndDate:     formatOptionalDate(created.EndDate),
			CreatorName: creator.DisplayName,
			PlayerCount: 1, // just the creator so far
			CreatedAt:   created.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
}

// isTournamentOrganizer reports whether a user may manage a specific
// tournament: global admins always can; everyone else needs the organizer
// flag on their tournament_players row for THIS tournament.
func isTournamentOrganizer(db *gorm.DB, tournamentID, userID uuid.UUID, userRole string) bool {
	if userRole == "admin" {
		return true
	}
	var player models.TournamentPlayer
	err := db.Where("tournament_id = ? AND user_id = ?", tournamentID, userID).First(&player).Error
	return err == nil && player.IsOrganizer
}
