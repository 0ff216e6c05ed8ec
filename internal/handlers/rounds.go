// rounds.go — handlers for a player's participation in a round: registering a
// handicap profile and entering hole scores. These are the write-side surfaces
// that feed the scoring engine; both persist raw inputs only and return values
// freshly computed by internal/scoring, never read back from a cache.
package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mulliganhq/clubhouse/internal/models"
	"github.com/mulliganhq/clubhouse/internal/scoring"
	"github.com/mulliganhq/clubhouse/internal/websocket"
)

// UpdateHandicapRequest is the JSON body for PUT /api/v1/rounds/:id/handicap.
// Both fields are optional: a null handicap_index clears the player's index
// (their course handicap becomes "not computable", not zero), and a null
// tee_id falls back to the round's default tee.
type UpdateHandicapRequest struct {
	HandicapIndex *float64 `json:"handicap_index"`
	TeeID         *string  `json:"tee_id"`
}

// UpdateHandicapResponse echoes the stored profile plus the derived course
// handicap. CourseHandicap is a JSON number or null — null means "not yet
// computable", which clients must not render as 0.
type UpdateHandicapResponse struct {
	HandicapIndex  *float64 `json:"handicap_index"`
	TeeID          string   `json:"tee_id"`
	CourseHandicap *int     `json:"course_handicap"`
}

// SubmitScoreRequest is the JSON body for PUT /api/v1/rounds/:id/scores.
// A null or zero gross_score clears any existing score for the hole.
// user_id lets a scorer or playing partner enter on someone else's behalf;
// when omitted the score is for the authenticated user.
type SubmitScoreRequest struct {
	HoleNumber int     `json:"hole_number"`
	GrossScore *int    `json:"gross_score"`
	UserID     *string `json:"user_id"`
}

// SubmitScoreResponse carries the hole result as the engine computed it.
// Net, points, and score type are null when the player's course handicap is
// unresolvable (no handicap index yet) — gross is always echoed.
type SubmitScoreResponse struct {
	HoleNumber       int     `json:"hole_number"`
	GrossScore       *int    `json:"gross_score"` // null when the score was cleared
	StrokesReceived  *int    `json:"strokes_received"`
	NetScore         *int    `json:"net_score"`
	StablefordPoints *int    `json:"stableford_points"`
	ScoreType        *string `json:"score_type"`
}

// loadRound fetches a round with everything the scoring endpoints need: the
// course, the default tee, and the default tee's scorecard.
func loadRound(db *gorm.DB, idStr string) (*models.Round, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var round models.Round
	err = db.
		Preload("Course").
		Preload("DefaultTee.Holes", func(tx *gorm.DB) *gorm.DB { return tx.Order("hole_number") }).
		First(&round, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// effectiveTee resolves the tee a round player actually plays from: their
// override if they picked one, otherwise the round's default.
func effectiveTee(rp *models.RoundPlayer, round *models.Round) models.Tee {
	if rp != nil && rp.Tee != nil {
		return *rp.Tee
	}
	return round.DefaultTee
}

// teeRatings converts a Tee row into the engine's value object.
func teeRatings(tee models.Tee) scoring.TeeRatings {
	return scoring.TeeRatings{
		Rating: tee.CourseRating,
		Slope:  tee.SlopeRating,
		Par:    tee.Par,
	}
}

// holeInfos converts a tee's scorecard into the engine's value objects.
func holeInfos(tee models.Tee) []scoring.HoleInfo {
	holes := make([]scoring.HoleInfo, 0, len(tee.Holes))
	for _, h := range tee.Holes {
		holes = append(holes, scoring.HoleInfo{
			Number:      h.HoleNumber,
			Par:         h.Par,
			StrokeIndex: h.StrokeIndex,
		})
	}
	return holes
}

// UpdateHandicap returns a handler for PUT /api/v1/rounds/:id/handicap.
// It stores the caller's handicap index and tee selection for the round and
// responds with the recomputed course handicap. The persisted course handicap
// is only a display cache — this recomputation is the authoritative one.
func UpdateHandicap(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr, _ := c.Locals("userID").(string)
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}

		round, err := loadRound(db, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}

		var req UpdateHandicapRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		// Resolve the tee override, if any. It must belong to the round's
		// course — you can't play Pebble Creek off another course's tees.
		var teeID *uuid.UUID
		var overrideTee *models.Tee
		if req.TeeID != nil && *req.TeeID != "" {
			id, err := uuid.Parse(*req.TeeID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tee_id"})
			}
			var tee models.Tee
			if err := db.Preload("Holes").First(&tee, "id = ?", id).Error; err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tee not found"})
			}
			if tee.CourseID != round.CourseID {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "tee does not belong to this round's course",
				})
			}
			teeID = &id
			overrideTee = &tee
		}

		// Find or create the caller's round_players row.
		var rp models.RoundPlayer
		result := db.Where("round_id = ? AND user_id = ?", round.ID, userID).First(&rp)
		if result.Error != nil {
			if result.Error != gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
			}
			rp = models.RoundPlayer{RoundID: round.ID, UserID: userID}
		}
		rp.HandicapIndex = req.HandicapIndex
		rp.TeeID = teeID

		// Recompute the course handicap from the inputs. A nil result means
		// "not computable yet" — distinct from a real 0 — and is stored and
		// returned as null.
		tee := round.DefaultTee
		if overrideTee != nil {
			tee = *overrideTee
		}
		ch, err := scoring.PlayerCourseHandicap(rp.HandicapIndex, ptrTo(teeRatings(tee)))
		if err != nil {
			// Bad tee data (e.g. zero slope) reached the database somehow —
			// surface it rather than inventing a handicap.
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		rp.CourseHandicap = ch

		if err := db.Save(&rp).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save handicap"})
		}

		return c.JSON(UpdateHandicapResponse{
			HandicapIndex:  rp.HandicapIndex,
			TeeID:          tee.ID.String(),
			CourseHandicap: ch,
		})
	}
}

// SubmitScore returns a handler for PUT /api/v1/rounds/:id/scores.
// It upserts (or clears) one hole score, answers with the hole's freshly
// computed Stableford result, and pushes the recomputed leaderboard to
// everyone watching the round over the websocket hub.
func SubmitScore(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entererIDStr, _ := c.Locals("userID").(string)
		entererID, err := uuid.Parse(entererIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}

		round, err := loadRound(db, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}

		var req SubmitScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		// The score belongs to the authenticated user unless the body names
		// someone else (a playing partner or scorer entering for them).
		playerID := entererID
		if req.UserID != nil && *req.UserID != "" {
			id, err := uuid.Parse(*req.UserID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user_id"})
			}
			playerID = id
		}

		// The hole must exist on the round's scorecard.
		holes := holeInfos(round.DefaultTee)
		var holePar int
		found := false
		for _, h := range holes {
			if h.Number == req.HoleNumber {
				holePar = h.Par
				found = true
				break
			}
		}
		if !found {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown hole number"})
		}

		var rp models.RoundPlayer
		err = db.Preload("Tee.Holes").Where("round_id = ? AND user_id = ?", round.ID, playerID).First(&rp).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "player is not registered for this round",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
		}

		// A null or zero gross clears the hole: the Score row is deleted,
		// not kept with a sentinel value.
		if req.GrossScore == nil || *req.GrossScore == 0 {
			err := db.Where("round_player_id = ? AND hole_number = ?", rp.ID, req.HoleNumber).
				Delete(&models.Score{}).Error
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to clear score"})
			}
			broadcastLeaderboard(db, hub, round)
			return c.JSON(SubmitScoreResponse{HoleNumber: req.HoleNumber})
		}

		gross := *req.GrossScore
		if gross < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "gross_score must be at least 1"})
		}

		// Upsert: one Score row per (round player, hole), overwritten on
		// re-entry rather than versioned.
		var score models.Score
		result := db.Where("round_player_id = ? AND hole_number = ?", rp.ID, req.HoleNumber).First(&score)
		if result.Error != nil {
			if result.Error != gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
			}
			score = models.Score{
				RoundPlayerID: rp.ID,
				HoleNumber:    req.HoleNumber,
				GrossScore:    gross,
				EnteredBy:     entererID,
			}
			if err := db.Create(&score).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save score"})
			}
		} else {
			score.GrossScore = gross
			score.EnteredBy = entererID
			if err := db.Save(&score).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save score"})
			}
		}

		resp := SubmitScoreResponse{
			HoleNumber: req.HoleNumber,
			GrossScore: &gross,
		}

		// Compute the hole's Stableford result. Unresolvable handicap means
		// the net-based fields stay null — the gross score is still saved.
		tee := effectiveTee(&rp, round)
		ch, err := scoring.PlayerCourseHandicap(rp.HandicapIndex, ptrTo(teeRatings(tee)))
		if err == nil && ch != nil {
			strokes, derr := scoring.DistributeStrokes(*ch, holes)
			if derr != nil {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": derr.Error()})
			}
			recv := strokes[req.HoleNumber]
			pts, perr := scoring.StablefordPoints(gross, holePar, recv)
			if perr != nil {
				if errors.Is(perr, scoring.ErrInvalidInput) {
					return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": perr.Error()})
				}
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to score hole"})
			}
			net := gross - recv
			label := scoring.ScoreType(net - holePar)
			resp.StrokesReceived = &recv
			resp.NetScore = &net
			resp.StablefordPoints = &pts
			resp.ScoreType = &label
		}

		broadcastLeaderboard(db, hub, round)
		return c.JSON(resp)
	}
}

// broadcastLeaderboard recomputes the round's standings and pushes them to
// every websocket watcher. Failures are deliberately swallowed: a live-update
// hiccup must never fail the score submission that triggered it.
func broadcastLeaderboard(db *gorm.DB, hub *websocket.Hub, round *models.Round) {
	rows, err := roundLeaderboard(db, round, scoring.ViewPoints)
	if err != nil {
		return
	}
	payload, err := json.Marshal(leaderboardResponse(rows))
	if err != nil {
		return
	}
	hub.BroadcastToRound(round.ID.String(), payload)
}

func ptrTo[T any](v T) *T { return &v }
