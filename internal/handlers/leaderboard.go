// leaderboard.go — read-side handlers that expose the scoring engine's
// standings. Nothing here is cached: every request reloads the raw inputs
// (handicap profiles, scorecards, hole scores) and hands them to
// internal/scoring, so the response is always a pure function of current
// state. The engine is O(players × holes), cheap enough to recompute on every
// poll.
package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mulliganhq/clubhouse/internal/models"
	"github.com/mulliganhq/clubhouse/internal/scoring"
)

// RoundBreakdownResponse is one round's line in a player's leaderboard row.
type RoundBreakdownResponse struct {
	RoundID        string `json:"round_id"`
	Name           string `json:"name"`
	HolesPlayed    int    `json:"holes_played"`
	CourseHandicap *int   `json:"course_handicap"`
	Gross          int    `json:"gross"`
	Net            *int   `json:"net"`
	Points         *int   `json:"points"`
}

// LeaderboardRowResponse is one player's standings line. Rank and the totals
// are null for players without the relevant data — a null total means "no
// rounds recorded" (or, for net/points, "handicap not computable"), never 0.
type LeaderboardRowResponse struct {
	PlayerID    string                   `json:"player_id"`
	PlayerName  string                   `json:"player_name"`
	Rank        *int                     `json:"rank"`
	TotalPoints *int                     `json:"total_points"`
	TotalGross  *int                     `json:"total_gross"`
	TotalNet    *int                     `json:"total_net"`
	Rounds      []RoundBreakdownResponse `json:"rounds"`
}

// GetRoundLeaderboard returns a handler for
// GET /api/v1/rounds/:id/leaderboard?mode=points|strokes|net.
func GetRoundLeaderboard(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mode, err := scoring.ParseViewMode(c.Query("mode"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "mode must be 'points', 'strokes', or 'net'",
			})
		}

		round, err := loadRound(db, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}

		rows, err := roundLeaderboard(db, round, mode)
		if err != nil {
			// The engine only fails here on broken persisted data (e.g. a
			// stroke-index permutation violation) — a server-side problem,
			// not the client's.
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(leaderboardResponse(rows))
	}
}

// GetTournamentLeaderboard returns a handler for
// GET /api/v1/tournaments/:id/leaderboard?mode=points|strokes|net.
// Grand totals sum every round of the tournament; the per-round breakdown
// rides along in each row.
func GetTournamentLeaderboard(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mode, err := scoring.ParseViewMode(c.Query("mode"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "mode must be 'points', 'strokes', or 'net'",
			})
		}

		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
		}
		var tournament models.Tournament
		if err := db.First(&tournament, "id = ?", tournamentID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
		}

		rows, err := tournamentLeaderboard(db, tournament.ID, mode)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(leaderboardResponse(rows))
	}
}

// roundLeaderboard assembles the engine inputs for a single round and runs
// the aggregator. The round is the engine's "course" unit: its ID keys the
// scores, the default tee supplies the scorecard, and each player's selected
// tee supplies their ratings.
func roundLeaderboard(db *gorm.DB, round *models.Round, mode scoring.ViewMode) ([]scoring.Row, error) {
	var rps []models.RoundPlayer
	err := db.Preload("User").Preload("Tee").
		Where("round_id = ?", round.ID).Find(&rps).Error
	if err != nil {
		return nil, err
	}

	unitID := round.ID.String()
	players := make([]scoring.PlayerEntry, 0, len(rps))
	rpToUser := make(map[uuid.UUID]string, len(rps))
	rpIDs := make([]uuid.UUID, 0, len(rps))
	for i := range rps {
		rp := &rps[i]
		tee := effectiveTee(rp, round)
		players = append(players, scoring.PlayerEntry{
			ID:            rp.UserID.String(),
			Name:          rp.User.DisplayName,
			HandicapIndex: rp.HandicapIndex,
			Tees:          map[string]scoring.TeeRatings{unitID: teeRatings(tee)},
		})
		rpToUser[rp.ID] = rp.UserID.String()
		rpIDs = append(rpIDs, rp.ID)
	}

	holeScores, err := loadHoleScores(db, rpIDs, func(uuid.UUID) string { return unitID }, rpToUser)
	if err != nil {
		return nil, err
	}

	courses := []scoring.CourseSetup{{
		ID:    unitID,
		Name:  round.Course.Name,
		Holes: holeInfos(round.DefaultTee),
	}}
	return scoring.Leaderboard(players, courses, holeScores, mode)
}

// tournamentLeaderboard assembles engine inputs across every round of a
// tournament. Each round becomes one engine "course"; a player's handicap
// index is taken from their most recent round profile that has one (the
// profile is tournament-wide in the engine's model, per-round snapshots in
// the database).
func tournamentLeaderboard(db *gorm.DB, tournamentID uuid.UUID, mode scoring.ViewMode) ([]scoring.Row, error) {
	var rounds []models.Round
	err := db.Preload("Course").
		Preload("DefaultTee.Holes", func(tx *gorm.DB) *gorm.DB { return tx.Order("hole_number") }).
		Where("tournament_id = ?", tournamentID).
		Order("round_number").
		Find(&rounds).Error
	if err != nil {
		return nil, err
	}

	courses := make([]scoring.CourseSetup, 0, len(rounds))
	entryByUser := make(map[string]*scoring.PlayerEntry)
	var playerOrder []string
	rpToUser := make(map[uuid.UUID]string)
	rpToRound := make(map[uuid.UUID]string)
	var rpIDs []uuid.UUID

	for i := range rounds {
		round := &rounds[i]
		unitID := round.ID.String()
		courses = append(courses, scoring.CourseSetup{
			ID:    unitID,
			Name:  fmt.Sprintf("Round %d — %s", round.RoundNumber, round.Course.Name),
			Holes: holeInfos(round.DefaultTee),
		})

		var rps []models.RoundPlayer
		err := db.Preload("User").Preload("Tee").
			Where("round_id = ?", round.ID).Find(&rps).Error
		if err != nil {
			return nil, err
		}
		for j := range rps {
			rp := &rps[j]
			userID := rp.UserID.String()
			entry, ok := entryByUser[userID]
			if !ok {
				entry = &scoring.PlayerEntry{
					ID:   userID,
					Name: rp.User.DisplayName,
					Tees: make(map[string]scoring.TeeRatings),
				}
				entryByUser[userID] = entry
				playerOrder = append(playerOrder, userID)
			}
			entry.Tees[unitID] = teeRatings(effectiveTee(rp, round))
			if rp.HandicapIndex != nil {
				entry.HandicapIndex = rp.HandicapIndex
			}
			rpToUser[rp.ID] = userID
			rpToRound[rp.ID] = unitID
			rpIDs = append(rpIDs, rp.ID)
		}
	}

	holeScores, err := loadHoleScores(db, rpIDs, func(rpID uuid.UUID) string { return rpToRound[rpID] }, rpToUser)
	if err != nil {
		return nil, err
	}

	players := make([]scoring.PlayerEntry, 0, len(playerOrder))
	for _, userID := range playerOrder {
		players = append(players, *entryByUser[userID])
	}
	return scoring.Leaderboard(players, courses, holeScores, mode)
}

// loadHoleScores fetches the Score rows for a set of round players and maps
// them into engine value objects, resolving each row's round player back to
// a user ID and an engine course unit.
func loadHoleScores(db *gorm.DB, rpIDs []uuid.UUID, unitFor func(uuid.UUID) string, rpToUser map[uuid.UUID]string) ([]scoring.HoleScore, error) {
	if len(rpIDs) == 0 {
		return nil, nil
	}
	var scores []models.Score
	if err := db.Where("round_player_id IN ?", rpIDs).Find(&scores).Error; err != nil {
		return nil, err
	}
	out := make([]scoring.HoleScore, 0, len(scores))
	for _, s := range scores {
		out = append(out, scoring.HoleScore{
			PlayerID:   rpToUser[s.RoundPlayerID],
			CourseID:   unitFor(s.RoundPlayerID),
			HoleNumber: s.HoleNumber,
			Gross:      s.GrossScore,
		})
	}
	return out, nil
}

// leaderboardResponse maps engine rows to the JSON response shape.
func leaderboardResponse(rows []scoring.Row) []LeaderboardRowResponse {
	response := make([]LeaderboardRowResponse, 0, len(rows))
	for _, row := range rows {
		r := LeaderboardRowResponse{
			PlayerID:    row.PlayerID,
			PlayerName:  row.PlayerName,
			Rank:        row.Rank,
			TotalPoints: row.TotalPoints,
			TotalGross:  row.TotalGross,
			TotalNet:    row.TotalNet,
			Rounds:      make([]RoundBreakdownResponse, 0, len(row.Rounds)),
		}
		for _, rt := range row.Rounds {
			r.Rounds = append(r.Rounds, RoundBreakdownResponse{
				RoundID:        rt.CourseID,
				Name:           rt.CourseName,
				HolesPlayed:    rt.HolesPlayed,
				CourseHandicap: rt.CourseHandicap,
				Gross:          rt.Gross,
				Net:            rt.Net,
				Points:         rt.Points,
			})
		}
		response = append(response, r)
	}
	return response
}
