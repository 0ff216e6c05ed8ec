package handlers

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mulliganhq/clubhouse/internal/models"
	"github.com/mulliganhq/clubhouse/internal/scoring"
)

func TestHealthCheck(t *testing.T) {
	app := fiber.New()
	app.Get("/health", HealthCheck)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestParseOptionalDate(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		got, err := parseOptionalDate(nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
	t.Run("empty stays nil", func(t *testing.T) {
		s := ""
		got, err := parseOptionalDate(&s)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
	t.Run("valid date", func(t *testing.T) {
		s := "2026-06-12"
		got, err := parseOptionalDate(&s)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC), got.UTC())
	})
	t.Run("garbage is an error", func(t *testing.T) {
		s := "June 12th"
		_, err := parseOptionalDate(&s)
		assert.Error(t, err)
	})
}

func TestFormatOptionalDate(t *testing.T) {
	assert.Nil(t, formatOptionalDate(nil))

	d := time.Date(2026, 6, 12, 15, 4, 5, 0, time.UTC)
	got := formatOptionalDate(&d)
	require.NotNil(t, got)
	assert.Equal(t, "2026-06-12", *got)
}

func TestTeeGenderFrom(t *testing.T) {
	assert.Equal(t, models.TeeGenderMens, teeGenderFrom("mens"))
	assert.Equal(t, models.TeeGenderWomens, teeGenderFrom("womens"))
	assert.Equal(t, models.TeeGenderUnisex, teeGenderFrom("unisex"))
	// Unknown values default to unisex rather than failing the request.
	assert.Equal(t, models.TeeGenderUnisex, teeGenderFrom(""))
	assert.Equal(t, models.TeeGenderUnisex, teeGenderFrom("championship"))
}

// effectiveTee prefers the player's override and falls back to the round's
// default tee.
func TestEffectiveTee(t *testing.T) {
	defaultTee := models.Tee{Name: "White", SlopeRating: 120, CourseRating: 70.5, Par: 72}
	override := models.Tee{Name: "Blue", SlopeRating: 131, CourseRating: 72.8, Par: 72}
	round := &models.Round{DefaultTee: defaultTee}

	t.Run("no override", func(t *testing.T) {
		rp := &models.RoundPlayer{}
		assert.Equal(t, "White", effectiveTee(rp, round).Name)
	})
	t.Run("with override", func(t *testing.T) {
		rp := &models.RoundPlayer{Tee: &override}
		assert.Equal(t, "Blue", effectiveTee(rp, round).Name)
	})
}

func TestTeeRatingsConversion(t *testing.T) {
	tee := models.Tee{CourseRating: 71.2, SlopeRating: 128, Par: 71}
	got := teeRatings(tee)
	assert.Equal(t, scoring.TeeRatings{Rating: 71.2, Slope: 128, Par: 71}, got)
}

func TestHoleInfosConversion(t *testing.T) {
	tee := models.Tee{
		Holes: []models.Hole{
			{HoleNumber: 1, Par: 4, StrokeIndex: 7},
			{HoleNumber: 2, Par: 3, StrokeIndex: 15},
		},
	}
	got := holeInfos(tee)
	require.Len(t, got, 2)
	assert.Equal(t, scoring.HoleInfo{Number: 1, Par: 4, StrokeIndex: 7}, got[0])
	assert.Equal(t, scoring.HoleInfo{Number: 2, Par: 3, StrokeIndex: 15}, got[1])
}

// The response mapping must pass nullability straight through: a nil total in
// the engine row stays a nil (JSON null) field, never a zero.
func TestLeaderboardResponseMapping(t *testing.T) {
	points := 48
	gross := 90
	net := 78
	rank := 1
	ch := 12
	roundID := uuid.NewString()

	rows := []scoring.Row{
		{
			PlayerID:    "p-1",
			PlayerName:  "Alice",
			Rank:        &rank,
			TotalPoints: &points,
			TotalGross:  &gross,
			TotalNet:    &net,
			Rounds: []scoring.RoundTotal{{
				CourseID:       roundID,
				CourseName:     "Round 1 — Pebble Creek",
				HolesPlayed:    18,
				CourseHandicap: &ch,
				Gross:          gross,
				Net:            &net,
				Points:         &points,
			}},
		},
		{PlayerID: "p-2", PlayerName: "Dave"},
	}

	got := leaderboardResponse(rows)
	require.Len(t, got, 2)

	assert.Equal(t, "Alice", got[0].PlayerName)
	require.NotNil(t, got[0].Rank)
	assert.Equal(t, 1, *got[0].Rank)
	require.Len(t, got[0].Rounds, 1)
	assert.Equal(t, roundID, got[0].Rounds[0].RoundID)
	assert.Equal(t, 18, got[0].Rounds[0].HolesPlayed)

	// Dave never recorded a score: everything null, empty round list.
	assert.Nil(t, got[1].Rank)
	assert.Nil(t, got[1].TotalPoints)
	assert.Nil(t, got[1].TotalGross)
	assert.Nil(t, got[1].TotalNet)
	assert.Empty(t, got[1].Rounds)
}
