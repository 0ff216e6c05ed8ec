// handicap.go — the Course Handicap Calculator.
//
// A Handicap Index is portable: it describes the player, not any particular
// course. Before a round it has to be converted into a Course Handicap — the
// actual number of strokes the player receives on the tees they are playing.
// This file implements that conversion using the USGA/WHS formula.
package scoring

import (
	"fmt"
	"math"
)

// NominalSlope is the slope rating of a course of "standard" difficulty.
// The slope term of the course handicap formula is a ratio against this
// value: a 113-slope course leaves the handicap index unchanged, a harder
// course scales it up, an easier one scales it down.
const NominalSlope = 113

// CourseHandicap converts a Handicap Index into a Course Handicap for one
// set of tees:
//
//	courseHandicap = round(handicapIndex × teeSlope/113 + (teeRating − coursePar))
//
// Rounding is half away from zero (math.Round). For the non-negative values
// the formula produces in practice this is identical to the round-half-up
// rule the USGA specifies; for negative raw values (strong plus-handicap
// players) −0.5 rounds to −1.
//
// The handicap index may be negative (a "plus" player, better than scratch)
// or zero (scratch). A zero or negative slope makes the ratio meaningless, so
// it is rejected with ErrInvalidInput rather than silently producing 0 — a
// computed 0 is a real scratch handicap and must never double as a "no data"
// fallback (see PlayerCourseHandicap for the missing-data case).
func CourseHandicap(handicapIndex, teeRating float64, teeSlope, coursePar int) (int, error) {
	if teeSlope <= 0 {
		return 0, fmt.Errorf("%w: tee slope must be positive, got %d", ErrInvalidInput, teeSlope)
	}
	if math.IsNaN(handicapIndex) || math.IsInf(handicapIndex, 0) {
		return 0, fmt.Errorf("%w: handicap index must be a finite number", ErrInvalidInput)
	}
	if math.IsNaN(teeRating) || math.IsInf(teeRating, 0) {
		return 0, fmt.Errorf("%w: tee rating must be a finite number", ErrInvalidInput)
	}

	raw := handicapIndex*float64(teeSlope)/NominalSlope + (teeRating - float64(coursePar))
	return int(math.Round(raw)), nil
}

// PlayerCourseHandicap is the nullable wrapper around CourseHandicap used by
// the leaderboard and the HTTP layer. A player who has not entered a handicap
// index, or has not picked a tee, does not have a course handicap yet — that
// is a different situation from a computed handicap of 0, and the two must
// never be conflated. Missing inputs yield (nil, nil): "not computable", not
// an error and not a scratch handicap.
func PlayerCourseHandicap(handicapIndex *float64, tee *TeeRatings) (*int, error) {
	if handicapIndex == nil || tee == nil {
		return nil, nil
	}
	ch, err := CourseHandicap(*handicapIndex, tee.Rating, tee.Slope, tee.Par)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}
