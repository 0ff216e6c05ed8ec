// Package scoring implements the golf scoring and handicap engine — the pure
// computational heart of the Clubhouse API. Everything in this package is a
// stateless function of its inputs: no database access, no HTTP, no globals.
// Handlers feed in plain numbers (handicap index, tee rating/slope/par, hole
// pars and stroke indexes, gross scores) and get plain numbers back.
//
// The engine is split into four pieces that compose in sequence:
//
//  1. CourseHandicap — converts a player's portable Handicap Index into the
//     number of strokes they receive on a specific set of tees.
//  2. DistributeStrokes — spreads those strokes across the holes, hardest
//     holes first, using each hole's stroke index.
//  3. StablefordPoints — converts one hole's gross score into Stableford
//     points given the hole's par and the strokes received there.
//  4. Leaderboard — runs 1–3 for every player and round, sums the results,
//     and produces a ranked standings table.
//
// Because every function here is pure and synchronous, the package is safe to
// call from any number of request handlers concurrently with no locking. The
// leaderboard is cheap enough (O(players × holes)) to recompute on every
// request, so derived values are never cached as a source of truth.
package scoring

import "errors"

// Sentinel errors for the two failure classes the engine can hit. Callers
// match them with errors.Is; every error returned from this package wraps one
// of these with a message describing the specific offending input.
var (
	// ErrInvalidInput means a numeric input was malformed or out of range —
	// a zero slope, a par outside 3–5, a gross score below 1. The engine
	// fails fast and produces no partial result.
	ErrInvalidInput = errors.New("scoring: invalid input")

	// ErrDataIntegrity means the course data itself is broken — most often
	// stroke indexes that are not a permutation of 1..18. Allocating strokes
	// against such data would silently mis-score, so the engine refuses.
	ErrDataIntegrity = errors.New("scoring: data integrity violation")
)

// HoleInfo is the per-hole data the engine needs: which hole it is, its par,
// and its stroke index (the hole's difficulty rank — 1 is the hardest hole on
// the course and receives the first handicap stroke, 18 the easiest).
type HoleInfo struct {
	Number      int // Hole number, 1–18 (or 1–9 on a nine-hole course)
	Par         int // Expected strokes for this hole: 3, 4, or 5
	StrokeIndex int // Handicap allocation rank: unique within the course, 1..holeCount
}

// TeeRatings carries the three numbers printed on a scorecard for one set of
// tees. Together with a player's Handicap Index they fully determine the
// player's Course Handicap for a round played from those tees.
type TeeRatings struct {
	Rating float64 // USGA course rating, e.g. 71.2 — expected score for a scratch golfer
	Slope  int     // USGA slope rating, 55–155 — difficulty for bogey golfers relative to scratch
	Par    int     // Par for the full set of holes from these tees
}
