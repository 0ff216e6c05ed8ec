// stableford.go — the Stableford Scoring Function.
//
// Stableford awards points per hole based on the NET score relative to par,
// rewarding aggressive play: a blow-up hole costs at most the points you
// didn't earn, never more. One canonical points table is used everywhere in
// the system — there is exactly one source of truth for how many points a
// net birdie is worth.
package scoring

import "fmt"

// The canonical points table (full modified-Stableford banding), keyed by
// net score relative to par:
//
//	net diff ≤ −2  →  5 points  (eagle or better — banding is clamped here)
//	net diff = −1  →  4 points  (birdie)
//	net diff =  0  →  3 points  (par)
//	net diff = +1  →  2 points  (bogey)
//	net diff = +2  →  1 point   (double bogey)
//	net diff ≥ +3  →  0 points
//
// StablefordPoints applies the table to a single hole: net = gross −
// strokesReceived, diff = net − par. strokesReceived may be negative for a
// plus-handicap player being charged a stroke on this hole (see
// DistributeStrokes). The result is always ≥ 0.
func StablefordPoints(grossScore, holePar, strokesReceived int) (int, error) {
	if grossScore < 1 {
		return 0, fmt.Errorf("%w: gross score must be at least 1, got %d", ErrInvalidInput, grossScore)
	}
	if holePar < 3 || holePar > 5 {
		return 0, fmt.Errorf("%w: hole par must be 3, 4, or 5, got %d", ErrInvalidInput, holePar)
	}

	diff := (grossScore - strokesReceived) - holePar
	switch {
	case diff <= -2:
		return 5, nil
	case diff == -1:
		return 4, nil
	case diff == 0:
		return 3, nil
	case diff == 1:
		return 2, nil
	case diff == 2:
		return 1, nil
	default:
		return 0, nil
	}
}

// ScoreType returns the display label for a net score relative to par. It is
// a pure presentation helper — the points table above is the scoring truth —
// but the two use the same banding so labels and points always agree.
func ScoreType(netDiff int) string {
	switch {
	case netDiff <= -3:
		return "Albatross"
	case netDiff == -2:
		return "Eagle"
	case netDiff == -1:
		return "Birdie"
	case netDiff == 0:
		return "Par"
	case netDiff == 1:
		return "Bogey"
	default:
		return "Double Bogey+"
	}
}
