// allocation.go — the Stroke Allocation Engine.
//
// Once a player's Course Handicap is known, the strokes have to be placed on
// individual holes so that net scores (and Stableford points) can be computed
// hole by hole. Strokes go to the hardest holes first, as ranked by each
// hole's stroke index.
package scoring

import "fmt"

// DistributeStrokes spreads a Course Handicap across the holes of a course
// and returns a map from hole number to strokes received on that hole.
//
// The allocation rule: every hole receives floor(courseHandicap / n) strokes
// (n = hole count), and each hole whose stroke index is at or below the
// remainder receives one more. For a handicap of 1–18 on a standard course
// that means exactly the `courseHandicap` hardest holes get one stroke each;
// for 19–36 every hole gets one and the hardest `courseHandicap − 18` get a
// second.
//
// Negative course handicaps (plus players) are supported with SIGNED strokes.
// The division is floored (Euclidean), so the remainder is always in [0, n):
// a −2 handicap gives base −1 with remainder 16, so the 16 hardest holes net
// out to 0 and the two EASIEST holes are charged a stroke each. Giving
// strokes back on the easiest holes is the standard plus-handicap convention,
// and it falls straight out of the same formula — no special case.
//
// The stroke indexes of the input holes must form a permutation of
// 1..len(holes); anything else (duplicates, gaps, out-of-range values) would
// make "hardest holes first" ambiguous and is rejected with ErrDataIntegrity.
// Duplicate hole numbers are rejected for the same reason. Both 18-hole and
// 9-hole courses are accepted.
func DistributeStrokes(courseHandicap int, holes []HoleInfo) (map[int]int, error) {
	n := len(holes)
	if n != 9 && n != 18 {
		return nil, fmt.Errorf("%w: expected 9 or 18 holes, got %d", ErrInvalidInput, n)
	}

	// Verify the stroke indexes are a permutation of 1..n and the hole
	// numbers are unique. seenIndex[i] records that stroke index i appeared;
	// since there are exactly n holes, "no duplicates and all in range"
	// implies the full permutation.
	seenIndex := make([]bool, n+1)
	seenHole := make(map[int]bool, n)
	for _, h := range holes {
		if h.StrokeIndex < 1 || h.StrokeIndex > n {
			return nil, fmt.Errorf("%w: hole %d has stroke index %d, want 1..%d",
				ErrDataIntegrity, h.Number, h.StrokeIndex, n)
		}
		if seenIndex[h.StrokeIndex] {
			return nil, fmt.Errorf("%w: duplicate stroke index %d", ErrDataIntegrity, h.StrokeIndex)
		}
		seenIndex[h.StrokeIndex] = true

		if seenHole[h.Number] {
			return nil, fmt.Errorf("%w: duplicate hole number %d", ErrDataIntegrity, h.Number)
		}
		seenHole[h.Number] = true
	}

	// Floored division: Go's / truncates toward zero, which is wrong for
	// negative handicaps (−2/18 must be −1, not 0). Adjust the quotient down
	// when the signs disagree and there is a nonzero remainder.
	base := courseHandicap / n
	if courseHandicap%n != 0 && courseHandicap < 0 {
		base--
	}
	remainder := courseHandicap - base*n // always in [0, n)

	strokes := make(map[int]int, n)
	for _, h := range holes {
		s := base
		if h.StrokeIndex <= remainder {
			s++
		}
		strokes[h.Number] = s
	}
	return strokes, nil
}
