// leaderboard.go — the Leaderboard Aggregator.
//
// This is the composition root of the scoring engine: for every player and
// every round they have scores in, it runs the course handicap calculation,
// the stroke allocation, and the Stableford function, then sums and ranks.
// It is recomputed from scratch on every request — the inputs (handicap
// profiles, course data, hole scores) are the only source of truth, and the
// output carries no hidden state, so calling it twice with the same inputs
// always produces the same standings.
package scoring

import (
	"fmt"
	"sort"
)

// ViewMode selects which total the leaderboard is sorted by.
type ViewMode string

const (
	ViewPoints  ViewMode = "points"  // Stableford points, descending — most points wins
	ViewStrokes ViewMode = "strokes" // Total gross strokes, ascending — classic stroke play
	ViewNet     ViewMode = "net"     // Total net strokes, ascending — handicap-adjusted stroke play
)

// ParseViewMode validates a raw query-string value into a ViewMode.
// An empty string defaults to the points view.
func ParseViewMode(s string) (ViewMode, error) {
	switch s {
	case "", string(ViewPoints):
		return ViewPoints, nil
	case string(ViewStrokes):
		return ViewStrokes, nil
	case string(ViewNet):
		return ViewNet, nil
	default:
		return "", fmt.Errorf("%w: unknown view mode %q (want points, strokes, or net)", ErrInvalidInput, s)
	}
}

// CourseSetup is the course data the aggregator needs: an identifier to match
// hole scores against and the per-hole pars and stroke indexes.
type CourseSetup struct {
	ID    string
	Name  string
	Holes []HoleInfo
}

// PlayerEntry is one competitor's scoring profile. HandicapIndex is nil until
// the player has entered one; Tees maps course ID to the ratings of the tee
// the player selected for that course, and has no entry for courses where no
// tee has been picked yet. Either gap makes the player's course handicap
// unresolvable for that course — their gross still counts, but net and points
// cannot be computed.
type PlayerEntry struct {
	ID            string
	Name          string
	HandicapIndex *float64
	Tees          map[string]TeeRatings
}

// HoleScore is one recorded gross score: this player took Gross strokes on
// this hole of this course. Scores are overwritten upstream, never versioned,
// so at most one HoleScore per (player, course, hole) may appear in the input.
type HoleScore struct {
	PlayerID   string
	CourseID   string
	HoleNumber int
	Gross      int
}

// RoundTotal is one player's summed results for one course/round. Points and
// Net are nil when the player's course handicap was unresolvable for this
// course (no handicap index or no tee selected) — gross is always available.
type RoundTotal struct {
	CourseID       string
	CourseName     string
	HolesPlayed    int
	CourseHandicap *int
	Gross          int
	Net            *int
	Points         *int
}

// Row is one player's line on the leaderboard. Totals are nil for a player
// with no recorded scores at all; Rank is nil whenever the total being sorted
// on is nil (such players are listed after everyone with a number and shown
// as "-" by the UI). Players with equal totals share a rank.
type Row struct {
	PlayerID    string
	PlayerName  string
	Rank        *int
	TotalPoints *int
	TotalGross  *int
	TotalNet    *int
	Rounds      []RoundTotal
}

// Leaderboard computes the full standings table.
//
// For each player and each course the player has at least one score on:
// resolve the course handicap from the player's handicap index and selected
// tee, allocate strokes across the holes, score each recorded hole, and sum.
// Partial rounds are fine — totals cover whatever holes were actually played.
// Round totals then sum into grand totals, and rows are sorted per the view
// mode: points descending, strokes/net ascending, nil totals always last.
// Within equal totals the order is deterministic: player name, then player
// ID. Ranks are assigned only to rows with a numeric total; equal totals
// share the same rank number.
//
// A score referencing an unknown player, an unknown course, or a hole number
// the course doesn't have is a DataIntegrity error, as is more than one score
// for the same (player, course, hole).
func Leaderboard(players []PlayerEntry, courses []CourseSetup, scores []HoleScore, mode ViewMode) ([]Row, error) {
	if _, err := ParseViewMode(string(mode)); err != nil {
		return nil, err
	}

	courseByID := make(map[string]CourseSetup, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
	}
	playerIDs := make(map[string]bool, len(players))
	for _, p := range players {
		playerIDs[p.ID] = true
	}

	// Group scores by player, then by course, rejecting duplicates and
	// dangling references up front so no partial aggregation escapes.
	type holeKey struct {
		player, course string
		hole           int
	}
	seen := make(map[holeKey]bool, len(scores))
	byPlayer := make(map[string]map[string][]HoleScore)
	for _, s := range scores {
		if !playerIDs[s.PlayerID] {
			return nil, fmt.Errorf("%w: score references unknown player %q", ErrDataIntegrity, s.PlayerID)
		}
		if _, ok := courseByID[s.CourseID]; !ok {
			return nil, fmt.Errorf("%w: score references unknown course %q", ErrDataIntegrity, s.CourseID)
		}
		k := holeKey{s.PlayerID, s.CourseID, s.HoleNumber}
		if seen[k] {
			return nil, fmt.Errorf("%w: duplicate score for player %q, course %q, hole %d",
				ErrDataIntegrity, s.PlayerID, s.CourseID, s.HoleNumber)
		}
		seen[k] = true
		if byPlayer[s.PlayerID] == nil {
			byPlayer[s.PlayerID] = make(map[string][]HoleScore)
		}
		byPlayer[s.PlayerID][s.CourseID] = append(byPlayer[s.PlayerID][s.CourseID], s)
	}

	rows := make([]Row, 0, len(players))
	for _, p := range players {
		row := Row{PlayerID: p.ID, PlayerName: p.Name}

		// Walk courses in input order so round breakdowns are stable.
		var (
			grandGross  int
			grandNet    int
			grandPoints int
			anyScore    bool
			netComplete = true // grand net/points only exist if every round had them
		)
		for _, c := range courses {
			courseScores := byPlayer[p.ID][c.ID]
			if len(courseScores) == 0 {
				continue
			}
			rt, err := scoreRound(p, c, courseScores)
			if err != nil {
				return nil, err
			}
			anyScore = true
			grandGross += rt.Gross
			if rt.Net != nil && rt.Points != nil {
				grandNet += *rt.Net
				grandPoints += *rt.Points
			} else {
				netComplete = false
			}
			row.Rounds = append(row.Rounds, rt)
		}

		if anyScore {
			row.TotalGross = intPtr(grandGross)
			if netComplete {
				row.TotalNet = intPtr(grandNet)
				row.TotalPoints = intPtr(grandPoints)
			}
		}
		rows = append(rows, row)
	}

	sortRows(rows, mode)
	assignRanks(rows, mode)
	return rows, nil
}

// scoreRound aggregates one player's scores on one course: handicap →
// allocation → per-hole points/net → sums.
func scoreRound(p PlayerEntry, c CourseSetup, courseScores []HoleScore) (RoundTotal, error) {
	rt := RoundTotal{CourseID: c.ID, CourseName: c.Name}

	parByHole := make(map[int]int, len(c.Holes))
	for _, h := range c.Holes {
		parByHole[h.Number] = h.Par
	}

	// Resolve the course handicap from the player's selected tee for this
	// course. A nil result is not an error: the player simply doesn't have a
	// computable handicap here, so only gross totals are produced.
	var tee *TeeRatings
	if t, ok := p.Tees[c.ID]; ok {
		tee = &t
	}
	ch, err := PlayerCourseHandicap(p.HandicapIndex, tee)
	if err != nil {
		return RoundTotal{}, err
	}
	rt.CourseHandicap = ch

	var strokes map[int]int
	if ch != nil {
		strokes, err = DistributeStrokes(*ch, c.Holes)
		if err != nil {
			return RoundTotal{}, err
		}
	}

	var netSum, pointsSum int
	for _, s := range courseScores {
		par, ok := parByHole[s.HoleNumber]
		if !ok {
			return RoundTotal{}, fmt.Errorf("%w: course %q has no hole %d",
				ErrDataIntegrity, c.ID, s.HoleNumber)
		}
		if s.Gross < 1 {
			return RoundTotal{}, fmt.Errorf("%w: gross score on hole %d must be at least 1, got %d",
				ErrInvalidInput, s.HoleNumber, s.Gross)
		}
		rt.HolesPlayed++
		rt.Gross += s.Gross

		if ch == nil {
			continue
		}
		recv := strokes[s.HoleNumber]
		pts, err := StablefordPoints(s.Gross, par, recv)
		if err != nil {
			return RoundTotal{}, err
		}
		netSum += s.Gross - recv
		pointsSum += pts
	}

	if ch != nil {
		rt.Net = intPtr(netSum)
		rt.Points = intPtr(pointsSum)
	}
	return rt, nil
}

// sortKey extracts the total the given view mode sorts on. The bool reports
// whether the row has a numeric total at all; asc reports sort direction.
func sortKey(r Row, mode ViewMode) (val int, ok bool) {
	switch mode {
	case ViewStrokes:
		if r.TotalGross != nil {
			return *r.TotalGross, true
		}
	case ViewNet:
		if r.TotalNet != nil {
			return *r.TotalNet, true
		}
	default: // ViewPoints
		if r.TotalPoints != nil {
			return *r.TotalPoints, true
		}
	}
	return 0, false
}

func sortRows(rows []Row, mode ViewMode) {
	asc := mode != ViewPoints
	sort.SliceStable(rows, func(i, j int) bool {
		vi, oki := sortKey(rows[i], mode)
		vj, okj := sortKey(rows[j], mode)
		// Rows without a total always sort after rows with one; among
		// themselves they keep input order (SliceStable).
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		if vi != vj {
			if asc {
				return vi < vj
			}
			return vi > vj
		}
		// Deterministic tie-break so standings are reproducible run to run.
		if rows[i].PlayerName != rows[j].PlayerName {
			return rows[i].PlayerName < rows[j].PlayerName
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
}

// assignRanks numbers the sorted rows. Rows without a total get no rank.
// Equal totals share a rank, and the next distinct total resumes at its
// list position ("standard competition" ranking: 1, 1, 3).
func assignRanks(rows []Row, mode ViewMode) {
	for i := range rows {
		v, ok := sortKey(rows[i], mode)
		if !ok {
			continue
		}
		if i > 0 {
			if pv, pok := sortKey(rows[i-1], mode); pok && pv == v {
				rows[i].Rank = rows[i-1].Rank
				continue
			}
		}
		rows[i].Rank = intPtr(i + 1)
	}
}

func intPtr(v int) *int { return &v }
