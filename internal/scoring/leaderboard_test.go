package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixture: one 18-hole course (all par 4, stroke index = hole number) and
// four players covering the interesting states:
//
//	alice — 10.0 index on 128-slope tees (course handicap 12), full round of 5s
//	bob   — scratch on nominal tees (course handicap 0), full round of 4s
//	carol — no handicap index yet, three holes of 4s (gross only, partial round)
//	dave  — registered but hasn't recorded a single score
func leaderboardFixture() ([]PlayerEntry, []CourseSetup, []HoleScore) {
	hiAlice := 10.0
	hiBob := 0.0

	players := []PlayerEntry{
		{ID: "p-alice", Name: "Alice", HandicapIndex: &hiAlice,
			Tees: map[string]TeeRatings{"c-1": {Rating: 71.2, Slope: 128, Par: 71}}},
		{ID: "p-bob", Name: "Bob", HandicapIndex: &hiBob,
			Tees: map[string]TeeRatings{"c-1": {Rating: 72.0, Slope: 113, Par: 72}}},
		{ID: "p-carol", Name: "Carol",
			Tees: map[string]TeeRatings{"c-1": {Rating: 72.0, Slope: 113, Par: 72}}},
		{ID: "p-dave", Name: "Dave"},
	}
	courses := []CourseSetup{{ID: "c-1", Name: "Pebble Creek", Holes: standardHoles()}}

	var scores []HoleScore
	for hole := 1; hole <= 18; hole++ {
		scores = append(scores, HoleScore{PlayerID: "p-alice", CourseID: "c-1", HoleNumber: hole, Gross: 5})
		scores = append(scores, HoleScore{PlayerID: "p-bob", CourseID: "c-1", HoleNumber: hole, Gross: 4})
	}
	for hole := 1; hole <= 3; hole++ {
		scores = append(scores, HoleScore{PlayerID: "p-carol", CourseID: "c-1", HoleNumber: hole, Gross: 4})
	}
	return players, courses, scores
}

func rowByPlayer(t *testing.T, rows []Row, id string) Row {
	t.Helper()
	for _, r := range rows {
		if r.PlayerID == id {
			return r
		}
	}
	t.Fatalf("no row for player %s", id)
	return Row{}
}

func TestLeaderboardTotals(t *testing.T) {
	players, courses, scores := leaderboardFixture()
	rows, err := Leaderboard(players, courses, scores, ViewPoints)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Alice plays off 12: one stroke on holes 1–12. All 5s means net par
	// (3 pts) with a stroke, net bogey (2 pts) without.
	alice := rowByPlayer(t, rows, "p-alice")
	require.NotNil(t, alice.TotalPoints)
	assert.Equal(t, 12*3+6*2, *alice.TotalPoints)
	assert.Equal(t, 90, *alice.TotalGross)
	assert.Equal(t, 78, *alice.TotalNet)
	require.Len(t, alice.Rounds, 1)
	assert.Equal(t, 18, alice.Rounds[0].HolesPlayed)
	require.NotNil(t, alice.Rounds[0].CourseHandicap)
	assert.Equal(t, 12, *alice.Rounds[0].CourseHandicap)

	// Bob is scratch: every hole is a gross par worth 3 points, net = gross.
	bob := rowByPlayer(t, rows, "p-bob")
	assert.Equal(t, 54, *bob.TotalPoints)
	assert.Equal(t, 72, *bob.TotalGross)
	assert.Equal(t, 72, *bob.TotalNet)

	// Carol has no handicap index, so her handicap is unresolvable: gross
	// still totals up, but net and points stay nil — not zero.
	carol := rowByPlayer(t, rows, "p-carol")
	assert.Nil(t, carol.TotalPoints)
	assert.Nil(t, carol.TotalNet)
	require.NotNil(t, carol.TotalGross)
	assert.Equal(t, 12, *carol.TotalGross)
	assert.Equal(t, 3, carol.Rounds[0].HolesPlayed)

	// Dave never recorded a score: everything nil, no rounds, no rank.
	dave := rowByPlayer(t, rows, "p-dave")
	assert.Nil(t, dave.TotalPoints)
	assert.Nil(t, dave.TotalGross)
	assert.Nil(t, dave.TotalNet)
	assert.Empty(t, dave.Rounds)
	assert.Nil(t, dave.Rank)
}

// The reported round points must equal the sum of per-hole Stableford points
// computed independently through the public functions.
func TestLeaderboardRoundTripPointsSum(t *testing.T) {
	players, courses, scores := leaderboardFixture()
	rows, err := Leaderboard(players, courses, scores, ViewPoints)
	require.NoError(t, err)

	alice := rowByPlayer(t, rows, "p-alice")
	strokes, err := DistributeStrokes(12, courses[0].Holes)
	require.NoError(t, err)

	sum := 0
	for _, s := range scores {
		if s.PlayerID != "p-alice" {
			continue
		}
		pts, err := StablefordPoints(s.Gross, 4, strokes[s.HoleNumber])
		require.NoError(t, err)
		sum += pts
	}
	assert.Equal(t, sum, *alice.TotalPoints)
}

func TestLeaderboardSorting(t *testing.T) {
	players, courses, scores := leaderboardFixture()

	t.Run("points view: descending, nil totals last", func(t *testing.T) {
		rows, err := Leaderboard(players, courses, scores, ViewPoints)
		require.NoError(t, err)
		assert.Equal(t, "p-bob", rows[0].PlayerID) // 54 points
		assert.Equal(t, 1, *rows[0].Rank)
		assert.Equal(t, "p-alice", rows[1].PlayerID) // 48 points
		assert.Equal(t, 2, *rows[1].Rank)
		// Carol and Dave have no points total — listed last, unranked,
		// keeping input order between themselves.
		assert.Equal(t, "p-carol", rows[2].PlayerID)
		assert.Nil(t, rows[2].Rank)
		assert.Equal(t, "p-dave", rows[3].PlayerID)
		assert.Nil(t, rows[3].Rank)
	})

	t.Run("strokes view: ascending gross", func(t *testing.T) {
		rows, err := Leaderboard(players, courses, scores, ViewStrokes)
		require.NoError(t, err)
		// Carol's partial round of 12 gross strokes sorts first — the view
		// compares raw totals, it doesn't normalise for holes played.
		assert.Equal(t, "p-carol", rows[0].PlayerID)
		assert.Equal(t, 1, *rows[0].Rank)
		assert.Equal(t, "p-bob", rows[1].PlayerID)
		assert.Equal(t, "p-alice", rows[2].PlayerID)
		assert.Equal(t, "p-dave", rows[3].PlayerID)
		assert.Nil(t, rows[3].Rank)
	})

	t.Run("net view: ascending net, gross-only players unranked", func(t *testing.T) {
		rows, err := Leaderboard(players, courses, scores, ViewNet)
		require.NoError(t, err)
		assert.Equal(t, "p-bob", rows[0].PlayerID)   // net 72
		assert.Equal(t, "p-alice", rows[1].PlayerID) // net 78
		assert.Nil(t, rows[2].Rank)
		assert.Nil(t, rows[3].Rank)
	})
}

// Equal totals share a rank and order deterministically by name; the next
// distinct total resumes at its list position (1, 1, 3).
func TestLeaderboardTiesShareRank(t *testing.T) {
	hi := 0.0
	tees := map[string]TeeRatings{"c-1": {Rating: 72.0, Slope: 113, Par: 72}}
	players := []PlayerEntry{
		{ID: "p-3", Name: "Zoe", HandicapIndex: &hi, Tees: tees},
		{ID: "p-1", Name: "Ann", HandicapIndex: &hi, Tees: tees},
		{ID: "p-2", Name: "Ben", HandicapIndex: &hi, Tees: tees},
	}
	courses := []CourseSetup{{ID: "c-1", Name: "Pebble Creek", Holes: standardHoles()}}

	var scores []HoleScore
	for hole := 1; hole <= 18; hole++ {
		scores = append(scores, HoleScore{PlayerID: "p-1", CourseID: "c-1", HoleNumber: hole, Gross: 4})
		scores = append(scores, HoleScore{PlayerID: "p-2", CourseID: "c-1", HoleNumber: hole, Gross: 4})
		scores = append(scores, HoleScore{PlayerID: "p-3", CourseID: "c-1", HoleNumber: hole, Gross: 5})
	}

	rows, err := Leaderboard(players, courses, scores, ViewPoints)
	require.NoError(t, err)
	assert.Equal(t, "Ann", rows[0].PlayerName)
	assert.Equal(t, 1, *rows[0].Rank)
	assert.Equal(t, "Ben", rows[1].PlayerName)
	assert.Equal(t, 1, *rows[1].Rank)
	assert.Equal(t, "Zoe", rows[2].PlayerName)
	assert.Equal(t, 3, *rows[2].Rank)
}

// Two identical calls must produce identical output — the aggregator keeps
// no state between runs.
func TestLeaderboardIdempotent(t *testing.T) {
	players, courses, scores := leaderboardFixture()
	first, err := Leaderboard(players, courses, scores, ViewPoints)
	require.NoError(t, err)
	second, err := Leaderboard(players, courses, scores, ViewPoints)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLeaderboardRejectsBadInput(t *testing.T) {
	players, courses, scores := leaderboardFixture()

	t.Run("invalid view mode", func(t *testing.T) {
		_, err := Leaderboard(players, courses, scores, ViewMode("birdies"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duplicate hole score", func(t *testing.T) {
		dup := append([]HoleScore{}, scores...)
		dup = append(dup, HoleScore{PlayerID: "p-bob", CourseID: "c-1", HoleNumber: 1, Gross: 6})
		_, err := Leaderboard(players, courses, dup, ViewPoints)
		assert.ErrorIs(t, err, ErrDataIntegrity)
	})

	t.Run("unknown course", func(t *testing.T) {
		bad := append([]HoleScore{}, scores...)
		bad = append(bad, HoleScore{PlayerID: "p-bob", CourseID: "c-404", HoleNumber: 1, Gross: 4})
		_, err := Leaderboard(players, courses, bad, ViewPoints)
		assert.ErrorIs(t, err, ErrDataIntegrity)
	})

	t.Run("unknown player", func(t *testing.T) {
		bad := append([]HoleScore{}, scores...)
		bad = append(bad, HoleScore{PlayerID: "p-404", CourseID: "c-1", HoleNumber: 1, Gross: 4})
		_, err := Leaderboard(players, courses, bad, ViewPoints)
		assert.ErrorIs(t, err, ErrDataIntegrity)
	})

	t.Run("score on a hole the course doesn't have", func(t *testing.T) {
		bad := append([]HoleScore{}, scores...)
		bad = append(bad, HoleScore{PlayerID: "p-dave", CourseID: "c-1", HoleNumber: 19, Gross: 4})
		_, err := Leaderboard(players, courses, bad, ViewPoints)
		assert.ErrorIs(t, err, ErrDataIntegrity)
	})
}
