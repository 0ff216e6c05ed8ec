package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseHandicap(t *testing.T) {
	tests := []struct {
		name          string
		handicapIndex float64
		teeRating     float64
		teeSlope      int
		coursePar     int
		want          int
	}{
		// The worked example from the USGA formula: 10.0 × 128/113 = 11.33,
		// plus (71.2 − 71) = 0.2, raw 11.53 rounds to 12.
		{"typical mid handicap", 10.0, 71.2, 128, 71, 12},
		{"scratch on nominal slope", 0.0, 72.0, 113, 72, 0},
		{"nominal slope leaves index unchanged", 14.0, 72.0, 113, 72, 14},
		{"plus player", -2.0, 70.1, 125, 72, -4},
		{"easy tees reduce handicap", 18.4, 68.9, 105, 72, 14},
		{"high handicap hard tees", 36.0, 74.5, 140, 72, 47},
		{"rounds half away from zero", 0.0, 72.5, 113, 72, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CourseHandicap(tt.handicapIndex, tt.teeRating, tt.teeSlope, tt.coursePar)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCourseHandicapInvalidInput(t *testing.T) {
	tests := []struct {
		name          string
		handicapIndex float64
		teeRating     float64
		teeSlope      int
	}{
		{"zero slope", 10.0, 71.2, 0},
		{"negative slope", 10.0, 71.2, -5},
		{"NaN handicap index", math.NaN(), 71.2, 128},
		{"infinite handicap index", math.Inf(1), 71.2, 128},
		{"NaN tee rating", 10.0, math.NaN(), 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CourseHandicap(tt.handicapIndex, tt.teeRating, tt.teeSlope, 72)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// The course handicap must never decrease as the handicap index increases
// (holding the tee fixed) — a worse player can't receive fewer strokes.
func TestCourseHandicapMonotonicInIndex(t *testing.T) {
	prev := math.MinInt
	for hi := -10.0; hi <= 54.0; hi += 0.1 {
		got, err := CourseHandicap(hi, 71.2, 128, 71)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev, "handicap index %.1f", hi)
		prev = got
	}
}

func TestPlayerCourseHandicap(t *testing.T) {
	hi := 10.0
	tee := &TeeRatings{Rating: 71.2, Slope: 128, Par: 71}

	t.Run("resolvable", func(t *testing.T) {
		got, err := PlayerCourseHandicap(&hi, tee)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 12, *got)
	})

	// Missing inputs mean "not computable yet" — nil, which is distinct from
	// a legitimately computed 0 handicap.
	t.Run("no handicap index", func(t *testing.T) {
		got, err := PlayerCourseHandicap(nil, tee)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
	t.Run("no tee selected", func(t *testing.T) {
		got, err := PlayerCourseHandicap(&hi, nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
	t.Run("computed zero is not nil", func(t *testing.T) {
		scratch := 0.0
		got, err := PlayerCourseHandicap(&scratch, &TeeRatings{Rating: 72.0, Slope: 113, Par: 72})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 0, *got)
	})
	t.Run("bad tee data surfaces the error", func(t *testing.T) {
		_, err := PlayerCourseHandicap(&hi, &TeeRatings{Rating: 71.2, Slope: 0, Par: 71})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
