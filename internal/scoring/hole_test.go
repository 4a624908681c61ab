package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/ryder-cup/internal/models"
)

func intPtr(v int) *int { return &v }

func TestAdjustHoleUnplayed(t *testing.T) {
	tests := []struct {
		name string
		hole models.Hole
	}{
		{
			name: "neither side scored",
			hole: models.Hole{HoleNumber: 1, StrokeIndex: 1},
		},
		{
			name: "only USA scored",
			hole: models.Hole{HoleNumber: 1, StrokeIndex: 1, USAPlayerScore: intPtr(4)},
		},
		{
			name: "only EUROPE scored",
			hole: models.Hole{HoleNumber: 1, StrokeIndex: 1, EuropePlayerScore: intPtr(5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustHole(tt.hole, 10, models.TeamUSA)
			assert.Nil(t, got.USAPlayerAdjustedScore)
			assert.Nil(t, got.EuropePlayerAdjustedScore)
			assert.Zero(t, got.USAPlayerMatchPlayScore)
			assert.Zero(t, got.EuropePlayerMatchPlayScore)
			assert.Zero(t, got.USAPlayerMatchPlayAdjustedScore)
			assert.Zero(t, got.EuropePlayerMatchPlayAdjustedScore)
		})
	}
}

func TestAdjustHoleNoHandicap(t *testing.T) {
	hole := models.Hole{
		HoleNumber:        3,
		StrokeIndex:       1,
		USAPlayerScore:    intPtr(4),
		EuropePlayerScore: intPtr(5),
	}

	got := AdjustHole(hole, 0, models.TeamUSA)

	// No allowance: adjusted equals raw on both sides.
	require.NotNil(t, got.USAPlayerAdjustedScore)
	require.NotNil(t, got.EuropePlayerAdjustedScore)
	assert.Equal(t, 4.0, *got.USAPlayerAdjustedScore)
	assert.Equal(t, 5.0, *got.EuropePlayerAdjustedScore)

	// USA took fewer strokes so it wins the hole in both flavors.
	assert.Equal(t, 1.0, got.USAPlayerMatchPlayScore)
	assert.Equal(t, 0.0, got.EuropePlayerMatchPlayScore)
	assert.Equal(t, 1.0, got.USAPlayerMatchPlayAdjustedScore)
	assert.Equal(t, 0.0, got.EuropePlayerMatchPlayAdjustedScore)
}

func TestAdjustHoleTieSplitsTheHole(t *testing.T) {
	hole := models.Hole{
		HoleNumber:        7,
		StrokeIndex:       12,
		USAPlayerScore:    intPtr(4),
		EuropePlayerScore: intPtr(4),
	}

	// Stroke index 12 gets no stroke from a 10-stroke allowance, so the
	// adjusted comparison ties as well.
	got := AdjustHole(hole, 10, models.TeamEurope)

	assert.Equal(t, 0.5, got.USAPlayerMatchPlayScore)
	assert.Equal(t, 0.5, got.EuropePlayerMatchPlayScore)
	assert.Equal(t, 0.5, got.USAPlayerMatchPlayAdjustedScore)
	assert.Equal(t, 0.5, got.EuropePlayerMatchPlayAdjustedScore)
}

func TestAdjustHoleAllowanceFlipsTheHole(t *testing.T) {
	// EUROPE wins the hole on raw scores, but a handicap stroke on this hole
	// brings USA's adjusted score below EUROPE's — raw and adjusted match-play
	// results disagree, which is exactly what the allowance is for.
	hole := models.Hole{
		HoleNumber:        1,
		StrokeIndex:       2,
		USAPlayerScore:    intPtr(5),
		EuropePlayerScore: intPtr(4),
	}

	got := AdjustHole(hole, 6, models.TeamUSA)

	require.NotNil(t, got.USAPlayerAdjustedScore)
	assert.Equal(t, 4.0, *got.USAPlayerAdjustedScore)    // 5 raw - 1 stroke
	assert.Equal(t, 4.0, *got.EuropePlayerAdjustedScore) // advantaged side unchanged

	// Raw: EUROPE wins. Adjusted: tie.
	assert.Equal(t, 0.0, got.USAPlayerMatchPlayScore)
	assert.Equal(t, 1.0, got.EuropePlayerMatchPlayScore)
	assert.Equal(t, 0.5, got.USAPlayerMatchPlayAdjustedScore)
	assert.Equal(t, 0.5, got.EuropePlayerMatchPlayAdjustedScore)
}

func TestAdjustHoleHalfStrokeOnBoundaryHole(t *testing.T) {
	// With a 7.5 allowance, the hole at stroke index 8 receives the half
	// stroke — enough to turn a lost hole into a won one on a tie.
	hole := models.Hole{
		HoleNumber:        8,
		StrokeIndex:       8,
		USAPlayerScore:    intPtr(5),
		EuropePlayerScore: intPtr(5),
	}

	got := AdjustHole(hole, 7.5, models.TeamEurope)

	require.NotNil(t, got.EuropePlayerAdjustedScore)
	assert.Equal(t, 4.5, *got.EuropePlayerAdjustedScore)
	assert.Equal(t, 5.0, *got.USAPlayerAdjustedScore)

	// Raw tie, adjusted EUROPE win.
	assert.Equal(t, 0.5, got.USAPlayerMatchPlayScore)
	assert.Equal(t, 0.5, got.EuropePlayerMatchPlayScore)
	assert.Equal(t, 0.0, got.USAPlayerMatchPlayAdjustedScore)
	assert.Equal(t, 1.0, got.EuropePlayerMatchPlayAdjustedScore)
}

func TestAdjustHoleDoesNotMutateInput(t *testing.T) {
	hole := models.Hole{
		HoleNumber:        5,
		StrokeIndex:       5,
		USAPlayerScore:    intPtr(6),
		EuropePlayerScore: intPtr(3),
	}
	before := hole

	_ = AdjustHole(hole, 9, models.TeamUSA)

	assert.Equal(t, before, hole)
}
