// Package scoring implements the tournament's scoring engine: handicap stroke
// allocation, per-hole adjustment, game aggregation, the 2-point-per-game award,
// and tournament totals.
//
// Every function in this package is pure — no I/O, no shared state, no mutation
// of inputs (the one exception, RecomputeGame, mutates only the game the caller
// passes in by pointer, which is the point of calling it). That makes the whole
// package safe to call from any goroutine without synchronization, and means
// repeated or out-of-order recomputations always converge on the same values.
package scoring

import (
	"math"

	"github.com/trentd187/ryder-cup/internal/models"
)

// StrokesForHole returns how many handicap strokes a single hole contributes to
// the receiving team, given the game's total allowance and the hole's stroke index.
//
// The allowance is spread across the course hardest-holes-first:
//   - every hole gets floor(total/18) strokes (non-zero only for extreme
//     handicaps above 18)
//   - the remainder is handed out one stroke at a time to the holes with the
//     lowest stroke indexes (1 = hardest)
//
// The total may be fractional (e.g. 7.5). The integer part of the remainder is
// distributed as full strokes; the leftover fraction lands on the single next
// hole past the cutoff. With a total of 7.5, stroke indexes 1–7 each get one
// stroke and stroke index 8 gets the remaining half. The sum over all 18 holes
// therefore equals the total allowance exactly, fractional or not.
func StrokesForHole(totalHandicap float64, strokeIndex int) float64 {
	if totalHandicap <= 0 {
		return 0
	}

	// base strokes go to every hole; remainder is what's left after that.
	base := math.Floor(totalHandicap / 18)
	remainder := totalHandicap - base*18

	idx := float64(strokeIndex)
	switch {
	case idx <= math.Floor(remainder):
		// Within the integer cutoff: a full extra stroke.
		return base + 1
	case idx == math.Ceil(remainder) && remainder != math.Floor(remainder):
		// The one hole just past the cutoff picks up the fractional part.
		return base + (remainder - math.Floor(remainder))
	default:
		return base
	}
}

// DeriveHandicap computes a game's handicap allowance from the two players'
// historical 18-hole scoring averages. The difference between the averages,
// rounded to the nearest half stroke, becomes the total allowance, and the team
// of the player with the HIGHER average (the weaker player) receives it.
//
// Called once at game creation when the tournament has handicaps enabled and no
// explicit allowance was supplied; the result is persisted onto the game and
// never re-derived.
func DeriveHandicap(usaAverage, europeAverage float64) (float64, models.Team) {
	diff := usaAverage - europeAverage

	// Round the magnitude to the nearest 0.5 (e.g. 7.3 -> 7.5, 7.2 -> 7.0).
	strokes := math.Round(math.Abs(diff)*2) / 2

	// Equal averages: no allowance. The team value is irrelevant when strokes
	// is zero, but return a valid one so callers can persist it unconditionally.
	if diff > 0 {
		return strokes, models.TeamUSA
	}
	return strokes, models.TeamEurope
}
