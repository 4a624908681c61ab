package scoring

import (
	"errors"

	"github.com/trentd187/ryder-cup/internal/models"
)

// Validation errors returned by the engine. These are the only errors this
// package produces — a not-started or partially played game is a zero result,
// never an error. When one of these comes back the caller must NOT persist the
// engine's output; the stored game is malformed and needs fixing, not retrying.
var (
	// ErrHoleCount means the game's hole list is not exactly 18 entries long.
	ErrHoleCount = errors.New("scoring: game must have exactly 18 holes")
	// ErrMissingAdjusted means a hole carries raw scores but its adjusted scores
	// were never derived — aggregate totals would silently drop the hole.
	ErrMissingAdjusted = errors.New("scoring: played hole is missing adjusted scores")
)

// Aggregate folds 18 adjusted holes into game-level totals: raw and adjusted
// stroke-play sums, and raw and adjusted match-play sums.
//
// Only holes where BOTH raw scores are present contribute. A hole with one side
// missing (a no-show) is excluded entirely rather than counted as zero strokes —
// summing one real score against an implicit 0 would make the totals
// meaninglessly lopsided. This exclusion policy is applied uniformly to stroke
// play and match play and is pinned down by the package tests.
//
// The input slice is read, never written, so calling Aggregate twice on the
// same holes yields identical output.
func Aggregate(holes []models.Hole) (models.StrokePlayScore, models.MatchPlayScore, error) {
	var stroke models.StrokePlayScore
	var match models.MatchPlayScore

	if len(holes) != models.HolesPerGame {
		return stroke, match, ErrHoleCount
	}

	for i := range holes {
		h := &holes[i]
		if !h.Played() {
			continue
		}
		if h.USAPlayerAdjustedScore == nil || h.EuropePlayerAdjustedScore == nil {
			return models.StrokePlayScore{}, models.MatchPlayScore{}, ErrMissingAdjusted
		}

		stroke.USA += float64(*h.USAPlayerScore)
		stroke.Europe += float64(*h.EuropePlayerScore)
		stroke.AdjustedUSA += *h.USAPlayerAdjustedScore
		stroke.AdjustedEurope += *h.EuropePlayerAdjustedScore

		match.USA += h.USAPlayerMatchPlayScore
		match.Europe += h.EuropePlayerMatchPlayScore
		match.AdjustedUSA += h.USAPlayerMatchPlayAdjustedScore
		match.AdjustedEurope += h.EuropePlayerMatchPlayAdjustedScore
	}

	return stroke, match, nil
}

// CalculateGamePoints converts a game's aggregate totals into the fixed
// 2-point-per-game award, split between the teams.
//
// A game that has not started is worth nothing to either side — that check
// short-circuits everything else, so not-started games can be summed into
// tournament totals without special-casing.
//
// For a started game, two independent comparisons are each worth 1 point:
// stroke play (fewer total strokes wins) and match play (more holes won wins).
// A tied comparison splits its point 0.5/0.5. The raw and adjusted flavors are
// evaluated separately over the corresponding totals, so each flavor always
// sums to exactly 2.
//
// This reads only the game's aggregate fields, never its holes — games whose
// totals arrived by another path (imports, summaries) score identically.
func CalculateGamePoints(game models.Game) models.TeamPoints {
	if !game.IsStarted {
		return models.TeamPoints{}
	}

	var points models.TeamPoints

	// Stroke play: lower total wins the point.
	usa, europe := comparisonAward(game.StrokePlay.Europe, game.StrokePlay.USA)
	points.RawUSA += usa
	points.RawEurope += europe
	usa, europe = comparisonAward(game.StrokePlay.AdjustedEurope, game.StrokePlay.AdjustedUSA)
	points.AdjustedUSA += usa
	points.AdjustedEurope += europe

	// Match play: higher total (more holes won) wins the point.
	usa, europe = comparisonAward(game.MatchPlay.USA, game.MatchPlay.Europe)
	points.RawUSA += usa
	points.RawEurope += europe
	usa, europe = comparisonAward(game.MatchPlay.AdjustedUSA, game.MatchPlay.AdjustedEurope)
	points.AdjustedUSA += usa
	points.AdjustedEurope += europe

	return points
}

// comparisonAward hands out one comparison's point. The first argument is USA's
// standing, the second EUROPE's, on a scale where HIGHER is better — stroke-play
// callers pass the opponent's stroke total as each side's standing so that
// fewer strokes ranks higher.
func comparisonAward(usaStanding, europeStanding float64) (float64, float64) {
	switch {
	case usaStanding > europeStanding:
		return 1, 0
	case europeStanding > usaStanding:
		return 0, 1
	default:
		return 0.5, 0.5
	}
}

// RecomputeGame re-derives every computed field on the game from its raw hole
// scores: per-hole adjusted and match-play values, the four aggregate totals,
// and the points award. It is the one mutating entry point of the package, and
// it mutates only the game passed in.
//
// Status fields are left untouched — when a game starts or completes is decided
// by the caller, not the engine. On a validation error the game is not modified
// at all and its stale computed fields must not be persisted.
func RecomputeGame(game *models.Game) error {
	if len(game.Holes) != models.HolesPerGame {
		return ErrHoleCount
	}

	adjusted := make([]models.Hole, len(game.Holes))
	for i := range game.Holes {
		adjusted[i] = AdjustHole(game.Holes[i], game.HandicapStrokes, game.HigherHandicapTeam)
	}

	stroke, match, err := Aggregate(adjusted)
	if err != nil {
		return err
	}

	game.Holes = adjusted
	game.StrokePlay = stroke
	game.MatchPlay = match
	game.Points = CalculateGamePoints(*game)
	return nil
}

// AllHolesScored reports whether every hole of the game has both raw scores —
// the condition under which the store marks a game complete.
func AllHolesScored(game *models.Game) bool {
	if len(game.Holes) != models.HolesPerGame {
		return false
	}
	for i := range game.Holes {
		if !game.Holes[i].Played() {
			return false
		}
	}
	return true
}
