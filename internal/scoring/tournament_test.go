package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trentd187/ryder-cup/internal/models"
)

// completeGame builds a finished game with the given aggregate totals.
func completeGame(stroke models.StrokePlayScore, match models.MatchPlayScore) models.Game {
	game := models.Game{StrokePlay: stroke, MatchPlay: match}
	game.SetStatus(models.GameStatusComplete)
	return game
}

func TestTournamentTotalsEmpty(t *testing.T) {
	total, projected := TournamentTotals(nil)
	assert.Equal(t, models.TeamPoints{}, total)
	assert.Equal(t, models.TeamPoints{}, projected)
}

func TestTournamentTotalsSplitsCompleteAndLive(t *testing.T) {
	// Two complete USA sweeps, one live 1-1 game, one game yet to start:
	// the board shows 4-0 while the projection reads 5-1.
	usaSweep := models.StrokePlayScore{USA: 70, Europe: 75, AdjustedUSA: 70, AdjustedEurope: 75}
	usaSweepMatch := models.MatchPlayScore{USA: 11, Europe: 7, AdjustedUSA: 11, AdjustedEurope: 7}

	liveSplit := startedGame(
		models.StrokePlayScore{USA: 40, Europe: 38, AdjustedUSA: 40, AdjustedEurope: 38},
		models.MatchPlayScore{USA: 6, Europe: 4, AdjustedUSA: 6, AdjustedEurope: 4},
	)

	games := []models.Game{
		completeGame(usaSweep, usaSweepMatch),
		completeGame(usaSweep, usaSweepMatch),
		liveSplit,
		{}, // not started: zero contribution everywhere
	}

	total, projected := TournamentTotals(games)

	assert.Equal(t, models.TeamPoints{RawUSA: 4, RawEurope: 0, AdjustedUSA: 4, AdjustedEurope: 0}, total)
	assert.Equal(t, models.TeamPoints{RawUSA: 5, RawEurope: 1, AdjustedUSA: 5, AdjustedEurope: 1}, projected)
}

func TestTournamentTotalsDoNotMutateGames(t *testing.T) {
	games := []models.Game{
		completeGame(
			models.StrokePlayScore{USA: 72, Europe: 74, AdjustedUSA: 72, AdjustedEurope: 74},
			models.MatchPlayScore{USA: 10, Europe: 8, AdjustedUSA: 10, AdjustedEurope: 8},
		),
	}
	before := make([]models.Game, len(games))
	copy(before, games)

	TournamentTotals(games)

	assert.Equal(t, before, games)
}

func TestCompletedGames(t *testing.T) {
	games := []models.Game{
		completeGame(models.StrokePlayScore{}, models.MatchPlayScore{}),
		startedGame(models.StrokePlayScore{}, models.MatchPlayScore{}),
		{},
		completeGame(models.StrokePlayScore{}, models.MatchPlayScore{}),
	}
	assert.Equal(t, 2, CompletedGames(games))
	assert.Equal(t, 0, CompletedGames(nil))
}
