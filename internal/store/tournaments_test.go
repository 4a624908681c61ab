package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/ryder-cup/internal/models"
	"github.com/trentd187/ryder-cup/internal/scoring"
)

// tournamentAt builds a tournament whose stored totals already match the
// given games — the state after a recomputation has been persisted.
func tournamentAt(games []models.Game) *models.Tournament {
	total, projected := scoring.TournamentTotals(games)
	return &models.Tournament{TotalScore: total, ProjectedScore: projected}
}

func TestScoreboardUnchangedSkipsIdenticalRecompute(t *testing.T) {
	games := []models.Game{
		{Points: models.TeamPoints{RawUSA: 2, AdjustedUSA: 2}},
		{Points: models.TeamPoints{RawUSA: 1, RawEurope: 1, AdjustedUSA: 0.5, AdjustedEurope: 1.5}},
	}
	for i := range games {
		games[i].SetStatus(models.GameStatusComplete)
	}
	tournament := tournamentAt(games)

	// Replaying the same score produces the same totals — no progress row.
	total, projected := scoring.TournamentTotals(games)
	assert.True(t, scoreboardUnchanged(tournament, total, projected))
}

func TestScoreboardUnchangedDetectsAnyMovement(t *testing.T) {
	games := []models.Game{
		{Points: models.TeamPoints{RawUSA: 2, AdjustedUSA: 2}},
	}
	games[0].SetStatus(models.GameStatusComplete)
	tournament := tournamentAt(games)

	// A live game joins: the running total is untouched (it only counts
	// complete games) but the projection moves, and that alone must trigger a
	// write and a progress snapshot.
	live := models.Game{Points: models.TeamPoints{RawEurope: 2, AdjustedEurope: 2}}
	live.SetStatus(models.GameStatusInProgress)
	games = append(games, live)

	total, projected := scoring.TournamentTotals(games)
	require.Equal(t, tournament.TotalScore, total)
	assert.False(t, scoreboardUnchanged(tournament, total, projected))

	// And the other way round: once the stored totals reflect the live game,
	// completing it moves only the running total — the projection already
	// counted its points — and that alone is still a movement.
	tournament = tournamentAt(games)
	games[1].SetStatus(models.GameStatusComplete)
	total, projected = scoring.TournamentTotals(games)
	require.Equal(t, tournament.ProjectedScore, projected)
	assert.False(t, scoreboardUnchanged(tournament, total, projected))
}
