package scoring

import "github.com/trentd187/ryder-cup/internal/models"

// TournamentTotals sums per-game points across a tournament's games into the
// two running scoreboards:
//
//   - total: complete games only — the "official" score shown on the board
//   - projected: every game — in-progress games contribute their live partial
//     points, not-started games contribute zero via CalculateGamePoints's
//     short-circuit, so no filtering is needed here
//
// An empty game list yields all-zero totals; that is a valid answer, not an
// error. Pure over its input: the games slice is never modified.
func TournamentTotals(games []models.Game) (total, projected models.TeamPoints) {
	for i := range games {
		points := CalculateGamePoints(games[i])
		projected = projected.Add(points)
		if games[i].IsComplete {
			total = total.Add(points)
		}
	}
	return total, projected
}

// CompletedGames counts the games that have finished — recorded alongside each
// progress snapshot so the history shows how far through the tournament each
// score change happened.
func CompletedGames(games []models.Game) int {
	n := 0
	for i := range games {
		if games[i].IsComplete {
			n++
		}
	}
	return n
}
