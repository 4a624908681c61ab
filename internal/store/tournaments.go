// Package store persists scoring engine output to PostgreSQL and drives the
// "recompute on mutation" contract: every write that can move a score — a hole
// entry, a status transition, a new game — flows through here, and each one
// ends with a tournament recomputation so the stored totals never drift far
// from the games underneath them.
//
// The engine itself (internal/scoring) stays pure; this package owns all the
// GORM calls, the transactions, and the websocket broadcast of fresh totals.
// No locking is done across callers — concurrent recomputations may interleave
// and the last computed value wins, which is fine because recomputation is
// idempotent: the next pass over the same games converges on the same numbers.
package store

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trentd187/ryder-cup/internal/models"
	"github.com/trentd187/ryder-cup/internal/scoring"
	"github.com/trentd187/ryder-cup/internal/websocket"
)

// ScoreUpdate is the JSON payload broadcast to websocket clients whenever a
// tournament's totals change. The mobile app repaints the scoreboard from this
// without refetching the tournament.
type ScoreUpdate struct {
	TournamentID   string            `json:"tournament_id"`
	TotalScore     models.TeamPoints `json:"total_score"`
	ProjectedScore models.TeamPoints `json:"projected_score"`
	CompletedGames int               `json:"completed_games"`
}

// scoreboardUnchanged reports whether a recomputation landed on exactly the
// totals already stored — all eight numbers identical. This is the gate on the
// progress log: only a genuine score movement appends a snapshot.
func scoreboardUnchanged(tournament *models.Tournament, total, projected models.TeamPoints) bool {
	return tournament.TotalScore.Equal(total) && tournament.ProjectedScore.Equal(projected)
}

// RecomputeTournament reloads a tournament's games, re-sums their points into
// the running total (complete games only) and the projection (all games), and
// persists the result.
//
// If neither scoreboard moved — all eight numbers identical to what's stored —
// nothing is written and no progress row is appended, so repeated triggers for
// the same logical change are harmless. When something did change, the new
// totals and one append-only progress snapshot (new total, completed-game
// count, timestamp) are written in a single transaction, then broadcast to any
// websocket watchers. Existing progress rows are never touched.
//
// Only game summary columns are read here, not hole rows: per-game points come
// from the aggregates the engine already persisted, which is the same
// calculation path used for games whose totals arrived without hole detail.
func RecomputeTournament(db *gorm.DB, hub *websocket.Hub, tournamentID uuid.UUID) (total, projected models.TeamPoints, err error) {
	var tournament models.Tournament
	if err := db.First(&tournament, "id = ?", tournamentID).Error; err != nil {
		return total, projected, err
	}

	var games []models.Game
	if err := db.Where("tournament_id = ?", tournamentID).Find(&games).Error; err != nil {
		return total, projected, err
	}

	total, projected = scoring.TournamentTotals(games)
	completed := scoring.CompletedGames(games)

	// Unchanged totals: skip the write entirely. This keeps the progress log
	// meaningful — one entry per actual score movement, not per trigger.
	if scoreboardUnchanged(&tournament, total, projected) {
		return total, projected, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		tournament.TotalScore = total
		tournament.ProjectedScore = projected
		if err := tx.Omit(clause.Associations).Save(&tournament).Error; err != nil {
			return err
		}

		// Append-only history: always an INSERT, never an update.
		entry := models.TournamentProgress{
			TournamentID:   tournamentID,
			Score:          total,
			CompletedGames: completed,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return total, projected, err
	}

	// Broadcast outside the transaction — watchers get the totals that were
	// actually committed. hub is optional so the engine can be exercised
	// without a running hub (tests, batch imports).
	if hub != nil {
		payload, err := json.Marshal(ScoreUpdate{
			TournamentID:   tournamentID.String(),
			TotalScore:     total,
			ProjectedScore: projected,
			CompletedGames: completed,
		})
		if err == nil {
			hub.BroadcastToTournament(tournamentID.String(), payload)
		}
	}

	return total, projected, nil
}
