package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trentd187/ryder-cup/internal/models"
	"github.com/trentd187/ryder-cup/internal/scoring"
	"github.com/trentd187/ryder-cup/internal/websocket"
)

// loadGameWithHoles fetches a game and its 18 holes ordered by hole number —
// the shape the scoring engine expects.
func loadGameWithHoles(db *gorm.DB, gameID uuid.UUID) (*models.Game, error) {
	var game models.Game
	err := db.Preload("USAPlayer").Preload("EuropePlayer").
		Preload("Holes", func(db *gorm.DB) *gorm.DB {
			return db.Order("hole_number ASC")
		}).First(&game, "id = ?", gameID).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// ApplyHoleScore records (or clears) the raw scores for one hole of a game,
// re-runs the scoring engine over the whole game, advances the game's status,
// and triggers the tournament recomputation.
//
// Passing nil for a side clears that score — used when a score was entered
// against the wrong hole and has to be taken back.
//
// Status handling follows the game lifecycle: entering the first score moves a
// not-started game to in_progress; filling the last empty hole moves it to
// complete; clearing a score from a complete game drops it back to
// in_progress. The engine itself never touches status — this is the store
// acting as the state-transition collaborator.
func ApplyHoleScore(db *gorm.DB, hub *websocket.Hub, gameID uuid.UUID, holeNumber int, usaScore, europeScore *int) (*models.Game, error) {
	game, err := loadGameWithHoles(db, gameID)
	if err != nil {
		return nil, err
	}

	// Find the hole being edited. Holes are matched by hole number, not slice
	// position, so a game stored with holes out of order still updates the
	// right row.
	var hole *models.Hole
	for i := range game.Holes {
		if game.Holes[i].HoleNumber == holeNumber {
			hole = &game.Holes[i]
			break
		}
	}
	if hole == nil {
		return nil, gorm.ErrRecordNotFound
	}

	hole.USAPlayerScore = usaScore
	hole.EuropePlayerScore = europeScore

	// Advance the status BEFORE recomputing: the engine's points calculation
	// short-circuits on IsStarted, so the booleans have to reflect this edit
	// when the engine runs. A first score starts the game, the last empty hole
	// filling in completes it, and clearing everything resets it.
	switch {
	case scoring.AllHolesScored(game):
		game.SetStatus(models.GameStatusComplete)
	case anyHoleScored(game):
		game.SetStatus(models.GameStatusInProgress)
	default:
		game.SetStatus(models.GameStatusNotStarted)
	}

	// Recompute every derived field from the raw scores. On a validation error
	// nothing is persisted — the caller surfaces it and the stored game keeps
	// its previous, consistent values.
	if err := scoring.RecomputeGame(game); err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range game.Holes {
			if err := tx.Omit(clause.Associations).Save(&game.Holes[i]).Error; err != nil {
				return err
			}
		}
		// Save the game without cascading into associations — the holes were
		// just written above, and the player rows never change here.
		return tx.Omit(clause.Associations).Save(game).Error
	})
	if err != nil {
		return nil, err
	}

	// Recompute-on-mutation contract: every game write ends with a tournament
	// pass. A failure here leaves the tournament totals one change behind; the
	// next mutation's recomputation self-corrects.
	if _, _, err := RecomputeTournament(db, hub, game.TournamentID); err != nil {
		return nil, err
	}

	return game, nil
}

// transitionGame applies a forced status to a loaded game and settles every
// derived field. Moving to complete re-runs the engine and freezes the result
// as the scores stand. Moving anywhere else zeroes the points: a reopened game
// is no longer evaluated, and its points stay zero until the next hole entry
// (or a force back to complete) recomputes them. Adjusted hole scores are
// recomputed either way so the stored game stays internally consistent.
func transitionGame(game *models.Game, status models.GameStatus) error {
	game.SetStatus(status)
	if err := scoring.RecomputeGame(game); err != nil {
		return err
	}
	if status != models.GameStatusComplete {
		game.Points = models.TeamPoints{}
	}
	return nil
}

// ForceGameStatus applies an admin-requested status transition, regardless of
// how many holes are scored.
func ForceGameStatus(db *gorm.DB, hub *websocket.Hub, gameID uuid.UUID, status models.GameStatus) (*models.Game, error) {
	game, err := loadGameWithHoles(db, gameID)
	if err != nil {
		return nil, err
	}

	if err := transitionGame(game, status); err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range game.Holes {
			if err := tx.Omit(clause.Associations).Save(&game.Holes[i]).Error; err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(game).Error
	})
	if err != nil {
		return nil, err
	}

	if _, _, err := RecomputeTournament(db, hub, game.TournamentID); err != nil {
		return nil, err
	}

	return game, nil
}

// anyHoleScored reports whether at least one raw score exists anywhere in the
// game — the trigger for the not_started -> in_progress transition. A single
// one-sided score is enough to start the game even though that hole doesn't
// count toward any total yet.
func anyHoleScored(game *models.Game) bool {
	for i := range game.Holes {
		if game.Holes[i].USAPlayerScore != nil || game.Holes[i].EuropePlayerScore != nil {
			return true
		}
	}
	return false
}
