// games.go — handlers for creating games and forcing game status transitions.
//
// A game is one 18-hole head-to-head match. Creation builds the 18 empty hole
// rows up front (scores come later, hole by hole) and, when the tournament has
// handicaps enabled, derives the handicap allowance once from the two players'
// historical scoring averages. Status is normally advanced automatically as
// scores arrive; the PUT /status route lets an admin override that — reopening
// a finished game, or declaring a half-played one complete.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trentd187/ryder-cup/internal/models"
	"github.com/trentd187/ryder-cup/internal/scoring"
	"github.com/trentd187/ryder-cup/internal/store"
	"github.com/trentd187/ryder-cup/internal/websocket"
)

// HoleResponse is one hole of a game's scorecard as sent to the app.
// Raw and adjusted scores are pointers so unplayed holes serialise as null,
// matching how the app renders an empty scorecard cell.
type HoleResponse struct {
	HoleNumber  int  `json:"hole_number"`
	StrokeIndex int  `json:"stroke_index"`
	Par         int  `json:"par"`
	USAScore    *int `json:"usa_player_score"`
	EuropeScore *int `json:"europe_player_score"`

	USAAdjustedScore    *float64 `json:"usa_player_adjusted_score"`
	EuropeAdjustedScore *float64 `json:"europe_player_adjusted_score"`

	USAMatchPlay            float64 `json:"usa_player_match_play_score"`
	EuropeMatchPlay         float64 `json:"europe_player_match_play_score"`
	USAMatchPlayAdjusted    float64 `json:"usa_player_match_play_adjusted_score"`
	EuropeMatchPlayAdjusted float64 `json:"europe_player_match_play_adjusted_score"`
}

// GameResponse is a full game — players, handicap parameters, status, the four
// aggregate totals, the 2-point award, and the scorecard.
type GameResponse struct {
	ID               string `json:"id"`
	TournamentID     string `json:"tournament_id"`
	USAPlayerID      string `json:"usa_player_id"`
	USAPlayerName    string `json:"usa_player_name"`
	EuropePlayerID   string `json:"europe_player_id"`
	EuropePlayerName string `json:"europe_player_name"`

	HandicapStrokes    float64 `json:"handicap_strokes"`
	HigherHandicapTeam string  `json:"higher_handicap_team"`

	Status     string `json:"status"`
	IsStarted  bool   `json:"is_started"`
	IsComplete bool   `json:"is_complete"`

	StrokePlayScore models.StrokePlayScore `json:"stroke_play_score"`
	MatchPlayScore  models.MatchPlayScore  `json:"match_play_score"`
	Points          models.TeamPoints      `json:"points"`

	Holes []HoleResponse `json:"holes"`
}

// gameResponse converts a Game model (with holes loaded) into the response shape.
func gameResponse(g *models.Game) GameResponse {
	holes := make([]HoleResponse, 0, len(g.Holes))
	for i := range g.Holes {
		h := &g.Holes[i]
		holes = append(holes, HoleResponse{
			HoleNumber:              h.HoleNumber,
			StrokeIndex:             h.StrokeIndex,
			Par:                     h.Par,
			USAScore:                h.USAPlayerScore,
			EuropeScore:             h.EuropePlayerScore,
			USAAdjustedScore:        h.USAPlayerAdjustedScore,
			EuropeAdjustedScore:     h.EuropePlayerAdjustedScore,
			USAMatchPlay:            h.USAPlayerMatchPlayScore,
			EuropeMatchPlay:         h.EuropePlayerMatchPlayScore,
			USAMatchPlayAdjusted:    h.USAPlayerMatchPlayAdjustedScore,
			EuropeMatchPlayAdjusted: h.EuropePlayerMatchPlayAdjustedScore,
		})
	}

	return GameResponse{
		ID:                 g.ID.String(),
		TournamentID:       g.TournamentID.String(),
		USAPlayerID:        g.USAPlayerID.String(),
		USAPlayerName:      g.USAPlayer.DisplayName,
		EuropePlayerID:     g.EuropePlayerID.String(),
		EuropePlayerName:   g.EuropePlayer.DisplayName,
		HandicapStrokes:    g.HandicapStrokes,
		HigherHandicapTeam: string(g.HigherHandicapTeam),
		Status:             string(g.Status),
		IsStarted:          g.IsStarted,
		IsComplete:         g.IsComplete,
		StrokePlayScore:    g.StrokePlay,
		MatchPlayScore:     g.MatchPlay,
		Points:             g.Points,
		Holes:              holes,
	}
}

// CreateGameHole lets the caller describe the course layout when creating a game.
// If the holes array is omitted entirely, a default layout is generated where
// each hole's stroke index equals its hole number and par is 4.
type CreateGameHole struct {
	HoleNumber  int `json:"hole_number"`  // 1–18
	StrokeIndex int `json:"stroke_index"` // 1–18, unique across the course
	Par         int `json:"par"`
}

// CreateGameRequest is the JSON body for POST /api/v1/tournaments/:id/games.
// HandicapStrokes/HigherHandicapTeam are optional: when omitted on a tournament
// with handicaps enabled, the allowance is derived from player averages; when
// omitted otherwise, the game is played scratch (zero allowance).
type CreateGameRequest struct {
	USAPlayerID        string           `json:"usa_player_id"`
	EuropePlayerID     string           `json:"europe_player_id"`
	HandicapStrokes    *float64         `json:"handicap_strokes"`
	HigherHandicapTeam *string          `json:"higher_handicap_team"`
	Holes              []CreateGameHole `json:"holes"`
}

// CreateGame returns a handler for POST /api/v1/tournaments/:id/games.
// Requires "admin" or "manager" role. Creates the game not-started with 18
// empty holes; the handicap allowance is fixed here, once, and never re-derived
// afterwards even if the players' averages change.
func CreateGame(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		var req CreateGameRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		usaPlayerID, err := uuid.Parse(req.USAPlayerID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "usa_player_id must be a valid UUID",
			})
		}
		europePlayerID, err := uuid.Parse(req.EuropePlayerID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "europe_player_id must be a valid UUID",
			})
		}

		var tournament models.Tournament
		if err := db.First(&tournament, "id = ?", tournamentID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "tournament not found",
			})
		}

		var usaPlayer, europePlayer models.User
		if err := db.First(&usaPlayer, "id = ?", usaPlayerID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "USA player not found",
			})
		}
		if err := db.First(&europePlayer, "id = ?", europePlayerID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "EUROPE player not found",
			})
		}

		// --- Resolve the handicap allowance ---
		// Explicit values from the request always win. Otherwise, on a handicap
		// tournament, derive the allowance once from the players' historical
		// averages; a player without history counts as average 0, which in
		// practice means "derive nothing meaningful" — admins can set the
		// allowance explicitly for new players.
		handicapStrokes := 0.0
		higherTeam := models.TeamUSA
		switch {
		case req.HandicapStrokes != nil:
			if *req.HandicapStrokes < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "handicap_strokes must be non-negative",
				})
			}
			handicapStrokes = *req.HandicapStrokes
			if req.HigherHandicapTeam != nil {
				team := models.Team(*req.HigherHandicapTeam)
				if !team.Valid() {
					return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
						"error": "higher_handicap_team must be 'USA' or 'EUROPE'",
					})
				}
				higherTeam = team
			}
		case tournament.UseHandicaps && usaPlayer.AverageScore != nil && europePlayer.AverageScore != nil:
			handicapStrokes, higherTeam = scoring.DeriveHandicap(*usaPlayer.AverageScore, *europePlayer.AverageScore)
		}

		// --- Build the 18 holes ---
		holes, err := buildHoles(req.Holes)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		game := models.Game{
			TournamentID:       tournamentID,
			USAPlayerID:        usaPlayerID,
			EuropePlayerID:     europePlayerID,
			HandicapStrokes:    handicapStrokes,
			HigherHandicapTeam: higherTeam,
		}
		game.SetStatus(models.GameStatusNotStarted)

		// We use a database transaction so that if any hole insert fails,
		// the game itself is also rolled back — preventing half-built scorecards.
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit(clause.Associations).Create(&game).Error; err != nil {
				return err
			}
			for i := range holes {
				holes[i].GameID = game.ID
				if err := tx.Create(&holes[i]).Error; err != nil {
					return err // Rolls the whole transaction back
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create game",
			})
		}

		game.Holes = holes
		game.USAPlayer = usaPlayer
		game.EuropePlayer = europePlayer
		return c.Status(fiber.StatusCreated).JSON(gameResponse(&game))
	}
}

// buildHoles turns the optional request layout into 18 Hole rows, or generates
// the default layout (stroke index = hole number, par 4) when none was given.
func buildHoles(layout []CreateGameHole) ([]models.Hole, error) {
	holes := make([]models.Hole, 0, models.HolesPerGame)

	if len(layout) == 0 {
		for n := 1; n <= models.HolesPerGame; n++ {
			holes = append(holes, models.Hole{HoleNumber: n, StrokeIndex: n, Par: 4})
		}
		return holes, nil
	}

	if len(layout) != models.HolesPerGame {
		return nil, fiber.NewError(fiber.StatusBadRequest, "holes must contain exactly 18 entries")
	}

	// Validate that hole numbers and stroke indexes each cover 1–18 exactly once
	seenNumber := make(map[int]bool, models.HolesPerGame)
	seenIndex := make(map[int]bool, models.HolesPerGame)
	for _, h := range layout {
		if h.HoleNumber < 1 || h.HoleNumber > models.HolesPerGame || seenNumber[h.HoleNumber] {
			return nil, fiber.NewError(fiber.StatusBadRequest, "hole_number values must be 1-18 with no duplicates")
		}
		if h.StrokeIndex < 1 || h.StrokeIndex > models.HolesPerGame || seenIndex[h.StrokeIndex] {
			return nil, fiber.NewError(fiber.StatusBadRequest, "stroke_index values must be 1-18 with no duplicates")
		}
		seenNumber[h.HoleNumber] = true
		seenIndex[h.StrokeIndex] = true

		par := h.Par
		if par == 0 {
			par = 4
		}
		holes = append(holes, models.Hole{HoleNumber: h.HoleNumber, StrokeIndex: h.StrokeIndex, Par: par})
	}
	return holes, nil
}

// UpdateGameStatusRequest is the JSON body for PUT /api/v1/games/:id/status.
type UpdateGameStatusRequest struct {
	Status string `json:"status"` // "not_started", "in_progress", or "complete"
}

// UpdateGameStatus returns a handler for PUT /api/v1/games/:id/status.
// Admin only: forces a game into any lifecycle state regardless of how many
// holes are scored. Moving away from complete zeroes the game's points (points
// exist only for evaluated games); moving to complete re-runs the scoring
// engine so the result reflects the scores as entered. Either way the
// tournament totals are recomputed immediately after.
func UpdateGameStatus(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game ID",
			})
		}

		var req UpdateGameStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		status := models.GameStatus(req.Status)
		if !status.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "status must be 'not_started', 'in_progress', or 'complete'",
			})
		}

		game, err := store.ForceGameStatus(db, hub, gameID, status)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "game not found",
				})
			}
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "unable to compute scores for this game",
			})
		}

		return c.JSON(gameResponse(game))
	}
}
