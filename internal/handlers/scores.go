// scores.go — the score entry endpoint, the hottest path in the API.
//
// Every tap on the scorecard becomes one PUT here: the raw scores for a single
// hole. The store re-runs the scoring engine over the whole game, advances the
// game lifecycle (first score starts it, 18th filled hole completes it),
// recomputes the tournament totals, and broadcasts the fresh scoreboard to
// websocket watchers — so by the time this handler responds, everything derived
// from that one score is already consistent.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/ryder-cup/internal/store"
	"github.com/trentd187/ryder-cup/internal/websocket"
)

// UpsertHoleScoreRequest is the JSON body for PUT /api/v1/games/:id/holes/:holeNumber.
// Both fields are optional: null (or omitted) clears that side's score, turning
// the hole back into an unplayed one. Sending one side only is allowed — the
// hole just won't count toward any total until the other side arrives.
type UpsertHoleScoreRequest struct {
	USAPlayerScore    *int `json:"usa_player_score"`
	EuropePlayerScore *int `json:"europe_player_score"`
}

// UpsertHoleScore returns a handler for PUT /api/v1/games/:id/holes/:holeNumber.
// Any authenticated user can enter scores (players score each other's cards in
// practice); only admins can rewrite history via the status route.
func UpsertHoleScore(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game ID",
			})
		}

		// ParamsInt parses the :holeNumber path segment as an integer
		holeNumber, err := c.ParamsInt("holeNumber")
		if err != nil || holeNumber < 1 || holeNumber > 18 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "hole number must be between 1 and 18",
			})
		}

		var req UpsertHoleScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		// Strokes are counts, so the floor here is 1, not 0: a played hole
		// took at least one stroke, and "zero strokes" is a no-show — callers
		// express that by sending null, which clears the score instead.
		if req.USAPlayerScore != nil && *req.USAPlayerScore < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "usa_player_score must be a positive stroke count",
			})
		}
		if req.EuropePlayerScore != nil && *req.EuropePlayerScore < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "europe_player_score must be a positive stroke count",
			})
		}

		game, err := store.ApplyHoleScore(db, hub, gameID, holeNumber, req.USAPlayerScore, req.EuropePlayerScore)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "game or hole not found",
				})
			}
			// Engine validation failure (malformed stored game). The caller
			// can't fix this by retrying — the data needs repair.
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "unable to compute scores for this game",
			})
		}

		return c.JSON(gameResponse(game))
	}
}
