// Package handlers contains HTTP route handler functions for the Ryder Cup API.
// This file handles the /api/v1/tournaments routes — listing, creating and reading
// tournaments, managing team rosters, and serving the append-only score history.
//
// A "tournament" is one USA-vs-EUROPE competition. Its two scoreboards are pure
// outputs of the scoring engine: TotalScore counts complete games only, while
// ProjectedScore counts every game including live partial points. Handlers never
// compute scores themselves — they read whatever the last recomputation stored.
//
// Each exported function follows the "handler factory" pattern: it takes a *gorm.DB
// and returns a fiber.Handler (a function that handles a single HTTP request).
// This lets us inject the database without using global variables.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/ryder-cup/internal/models"
)

// TournamentResponse is what we send back to the mobile app.
// We use a dedicated response struct (instead of the raw GORM model) so we control
// exactly what fields are serialised to JSON and can add computed fields like GameCount.
type TournamentResponse struct {
	ID             string            `json:"id"`              // The tournament's UUID as a string
	Name           string            `json:"name"`            // Display name, e.g. "Smith Cup"
	Year           int               `json:"year"`            // Edition year
	UseHandicaps   bool              `json:"use_handicaps"`   // Whether new games get a derived handicap allowance
	TotalScore     models.TeamPoints `json:"total_score"`     // Points from complete games only
	ProjectedScore models.TeamPoints `json:"projected_score"` // Points from all games, live ones included
	CompletedGames int               `json:"completed_games"` // How many games have finished
	GameCount      int64             `json:"game_count"`      // Total games scheduled
	CreatorName    string            `json:"creator_name"`    // Display name of the user who created the tournament
	CreatedAt      string            `json:"created_at"`      // ISO 8601 timestamp string
}

// CreateTournamentRequest is the JSON body we expect on POST /api/v1/tournaments.
type CreateTournamentRequest struct {
	Name         string `json:"name"`          // Required: the tournament's name
	Year         int    `json:"year"`          // Required: edition year
	UseHandicaps bool   `json:"use_handicaps"` // Optional: defaults to false (scratch play)
}

// tournamentResponse builds the response shape for one tournament, counting its
// games with two cheap COUNT queries rather than loading the rows.
func tournamentResponse(db *gorm.DB, t models.Tournament) TournamentResponse {
	var gameCount int64
	db.Model(&models.Game{}).Where("tournament_id = ?", t.ID).Count(&gameCount)

	var completed int64
	db.Model(&models.Game{}).Where("tournament_id = ? AND is_complete = true", t.ID).Count(&completed)

	return TournamentResponse{
		ID:             t.ID.String(),
		Name:           t.Name,
		Year:           t.Year,
		UseHandicaps:   t.UseHandicaps,
		TotalScore:     t.TotalScore,
		ProjectedScore: t.ProjectedScore,
		CompletedGames: int(completed),
		GameCount:      gameCount,
		// Creator must have been preloaded by the caller
		CreatorName: t.Creator.DisplayName,
		// Format the timestamp as ISO 8601 for easy parsing in TypeScript
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GetTournaments returns a handler for GET /api/v1/tournaments.
// All authenticated users can list tournaments — unlike score mutation, reading
// the board is open to everyone.
func GetTournaments(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Preload("Creator") tells GORM to automatically fetch the related User record
		// for each tournament's CreatedBy foreign key. This avoids N+1 queries.
		var tournaments []models.Tournament
		if err := db.Preload("Creator").Order("year DESC").Find(&tournaments).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch tournaments",
			})
		}

		response := make([]TournamentResponse, 0, len(tournaments))
		for _, t := range tournaments {
			response = append(response, tournamentResponse(db, t))
		}
		return c.JSON(response)
	}
}

// CreateTournament returns a handler for POST /api/v1/tournaments.
// Requires "admin" or "manager" role (enforced by RequireRole middleware on the route).
func CreateTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Read the creator's internal UUID from the request context.
		// It was set by the Auth middleware earlier in the request chain.
		userIDStr, _ := c.Locals("userID").(string)
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid user ID",
			})
		}

		// Parse the JSON request body into our request struct.
		// c.BodyParser reads the body and unmarshals JSON fields that match struct tags.
		var req CreateTournamentRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name is required",
			})
		}
		if req.Year < 1900 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "year is required",
			})
		}

		tournament := models.Tournament{
			Name:         req.Name,
			Year:         req.Year,
			UseHandicaps: req.UseHandicaps,
			CreatedBy:    userID,
		}
		// db.Create runs an INSERT and populates tournament.ID with the new UUID
		if err := db.Create(&tournament).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create tournament",
			})
		}

		// Fetch the creator's display name for the response
		var creator models.User
		db.First(&creator, "id = ?", userID)
		tournament.Creator = creator

		return c.Status(fiber.StatusCreated).JSON(tournamentResponse(db, tournament))
	}
}

// GetTournament returns a handler for GET /api/v1/tournaments/:id.
// The detail view includes every game with its 18 holes, so the app can render
// the full scorecards from a single request.
func GetTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		var tournament models.Tournament
		err = db.Preload("Creator").
			Preload("Games.USAPlayer").
			Preload("Games.EuropePlayer").
			Preload("Games.Holes", func(db *gorm.DB) *gorm.DB {
				return db.Order("hole_number ASC")
			}).
			First(&tournament, "id = ?", tournamentID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "tournament not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch tournament",
			})
		}

		games := make([]GameResponse, 0, len(tournament.Games))
		for i := range tournament.Games {
			games = append(games, gameResponse(&tournament.Games[i]))
		}

		return c.JSON(fiber.Map{
			"tournament": tournamentResponse(db, tournament),
			"games":      games,
		})
	}
}

// ProgressEntryResponse is one row of the tournament's score history.
type ProgressEntryResponse struct {
	Score          models.TeamPoints `json:"score"`           // The running total at snapshot time
	CompletedGames int               `json:"completed_games"` // Complete games at snapshot time
	RecordedAt     string            `json:"recorded_at"`     // ISO 8601 timestamp string
}

// GetTournamentProgress returns a handler for GET /api/v1/tournaments/:id/progress.
// The history is returned oldest-first so the app can chart the score over time.
// Rows only exist for recomputations that actually moved the totals.
func GetTournamentProgress(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		var entries []models.TournamentProgress
		err = db.Where("tournament_id = ?", tournamentID).
			Order("recorded_at ASC").
			Find(&entries).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch progress",
			})
		}

		response := make([]ProgressEntryResponse, 0, len(entries))
		for _, e := range entries {
			response = append(response, ProgressEntryResponse{
				Score:          e.Score,
				CompletedGames: e.CompletedGames,
				RecordedAt:     e.RecordedAt.UTC().Format(time.RFC3339),
			})
		}
		return c.JSON(response)
	}
}

// AddTournamentPlayerRequest is the JSON body for POST /api/v1/tournaments/:id/players.
type AddTournamentPlayerRequest struct {
	UserID string `json:"user_id"` // Required: internal UUID of the user joining a roster
	Team   string `json:"team"`    // Required: "USA" or "EUROPE"
}

// AddTournamentPlayer returns a handler for POST /api/v1/tournaments/:id/players.
// Assigns a user to one of the two team rosters. Requires "admin" or "manager"
// role. The unique (tournament, user) index means a second assignment for the
// same user fails at the database rather than silently moving them.
func AddTournamentPlayer(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		var req AddTournamentPlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user_id must be a valid UUID",
			})
		}

		team := models.Team(req.Team)
		if !team.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "team must be 'USA' or 'EUROPE'",
			})
		}

		// Make sure both ends of the join exist before inserting
		var tournament models.Tournament
		if err := db.First(&tournament, "id = ?", tournamentID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "tournament not found",
			})
		}
		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		}

		player := models.TournamentPlayer{
			TournamentID: tournamentID,
			UserID:       userID,
			Team:         team,
		}
		if err := db.Create(&player).Error; err != nil {
			// Most likely the unique (tournament, user) index — the user is already on a roster
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "user is already on a roster for this tournament",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":      player.ID.String(),
			"user_id": userID.String(),
			"team":    string(team),
		})
	}
}
