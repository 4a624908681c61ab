package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires the routes whose request-validation paths are exercised below.
// The handlers reject malformed requests before ever touching the database, so
// a nil *gorm.DB is safe for these cases — no test hits a query path.
func testApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/health", HealthCheck)
	app.Put("/api/v1/games/:id/holes/:holeNumber", UpsertHoleScore(nil, nil))
	app.Put("/api/v1/games/:id/status", UpdateGameStatus(nil, nil))
	app.Post("/api/v1/tournaments/:id/games", CreateGame(nil))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	// app.Test runs the request through the full Fiber pipeline without a listener
	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestHealthCheck(t *testing.T) {
	app := testApp(t)
	resp, body := doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestUpsertHoleScoreValidation(t *testing.T) {
	gameID := "7b1f8c1e-9f2a-4a7d-9a63-1c2d3e4f5a6b"
	tests := []struct {
		name   string
		target string
		body   string
	}{
		{
			name:   "malformed game id",
			target: "/api/v1/games/not-a-uuid/holes/1",
			body:   `{"usa_player_score": 4}`,
		},
		{
			name:   "hole number above 18",
			target: "/api/v1/games/" + gameID + "/holes/19",
			body:   `{"usa_player_score": 4}`,
		},
		{
			name:   "hole number zero",
			target: "/api/v1/games/" + gameID + "/holes/0",
			body:   `{"usa_player_score": 4}`,
		},
		{
			name:   "zero stroke count",
			target: "/api/v1/games/" + gameID + "/holes/3",
			body:   `{"usa_player_score": 0}`,
		},
		{
			name:   "negative stroke count",
			target: "/api/v1/games/" + gameID + "/holes/3",
			body:   `{"europe_player_score": -2}`,
		},
	}

	app := testApp(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, app, http.MethodPut, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestUpdateGameStatusValidation(t *testing.T) {
	app := testApp(t)
	gameID := "7b1f8c1e-9f2a-4a7d-9a63-1c2d3e4f5a6b"

	resp, _ := doJSON(t, app, http.MethodPut, "/api/v1/games/nope/status", `{"status":"complete"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPut, "/api/v1/games/"+gameID+"/status", `{"status":"finished"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "status must be")
}

func TestBuildHolesDefaultLayout(t *testing.T) {
	holes, err := buildHoles(nil)
	require.NoError(t, err)
	require.Len(t, holes, 18)
	for i, h := range holes {
		assert.Equal(t, i+1, h.HoleNumber)
		assert.Equal(t, i+1, h.StrokeIndex)
		assert.Equal(t, 4, h.Par)
	}
}

func TestBuildHolesRejectsBadLayouts(t *testing.T) {
	// Too short.
	_, err := buildHoles(make([]CreateGameHole, 9))
	assert.Error(t, err)

	// Duplicate stroke index.
	layout := make([]CreateGameHole, 0, 18)
	for n := 1; n <= 18; n++ {
		layout = append(layout, CreateGameHole{HoleNumber: n, StrokeIndex: n, Par: 4})
	}
	layout[17].StrokeIndex = 1
	_, err = buildHoles(layout)
	assert.Error(t, err)
}

func TestCreateGameValidation(t *testing.T) {
	app := testApp(t)
	tournamentID := "0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9"

	// Player IDs must be UUIDs before anything is looked up.
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/tournaments/"+tournamentID+"/games",
		`{"usa_player_id":"bad","europe_player_id":"also-bad"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "usa_player_id")
}
