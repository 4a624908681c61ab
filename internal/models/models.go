// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go values.
// The struct field tags (the backtick strings like `gorm:"..."`) tell GORM how to handle
// each field: its column type, constraints, default values, and relationships.
//
// The data model represents a Ryder-Cup style team golf competition:
//   - A Tournament pits team USA against team EUROPE
//   - Tournament players are assigned to one of the two teams
//   - Each Game is an 18-hole head-to-head match between one USA player and one EUROPE player
//   - Each Game carries 18 Hole records with raw and handicap-adjusted scores
//   - Every game is worth exactly 2 points, split between the teams by the scoring engine
//
// Every game is scored under two disciplines at once — stroke play (total strokes,
// lower wins) and match play (holes won, higher wins) — and each discipline is
// evaluated twice: on raw scores and on handicap-adjusted scores.
package models

import (
	"time"

	// uuid provides universally unique identifiers for primary keys.
	// Using UUIDs instead of auto-incrementing integers makes IDs safe to generate
	// client-side and avoids leaking record counts to end users.
	"github.com/google/uuid"
)

// HolesPerGame is the fixed length of a game's hole list. Every game is a full
// 18-hole match; partially played games still carry all 18 hole rows, with
// unplayed holes holding null raw scores.
const HolesPerGame = 18

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string type
// plus constants. This gives us type safety — you can't accidentally pass a Team where a
// GameStatus is expected — while keeping the values human-readable in the database.

// Team identifies one of the two sides of the tournament.
type Team string

const (
	TeamUSA    Team = "USA"
	TeamEurope Team = "EUROPE"
)

// Valid reports whether t is one of the two known teams.
func (t Team) Valid() bool {
	return t == TeamUSA || t == TeamEurope
}

// GameStatus tracks the lifecycle of a single head-to-head game.
// The IsStarted/IsComplete booleans on Game are denormalised views of this value
// and must always stay consistent with it (see Game.SetStatus).
type GameStatus string

const (
	GameStatusNotStarted GameStatus = "not_started" // No scores entered yet; the game contributes zero points
	GameStatusInProgress GameStatus = "in_progress" // At least one hole scored; live points count toward the projection
	GameStatusComplete   GameStatus = "complete"    // All 18 holes scored; points count toward the running total
)

// Valid reports whether s is one of the known game statuses.
func (s GameStatus) Valid() bool {
	switch s {
	case GameStatusNotStarted, GameStatusInProgress, GameStatusComplete:
		return true
	}
	return false
}

// UserRole represents a user's global permission level across the platform.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"   // Full access: manage tournaments, force game status transitions
	UserRoleManager UserRole = "manager" // Can create and manage tournaments
	UserRoleUser    UserRole = "user"    // Regular player: can view tournaments and enter scores
)

// --- Embedded value types ---
// These small structs are embedded into the bigger models with gorm's
// "embedded;embeddedPrefix:" feature, which flattens their fields into prefixed
// columns on the parent table. That keeps the Go side shaped like the domain
// (a score always comes as a USA/EUROPE pair) without needing join tables.

// StrokePlayScore holds a game's total strokes per team, raw and handicap-adjusted.
// Lower is better. Adjusted totals can carry half strokes when a fractional
// handicap allowance was in play, so all four fields are float64.
type StrokePlayScore struct {
	USA            float64 `gorm:"not null;default:0" json:"usa"`
	Europe         float64 `gorm:"not null;default:0" json:"europe"`
	AdjustedUSA    float64 `gorm:"not null;default:0" json:"adjusted_usa"`
	AdjustedEurope float64 `gorm:"not null;default:0" json:"adjusted_europe"`
}

// MatchPlayScore holds a game's holes-won totals per team, raw and adjusted.
// Higher is better. A tied hole awards 0.5 to each side, so these are float64 too.
type MatchPlayScore struct {
	USA            float64 `gorm:"not null;default:0" json:"usa"`
	Europe         float64 `gorm:"not null;default:0" json:"europe"`
	AdjustedUSA    float64 `gorm:"not null;default:0" json:"adjusted_usa"`
	AdjustedEurope float64 `gorm:"not null;default:0" json:"adjusted_europe"`
}

// TeamPoints is the 2-points-per-game award split, in both flavors.
// For any started game RawUSA+RawEurope == 2 and AdjustedUSA+AdjustedEurope == 2;
// for a not-started game all four values are 0. The same shape is reused for
// tournament totals, where the invariant becomes "2 × number of counted games".
type TeamPoints struct {
	RawUSA         float64 `gorm:"not null;default:0" json:"raw_usa"`
	RawEurope      float64 `gorm:"not null;default:0" json:"raw_europe"`
	AdjustedUSA    float64 `gorm:"not null;default:0" json:"adjusted_usa"`
	AdjustedEurope float64 `gorm:"not null;default:0" json:"adjusted_europe"`
}

// Add returns the element-wise sum of p and o. TeamPoints is a value type, so
// this never mutates either operand — important because the scoring engine
// promises not to modify its inputs.
func (p TeamPoints) Add(o TeamPoints) TeamPoints {
	return TeamPoints{
		RawUSA:         p.RawUSA + o.RawUSA,
		RawEurope:      p.RawEurope + o.RawEurope,
		AdjustedUSA:    p.AdjustedUSA + o.AdjustedUSA,
		AdjustedEurope: p.AdjustedEurope + o.AdjustedEurope,
	}
}

// Equal reports whether all four point values match exactly. Point values are
// built only from additions of 0, 0.5 and 1, so exact float comparison is safe
// here — no epsilon needed.
func (p TeamPoints) Equal(o TeamPoints) bool {
	return p == o
}

// --- Models ---
// Each struct below maps to a database table. GORM uses the struct name (snake_cased and
// pluralized) as the table name by default: User -> users, Game -> games, etc.

// User represents a registered person in the system.
// Users are created automatically the first time a Clerk-authenticated user hits the API.
// The ClerkID links our internal record to Clerk's identity system.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"` // UUID primary key; the DB generates it automatically
	ClerkID     *string   `gorm:"uniqueIndex:idx_users_clerk_id"`                 // Clerk's user ID (e.g. "user_2abc123"); pointer = nullable for legacy rows
	DisplayName string    `gorm:"not null"`                                       // The name shown in the app; populated from the Clerk JWT "name" claim
	Email       string    `gorm:"uniqueIndex;not null"`                           // Unique email; populated from the Clerk JWT "email" claim
	Role        UserRole  `gorm:"type:user_role;not null;default:'user'"`         // Global role; synced from Clerk publicMetadata via the JWT "role" claim
	// AverageScore is the player's historical 18-hole scoring average (e.g. 87.5).
	// When a tournament has handicaps enabled, the handicap allowance for a new game
	// is derived once from the two players' averages. Nullable: new players have no history.
	AverageScore *float64 `gorm:"type:decimal(5,1)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Tournament is the top-level container: one USA-vs-EUROPE competition made up of games.
//
// TotalScore counts points from COMPLETE games only; ProjectedScore counts points
// from every game (in-progress games contribute their live partial points, and
// not-started games contribute zero). Both are recomputed from the games after
// every score or status mutation — the stored values are a cache of the engine's
// output, never hand-edited.
type Tournament struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"not null"`
	Year int       `gorm:"not null"` // Edition year, e.g. 2026 — shown in the app header
	// UseHandicaps switches handicap derivation on. When true and a game is created
	// without an explicit allowance, handicap strokes are derived from the two
	// players' historical averages and persisted onto the game (once, at creation).
	UseHandicaps   bool       `gorm:"not null;default:false"`
	TotalScore     TeamPoints `gorm:"embedded;embeddedPrefix:total_"`     // Complete games only
	ProjectedScore TeamPoints `gorm:"embedded;embeddedPrefix:projected_"` // All games, live points included
	CreatedBy      uuid.UUID  `gorm:"type:uuid;not null"`                 // Foreign key: which user created this tournament
	Creator        User       `gorm:"foreignKey:CreatedBy"`               // GORM relationship: preloads the User struct when queried
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Players        []TournamentPlayer   `gorm:"foreignKey:TournamentID"` // Team rosters
	Games          []Game               `gorm:"foreignKey:TournamentID"` // Head-to-head matches
	Progress       []TournamentProgress `gorm:"foreignKey:TournamentID"` // Append-only score history
}

// TournamentPlayer assigns a User to one team of a tournament.
// The unique index (idx_tournament_user) ensures a user appears on at most one
// roster per tournament — nobody plays for both sides.
type TournamentPlayer struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TournamentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_tournament_user"` // Combined unique index with UserID
	Tournament   Tournament `gorm:"foreignKey:TournamentID"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_tournament_user"`
	User         User       `gorm:"foreignKey:UserID"`
	Team         Team       `gorm:"type:team;not null"` // "USA" or "EUROPE"
	CreatedAt    time.Time
}

// Game is one 18-hole head-to-head match between a USA player and a EUROPE player.
//
// HandicapStrokes is the TOTAL allowance for the whole game (may be fractional,
// e.g. 7.5); the scoring engine distributes it across holes by stroke index.
// HigherHandicapTeam names the side that receives the allowance — the team of
// the weaker player, whose adjusted scores are reduced.
//
// The aggregate fields (StrokePlay, MatchPlay, Points) are outputs of the scoring
// engine, persisted so that tournament totals can be recomputed from game summaries
// alone, without reloading 18 hole rows per game.
type Game struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TournamentID uuid.UUID  `gorm:"type:uuid;not null"`
	Tournament   Tournament `gorm:"foreignKey:TournamentID"`

	USAPlayerID    uuid.UUID `gorm:"type:uuid;not null"`
	USAPlayer      User      `gorm:"foreignKey:USAPlayerID"`
	EuropePlayerID uuid.UUID `gorm:"type:uuid;not null"`
	EuropePlayer   User      `gorm:"foreignKey:EuropePlayerID"`

	HandicapStrokes    float64 `gorm:"not null;default:0"`               // Total strokes given to the weaker side across 18 holes
	HigherHandicapTeam Team    `gorm:"type:team;not null;default:'USA'"` // Which side receives the allowance

	Status GameStatus `gorm:"type:game_status;not null;default:'not_started'"`
	// IsStarted and IsComplete are denormalised from Status so the scoring engine
	// and queries can branch on a plain boolean. Always set them through SetStatus.
	IsStarted  bool `gorm:"not null;default:false"`
	IsComplete bool `gorm:"not null;default:false"`

	StrokePlay StrokePlayScore `gorm:"embedded;embeddedPrefix:stroke_play_"`
	MatchPlay  MatchPlayScore  `gorm:"embedded;embeddedPrefix:match_play_"`
	Points     TeamPoints      `gorm:"embedded;embeddedPrefix:points_"`

	Holes []Hole `gorm:"foreignKey:GameID"` // Exactly 18, ordered by HoleNumber

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetStatus updates Status and keeps the IsStarted/IsComplete booleans consistent:
// IsStarted is true for anything past not_started, IsComplete only for complete.
func (g *Game) SetStatus(s GameStatus) {
	g.Status = s
	g.IsStarted = s != GameStatusNotStarted
	g.IsComplete = s == GameStatusComplete
}

// Hole is one of the 18 ordered slots in a game.
//
// The two raw score fields are pointers: nil means the hole has not been played
// yet (or a player no-showed it). All six derived fields — the adjusted scores
// and the four match-play awards — are computed by the scoring engine from the
// raw scores; the adjusted pointers are nil exactly when the raw score is nil,
// and the match-play awards are 0 for an unplayed hole.
type Hole struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GameID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_game_hole"` // Composite unique: one row per game per hole
	Game   Game      `gorm:"foreignKey:GameID"`

	HoleNumber int `gorm:"not null;uniqueIndex:idx_game_hole"` // 1–18, display order
	// StrokeIndex is the hole's difficulty rank on the course: 1 = hardest.
	// Handicap strokes are handed out to the hardest holes first, so a player
	// receiving 7 strokes gets one on each of the holes with stroke index 1–7.
	StrokeIndex int `gorm:"not null"`
	Par         int `gorm:"not null;default:4"` // Informational only; the engine never reads it

	USAPlayerScore    *int `json:"usa_player_score"`    // Raw strokes; nil = not yet played
	EuropePlayerScore *int `json:"europe_player_score"` // Raw strokes; nil = not yet played

	// Adjusted scores: raw minus any handicap strokes allocated to this hole for
	// the receiving team; the other side's adjusted score equals its raw score.
	// Half-stroke allowances make these float64.
	USAPlayerAdjustedScore    *float64 `json:"usa_player_adjusted_score"`
	EuropePlayerAdjustedScore *float64 `json:"europe_player_adjusted_score"`

	// Per-hole match-play awards, each 0, 0.5 or 1. For a played hole the two raw
	// values sum to 1 (and independently the two adjusted values); for an unplayed
	// hole all four are 0.
	USAPlayerMatchPlayScore            float64 `gorm:"not null;default:0" json:"usa_player_match_play_score"`
	EuropePlayerMatchPlayScore         float64 `gorm:"not null;default:0" json:"europe_player_match_play_score"`
	USAPlayerMatchPlayAdjustedScore    float64 `gorm:"not null;default:0" json:"usa_player_match_play_adjusted_score"`
	EuropePlayerMatchPlayAdjustedScore float64 `gorm:"not null;default:0" json:"europe_player_match_play_adjusted_score"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Played reports whether both raw scores are present. Only played holes
// contribute to stroke-play and match-play aggregates — a hole with one side
// missing is treated exactly like an unplayed hole.
func (h *Hole) Played() bool {
	return h.USAPlayerScore != nil && h.EuropePlayerScore != nil
}

// TournamentProgress is one append-only snapshot of a tournament's running total.
// A row is inserted every time a recomputation CHANGES the stored totals — so the
// sequence reads as the scoreboard's history. Rows are never updated or deleted.
type TournamentProgress struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TournamentID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Tournament     Tournament `gorm:"foreignKey:TournamentID"`
	Score          TeamPoints `gorm:"embedded;embeddedPrefix:score_"` // The new TotalScore at snapshot time
	CompletedGames int        `gorm:"not null"`                       // How many games were complete when the snapshot was taken
	RecordedAt     time.Time  `gorm:"autoCreateTime"`                 // Set automatically by GORM on insert
}
