// Package model defines the league domain types shared by the store, the
// stats engine, and the API layer. Stat payloads come from two structurally
// incompatible sources — a manually entered stat sheet and the console
// telemetry export — which are unified into StatBucket at the normalization
// boundary.
package model

import "time"

// Role splits per-player aggregates: a player who plays both positions gets
// one aggregate per role.
type Role string

const (
	RoleSkater Role = "skater"
	RoleGoalie Role = "goalie"
)

// Outcome is a team's result in a single game.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
	OutcomeOTLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "W"
	case OutcomeLoss:
		return "L"
	case OutcomeOTLoss:
		return "OTL"
	default:
		return "-"
	}
}

// Forfeit marks an administratively decided game.
type Forfeit string

const (
	ForfeitNone Forfeit = "none"
	ForfeitHome Forfeit = "forfeit-home" // home team is awarded the win
	ForfeitAway Forfeit = "forfeit-away" // away team is awarded the win
)

// TeamRef identifies one side of a game. ExternalClubID is the opaque club
// id assigned by the telemetry provider; empty when the club was never
// linked.
type TeamRef struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ExternalClubID string `json:"externalClubId,omitempty"`
	DivisionID     string `json:"divisionId,omitempty"`
}

// ManualStatRow is one per-player line from the admin stat sheet. Team is an
// explicit club name; counters use long-form keys. PassAttempts and
// PassPercentage are pointers because "absent" and "zero" drive different
// estimation paths.
type ManualStatRow struct {
	Name             string   `json:"name"`
	Team             string   `json:"team"`
	Position         string   `json:"position"`
	Goals            int      `json:"goals"`
	Assists          int      `json:"assists"`
	Shots            int      `json:"shots"`
	Hits             int      `json:"hits"`
	BlockedShots     int      `json:"blockedShots"`
	PenaltyMinutes   int      `json:"penaltyMinutes"`
	PowerPlayGoals   int      `json:"powerPlayGoals"`
	ShortHandedGoals int      `json:"shortHandedGoals"`
	GameWinningGoals int      `json:"gameWinningGoals"`
	Takeaways        int      `json:"takeaways"`
	Giveaways        int      `json:"giveaways"`
	Interceptions    int      `json:"interceptions"`
	Passes           int      `json:"passes"`
	PassAttempts     *int     `json:"passAttempts,omitempty"`
	PassPercentage   *float64 `json:"passPercentage,omitempty"`
	FaceoffsWon      int      `json:"faceoffsWon"`
	FaceoffsLost     int      `json:"faceoffsLost"`
	Saves            int      `json:"saves"`
	ShotsAgainst     *int     `json:"shotsAgainst,omitempty"`
	GoalsAgainst     int      `json:"goalsAgainst"`
}

// TelemetryRow is one player's line from the console export, decoded as-is.
// Numeric fields hide behind short keys (skgoals, skshots, glsaves, ...) and
// arrive as JSON strings as often as numbers, so extraction goes through the
// fallback chains in the normalize package.
type TelemetryRow map[string]any

// TelemetryBucket groups all player rows belonging to one side of one game,
// keyed by the provider's opaque player id.
type TelemetryBucket map[string]TelemetryRow

// TelemetryPayload is the raw console export for a game: one bucket per side
// keyed by an opaque per-match team-bucket id.
type TelemetryPayload struct {
	MatchID string                     `json:"matchId,omitempty"`
	Buckets map[string]TelemetryBucket `json:"players"`
}

// Game is one match record. Exactly one of ManualRows / Telemetry is set;
// the normalize package resolves both into StatBucket values.
type Game struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	SeasonID     string    `json:"seasonId"`
	DivisionID   string    `json:"divisionId,omitempty"`
	DivisionName string    `json:"divisionName,omitempty"`
	HomeTeam     TeamRef   `json:"homeTeam"`
	AwayTeam     TeamRef   `json:"awayTeam"`
	HomeScore    int       `json:"homeScore"`
	AwayScore    int       `json:"awayScore"`
	IsOvertime   bool      `json:"isOvertime,omitempty"`
	IsShootout   bool      `json:"isShootout,omitempty"`
	IsPlayoff    bool      `json:"isPlayoff,omitempty"`
	IsTournament bool      `json:"isTournament,omitempty"`
	Forfeit      Forfeit   `json:"forfeit,omitempty"`

	// TelemetryMatchID links the game to the console export even when the
	// payload itself was not stored (marks the game as played).
	TelemetryMatchID string `json:"telemetryMatchId,omitempty"`

	ManualRows []ManualStatRow   `json:"manualStatRows,omitempty"`
	Telemetry  *TelemetryPayload `json:"telemetryPayload,omitempty"`
}

// HasTelemetry reports whether the game carries a console export payload.
func (g *Game) HasTelemetry() bool {
	return g.Telemetry != nil && len(g.Telemetry.Buckets) > 0
}

// Decided reports whether the game produced a result that standings and
// per-player outcomes may count: telemetry linkage, a non-zero score, an
// overtime/shootout flag, or a forfeit ruling.
func (g *Game) Decided() bool {
	if g.Forfeit != "" && g.Forfeit != ForfeitNone {
		return true
	}
	if g.TelemetryMatchID != "" || g.HasTelemetry() {
		return true
	}
	if g.IsOvertime || g.IsShootout {
		return true
	}
	return g.HomeScore > 0 || g.AwayScore > 0
}

// Alias is one display name a player has used, as recorded in the player
// directory.
type Alias struct {
	Name      string `json:"name"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

// PlayerRecord is one player directory entry. Gamertag is the legacy display
// name kept for records created before aliases existed.
type PlayerRecord struct {
	ID       string  `json:"id"`
	Gamertag string  `json:"gamertag,omitempty"`
	Aliases  []Alias `json:"aliases,omitempty"`
}

// Season is a league season.
type Season struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Division is a grouping of clubs within a season. DisplayOrder controls
// stat-page ordering.
type Division struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SeasonID     string `json:"seasonId"`
	DisplayOrder int    `json:"displayOrder"`
}

// ClubSeason records a club's participation in one season.
type ClubSeason struct {
	SeasonID    string   `json:"seasonId"`
	DivisionIDs []string `json:"divisionIds,omitempty"`
	Roster      []string `json:"roster,omitempty"` // player ids
}

// Club is a team's registry entry across seasons.
type Club struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	ExternalClubID string       `json:"externalClubId,omitempty"`
	Seasons        []ClubSeason `json:"seasons,omitempty"`
}

// StatBucket is the canonical per-player per-game stat line both sources
// normalize into. PlayerName is the raw name from the source; identity
// resolution happens in the aggregator.
type StatBucket struct {
	PlayerName string
	Team       string
	Position   string
	Role       Role
	Outcome    Outcome

	Goals            int
	Assists          int
	Shots            int // as recorded by the source, excluding goals
	Hits             int
	BlockedShots     int
	PenaltyMinutes   int
	PowerPlayGoals   int
	ShortHandedGoals int
	GameWinningGoals int
	Takeaways        int
	Giveaways        int
	Interceptions    int
	Passes           int
	PassAttempts     *int
	PassPercentage   *float64
	FaceoffsWon      int
	FaceoffsLost     int

	Saves        int
	ShotsAgainst *int // nil when the source only reports saves + goals against
	GoalsAgainst int
}

// PlayerAggregate is a player's cumulative stat line for one role across a
// set of games. Counter fields are plain sums; ratio fields are recomputed
// from the sums after every contributing game, never averaged per-game.
type PlayerAggregate struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
	Team        string `json:"team"`
	Division    string `json:"division,omitempty"`
	DivisionID  string `json:"divisionId,omitempty"`
	SeasonID    string `json:"seasonId,omitempty"`
	Position    string `json:"position"`
	Role        Role   `json:"role"`
	IsSigned    bool   `json:"isSigned"`

	GamesPlayed int `json:"gamesPlayed"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	OTLosses    int `json:"otLosses"`

	Goals            int `json:"goals"`
	Assists          int `json:"assists"`
	Points           int `json:"points"`
	Shots            int `json:"shots"` // includes goals
	Hits             int `json:"hits"`
	BlockedShots     int `json:"blockedShots"`
	PenaltyMinutes   int `json:"penaltyMinutes"`
	PowerPlayGoals   int `json:"powerPlayGoals"`
	ShortHandedGoals int `json:"shortHandedGoals"`
	GameWinningGoals int `json:"gameWinningGoals"`
	Takeaways        int `json:"takeaways"`
	Giveaways        int `json:"giveaways"`
	Interceptions    int `json:"interceptions"`
	Passes           int `json:"passes"`
	PassAttempts     int `json:"passAttempts"`
	FaceoffsWon      int `json:"faceoffsWon"`
	FaceoffsLost     int `json:"faceoffsLost"`

	Saves        int `json:"saves"`
	ShotsAgainst int `json:"shotsAgainst"`
	GoalsAgainst int `json:"goalsAgainst"`
	Shutouts     int `json:"shutouts"`

	ShotPercentage      float64 `json:"shotPercentage"`
	PassPercentage      float64 `json:"passPercentage"`
	FaceoffPercentage   float64 `json:"faceoffPercentage"`
	SavePercentage      float64 `json:"savePercentage"`
	GoalsAgainstAverage float64 `json:"goalsAgainstAverage"`
}

// TeamStanding is one team's line in the standings table.
type TeamStanding struct {
	TeamID           string    `json:"teamId"`
	TeamName         string    `json:"teamName"`
	Division         string    `json:"division,omitempty"`
	DivisionID       string    `json:"divisionId,omitempty"`
	GamesPlayed      int       `json:"gamesPlayed"`
	Wins             int       `json:"wins"`
	Losses           int       `json:"losses"`
	OTLosses         int       `json:"otLosses"`
	Points           int       `json:"points"`
	GoalsFor         int       `json:"goalsFor"`
	GoalsAgainst     int       `json:"goalsAgainst"`
	GoalDifferential int       `json:"goalDifferential"`
	WinPercentage    float64   `json:"winPercentage"`
	LastTen          []Outcome `json:"-"`
	StreakType       string    `json:"streakType"` // "W", "L", "OTL", or "-"
	StreakCount      int       `json:"streakCount"`
}
