// Package normalize turns both stat sources — the admin stat sheet and the
// console telemetry export — into canonical per-player stat buckets. All of
// the sources' quirks (short keys, numbers-as-strings, position spellings)
// stop here; downstream packages only ever see model.StatBucket.
package normalize

import (
	"strconv"
	"strings"

	"github.com/icetilt/icetilt-data/internal/model"
)

// goaliePositions are the spellings the sources use for the goaltender
// position, compared after lowercasing and stripping spaces.
var goaliePositions = map[string]bool{
	"g":          true,
	"goalie":     true,
	"goaltender": true,
}

// positionDisplay maps telemetry position spellings to the abbreviations
// shown in stat tables. Unmapped values pass through unchanged.
var positionDisplay = map[string]string{
	"center":     "C",
	"leftwing":   "LW",
	"rightwing":  "RW",
	"defensemen": "D",
	"goaltender": "G",
}

// IsGoalie reports whether a source position string names the goaltender
// position, tolerating case and embedded spaces ("Goal Tender").
func IsGoalie(position string) bool {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(position)), " ", "")
	return goaliePositions[key]
}

// DisplayPosition maps a raw position to its table abbreviation.
func DisplayPosition(position string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(position)), " ", "")
	if abbr, ok := positionDisplay[key]; ok {
		return abbr
	}
	return position
}

// Num extracts a numeric field from a telemetry row, trying each key in
// order. The export serializes numbers as JSON strings about as often as
// numbers, so both are accepted. Missing or unparseable values are 0.
func Num(row model.TelemetryRow, keys ...string) int {
	for _, key := range keys {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return int(f)
			}
		}
	}
	return 0
}

// Str extracts a string field from a telemetry row, trying each key in
// order.
func Str(row model.TelemetryRow, keys ...string) string {
	for _, key := range keys {
		if v, ok := row[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// Bool extracts a truthy flag from a telemetry row. The export encodes
// booleans as true/false, "1"/"0", or 1/0 depending on the capture path.
func Bool(row model.TelemetryRow, keys ...string) (value, present bool) {
	for _, key := range keys {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		switch b := v.(type) {
		case bool:
			return b, true
		case float64:
			return b != 0, true
		case string:
			s := strings.ToLower(strings.TrimSpace(b))
			if s == "" {
				continue
			}
			return s == "1" || s == "true", true
		}
	}
	return false, false
}

// ManualRows converts the stat-sheet rows belonging to one team into stat
// buckets. Rows are matched by exact team name; outcome is stamped by the
// caller, which knows which side the team played.
func ManualRows(rows []model.ManualStatRow, team string, outcome model.Outcome) []model.StatBucket {
	var out []model.StatBucket
	for _, row := range rows {
		if row.Team != team {
			continue
		}
		b := model.StatBucket{
			PlayerName:       row.Name,
			Team:             team,
			Position:         DisplayPosition(row.Position),
			Outcome:          outcome,
			Goals:            row.Goals,
			Assists:          row.Assists,
			Shots:            row.Shots,
			Hits:             row.Hits,
			BlockedShots:     row.BlockedShots,
			PenaltyMinutes:   row.PenaltyMinutes,
			PowerPlayGoals:   row.PowerPlayGoals,
			ShortHandedGoals: row.ShortHandedGoals,
			GameWinningGoals: row.GameWinningGoals,
			Takeaways:        row.Takeaways,
			Giveaways:        row.Giveaways,
			Interceptions:    row.Interceptions,
			Passes:           row.Passes,
			PassAttempts:     row.PassAttempts,
			PassPercentage:   row.PassPercentage,
			FaceoffsWon:      row.FaceoffsWon,
			FaceoffsLost:     row.FaceoffsLost,
			Saves:            row.Saves,
			ShotsAgainst:     row.ShotsAgainst,
			GoalsAgainst:     row.GoalsAgainst,
		}
		if IsGoalie(row.Position) {
			b.Role = model.RoleGoalie
		} else {
			b.Role = model.RoleSkater
		}
		out = append(out, b)
	}
	return out
}

// TelemetryBucketRows converts one side's telemetry bucket into stat
// buckets. Every numeric field goes through the key fallback chain; the
// goalie stat block is only read for goalie rows.
func TelemetryBucketRows(bucket model.TelemetryBucket, team string, outcome model.Outcome) []model.StatBucket {
	out := make([]model.StatBucket, 0, len(bucket))
	for _, row := range bucket {
		position := Str(row, "position", "posSorted")
		b := model.StatBucket{
			PlayerName:       Str(row, "playername", "name"),
			Team:             team,
			Position:         DisplayPosition(position),
			Outcome:          outcome,
			Goals:            Num(row, "goals", "skgoals"),
			Assists:          Num(row, "assists", "skassists"),
			Shots:            Num(row, "shots", "skshots"),
			Hits:             Num(row, "hits", "skhits"),
			BlockedShots:     Num(row, "blockedShots", "skblk"),
			PenaltyMinutes:   Num(row, "penaltyMinutes", "skpim"),
			PowerPlayGoals:   Num(row, "powerPlayGoals", "skppg"),
			ShortHandedGoals: Num(row, "shortHandedGoals", "skshg"),
			GameWinningGoals: Num(row, "gameWinningGoals", "skgwg"),
			Takeaways:        Num(row, "takeaways", "sktakeaways"),
			Giveaways:        Num(row, "giveaways", "skgiveaways"),
			Interceptions:    Num(row, "interceptions", "skint", "skinterceptions"),
			Passes:           Num(row, "passes", "skpasses"),
			FaceoffsWon:      Num(row, "faceoffsWon", "skfow"),
			FaceoffsLost:     Num(row, "faceoffsLost", "skfol"),
		}
		if attempts := Num(row, "passAttempts", "skpassattempts"); attempts > 0 {
			b.PassAttempts = &attempts
		}
		if IsGoalie(position) {
			b.Role = model.RoleGoalie
			b.Saves = Num(row, "saves", "glsaves")
			b.GoalsAgainst = Num(row, "goalsAgainst", "glga")
			if shots := Num(row, "shotsAgainst", "glshots"); shots > 0 {
				b.ShotsAgainst = &shots
			}
		} else {
			b.Role = model.RoleSkater
		}
		out = append(out, b)
	}
	return out
}
