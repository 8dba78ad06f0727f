package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icetilt/icetilt-data/internal/model"
)

func TestNumFallbackChain(t *testing.T) {
	row := model.TelemetryRow{
		"skgoals":   "3",
		"skshots":   7.0,
		"skassists": nil,
		"skhits":    "not a number",
	}

	assert.Equal(t, 3, Num(row, "goals", "skgoals"), "string-encoded number via short key")
	assert.Equal(t, 7, Num(row, "shots", "skshots"), "float via short key")
	assert.Equal(t, 0, Num(row, "assists", "skassists"), "nil value")
	assert.Equal(t, 0, Num(row, "hits", "skhits"), "unparseable string")
	assert.Equal(t, 0, Num(row, "missing"), "absent key")
}

func TestBoolFallbackChain(t *testing.T) {
	v, ok := Bool(model.TelemetryRow{"ishome": "1"}, "isHome", "ishome")
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = Bool(model.TelemetryRow{"ishome": 0.0}, "ishome")
	assert.True(t, ok)
	assert.False(t, v)

	_, ok = Bool(model.TelemetryRow{}, "ishome")
	assert.False(t, ok)
}

func TestIsGoalie(t *testing.T) {
	for _, p := range []string{"G", "g", "Goalie", "goaltender", "Goal Tender", " GOALIE "} {
		assert.True(t, IsGoalie(p), p)
	}
	for _, p := range []string{"C", "center", "defensemen", ""} {
		assert.False(t, IsGoalie(p), p)
	}
}

func TestDisplayPosition(t *testing.T) {
	tests := map[string]string{
		"center":     "C",
		"leftwing":   "LW",
		"rightwing":  "RW",
		"defensemen": "D",
		"goaltender": "G",
		"Left Wing":  "LW",
		"rover":      "rover", // unmapped passes through
	}
	for in, want := range tests {
		assert.Equal(t, want, DisplayPosition(in), in)
	}
}

func TestManualRowsFilterByTeam(t *testing.T) {
	rows := []model.ManualStatRow{
		{Name: "a", Team: "Otters", Position: "C", Goals: 1},
		{Name: "b", Team: "Bears", Position: "D", Goals: 2},
		{Name: "c", Team: "Otters", Position: "G", Saves: 10},
	}

	out := ManualRows(rows, "Otters", model.OutcomeWin)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].PlayerName)
	assert.Equal(t, model.RoleSkater, out[0].Role)
	assert.Equal(t, model.OutcomeWin, out[0].Outcome)
	assert.Equal(t, model.RoleGoalie, out[1].Role)
}

func TestTelemetryBucketRows(t *testing.T) {
	bucket := model.TelemetryBucket{
		"11": {
			"playername": "viper", "position": "rightwing",
			"skgoals": "1", "skassists": 2.0, "skshots": "4",
			"skpasses": 40.0,
		},
		"22": {
			"playername": "wall", "position": "goaltender",
			"glsaves": "18", "glga": 1.0, "glshots": 19.0,
		},
	}

	out := TelemetryBucketRows(bucket, "Otters", model.OutcomeLoss)
	require.Len(t, out, 2)

	byName := map[string]model.StatBucket{}
	for _, b := range out {
		byName[b.PlayerName] = b
	}

	viper := byName["viper"]
	assert.Equal(t, "RW", viper.Position)
	assert.Equal(t, model.RoleSkater, viper.Role)
	assert.Equal(t, 1, viper.Goals)
	assert.Equal(t, 2, viper.Assists)
	assert.Equal(t, 4, viper.Shots)
	assert.Equal(t, 40, viper.Passes)
	assert.Nil(t, viper.PassAttempts)
	assert.Equal(t, 0, viper.Saves, "skaters never read the goalie block")

	wall := byName["wall"]
	assert.Equal(t, model.RoleGoalie, wall.Role)
	assert.Equal(t, 18, wall.Saves)
	assert.Equal(t, 1, wall.GoalsAgainst)
	require.NotNil(t, wall.ShotsAgainst)
	assert.Equal(t, 19, *wall.ShotsAgainst)
}
