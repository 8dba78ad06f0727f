package aggregate

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icetilt/icetilt-data/internal/identity"
	"github.com/icetilt/icetilt-data/internal/model"
)

func day(n int) time.Time {
	return time.Date(2026, 1, n, 20, 0, 0, 0, time.UTC)
}

func manualGame(id string, n int, home, away string, hs, as int, rows ...model.ManualStatRow) model.Game {
	return model.Game{
		ID:        id,
		Date:      day(n),
		SeasonID:  "s1",
		HomeTeam:  model.TeamRef{ID: home, Name: home},
		AwayTeam:  model.TeamRef{ID: away, Name: away},
		HomeScore: hs,
		AwayScore: as,

		ManualRows: rows,
	}
}

func skaterRow(name, team string, goals, assists, shots int) model.ManualStatRow {
	return model.ManualStatRow{
		Name: name, Team: team, Position: "C",
		Goals: goals, Assists: assists, Shots: shots,
	}
}

func find(t *testing.T, rows []model.PlayerAggregate, playerID string, role model.Role) model.PlayerAggregate {
	t.Helper()
	for _, r := range rows {
		if r.PlayerID == playerID && r.Role == role {
			return r
		}
	}
	t.Fatalf("no aggregate for %s/%s", playerID, role)
	return model.PlayerAggregate{}
}

func TestShotsIncludeGoals(t *testing.T) {
	games := []model.Game{
		manualGame("g1", 1, "Otters", "Bears", 3, 1,
			skaterRow("viper", "Otters", 2, 0, 5)),
		manualGame("g2", 2, "Otters", "Bears", 1, 0,
			skaterRow("viper", "Otters", 1, 1, 3)),
	}

	rows := New(nil).Aggregate(games, Options{})
	p := find(t, rows, "viper", model.RoleSkater)

	// 5+2 recorded shots plus 3 goals.
	assert.Equal(t, 11, p.Shots)
	assert.Equal(t, 3, p.Goals)
	assert.InDelta(t, 27.27, p.ShotPercentage, 0.01)
}

func TestGoalieShutoutRule(t *testing.T) {
	goalie := func(team string, saves, ga int, shotsAgainst *int) model.ManualStatRow {
		return model.ManualStatRow{
			Name: "wall", Team: team, Position: "G",
			Saves: saves, GoalsAgainst: ga, ShotsAgainst: shotsAgainst,
		}
	}
	twelve := 12

	tests := []struct {
		name     string
		row      model.ManualStatRow
		shutouts int
		against  int
	}{
		{"clean sheet with explicit shots against", goalie("Otters", 12, 0, &twelve), 1, 12},
		{"clean sheet with derived shots against", goalie("Otters", 9, 0, nil), 1, 9},
		{"goals against blocks the shutout", goalie("Otters", 20, 2, nil), 0, 22},
		{"no shots faced is not a shutout", goalie("Otters", 0, 0, nil), 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			games := []model.Game{manualGame("g1", 1, "Otters", "Bears", 1, tc.row.GoalsAgainst, tc.row)}
			rows := New(nil).Aggregate(games, Options{})
			p := find(t, rows, "wall", model.RoleGoalie)
			assert.Equal(t, tc.shutouts, p.Shutouts)
			assert.Equal(t, tc.against, p.ShotsAgainst)
		})
	}
}

func TestAggregationCommutativeOverMatchOrder(t *testing.T) {
	games := []model.Game{
		manualGame("g1", 1, "Otters", "Bears", 3, 1,
			skaterRow("viper", "Otters", 1, 2, 4),
			skaterRow("grizz", "Bears", 1, 0, 6)),
		manualGame("g2", 2, "Bears", "Otters", 2, 5,
			skaterRow("viper", "Otters", 3, 0, 7),
			skaterRow("grizz", "Bears", 0, 1, 2)),
		manualGame("g3", 3, "Otters", "Bears", 0, 2,
			skaterRow("viper", "Otters", 0, 0, 1),
			skaterRow("grizz", "Bears", 2, 0, 3)),
	}

	want := New(nil).Aggregate(games, Options{})

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5; i++ {
		shuffled := append([]model.Game(nil), games...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, New(nil).Aggregate(shuffled, Options{}))
	}
}

func TestAggregationIdempotent(t *testing.T) {
	games := []model.Game{
		manualGame("g1", 1, "Otters", "Bears", 3, 1,
			skaterRow("viper", "Otters", 1, 2, 4)),
	}
	agg := New(nil)
	require.Equal(t, agg.Aggregate(games, Options{}), agg.Aggregate(games, Options{}))
}

func TestAliasesMergeIntoOnePlayer(t *testing.T) {
	resolver := identity.NewResolver([]model.PlayerRecord{
		{ID: "p1", Aliases: []model.Alias{
			{Name: "Top Shelf Tony", IsPrimary: true},
			{Name: "tony_oldtag"},
		}},
	})
	games := []model.Game{
		manualGame("g1", 1, "Otters", "Bears", 2, 1,
			skaterRow("tony_oldtag", "Otters", 1, 0, 2)),
		manualGame("g2", 2, "Otters", "Bears", 4, 0,
			skaterRow("TOP SHELF TONY ", "Otters", 2, 1, 5)),
	}

	rows := New(resolver).Aggregate(games, Options{})
	p := find(t, rows, "p1", model.RoleSkater)

	assert.Equal(t, 2, p.GamesPlayed)
	assert.Equal(t, 3, p.Goals)
	assert.Equal(t, "Top Shelf Tony", p.DisplayName)
	assert.True(t, p.IsSigned)
}

func TestUnknownNameBecomesSyntheticIdentity(t *testing.T) {
	games := []model.Game{
		manualGame("g1", 1, "Otters", "Bears", 2, 1,
			skaterRow("walk-on", "Otters", 1, 0, 2)),
	}
	rows := New(identity.NewResolver(nil)).Aggregate(games, Options{})
	p := find(t, rows, "walk-on", model.RoleSkater)
	assert.False(t, p.IsSigned)
	assert.Equal(t, "walk-on", p.DisplayName)
}

func TestEstimatePassAttempts(t *testing.T) {
	sixty := 60
	pct := 50.0

	tests := []struct {
		name       string
		passes     int
		attempts   *int
		percentage *float64
		want       int
	}{
		{"direct value wins", 40, &sixty, &pct, 60},
		{"derived from percentage", 40, nil, &pct, 80},
		{"default completion rate", 40, nil, nil, 50},
		{"no passes", 0, nil, nil, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EstimatePassAttempts(tc.passes, tc.attempts, tc.percentage))
		})
	}
}

func TestSideOutcome(t *testing.T) {
	reg := manualGame("g", 1, "H", "A", 3, 2)
	assert.Equal(t, model.OutcomeWin, SideOutcome(&reg, true))
	assert.Equal(t, model.OutcomeLoss, SideOutcome(&reg, false))

	ot := manualGame("g", 1, "H", "A", 2, 3)
	ot.IsOvertime = true
	assert.Equal(t, model.OutcomeOTLoss, SideOutcome(&ot, true))
	assert.Equal(t, model.OutcomeWin, SideOutcome(&ot, false))

	// Equal score without an OT/SO flag is a loss for both sides.
	tie := manualGame("g", 1, "H", "A", 2, 2)
	assert.Equal(t, model.OutcomeLoss, SideOutcome(&tie, true))
	assert.Equal(t, model.OutcomeLoss, SideOutcome(&tie, false))

	undecided := manualGame("g", 1, "H", "A", 0, 0)
	assert.Equal(t, model.OutcomeNone, SideOutcome(&undecided, true))
}

func TestForfeitOverridesScore(t *testing.T) {
	g := manualGame("g", 1, "H", "A", 0, 5)
	g.Forfeit = model.ForfeitHome

	hs, as := EffectiveScore(&g)
	assert.Equal(t, 1, hs)
	assert.Equal(t, 0, as)
	assert.Equal(t, model.OutcomeWin, SideOutcome(&g, true))
	assert.Equal(t, model.OutcomeLoss, SideOutcome(&g, false))
}

func TestTelemetryGameBuckets(t *testing.T) {
	g := model.Game{
		ID: "g1", Date: day(1), SeasonID: "s1",
		HomeTeam:  model.TeamRef{ID: "t1", Name: "Otters", ExternalClubID: "100"},
		AwayTeam:  model.TeamRef{ID: "t2", Name: "Bears", ExternalClubID: "201"},
		HomeScore: 2, AwayScore: 1,
		Telemetry: &model.TelemetryPayload{Buckets: map[string]model.TelemetryBucket{
			"100": {"11": {"playername": "viper", "position": "center", "skgoals": "2", "skshots": 4.0}},
			"201": {"22": {"playername": "grizz", "position": "goaltender", "glsaves": 10.0, "glga": 2.0}},
		}},
	}

	rows := New(nil).Aggregate([]model.Game{g}, Options{})
	require.Len(t, rows, 2)

	viper := find(t, rows, "viper", model.RoleSkater)
	assert.Equal(t, "Otters", viper.Team)
	assert.Equal(t, "C", viper.Position)
	assert.Equal(t, 6, viper.Shots) // 4 recorded + 2 goals
	assert.Equal(t, 1, viper.Wins)

	grizz := find(t, rows, "grizz", model.RoleGoalie)
	assert.Equal(t, "Bears", grizz.Team)
	assert.Equal(t, 12, grizz.ShotsAgainst)
	assert.Equal(t, 1, grizz.Losses)
}

func TestRosterPlayersGetZeroStatLines(t *testing.T) {
	roster := []model.PlayerRecord{
		{ID: "p9", Aliases: []model.Alias{{Name: "benchwarmer", IsPrimary: true}}},
	}
	rows := New(identity.NewResolver(roster)).Aggregate(nil, Options{Roster: roster, Team: "Otters"})
	p := find(t, rows, "p9", model.RoleSkater)
	assert.Equal(t, 0, p.GamesPlayed)
	assert.Equal(t, "Otters", p.Team)
	assert.True(t, p.IsSigned)
}
