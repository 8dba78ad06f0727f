package standings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icetilt/icetilt-data/internal/model"
)

func game(id string, n int, home, away string, hs, as int) model.Game {
	return model.Game{
		ID:       id,
		Date:     time.Date(2026, 1, n, 20, 0, 0, 0, time.UTC),
		SeasonID: "s1",
		HomeTeam: model.TeamRef{ID: home, Name: home},
		AwayTeam: model.TeamRef{ID: away, Name: away},

		HomeScore: hs,
		AwayScore: as,
	}
}

func row(t *testing.T, rows []model.TeamStanding, team string) model.TeamStanding {
	t.Helper()
	for _, r := range rows {
		if r.TeamName == team {
			return r
		}
	}
	t.Fatalf("no standings row for %s", team)
	return model.TeamStanding{}
}

func TestThreeTeamScenario(t *testing.T) {
	games := []model.Game{
		game("g1", 1, "A", "B", 3, 2),
		game("g2", 2, "B", "C", 1, 4),
	}
	table := Compute(games, Options{})
	require.Len(t, table, 3)

	a := row(t, table, "A")
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 2, a.Points)
	assert.Equal(t, 1, a.GoalDifferential)

	b := row(t, table, "B")
	assert.Equal(t, 2, b.Losses)
	assert.Equal(t, 0, b.Points)
	assert.Equal(t, -4, b.GoalDifferential)

	c := row(t, table, "C")
	assert.Equal(t, 1, c.Wins)
	assert.Equal(t, 2, c.Points)
	assert.Equal(t, 3, c.GoalDifferential)

	// Sorted by points, then wins, then goal differential.
	assert.Equal(t, "C", table[0].TeamName)
	assert.Equal(t, "A", table[1].TeamName)
	assert.Equal(t, "B", table[2].TeamName)
}

func TestForfeitAwardsFixedScore(t *testing.T) {
	g := game("g1", 1, "H", "A", 0, 5)
	g.Forfeit = model.ForfeitHome

	table := Compute([]model.Game{g}, Options{})

	h := row(t, table, "H")
	assert.Equal(t, 1, h.Wins)
	assert.Equal(t, 2, h.Points)
	assert.Equal(t, 1, h.GoalsFor)
	assert.Equal(t, 0, h.GoalsAgainst)

	a := row(t, table, "A")
	assert.Equal(t, 1, a.Losses)
	assert.Equal(t, 0, a.GoalsFor)
	assert.Equal(t, 1, a.GoalsAgainst)
}

func TestOvertimeLossAwardsPoint(t *testing.T) {
	g := game("g1", 1, "H", "A", 2, 3)
	g.IsOvertime = true

	table := Compute([]model.Game{g}, Options{})
	h := row(t, table, "H")
	assert.Equal(t, 1, h.OTLosses)
	assert.Equal(t, 1, h.Points)
}

func TestFlaglessTieIsLossForBothSides(t *testing.T) {
	table := Compute([]model.Game{game("g1", 1, "H", "A", 2, 2)}, Options{})
	for _, team := range []string{"H", "A"} {
		r := row(t, table, team)
		assert.Equal(t, 1, r.Losses, team)
		assert.Equal(t, 0, r.Points, team)
	}
}

func TestUndecidedGamesAreInvisible(t *testing.T) {
	// Scheduled placeholder: no score, no flags, no telemetry linkage.
	table := Compute([]model.Game{game("g1", 1, "H", "A", 0, 0)}, Options{})
	assert.Empty(t, table)

	// The same score counts once telemetry links the game.
	g := game("g2", 2, "H", "A", 0, 0)
	g.TelemetryMatchID = "m-77"
	table = Compute([]model.Game{g}, Options{})
	require.Len(t, table, 2)
	assert.Equal(t, 1, row(t, table, "H").Losses) // 0-0 with no flag is a tie
}

func TestPlayoffAndTournamentGamesStayOut(t *testing.T) {
	regulation := game("g1", 1, "A", "B", 3, 2)
	playoff := game("g2", 2, "A", "B", 4, 1)
	playoff.IsPlayoff = true
	tournament := game("g3", 3, "A", "B", 2, 1)
	tournament.IsTournament = true

	table := Compute([]model.Game{regulation, playoff, tournament}, Options{})
	a := row(t, table, "A")
	assert.Equal(t, 1, a.GamesPlayed)
	assert.Equal(t, 2, a.Points)

	// Opting into playoffs counts them; tournament games never count.
	table = Compute([]model.Game{regulation, playoff, tournament}, Options{IncludePlayoffs: true})
	a = row(t, table, "A")
	assert.Equal(t, 2, a.GamesPlayed)
	assert.Equal(t, 4, a.Points)
}

func TestTeamDivisionStamping(t *testing.T) {
	g := game("g1", 1, "H", "A", 3, 1)
	g.HomeTeam.DivisionID = "d-east"
	g.DivisionName = "East"

	h := row(t, Compute([]model.Game{g}, Options{}), "H")
	assert.Equal(t, "d-east", h.DivisionID)
	assert.Equal(t, "East", h.Division)
}

func TestStreakScenario(t *testing.T) {
	results := []struct {
		hs, as int
	}{
		{3, 1}, // W
		{2, 0}, // W
		{1, 2}, // L
		{4, 2}, // W
		{3, 2}, // W
		{5, 0}, // W
	}
	games := make([]model.Game, 0, len(results))
	for i, r := range results {
		games = append(games, game(string(rune('a'+i)), i+1, "H", "X", r.hs, r.as))
	}

	h := row(t, Compute(games, Options{}), "H")
	assert.Equal(t, "W", h.StreakType)
	assert.Equal(t, 3, h.StreakCount)
	assert.Len(t, h.LastTen, 6)
}

func TestLastTenWindowCapsStreak(t *testing.T) {
	games := make([]model.Game, 0, 12)
	for i := 0; i < 12; i++ {
		games = append(games, game(string(rune('a'+i)), i+1, "H", "X", 3, 1))
	}
	h := row(t, Compute(games, Options{}), "H")
	assert.Equal(t, "W", h.StreakType)
	assert.Equal(t, 10, h.StreakCount)
	assert.Len(t, h.LastTen, 10)
}

func TestWinPercentage(t *testing.T) {
	games := []model.Game{
		game("g1", 1, "H", "A", 3, 1),
		game("g2", 2, "H", "A", 1, 3),
	}
	h := row(t, Compute(games, Options{}), "H")
	assert.InDelta(t, 0.5, h.WinPercentage, 0.0001)
}
