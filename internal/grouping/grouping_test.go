package grouping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icetilt/icetilt-data/internal/model"
)

var testDivisions = []model.Division{
	{ID: "d-east", Name: "East", SeasonID: "s1", DisplayOrder: 1},
	{ID: "d-west", Name: "West", SeasonID: "s1", DisplayOrder: 2},
}

var testClubs = []model.Club{
	{ID: "c1", Name: "Otters", Seasons: []model.ClubSeason{
		{SeasonID: "s1", DivisionIDs: []string{"d-east"}},
	}},
}

func skater(name, team string, points int) model.PlayerAggregate {
	return model.PlayerAggregate{
		PlayerID: name, DisplayName: name, Team: team,
		Role: model.RoleSkater, Points: points,
	}
}

func TestDivisionFallbackChain(t *testing.T) {
	g := NewGrouper("s1", testDivisions, testClubs)

	registry := skater("a", "Otters", 5) // resolved via club registry
	stamped := skater("b", "Bears", 4)   // resolved via stamped division id
	stamped.DivisionID = "d-west"
	freetext := skater("c", "Drifters", 3) // resolved via match division name
	freetext.Division = "Beer League"
	lost := skater("d", "Ghosts", 2) // nothing matches

	tables := g.ByDivision([]model.PlayerAggregate{registry, stamped, freetext, lost})
	require.Len(t, tables, 4)

	byName := map[string][]model.PlayerAggregate{}
	for _, dt := range tables {
		byName[dt.DivisionName] = dt.Players
	}
	assert.Equal(t, "a", byName["East"][0].PlayerID)
	assert.Equal(t, "b", byName["West"][0].PlayerID)
	assert.Equal(t, "c", byName["Beer League"][0].PlayerID)
	assert.Equal(t, "d", byName[Unassigned][0].PlayerID)

	// Known divisions come first in display order.
	assert.Equal(t, "East", tables[0].DivisionName)
	assert.Equal(t, "West", tables[1].DivisionName)
}

func TestClubRegistryBeatsStampedDivision(t *testing.T) {
	g := NewGrouper("s1", testDivisions, testClubs)
	row := skater("a", "otters ", 5) // club match is case/space-insensitive
	row.DivisionID = "d-west"

	tables := g.ByDivision([]model.PlayerAggregate{row})
	require.Len(t, tables, 1)
	assert.Equal(t, "East", tables[0].DivisionName)
}

func TestRowsSortByPointsThenGoals(t *testing.T) {
	g := NewGrouper("s1", testDivisions, testClubs)
	a := skater("a", "Otters", 10)
	b := skater("b", "Otters", 12)
	c := skater("c", "Otters", 10)
	c.Goals = 8

	tables := g.ByDivision([]model.PlayerAggregate{a, b, c})
	require.Len(t, tables, 1)
	got := tables[0].Players
	assert.Equal(t, []string{"b", "c", "a"}, []string{got[0].PlayerID, got[1].PlayerID, got[2].PlayerID})
}

func TestStandingsGroupByDivision(t *testing.T) {
	g := NewGrouper("s1", testDivisions, testClubs)
	rows := []model.TeamStanding{
		{TeamName: "Otters", Points: 10},                     // club registry
		{TeamName: "Bears", Points: 8, DivisionID: "d-west"}, // stamped division id
		{TeamName: "Ghosts", Points: 2},                      // nothing matches
		{TeamName: "Seals", Points: 4, DivisionID: "d-east"}, // stamped, shares East
	}

	tables := g.StandingsByDivision(rows)
	require.Len(t, tables, 3)

	assert.Equal(t, "East", tables[0].DivisionName)
	require.Len(t, tables[0].Teams, 2)
	// Arrival order (the standings ranking) is preserved within a table.
	assert.Equal(t, "Otters", tables[0].Teams[0].TeamName)
	assert.Equal(t, "Seals", tables[0].Teams[1].TeamName)
	assert.Equal(t, "East", tables[0].Teams[0].Division)

	assert.Equal(t, "West", tables[1].DivisionName)
	assert.Equal(t, "Bears", tables[1].Teams[0].TeamName)

	assert.Equal(t, Unassigned, tables[2].DivisionName)
	assert.Equal(t, "Ghosts", tables[2].Teams[0].TeamName)
}

func TestCareerOrdersByTrailingSeasonNumber(t *testing.T) {
	seasons := []model.Season{
		{ID: "s9", Name: "Season 9", StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "s12", Name: "Season 12", StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "s10", Name: "Season 10", StartDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)},
	}
	lines := map[string][]model.PlayerAggregate{
		"s9":  {skater("p", "Otters", 1)},
		"s12": {skater("p", "Otters", 2)},
		"s10": {skater("p", "Otters", 3)},
	}

	career := Career(lines, seasons)
	require.Len(t, career, 3)
	assert.Equal(t, "Season 12", career[0].Season.Name)
	assert.Equal(t, "Season 10", career[1].Season.Name)
	assert.Equal(t, "Season 9", career[2].Season.Name)
}

func TestCareerUnknownSeasonKeepsID(t *testing.T) {
	career := Career(map[string][]model.PlayerAggregate{
		"mystery": {skater("p", "Otters", 1)},
	}, nil)
	require.Len(t, career, 1)
	assert.Equal(t, "mystery", career[0].Season.Name)
}

func TestSortByColumn(t *testing.T) {
	rows := []model.PlayerAggregate{
		{PlayerID: "a", DisplayName: "a", Hits: 3, GoalsAgainstAverage: 2.5},
		{PlayerID: "b", DisplayName: "b", Hits: 9, GoalsAgainstAverage: 1.2},
		{PlayerID: "c", DisplayName: "c", Hits: 5, GoalsAgainstAverage: 3.0},
	}

	require.NoError(t, SortBy(rows, "hits"))
	assert.Equal(t, "b", rows[0].PlayerID)

	// GAA sorts ascending: lower is better.
	require.NoError(t, SortBy(rows, "GAA"))
	assert.Equal(t, "b", rows[0].PlayerID)
	assert.Equal(t, "c", rows[2].PlayerID)

	assert.Error(t, SortBy(rows, "bogus"))
}
