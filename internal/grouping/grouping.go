// Package grouping arranges computed rows into the tables the league
// publishes: per-division stat pages and standings ordered by the
// divisions' display order, and per-player career views grouped by season.
package grouping

import (
	"sort"
	"strconv"
	"strings"

	"github.com/icetilt/icetilt-data/internal/model"
)

// Unassigned is the bucket for players whose team maps to no division.
const Unassigned = "Unassigned"

// DivisionTable is one division's stat page.
type DivisionTable struct {
	DivisionID   string                  `json:"divisionId,omitempty"`
	DivisionName string                  `json:"divisionName"`
	Players      []model.PlayerAggregate `json:"players"`

	order int
}

// StandingsTable is one division's standings page.
type StandingsTable struct {
	DivisionID   string               `json:"divisionId,omitempty"`
	DivisionName string               `json:"divisionName"`
	Teams        []model.TeamStanding `json:"teams"`

	order int
}

// CareerSeason is one season's stat lines in a player's career view. A
// player who played both skater and goalie in a season has two lines.
type CareerSeason struct {
	Season model.Season            `json:"season"`
	Lines  []model.PlayerAggregate `json:"lines"`
}

// Grouper resolves teams to divisions for one season. The lookup cascades:
// the club registry's season entry, then the division id stamped on the
// stat line from the match record, then the match's free-text division
// name. Teams that survive none of the three land in Unassigned.
type Grouper struct {
	seasonID    string
	divisions   map[string]model.Division // by id
	byClubName  map[string]string         // lowercased club name -> division id
	nameToOrder map[string]int            // division name -> display order
}

func NewGrouper(seasonID string, divisions []model.Division, clubs []model.Club) *Grouper {
	g := &Grouper{
		seasonID:    seasonID,
		divisions:   make(map[string]model.Division, len(divisions)),
		byClubName:  make(map[string]string),
		nameToOrder: make(map[string]int, len(divisions)),
	}
	for _, d := range divisions {
		g.divisions[d.ID] = d
		g.nameToOrder[d.Name] = d.DisplayOrder
	}
	for _, c := range clubs {
		for _, cs := range c.Seasons {
			if cs.SeasonID != seasonID || len(cs.DivisionIDs) == 0 {
				continue
			}
			g.byClubName[strings.ToLower(strings.TrimSpace(c.Name))] = cs.DivisionIDs[0]
		}
	}
	return g
}

// resolveTeam returns the division id (may be empty) and display name for a
// team, cascading club registry, stamped division id, then the free-text
// division name off the match record.
func (g *Grouper) resolveTeam(team, divisionID, freeText string) (string, string) {
	if id, ok := g.byClubName[strings.ToLower(strings.TrimSpace(team))]; ok {
		if d, ok := g.divisions[id]; ok {
			return d.ID, d.Name
		}
	}
	if d, ok := g.divisions[divisionID]; ok {
		return d.ID, d.Name
	}
	if freeText != "" {
		return "", freeText
	}
	return "", Unassigned
}

func (g *Grouper) orderOf(name string) int {
	if order, known := g.nameToOrder[name]; known {
		return order
	}
	return int(^uint(0) >> 1) // unknown divisions sort last
}

// ByDivision splits stat lines into per-division tables. Tables order by
// division display order with Unassigned last; rows within a table order by
// points then goals, descending.
func (g *Grouper) ByDivision(aggs []model.PlayerAggregate) []DivisionTable {
	tables := make(map[string]*DivisionTable)
	for _, agg := range aggs {
		id, name := g.resolveTeam(agg.Team, agg.DivisionID, agg.Division)
		agg.Division = name
		agg.DivisionID = id
		t, ok := tables[name]
		if !ok {
			t = &DivisionTable{DivisionID: id, DivisionName: name, order: g.orderOf(name)}
			tables[name] = t
		}
		t.Players = append(t.Players, agg)
	}

	out := make([]DivisionTable, 0, len(tables))
	for _, t := range tables {
		sort.SliceStable(t.Players, func(i, j int) bool {
			if t.Players[i].Points != t.Players[j].Points {
				return t.Players[i].Points > t.Players[j].Points
			}
			return t.Players[i].Goals > t.Players[j].Goals
		})
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].order != out[j].order {
			return out[i].order < out[j].order
		}
		return out[i].DivisionName < out[j].DivisionName
	})
	return out
}

// StandingsByDivision splits standings rows into per-division tables using
// the same team lookup as ByDivision, ordered the same way. Rows keep the
// points ranking they arrive in.
func (g *Grouper) StandingsByDivision(rows []model.TeamStanding) []StandingsTable {
	tables := make(map[string]*StandingsTable)
	for _, row := range rows {
		id, name := g.resolveTeam(row.TeamName, row.DivisionID, row.Division)
		row.Division = name
		row.DivisionID = id
		t, ok := tables[name]
		if !ok {
			t = &StandingsTable{DivisionID: id, DivisionName: name, order: g.orderOf(name)}
			tables[name] = t
		}
		t.Teams = append(t.Teams, row)
	}

	out := make([]StandingsTable, 0, len(tables))
	for _, t := range tables {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].order != out[j].order {
			return out[i].order < out[j].order
		}
		return out[i].DivisionName < out[j].DivisionName
	})
	return out
}

// Career arranges per-season stat lines newest season first. Seasons order
// by the trailing number in their name ("Season 12" after "Season 9");
// names without one fall back to the start date.
func Career(lines map[string][]model.PlayerAggregate, seasons []model.Season) []CareerSeason {
	byID := make(map[string]model.Season, len(seasons))
	for _, s := range seasons {
		byID[s.ID] = s
	}
	out := make([]CareerSeason, 0, len(lines))
	for seasonID, rows := range lines {
		if len(rows) == 0 {
			continue
		}
		s, ok := byID[seasonID]
		if !ok {
			s = model.Season{ID: seasonID, Name: seasonID}
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Role < rows[j].Role })
		out = append(out, CareerSeason{Season: s, Lines: rows})
	}
	sort.Slice(out, func(i, j int) bool {
		ni, iok := trailingNumber(out[i].Season.Name)
		nj, jok := trailingNumber(out[j].Season.Name)
		if iok && jok && ni != nj {
			return ni > nj
		}
		if iok != jok {
			return iok
		}
		return out[i].Season.StartDate.After(out[j].Season.StartDate)
	})
	return out
}

func trailingNumber(name string) (int, bool) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, false
	}
	return n, true
}
