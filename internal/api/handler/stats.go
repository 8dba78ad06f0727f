package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/icetilt/icetilt-data/internal/api/respond"
	"github.com/icetilt/icetilt-data/internal/cache"
	"github.com/icetilt/icetilt-data/internal/engine"
	"github.com/icetilt/icetilt-data/internal/grouping"
	"github.com/icetilt/icetilt-data/internal/model"
)

// seasonTables resolves the ?season= query param, defaulting to the newest
// season. Writes the error response itself on a miss.
func (h *Handler) seasonTables(w http.ResponseWriter, r *http.Request, snap *engine.Snapshot) *engine.SeasonTables {
	seasonID := r.URL.Query().Get("season")
	if seasonID == "" {
		if len(snap.Seasons) == 0 {
			respond.WriteError(w, http.StatusNotFound, "NO_SEASONS", "No seasons exist")
			return nil
		}
		seasonID = snap.Seasons[0].ID
	}
	tables, ok := snap.BySeason[seasonID]
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "SEASON_NOT_FOUND", "Unknown season: "+seasonID)
		return nil
	}
	return tables
}

// filterAndSort applies the optional ?division= and ?sort= params to a set
// of division tables. Sorting works on copies so the snapshot stays
// untouched.
func filterAndSort(w http.ResponseWriter, r *http.Request, tables []grouping.DivisionTable) ([]grouping.DivisionTable, bool) {
	rawDivision := strings.TrimSpace(r.URL.Query().Get("division"))
	division := strings.ToLower(rawDivision)
	sortCol := r.URL.Query().Get("sort")

	out := make([]grouping.DivisionTable, 0, len(tables))
	for _, t := range tables {
		if division != "" && strings.ToLower(t.DivisionName) != division && t.DivisionID != rawDivision {
			continue
		}
		if sortCol != "" {
			players := append([]model.PlayerAggregate(nil), t.Players...)
			if err := grouping.SortBy(players, sortCol); err != nil {
				respond.WriteError(w, http.StatusBadRequest, "BAD_SORT", err.Error())
				return nil, false
			}
			t.Players = players
		}
		out = append(out, t)
	}
	return out, true
}

// GetStandings returns per-division standings tables for a season.
// @Summary Season standings
// @Description Standings for every team with a decided regular-season game, grouped by division and sorted by points.
// @Tags standings
// @Produce json
// @Param season query string false "Season ID (defaults to newest)"
// @Param division query string false "Restrict to one division (name or ID)"
// @Success 200 {array} grouping.StandingsTable
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/standings [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot(w)
	if snap == nil {
		return
	}
	tables := h.seasonTables(w, r, snap)
	if tables == nil {
		return
	}

	out := tables.Standings
	if rawDivision := strings.TrimSpace(r.URL.Query().Get("division")); rawDivision != "" {
		division := strings.ToLower(rawDivision)
		filtered := make([]grouping.StandingsTable, 0, len(out))
		for _, t := range out {
			if strings.ToLower(t.DivisionName) == division || t.DivisionID == rawDivision {
				filtered = append(filtered, t)
			}
		}
		out = filtered
	}
	key := "standings:" + tables.SeasonID + ":" + r.URL.RawQuery
	h.serveCached(w, r, snap, key, cache.TTLStandings, out)
}

// GetSkaterStats returns per-division skater stat tables for a season.
// @Summary Skater stats
// @Description Cumulative skater stat lines grouped by division.
// @Tags stats
// @Produce json
// @Param season query string false "Season ID (defaults to newest)"
// @Param division query string false "Restrict to one division (name or ID)"
// @Param sort query string false "Sort column (points, goals, hits, ...)"
// @Success 200 {array} grouping.DivisionTable
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/stats/skaters [get]
func (h *Handler) GetSkaterStats(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot(w)
	if snap == nil {
		return
	}
	tables := h.seasonTables(w, r, snap)
	if tables == nil {
		return
	}
	out, ok := filterAndSort(w, r, tables.Skaters)
	if !ok {
		return
	}
	key := "skaters:" + tables.SeasonID + ":" + r.URL.RawQuery
	h.serveCached(w, r, snap, key, cache.TTLStats, out)
}

// GetGoalieStats returns per-division goalie stat tables for a season.
// @Summary Goalie stats
// @Description Cumulative goalie stat lines grouped by division.
// @Tags stats
// @Produce json
// @Param season query string false "Season ID (defaults to newest)"
// @Param division query string false "Restrict to one division (name or ID)"
// @Param sort query string false "Sort column (savepct, gaa, shutouts, ...)"
// @Success 200 {array} grouping.DivisionTable
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/stats/goalies [get]
func (h *Handler) GetGoalieStats(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot(w)
	if snap == nil {
		return
	}
	tables := h.seasonTables(w, r, snap)
	if tables == nil {
		return
	}
	out, ok := filterAndSort(w, r, tables.Goalies)
	if !ok {
		return
	}
	key := "goalies:" + tables.SeasonID + ":" + r.URL.RawQuery
	h.serveCached(w, r, snap, key, cache.TTLStats, out)
}

// GetCareerStats returns a player's per-season career stat lines.
// @Summary Career stats
// @Description Every season the player appeared in, newest first.
// @Tags stats
// @Produce json
// @Param playerID path string true "Player ID"
// @Success 200 {array} grouping.CareerSeason
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/stats/career/{playerID} [get]
func (h *Handler) GetCareerStats(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot(w)
	if snap == nil {
		return
	}
	playerID := chi.URLParam(r, "playerID")
	lines, ok := snap.Career[playerID]
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "PLAYER_NOT_FOUND", "No stats for player: "+playerID)
		return
	}
	h.serveCached(w, r, snap, "career:"+playerID, cache.TTLStats, grouping.Career(lines, snap.Seasons))
}

// GetClubStats returns one club's stat lines for a season.
// @Summary Club stats
// @Description Stat lines for every player who appeared for the club in the season.
// @Tags stats
// @Produce json
// @Param clubID path string true "Club ID or club name"
// @Param season query string false "Season ID (defaults to newest)"
// @Success 200 {array} model.PlayerAggregate
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/stats/club/{clubID} [get]
func (h *Handler) GetClubStats(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot(w)
	if snap == nil {
		return
	}
	tables := h.seasonTables(w, r, snap)
	if tables == nil {
		return
	}

	clubID := chi.URLParam(r, "clubID")
	name := clubID
	for _, c := range snap.Clubs {
		if c.ID == clubID {
			name = c.Name
			break
		}
	}
	rows, ok := tables.ByClub[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "CLUB_NOT_FOUND", "No stats for club: "+clubID)
		return
	}
	h.serveCached(w, r, snap, "club:"+tables.SeasonID+":"+clubID, cache.TTLStats, rows)
}

// GetSeasons lists all seasons, newest first.
// @Summary Seasons
// @Tags registry
// @Produce json
// @Success 200 {array} model.Season
// @Router /api/v1/seasons [get]
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot(w)
	if snap == nil {
		return
	}
	h.serveCached(w, r, snap, "seasons", cache.TTLRegistries, snap.Seasons)
}

// GetDivisions lists divisions, optionally for one season.
// @Summary Divisions
// @Tags registry
// @Produce json
// @Param season query string false "Season ID"
// @Success 200 {array} model.Division
// @Router /api/v1/divisions [get]
func (h *Handler) GetDivisions(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot(w)
	if snap == nil {
		return
	}
	seasonID := r.URL.Query().Get("season")
	divisions := snap.Divisions
	if seasonID != "" {
		var filtered []model.Division
		for _, d := range divisions {
			if d.SeasonID == seasonID {
				filtered = append(filtered, d)
			}
		}
		divisions = filtered
	}
	h.serveCached(w, r, snap, "divisions:"+seasonID, cache.TTLRegistries, divisions)
}
