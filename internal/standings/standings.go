// Package standings folds game results into the team standings table. Only
// decided games count toward a team's record; scheduled games that never
// happened stay invisible no matter what placeholder score they carry.
package standings

import (
	"math"
	"sort"

	"github.com/icetilt/icetilt-data/internal/aggregate"
	"github.com/icetilt/icetilt-data/internal/model"
)

type teamAcc struct {
	standing model.TeamStanding
	results  []model.Outcome // chronological, decided games only
}

// Options tunes a standings fold.
type Options struct {
	// IncludePlayoffs counts playoff-flagged games in the table. Tournament
	// games never count toward season standings.
	IncludePlayoffs bool
}

// Compute folds the games into one standings row per team, sorted by
// points, wins, then goal differential. Points are 2 per win and 1 per
// overtime or shootout loss; a tied score with no overtime flag is a loss
// for both sides and awards nothing. Playoff and tournament games stay out
// of the table unless opts asks for playoffs.
func Compute(games []model.Game, opts Options) []model.TeamStanding {
	ordered := make([]*model.Game, 0, len(games))
	for i := range games {
		ordered = append(ordered, &games[i])
	}
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID < ordered[j].ID
	})

	acc := make(map[string]*teamAcc)
	for _, g := range ordered {
		if g.IsTournament || (g.IsPlayoff && !opts.IncludePlayoffs) {
			continue
		}
		if !g.Decided() {
			continue
		}
		hs, as := aggregate.EffectiveScore(g)
		fold(acc, g, g.HomeTeam, hs, as, aggregate.SideOutcome(g, true))
		fold(acc, g, g.AwayTeam, as, hs, aggregate.SideOutcome(g, false))
	}

	out := make([]model.TeamStanding, 0, len(acc))
	for _, t := range acc {
		finalize(t)
		out = append(out, t.standing)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].GoalDifferential != out[j].GoalDifferential {
			return out[i].GoalDifferential > out[j].GoalDifferential
		}
		return out[i].TeamName < out[j].TeamName
	})
	return out
}

func teamKey(ref model.TeamRef) string {
	if ref.ID != "" {
		return ref.ID
	}
	return ref.Name
}

func fold(acc map[string]*teamAcc, g *model.Game, ref model.TeamRef, goalsFor, goalsAgainst int, outcome model.Outcome) {
	k := teamKey(ref)
	t, ok := acc[k]
	if !ok {
		t = &teamAcc{standing: model.TeamStanding{TeamID: ref.ID, TeamName: ref.Name}}
		acc[k] = t
	}
	s := &t.standing
	if ref.Name != "" {
		s.TeamName = ref.Name
	}
	if g.DivisionName != "" {
		s.Division = g.DivisionName
	}
	if ref.DivisionID != "" {
		s.DivisionID = ref.DivisionID
	}

	s.GamesPlayed++
	s.GoalsFor += goalsFor
	s.GoalsAgainst += goalsAgainst
	switch outcome {
	case model.OutcomeWin:
		s.Wins++
	case model.OutcomeLoss:
		s.Losses++
	case model.OutcomeOTLoss:
		s.OTLosses++
	}
	t.results = append(t.results, outcome)
}

func finalize(t *teamAcc) {
	s := &t.standing
	s.Points = 2*s.Wins + s.OTLosses
	s.GoalDifferential = s.GoalsFor - s.GoalsAgainst
	if s.GamesPlayed > 0 {
		s.WinPercentage = math.Round(float64(s.Wins)/float64(s.GamesPlayed)*1000) / 1000
	}

	n := len(t.results)
	start := n - 10
	if start < 0 {
		start = 0
	}
	s.LastTen = append([]model.Outcome(nil), t.results[start:]...)
	s.StreakType, s.StreakCount = streak(s.LastTen)
}

// streak scans backward from the most recent result and counts how many
// consecutive games share it. It only sees the last-ten window, so a run
// longer than ten games reports as ten.
func streak(results []model.Outcome) (string, int) {
	if len(results) == 0 {
		return "-", 0
	}
	last := results[len(results)-1]
	count := 0
	for i := len(results) - 1; i >= 0 && results[i] == last; i-- {
		count++
	}
	return last.String(), count
}
