package grouping

import (
	"fmt"
	"sort"
	"strings"

	"github.com/icetilt/icetilt-data/internal/model"
)

// columns maps sort-column names (as the API and CLI accept them) to value
// extractors. Ratio columns share the same comparator path as counters.
var columns = map[string]func(*model.PlayerAggregate) float64{
	"gamesplayed":  func(p *model.PlayerAggregate) float64 { return float64(p.GamesPlayed) },
	"goals":        func(p *model.PlayerAggregate) float64 { return float64(p.Goals) },
	"assists":      func(p *model.PlayerAggregate) float64 { return float64(p.Assists) },
	"points":       func(p *model.PlayerAggregate) float64 { return float64(p.Points) },
	"shots":        func(p *model.PlayerAggregate) float64 { return float64(p.Shots) },
	"hits":         func(p *model.PlayerAggregate) float64 { return float64(p.Hits) },
	"blockedshots": func(p *model.PlayerAggregate) float64 { return float64(p.BlockedShots) },
	"pim":          func(p *model.PlayerAggregate) float64 { return float64(p.PenaltyMinutes) },
	"ppg":          func(p *model.PlayerAggregate) float64 { return float64(p.PowerPlayGoals) },
	"shg":          func(p *model.PlayerAggregate) float64 { return float64(p.ShortHandedGoals) },
	"gwg":          func(p *model.PlayerAggregate) float64 { return float64(p.GameWinningGoals) },
	"takeaways":    func(p *model.PlayerAggregate) float64 { return float64(p.Takeaways) },
	"giveaways":    func(p *model.PlayerAggregate) float64 { return float64(p.Giveaways) },
	"passes":       func(p *model.PlayerAggregate) float64 { return float64(p.Passes) },
	"shotpct":      func(p *model.PlayerAggregate) float64 { return p.ShotPercentage },
	"passpct":      func(p *model.PlayerAggregate) float64 { return p.PassPercentage },
	"faceoffpct":   func(p *model.PlayerAggregate) float64 { return p.FaceoffPercentage },
	"wins":         func(p *model.PlayerAggregate) float64 { return float64(p.Wins) },
	"saves":        func(p *model.PlayerAggregate) float64 { return float64(p.Saves) },
	"savepct":      func(p *model.PlayerAggregate) float64 { return p.SavePercentage },
	"gaa":          func(p *model.PlayerAggregate) float64 { return p.GoalsAgainstAverage },
	"shutouts":     func(p *model.PlayerAggregate) float64 { return float64(p.Shutouts) },
}

// SortBy orders rows by the named column. Descending suits every column
// except goals-against average, where lower is better; ties break on
// points, then display name, so repeated sorts are stable across
// recomputes.
func SortBy(rows []model.PlayerAggregate, column string) error {
	key := strings.ToLower(strings.TrimSpace(column))
	get, ok := columns[key]
	if !ok {
		return fmt.Errorf("unknown sort column %q", column)
	}
	asc := key == "gaa" || key == "giveaways"
	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := get(&rows[i]), get(&rows[j])
		if vi != vj {
			if asc {
				return vi < vj
			}
			return vi > vj
		}
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].DisplayName < rows[j].DisplayName
	})
	return nil
}

// SortColumns lists the accepted sort-column names.
func SortColumns() []string {
	out := make([]string, 0, len(columns))
	for k := range columns {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
