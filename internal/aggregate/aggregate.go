// Package aggregate folds normalized per-game stat buckets into cumulative
// per-player stat lines. The fold is pure and deterministic: given the same
// set of games it produces the same table regardless of arrival order,
// because games are sorted chronologically before folding and every counter
// is a plain sum.
package aggregate

import (
	"math"
	"sort"

	"github.com/icetilt/icetilt-data/internal/attribution"
	"github.com/icetilt/icetilt-data/internal/identity"
	"github.com/icetilt/icetilt-data/internal/model"
	"github.com/icetilt/icetilt-data/internal/normalize"
)

// Options tunes a fold.
type Options struct {
	// Roster lists player ids that get a zero-stat line even when they
	// appear in no game, so stat pages show the whole signed roster.
	Roster []model.PlayerRecord

	// Team restricts the fold to buckets attributed to this club name.
	Team string
}

type key struct {
	playerID string
	role     model.Role
}

// Aggregator resolves raw names through the identity resolver while
// folding. A nil resolver is replaced by the empty resolver, which keeps
// every raw name as its own unsigned identity.
type Aggregator struct {
	resolver *identity.Resolver
}

func New(resolver *identity.Resolver) *Aggregator {
	if resolver == nil {
		resolver = identity.NewEmptyResolver()
	}
	return &Aggregator{resolver: resolver}
}

// Aggregate folds the games into one cumulative stat line per (player,
// role). Rows come back sorted by points, goals, then display name so equal
// lines order deterministically.
func (a *Aggregator) Aggregate(games []model.Game, opts Options) []model.PlayerAggregate {
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

	acc := make(map[key]*model.PlayerAggregate)
	for _, g := range ordered {
		for _, bucket := range GameBuckets(g) {
			if opts.Team != "" && bucket.Team != opts.Team {
				continue
			}
			a.fold(acc, g, bucket)
		}
	}

	for _, p := range opts.Roster {
		id := a.resolver.Resolve(identity.DisplayName(p))
		k := key{playerID: id.PlayerID, role: model.RoleSkater}
		if _, ok := acc[k]; ok {
			continue
		}
		if _, ok := acc[key{playerID: id.PlayerID, role: model.RoleGoalie}]; ok {
			continue
		}
		acc[k] = &model.PlayerAggregate{
			PlayerID:    id.PlayerID,
			DisplayName: id.DisplayName,
			Team:        opts.Team,
			Role:        model.RoleSkater,
			IsSigned:    id.Signed,
		}
	}

	out := make([]model.PlayerAggregate, 0, len(acc))
	for _, agg := range acc {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].Goals != out[j].Goals {
			return out[i].Goals > out[j].Goals
		}
		return out[i].DisplayName < out[j].DisplayName
	})
	return out
}

// GameBuckets normalizes one game into stat buckets with team names and
// outcomes stamped. Telemetry buckets whose side cannot be attributed are
// dropped rather than guessed.
func GameBuckets(g *model.Game) []model.StatBucket {
	var out []model.StatBucket
	switch {
	case g.HasTelemetry():
		sides := attribution.Attribute(g)
		for id, bucket := range g.Telemetry.Buckets {
			switch sides[id] {
			case attribution.SideHome:
				out = append(out, normalize.TelemetryBucketRows(bucket, g.HomeTeam.Name, SideOutcome(g, true))...)
			case attribution.SideAway:
				out = append(out, normalize.TelemetryBucketRows(bucket, g.AwayTeam.Name, SideOutcome(g, false))...)
			}
		}
	case len(g.ManualRows) > 0:
		out = append(out, normalize.ManualRows(g.ManualRows, g.HomeTeam.Name, SideOutcome(g, true))...)
		out = append(out, normalize.ManualRows(g.ManualRows, g.AwayTeam.Name, SideOutcome(g, false))...)
	}
	return out
}

// EffectiveScore is the score standings and outcomes count. A forfeit
// overrides whatever was on the sheet with a fixed 1-0 for the awarded
// side.
func EffectiveScore(g *model.Game) (home, away int) {
	switch g.Forfeit {
	case model.ForfeitHome:
		return 1, 0
	case model.ForfeitAway:
		return 0, 1
	}
	return g.HomeScore, g.AwayScore
}

// SideOutcome is the result for one side of a decided game. An equal score
// with no overtime or shootout flag is recorded as a loss for both sides;
// the league does not award tie points.
func SideOutcome(g *model.Game, home bool) model.Outcome {
	if !g.Decided() {
		return model.OutcomeNone
	}
	hs, as := EffectiveScore(g)
	us, them := hs, as
	if !home {
		us, them = as, hs
	}
	if us > them {
		return model.OutcomeWin
	}
	if us < them && (g.IsOvertime || g.IsShootout) {
		return model.OutcomeOTLoss
	}
	return model.OutcomeLoss
}

func (a *Aggregator) fold(acc map[key]*model.PlayerAggregate, g *model.Game, b model.StatBucket) {
	id := a.resolver.Resolve(b.PlayerName)
	k := key{playerID: id.PlayerID, role: b.Role}
	agg, ok := acc[k]
	if !ok {
		agg = &model.PlayerAggregate{
			PlayerID: id.PlayerID,
			Role:     b.Role,
			IsSigned: id.Signed,
			SeasonID: g.SeasonID,
		}
		acc[k] = agg
	}

	// Display fields track the most recent appearance.
	agg.DisplayName = id.DisplayName
	agg.Team = b.Team
	agg.Position = b.Position
	agg.Division = g.DivisionName
	switch b.Team {
	case g.HomeTeam.Name:
		agg.DivisionID = g.HomeTeam.DivisionID
	case g.AwayTeam.Name:
		agg.DivisionID = g.AwayTeam.DivisionID
	}

	agg.GamesPlayed++
	switch b.Outcome {
	case model.OutcomeWin:
		agg.Wins++
	case model.OutcomeLoss:
		agg.Losses++
	case model.OutcomeOTLoss:
		agg.OTLosses++
	}

	agg.Goals += b.Goals
	agg.Assists += b.Assists
	agg.Points = agg.Goals + agg.Assists
	// Recorded shots exclude shots that scored.
	agg.Shots += b.Shots + b.Goals
	agg.Hits += b.Hits
	agg.BlockedShots += b.BlockedShots
	agg.PenaltyMinutes += b.PenaltyMinutes
	agg.PowerPlayGoals += b.PowerPlayGoals
	agg.ShortHandedGoals += b.ShortHandedGoals
	agg.GameWinningGoals += b.GameWinningGoals
	agg.Takeaways += b.Takeaways
	agg.Giveaways += b.Giveaways
	agg.Interceptions += b.Interceptions
	agg.Passes += b.Passes
	agg.PassAttempts += EstimatePassAttempts(b.Passes, b.PassAttempts, b.PassPercentage)
	agg.FaceoffsWon += b.FaceoffsWon
	agg.FaceoffsLost += b.FaceoffsLost

	if b.Role == model.RoleGoalie {
		shotsAgainst := b.Saves + b.GoalsAgainst
		if b.ShotsAgainst != nil {
			shotsAgainst = *b.ShotsAgainst
		}
		agg.Saves += b.Saves
		agg.ShotsAgainst += shotsAgainst
		agg.GoalsAgainst += b.GoalsAgainst
		if b.GoalsAgainst == 0 && shotsAgainst > 0 {
			agg.Shutouts++
		}
	}

	derive(agg)
}

// EstimatePassAttempts recovers a pass-attempt count for sources that omit
// it: direct value, else back-solve from the completion percentage, else
// assume the league-typical 80% completion rate.
func EstimatePassAttempts(passes int, attempts *int, percentage *float64) int {
	if attempts != nil && *attempts > 0 {
		return *attempts
	}
	if passes == 0 {
		return 0
	}
	if percentage != nil && *percentage > 0 {
		return int(math.Round(float64(passes) / (*percentage / 100)))
	}
	return int(math.Round(float64(passes) / 0.8))
}

// derive recomputes every ratio from the cumulative sums. Ratios are never
// averaged across games; a zero denominator yields zero.
func derive(agg *model.PlayerAggregate) {
	agg.ShotPercentage = pct(agg.Goals, agg.Shots)
	agg.PassPercentage = pct(agg.Passes, agg.PassAttempts)
	agg.FaceoffPercentage = pct(agg.FaceoffsWon, agg.FaceoffsWon+agg.FaceoffsLost)
	agg.SavePercentage = pct(agg.Saves, agg.ShotsAgainst)
	if agg.GamesPlayed > 0 {
		agg.GoalsAgainstAverage = round2(float64(agg.GoalsAgainst) / float64(agg.GamesPlayed))
	} else {
		agg.GoalsAgainstAverage = 0
	}
}

func pct(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return round2(float64(num) / float64(den) * 100)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
