// Package attribution decides which side of a game each telemetry bucket
// belongs to. The console export keys its two player buckets by opaque
// per-match ids that only sometimes match the club ids in the league
// registry, so attribution runs an ordered cascade of strategies and takes
// the first answer.
package attribution

import (
	"sort"
	"strconv"

	"github.com/icetilt/icetilt-data/internal/model"
	"github.com/icetilt/icetilt-data/internal/normalize"
)

// Side is the resolved placement of a telemetry bucket.
type Side int

const (
	SideUnknown Side = iota
	SideHome
	SideAway
)

func (s Side) String() string {
	switch s {
	case SideHome:
		return "home"
	case SideAway:
		return "away"
	default:
		return "unknown"
	}
}

// Attribute maps every bucket id in the game's telemetry payload to a side.
// Buckets left at SideUnknown are skipped by the aggregator rather than
// guessed at.
//
// When either club carries a linked external id the cascade is:
//
//  1. bucket id equals a club's external id: that side;
//  2. both clubs are linked but the id matches neither, so it is an
//     unrecognized third id: away. This can be wrong when a club's link is
//     stale; kept because relinking the club fixes the data while a
//     smarter guess would hide the stale link;
//  3. only one club is linked and the id matches neither: numeric parity
//     of the bucket id, even is home, odd is away.
//
// Without external ids the export itself is the only signal:
//
//  1. a per-row ishome flag agreed on by the bucket's rows;
//  2. enumeration order of the bucket ids: first is home.
func Attribute(game *model.Game) map[string]Side {
	sides := make(map[string]Side)
	if !game.HasTelemetry() {
		return sides
	}
	ids := sortedBucketIDs(game.Telemetry.Buckets)

	if game.HomeTeam.ExternalClubID != "" || game.AwayTeam.ExternalClubID != "" {
		bothLinked := game.HomeTeam.ExternalClubID != "" && game.AwayTeam.ExternalClubID != ""
		for _, id := range ids {
			switch id {
			case game.HomeTeam.ExternalClubID:
				sides[id] = SideHome
			case game.AwayTeam.ExternalClubID:
				sides[id] = SideAway
			default:
				if bothLinked {
					sides[id] = SideAway
				} else {
					sides[id] = parity(id)
				}
			}
		}
		// Both buckets landing away means the ids matched neither club;
		// fall through to parity so the sides at least differ.
		if len(ids) == 2 && sides[ids[0]] == SideAway && sides[ids[1]] == SideAway {
			for _, id := range ids {
				sides[id] = parity(id)
			}
		}
		return sides
	}

	for i, id := range ids {
		if s, ok := bucketHomeFlag(game.Telemetry.Buckets[id]); ok {
			sides[id] = s
			continue
		}
		if i == 0 {
			sides[id] = SideHome
		} else {
			sides[id] = SideAway
		}
	}
	return sides
}

func sortedBucketIDs(buckets map[string]model.TelemetryBucket) []string {
	ids := make([]string, 0, len(buckets))
	for id := range buckets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func parity(id string) Side {
	n, err := strconv.Atoi(id)
	if err != nil {
		return SideUnknown
	}
	if n%2 == 0 {
		return SideHome
	}
	return SideAway
}

// bucketHomeFlag inspects the bucket's rows for an ishome flag. Only a
// unanimous answer counts; a split bucket gives no signal.
func bucketHomeFlag(bucket model.TelemetryBucket) (Side, bool) {
	var seen, home int
	for _, row := range bucket {
		v, ok := normalize.Bool(row, "isHome", "ishome")
		if !ok {
			continue
		}
		seen++
		if v {
			home++
		}
	}
	if seen == 0 {
		return SideUnknown, false
	}
	if home == seen {
		return SideHome, true
	}
	if home == 0 {
		return SideAway, true
	}
	return SideUnknown, false
}
