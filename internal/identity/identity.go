// Package identity maps raw display names from stat sources onto canonical
// player records. Sources spell names inconsistently (case, stray
// whitespace), and players rename themselves mid-season; the directory's
// alias lists absorb both.
package identity

import (
	"strings"

	"github.com/icetilt/icetilt-data/internal/model"
)

// Identity is a resolved player: the canonical id plus the name to display
// in stat tables. Signed is false for names with no directory entry.
type Identity struct {
	PlayerID    string
	DisplayName string
	Signed      bool
}

// Resolver answers "which player is this name?" for every raw name a stat
// source emits. It is immutable once built; the engine constructs a fresh
// one from the player directory on each recompute.
type Resolver struct {
	byAlias map[string]Identity
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DisplayName is the name stat tables show for a directory entry: the
// primary alias when one is flagged, otherwise the legacy gamertag,
// otherwise the first alias.
func DisplayName(p model.PlayerRecord) string {
	for _, a := range p.Aliases {
		if a.IsPrimary {
			return a.Name
		}
	}
	if p.Gamertag != "" {
		return p.Gamertag
	}
	if len(p.Aliases) > 0 {
		return p.Aliases[0].Name
	}
	return ""
}

// NewResolver indexes the player directory by every known alias. Later
// records never steal an alias claimed by an earlier one.
func NewResolver(players []model.PlayerRecord) *Resolver {
	r := &Resolver{byAlias: make(map[string]Identity, len(players)*2)}
	for _, p := range players {
		id := Identity{PlayerID: p.ID, DisplayName: DisplayName(p), Signed: true}
		if key := normalizeName(p.Gamertag); key != "" {
			if _, taken := r.byAlias[key]; !taken {
				r.byAlias[key] = id
			}
		}
		for _, a := range p.Aliases {
			if key := normalizeName(a.Name); key != "" {
				if _, taken := r.byAlias[key]; !taken {
					r.byAlias[key] = id
				}
			}
		}
	}
	return r
}

// NewEmptyResolver returns a resolver with no directory backing it. Every
// lookup falls through to a synthetic identity, which is the degraded mode
// used when the player directory cannot be loaded.
func NewEmptyResolver() *Resolver {
	return &Resolver{byAlias: map[string]Identity{}}
}

// Resolve never fails: a name absent from the directory becomes a synthetic
// unsigned identity keyed by the raw name itself, so free agents and
// call-ups still accumulate stats.
func (r *Resolver) Resolve(rawName string) Identity {
	if id, ok := r.byAlias[normalizeName(rawName)]; ok {
		return id
	}
	return Identity{PlayerID: rawName, DisplayName: rawName, Signed: false}
}

// Known reports whether the name has a directory entry.
func (r *Resolver) Known(rawName string) bool {
	_, ok := r.byAlias[normalizeName(rawName)]
	return ok
}
