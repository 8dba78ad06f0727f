// Package engine owns the computed league snapshot. A single goroutine
// reacts to invalidation pokes by reloading the source documents and
// rebuilding every published table; readers always see the last fully
// computed snapshot, never a partial one.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/icetilt/icetilt-data/internal/aggregate"
	"github.com/icetilt/icetilt-data/internal/grouping"
	"github.com/icetilt/icetilt-data/internal/identity"
	"github.com/icetilt/icetilt-data/internal/model"
	"github.com/icetilt/icetilt-data/internal/standings"
)

// Source is the document reads the engine needs; satisfied by store.Store.
type Source interface {
	GamesBySeason(ctx context.Context, seasonID string) ([]model.Game, error)
	Players(ctx context.Context) ([]model.PlayerRecord, error)
	Seasons(ctx context.Context) ([]model.Season, error)
	Divisions(ctx context.Context) ([]model.Division, error)
	Clubs(ctx context.Context) ([]model.Club, error)
}

// SeasonTables is everything published for one season.
type SeasonTables struct {
	SeasonID  string
	Standings []grouping.StandingsTable
	Skaters   []grouping.DivisionTable
	Goalies   []grouping.DivisionTable

	// ByClub groups the season's stat lines by lowercased club name for
	// the club detail pages.
	ByClub map[string][]model.PlayerAggregate
}

// Snapshot is one immutable computed state. Degraded is set when the player
// directory could not be loaded and stat lines fell back to raw source
// names; standings never depend on the directory and stay exact.
type Snapshot struct {
	ComputedAt time.Time
	Degraded   bool
	Seasons    []model.Season
	Divisions  []model.Division
	Clubs      []model.Club
	BySeason   map[string]*SeasonTables

	// Career maps player id -> season id -> that season's stat lines.
	Career map[string]map[string][]model.PlayerAggregate
}

type runResult struct {
	gen  uint64
	snap *Snapshot
	err  error
}

// Engine coordinates recomputes. Invalidations are debounced, and a
// recompute started while an older one is still running cancels the older
// one; only the most recently started run may publish.
type Engine struct {
	src      Source
	logger   *slog.Logger
	debounce time.Duration

	invalidate chan struct{}
	snapshot   atomic.Pointer[Snapshot]
	onPublish  []func()
}

func New(src Source, debounce time.Duration, logger *slog.Logger) *Engine {
	return &Engine{
		src:        src,
		logger:     logger,
		debounce:   debounce,
		invalidate: make(chan struct{}, 1),
	}
}

// Snapshot returns the last published snapshot, or nil before the first
// recompute completes.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Invalidate schedules a recompute. Safe from any goroutine; pokes while a
// recompute is already pending coalesce.
func (e *Engine) Invalidate() {
	select {
	case e.invalidate <- struct{}{}:
	default:
	}
}

// OnPublish registers fn to run after every snapshot publish, from the
// coordinator goroutine. Register before Start.
func (e *Engine) OnPublish(fn func()) {
	e.onPublish = append(e.onPublish, fn)
}

// Start launches the coordinator and runs the initial recompute. Returns
// when ctx is cancelled.
func (e *Engine) Start(ctx context.Context) {
	go e.run(ctx)
}

func (e *Engine) run(ctx context.Context) {
	var (
		gen     uint64
		cancel  context.CancelFunc
		results = make(chan runResult, 1)
		timer   <-chan time.Time
	)

	start := func() {
		if cancel != nil {
			cancel()
		}
		gen++
		runCtx, c := context.WithCancel(ctx)
		cancel = c
		g := gen
		go func() {
			started := time.Now()
			snap, err := e.compute(runCtx)
			if err == nil {
				e.logger.Info("recompute finished", "generation", g, "duration", time.Since(started).Round(time.Millisecond))
			}
			select {
			case results <- runResult{gen: g, snap: snap, err: err}:
			case <-ctx.Done():
			}
		}()
	}

	start()
	for {
		select {
		case <-ctx.Done():
			if cancel != nil {
				cancel()
			}
			return
		case <-e.invalidate:
			timer = time.After(e.debounce)
		case <-timer:
			timer = nil
			start()
		case r := <-results:
			if r.gen != gen {
				continue // superseded run, discard
			}
			if r.err != nil {
				if ctx.Err() == nil {
					e.logger.Error("recompute failed", "generation", r.gen, "error", r.err)
				}
				continue
			}
			e.snapshot.Store(r.snap)
			for _, fn := range e.onPublish {
				fn()
			}
		}
	}
}

// compute rebuilds the full snapshot from the source documents.
func (e *Engine) compute(ctx context.Context) (*Snapshot, error) {
	seasons, err := e.src.Seasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seasons: %w", err)
	}
	divisions, err := e.src.Divisions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load divisions: %w", err)
	}
	clubs, err := e.src.Clubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clubs: %w", err)
	}

	snap := &Snapshot{
		ComputedAt: time.Now(),
		Seasons:    seasons,
		Divisions:  divisions,
		Clubs:      clubs,
		BySeason:   make(map[string]*SeasonTables, len(seasons)),
		Career:     make(map[string]map[string][]model.PlayerAggregate),
	}

	resolver := identity.NewEmptyResolver()
	players, err := e.src.Players(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		snap.Degraded = true
		e.logger.Warn("player directory unavailable, stat lines keep raw source names", "error", err)
	} else {
		resolver = identity.NewResolver(players)
	}
	agg := aggregate.New(resolver)

	for _, season := range seasons {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		games, err := e.src.GamesBySeason(ctx, season.ID)
		if err != nil {
			return nil, fmt.Errorf("load games for season %s: %w", season.ID, err)
		}

		rows := agg.Aggregate(games, aggregate.Options{})
		for i := range rows {
			rows[i].SeasonID = season.ID
		}

		seasonDivisions := divisionsFor(divisions, season.ID)
		grouper := grouping.NewGrouper(season.ID, seasonDivisions, clubs)

		tables := &SeasonTables{
			SeasonID:  season.ID,
			Standings: grouper.StandingsByDivision(standings.Compute(games, standings.Options{})),
			Skaters:   grouper.ByDivision(filterRole(rows, model.RoleSkater)),
			Goalies:   grouper.ByDivision(filterRole(rows, model.RoleGoalie)),
			ByClub:    make(map[string][]model.PlayerAggregate),
		}
		for _, row := range rows {
			key := strings.ToLower(strings.TrimSpace(row.Team))
			if key == "" {
				continue
			}
			tables.ByClub[key] = append(tables.ByClub[key], row)
		}
		snap.BySeason[season.ID] = tables

		for _, row := range rows {
			bySeason, ok := snap.Career[row.PlayerID]
			if !ok {
				bySeason = make(map[string][]model.PlayerAggregate)
				snap.Career[row.PlayerID] = bySeason
			}
			bySeason[season.ID] = append(bySeason[season.ID], row)
		}
	}

	return snap, nil
}

func divisionsFor(divisions []model.Division, seasonID string) []model.Division {
	var out []model.Division
	for _, d := range divisions {
		if d.SeasonID == seasonID {
			out = append(out, d)
		}
	}
	return out
}

func filterRole(rows []model.PlayerAggregate, role model.Role) []model.PlayerAggregate {
	var out []model.PlayerAggregate
	for _, r := range rows {
		if r.Role == role {
			out = append(out, r)
		}
	}
	return out
}
