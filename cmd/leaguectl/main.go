// Command leaguectl is the Ice Tilt league operator CLI.
//
// Usage:
//
//	leaguectl standings --season s12
//	leaguectl skaters --season s12 --division "East" --sort points
//	leaguectl goalies --season s12 --sort savepct
//	leaguectl career "Top Shelf Tony"
//	leaguectl seasons
//	leaguectl recompute
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/icetilt/icetilt-data/internal/aggregate"
	"github.com/icetilt/icetilt-data/internal/config"
	"github.com/icetilt/icetilt-data/internal/db"
	"github.com/icetilt/icetilt-data/internal/grouping"
	"github.com/icetilt/icetilt-data/internal/identity"
	"github.com/icetilt/icetilt-data/internal/model"
	"github.com/icetilt/icetilt-data/internal/standings"
	"github.com/icetilt/icetilt-data/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "leaguectl",
		Short: "Ice Tilt league stats CLI",
	}

	root.AddCommand(standingsCmd())
	root.AddCommand(skatersCmd())
	root.AddCommand(goaliesCmd())
	root.AddCommand(careerCmd())
	root.AddCommand(seasonsCmd())
	root.AddCommand(recomputeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newTable() *tablewriter.Table {
	return tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// --------------------------------------------------------------------------
// standings command
// --------------------------------------------------------------------------

func standingsCmd() *cobra.Command {
	var season string
	var playoffs bool
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print the standings tables for a season, grouped by division",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, s *store.Store) error {
				seasonID, err := resolveSeason(ctx, s, season)
				if err != nil {
					return err
				}
				games, err := s.GamesBySeason(ctx, seasonID)
				if err != nil {
					return err
				}
				divisions, err := s.DivisionsBySeason(ctx, seasonID)
				if err != nil {
					return err
				}
				clubs, err := s.Clubs(ctx)
				if err != nil {
					return err
				}

				rows := standings.Compute(games, standings.Options{IncludePlayoffs: playoffs})
				grouper := grouping.NewGrouper(seasonID, divisions, clubs)
				for _, st := range grouper.StandingsByDivision(rows) {
					fmt.Printf("\n%s\n", st.DivisionName)
					t := newTable()
					t.Header("TEAM", "GP", "W", "L", "OTL", "PTS", "GF", "GA", "DIFF", "STREAK")
					for _, row := range st.Teams {
						t.Append(
							row.TeamName,
							strconv.Itoa(row.GamesPlayed),
							strconv.Itoa(row.Wins),
							strconv.Itoa(row.Losses),
							strconv.Itoa(row.OTLosses),
							strconv.Itoa(row.Points),
							strconv.Itoa(row.GoalsFor),
							strconv.Itoa(row.GoalsAgainst),
							strconv.Itoa(row.GoalDifferential),
							fmt.Sprintf("%s%d", row.StreakType, row.StreakCount),
						)
					}
					t.Render()
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Season ID (defaults to newest)")
	cmd.Flags().BoolVar(&playoffs, "playoffs", false, "Count playoff games in the table")
	return cmd
}

// --------------------------------------------------------------------------
// skaters / goalies commands
// --------------------------------------------------------------------------

func skatersCmd() *cobra.Command {
	var season, division, sortCol string
	cmd := &cobra.Command{
		Use:   "skaters",
		Short: "Print skater stat tables, grouped by division",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, s *store.Store) error {
				tables, err := loadTables(ctx, s, season, division, sortCol, model.RoleSkater)
				if err != nil {
					return err
				}
				for _, dt := range tables {
					fmt.Printf("\n%s\n", dt.DivisionName)
					t := newTable()
					t.Header("PLAYER", "TEAM", "POS", "GP", "G", "A", "P", "S", "S%", "HIT", "BLK", "PIM", "FO%")
					for _, p := range dt.Players {
						t.Append(
							p.DisplayName, p.Team, p.Position,
							strconv.Itoa(p.GamesPlayed),
							strconv.Itoa(p.Goals),
							strconv.Itoa(p.Assists),
							strconv.Itoa(p.Points),
							strconv.Itoa(p.Shots),
							fmt.Sprintf("%.1f", p.ShotPercentage),
							strconv.Itoa(p.Hits),
							strconv.Itoa(p.BlockedShots),
							strconv.Itoa(p.PenaltyMinutes),
							fmt.Sprintf("%.1f", p.FaceoffPercentage),
						)
					}
					t.Render()
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Season ID (defaults to newest)")
	cmd.Flags().StringVar(&division, "division", "", "Restrict to one division")
	cmd.Flags().StringVar(&sortCol, "sort", "", "Sort column (points, goals, hits, ...)")
	return cmd
}

func goaliesCmd() *cobra.Command {
	var season, division, sortCol string
	cmd := &cobra.Command{
		Use:   "goalies",
		Short: "Print goalie stat tables, grouped by division",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, s *store.Store) error {
				tables, err := loadTables(ctx, s, season, division, sortCol, model.RoleGoalie)
				if err != nil {
					return err
				}
				for _, dt := range tables {
					fmt.Printf("\n%s\n", dt.DivisionName)
					t := newTable()
					t.Header("PLAYER", "TEAM", "GP", "W", "L", "OTL", "SV", "SA", "GA", "SV%", "GAA", "SO")
					for _, p := range dt.Players {
						t.Append(
							p.DisplayName, p.Team,
							strconv.Itoa(p.GamesPlayed),
							strconv.Itoa(p.Wins),
							strconv.Itoa(p.Losses),
							strconv.Itoa(p.OTLosses),
							strconv.Itoa(p.Saves),
							strconv.Itoa(p.ShotsAgainst),
							strconv.Itoa(p.GoalsAgainst),
							fmt.Sprintf("%.1f", p.SavePercentage),
							fmt.Sprintf("%.2f", p.GoalsAgainstAverage),
							strconv.Itoa(p.Shutouts),
						)
					}
					t.Render()
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Season ID (defaults to newest)")
	cmd.Flags().StringVar(&division, "division", "", "Restrict to one division")
	cmd.Flags().StringVar(&sortCol, "sort", "", "Sort column (savepct, gaa, shutouts, ...)")
	return cmd
}

// --------------------------------------------------------------------------
// career command
// --------------------------------------------------------------------------

func careerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "career <player id or name>",
		Short: "Print a player's per-season career stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, s *store.Store) error {
				players, err := s.Players(ctx)
				if err != nil {
					return err
				}
				resolver := identity.NewResolver(players)
				target := resolver.Resolve(args[0])

				seasons, err := s.Seasons(ctx)
				if err != nil {
					return err
				}
				agg := aggregate.New(resolver)
				bySeason := make(map[string][]model.PlayerAggregate)
				for _, season := range seasons {
					games, err := s.GamesBySeason(ctx, season.ID)
					if err != nil {
						return err
					}
					for _, row := range agg.Aggregate(games, aggregate.Options{}) {
						if row.PlayerID != target.PlayerID {
							continue
						}
						row.SeasonID = season.ID
						bySeason[season.ID] = append(bySeason[season.ID], row)
					}
				}
				if len(bySeason) == 0 {
					return fmt.Errorf("no stats for %q", args[0])
				}

				fmt.Printf("%s\n", target.DisplayName)
				t := newTable()
				t.Header("SEASON", "ROLE", "TEAM", "GP", "G", "A", "P", "SV%", "GAA")
				for _, cs := range grouping.Career(bySeason, seasons) {
					for _, line := range cs.Lines {
						t.Append(
							cs.Season.Name,
							string(line.Role),
							line.Team,
							strconv.Itoa(line.GamesPlayed),
							strconv.Itoa(line.Goals),
							strconv.Itoa(line.Assists),
							strconv.Itoa(line.Points),
							fmt.Sprintf("%.1f", line.SavePercentage),
							fmt.Sprintf("%.2f", line.GoalsAgainstAverage),
						)
					}
				}
				t.Render()
				return nil
			})
		},
	}
	return cmd
}

// --------------------------------------------------------------------------
// seasons / recompute commands
// --------------------------------------------------------------------------

func seasonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "List seasons, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, s *store.Store) error {
				seasons, err := s.Seasons(ctx)
				if err != nil {
					return err
				}
				t := newTable()
				t.Header("ID", "NAME", "START", "END")
				for _, season := range seasons {
					t.Append(season.ID, season.Name,
						season.StartDate.Format("2006-01-02"),
						season.EndDate.Format("2006-01-02"))
				}
				t.Render()
				return nil
			})
		},
	}
}

func recomputeCmd() *cobra.Command {
	var entity string
	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Poke the change channel so running API instances recompute",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, s *store.Store) error {
				if err := s.NotifyChange(ctx, entity); err != nil {
					return err
				}
				fmt.Printf("notified %s (%s)\n", config.ChangeChannel, entity)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&entity, "entity", "games", "Entity kind to report as changed")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func resolveSeason(ctx context.Context, s *store.Store, season string) (string, error) {
	if season != "" {
		return season, nil
	}
	seasons, err := s.Seasons(ctx)
	if err != nil {
		return "", err
	}
	if len(seasons) == 0 {
		return "", fmt.Errorf("no seasons exist")
	}
	return seasons[0].ID, nil
}

// loadTables computes one season's division tables for a role, applying the
// optional division filter and sort column.
func loadTables(ctx context.Context, s *store.Store, season, division, sortCol string, role model.Role) ([]grouping.DivisionTable, error) {
	seasonID, err := resolveSeason(ctx, s, season)
	if err != nil {
		return nil, err
	}
	games, err := s.GamesBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	divisions, err := s.DivisionsBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	clubs, err := s.Clubs(ctx)
	if err != nil {
		return nil, err
	}

	resolver := identity.NewEmptyResolver()
	if players, err := s.Players(ctx); err != nil {
		logger.Warn("player directory unavailable, using raw names", "error", err)
	} else {
		resolver = identity.NewResolver(players)
	}

	var rows []model.PlayerAggregate
	for _, row := range aggregate.New(resolver).Aggregate(games, aggregate.Options{}) {
		if row.Role == role {
			rows = append(rows, row)
		}
	}

	tables := grouping.NewGrouper(seasonID, divisions, clubs).ByDivision(rows)
	out := tables[:0]
	for _, t := range tables {
		if division != "" && t.DivisionName != division && t.DivisionID != division {
			continue
		}
		if sortCol != "" {
			if err := grouping.SortBy(t.Players, sortCol); err != nil {
				return nil, err
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// runWithStore handles config loading, DB connection, and context cancellation.
func runWithStore(fn func(ctx context.Context, s *store.Store) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, store.New(pool))
}
