// Package store reads league documents out of Postgres. Each entity lives
// as a jsonb document beside the metadata columns the queries filter on;
// decoding into the model types happens here so the rest of the service
// never touches raw rows.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/icetilt/icetilt-data/internal/config"
	"github.com/icetilt/icetilt-data/internal/db"
	"github.com/icetilt/icetilt-data/internal/model"
)

// Store is the read side of the league database.
type Store struct {
	pool *db.Pool
}

func New(pool *db.Pool) *Store {
	return &Store{pool: pool}
}

func docQuery[T any](ctx context.Context, s *Store, stmt string, args ...any) ([]T, error) {
	rows, err := s.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", stmt, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("scan %s: %w", stmt, err)
		}
		var v T
		if err := json.Unmarshal(doc, &v); err != nil {
			return nil, fmt.Errorf("decode %s row %s: %w", stmt, id, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", stmt, err)
	}
	return out, nil
}

// Games returns every game, chronologically.
func (s *Store) Games(ctx context.Context) ([]model.Game, error) {
	return docQuery[model.Game](ctx, s, "games_all")
}

// GamesBySeason returns one season's games, chronologically.
func (s *Store) GamesBySeason(ctx context.Context, seasonID string) ([]model.Game, error) {
	return docQuery[model.Game](ctx, s, "games_by_season", seasonID)
}

// GameByID fetches a single game.
func (s *Store) GameByID(ctx context.Context, id string) (*model.Game, error) {
	games, err := docQuery[model.Game](ctx, s, "game_by_id", id)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("game %s: not found", id)
	}
	return &games[0], nil
}

// Players returns the full player directory.
func (s *Store) Players(ctx context.Context) ([]model.PlayerRecord, error) {
	return docQuery[model.PlayerRecord](ctx, s, "players_all")
}

// Seasons returns all seasons, newest first.
func (s *Store) Seasons(ctx context.Context) ([]model.Season, error) {
	return docQuery[model.Season](ctx, s, "seasons_all")
}

// Divisions returns every division across all seasons.
func (s *Store) Divisions(ctx context.Context) ([]model.Division, error) {
	return docQuery[model.Division](ctx, s, "divisions_all")
}

// DivisionsBySeason returns one season's divisions in display order.
func (s *Store) DivisionsBySeason(ctx context.Context, seasonID string) ([]model.Division, error) {
	return docQuery[model.Division](ctx, s, "divisions_by_season", seasonID)
}

// Clubs returns the club registry.
func (s *Store) Clubs(ctx context.Context) ([]model.Club, error) {
	return docQuery[model.Club](ctx, s, "clubs_all")
}

// NotifyChange pokes the change channel so listeners recompute. Payload is
// the entity kind that changed ("games", "players", ...).
func (s *Store) NotifyChange(ctx context.Context, entity string) error {
	if _, err := s.pool.Exec(ctx, "notify_change", config.ChangeChannel, fmt.Sprintf(`{"entity":%q}`, entity)); err != nil {
		return fmt.Errorf("notify %s: %w", entity, err)
	}
	return nil
}
