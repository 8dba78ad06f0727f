// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/icetilt/icetilt-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the store uses. Game
// and player documents live in jsonb columns next to the indexed metadata
// columns, so each read is one statement.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Games: metadata columns plus the jsonb stat payload
		"games_by_season": `SELECT id, doc FROM games WHERE season_id = $1 ORDER BY game_date, id`,
		"games_all":       `SELECT id, doc FROM games ORDER BY game_date, id`,
		"game_by_id":      `SELECT id, doc FROM games WHERE id = $1`,

		// Player directory
		"players_all": `SELECT id, doc FROM players ORDER BY id`,

		// Season / division / club registries
		"seasons_all":         `SELECT id, doc FROM seasons ORDER BY start_date DESC`,
		"divisions_by_season": `SELECT id, doc FROM divisions WHERE season_id = $1 ORDER BY display_order, id`,
		"divisions_all":       `SELECT id, doc FROM divisions ORDER BY season_id, display_order, id`,
		"clubs_all":           `SELECT id, doc FROM clubs ORDER BY id`,

		// Change notification poke (used by leaguectl recompute)
		"notify_change": `SELECT pg_notify($1, $2)`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
