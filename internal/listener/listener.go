// Package listener provides a Postgres LISTEN/NOTIFY consumer for league
// change events. It holds a dedicated pgx connection (not from the pool)
// listening on the `league_changed` channel.
//
// The admin app fires pg_notify after writing games, players, or registry
// documents; this consumer receives the event and invalidates the stats
// engine so the next snapshot reflects the write.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/icetilt/icetilt-data/internal/config"
)

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// ChangeEvent is the JSON payload from pg_notify('league_changed', ...).
// Entity names the collection that changed ("games", "players", "seasons",
// "divisions", "clubs"); the engine recomputes everything regardless, so an
// empty or malformed payload still invalidates.
type ChangeEvent struct {
	Entity string `json:"entity"`
}

// Invalidator is the engine hook; satisfied by engine.Engine.
type Invalidator interface {
	Invalidate()
}

// Start opens a dedicated connection and listens on the league_changed
// channel. It reconnects automatically on connection loss. Blocks until ctx
// is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, inv Invalidator, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, inv, logger)
		if ctx.Err() != nil {
			logger.Info("Change listener stopped (context cancelled)")
			return
		}

		logger.Error("Change listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, inv Invalidator, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+config.ChangeChannel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", config.ChangeChannel, err)
	}
	logger.Info("Change listener connected", "channel", config.ChangeChannel)

	// Writes may have landed while we were disconnected.
	inv.Invalidate()

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		var event ChangeEvent
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			logger.Warn("Unparseable change event, invalidating anyway",
				"payload", notification.Payload, "error", err)
		}

		logger.Info("Change event received", "entity", event.Entity)
		inv.Invalidate()
	}
}
