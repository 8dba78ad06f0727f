// Package maintenance runs periodic background tasks as Go tickers.
// Replaces pg_cron — all scheduled work is driven from Go since it is
// already a persistent, long-running service (required for LISTEN/NOTIFY).
package maintenance

import (
	"context"
	"log/slog"
	"time"
)

// Invalidator is the engine hook; satisfied by engine.Engine.
type Invalidator interface {
	Invalidate()
}

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	CatchUpInterval time.Duration // Sweep for missed NOTIFY events
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		CatchUpInterval: 15 * time.Minute,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, inv Invalidator, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started", "catchup", cfg.CatchUpInterval)

	tickers := make([]*time.Ticker, 0, 1)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Catch-up: recompute on a timer so writes whose NOTIFY was missed
	// (listener reconnect window, notifying transaction rolled forward
	// after a crash) still surface within one interval.
	if cfg.CatchUpInterval > 0 {
		t := time.NewTicker(cfg.CatchUpInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() {
			logger.Debug("Catch-up sweep, invalidating snapshot")
			inv.Invalidate()
		})
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}
