// Command api is the Ice Tilt league data API server.
//
// Usage:
//
//	icetilt-api
//	API_PORT=8080 icetilt-api

// @title Ice Tilt League Data API
// @version 1.0.0
// @description League statistics API serving aggregated skater/goalie stat tables, career views, and team standings. Tables are computed in memory from the league documents and recomputed on change notifications.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Ice Tilt
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/icetilt/icetilt-data/internal/api"
	"github.com/icetilt/icetilt-data/internal/cache"
	"github.com/icetilt/icetilt-data/internal/config"
	"github.com/icetilt/icetilt-data/internal/db"
	"github.com/icetilt/icetilt-data/internal/engine"
	"github.com/icetilt/icetilt-data/internal/listener"
	"github.com/icetilt/icetilt-data/internal/maintenance"
	"github.com/icetilt/icetilt-data/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Start the stats engine; the first snapshot computes in the background
	// and the API serves 503 until it lands.
	eng := engine.New(store.New(pool), cfg.RecomputeDebounce, logger)
	eng.OnPublish(appCache.Flush) // responses cached off the old snapshot drop immediately
	eng.Start(ctx)
	logger.Info("Stats engine started", "debounce", cfg.RecomputeDebounce)

	// Start LISTEN/NOTIFY consumer for league change events
	go listener.Start(ctx, cfg.DatabaseURL, eng, logger)

	// Start maintenance tickers (catch-up sweep for missed notifications)
	go maintenance.Start(ctx, eng, maintenance.DefaultConfig(), logger)

	// Create router
	router := api.NewRouter(pool, eng, appCache, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Ice Tilt League Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
