// Package handler provides HTTP handlers for all API endpoints. Stat and
// standings responses come straight off the engine's computed snapshot —
// no per-request queries; the cache layer only saves re-marshalling and
// powers ETag revalidation.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/icetilt/icetilt-data/internal/api/respond"
	"github.com/icetilt/icetilt-data/internal/cache"
	"github.com/icetilt/icetilt-data/internal/config"
	"github.com/icetilt/icetilt-data/internal/db"
	"github.com/icetilt/icetilt-data/internal/engine"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool   *db.Pool
	engine *engine.Engine
	cache  *cache.Cache
	cfg    *config.Config
}

// New creates a Handler with shared dependencies.
func New(pool *db.Pool, eng *engine.Engine, c *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{
		pool:   pool,
		engine: eng,
		cache:  c,
		cfg:    cfg,
	}
}

// snapshot returns the current snapshot or writes a 503 when the engine has
// not finished its first recompute.
func (h *Handler) snapshot(w http.ResponseWriter) *engine.Snapshot {
	snap := h.engine.Snapshot()
	if snap == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "WARMING_UP", "Stats are being computed, retry shortly")
		return nil
	}
	return snap
}

// serveCached marshals v once per snapshot generation, stores it under a
// snapshot-scoped key, and answers If-None-Match with 304.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, snap *engine.Snapshot, key string, ttl time.Duration, v any) {
	key = fmt.Sprintf("%s@%d", key, snap.ComputedAt.UnixNano())

	data, etag, hit := h.cache.Get(key)
	if !hit {
		var err error
		data, err = json.Marshal(v)
		if err != nil {
			respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
			return
		}
		etag = h.cache.Set(key, data, ttl)
	}

	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, hit)
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Ice Tilt League Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status, snapshot age, and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if snap := h.engine.Snapshot(); snap != nil {
		body["snapshot_age"] = time.Since(snap.ComputedAt).Round(time.Second).String()
		body["degraded"] = snap.Degraded
	} else {
		body["snapshot_age"] = "none"
	}
	respond.WriteJSONObject(w, http.StatusOK, body)
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	var n int
	err := h.pool.QueryRow(r.Context(), "health_check").Scan(&n)
	if err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
