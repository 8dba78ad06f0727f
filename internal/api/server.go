package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/icetilt/icetilt-data/internal/api/handler"
	"github.com/icetilt/icetilt-data/internal/cache"
	"github.com/icetilt/icetilt-data/internal/config"
	"github.com/icetilt/icetilt-data/internal/db"
	"github.com/icetilt/icetilt-data/internal/engine"

	_ "github.com/icetilt/icetilt-data/docs" // swagger spec registration
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(pool *db.Pool, eng *engine.Engine, appCache *cache.Cache, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, eng, appCache, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Standings
		r.Get("/standings", h.GetStandings)

		// Player stat tables
		r.Get("/stats/skaters", h.GetSkaterStats)
		r.Get("/stats/goalies", h.GetGoalieStats)
		r.Get("/stats/career/{playerID}", h.GetCareerStats)
		r.Get("/stats/club/{clubID}", h.GetClubStats)

		// Registries
		r.Get("/seasons", h.GetSeasons)
		r.Get("/divisions", h.GetDivisions)
	})

	return r
}
