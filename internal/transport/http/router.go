package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"gradecli/internal/config"
	apierrors "gradecli/internal/errors"
	"gradecli/internal/middleware"
)

// NewRouter assembles the full HTTP surface: middleware chain, health
// routes, and the results API under /api.
func NewRouter(cfg *config.Config, store ResultsReader, version string, logger *slog.Logger) chi.Router {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Compress(5))

	if cfg.Security.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.Security.RateLimit.RPS,
			cfg.Security.RateLimit.Burst,
			logger)
		r.Use(limiter.Handler)
	}

	r.Mount("/health", NewHealthHandler(version, logger).Routes())
	r.Mount("/api", NewResultsHandler(store, cfg.Server.CacheTTL, logger).Routes())

	if refresher, ok := store.(Refresher); ok {
		r.Post("/api/refresh", refreshHandler(refresher, logger))
	}

	return r
}

// refreshHandler reprocesses the configured semesters on demand.
func refreshHandler(refresher Refresher, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := refresher.Refresh(); err != nil {
			logger.ErrorContext(r.Context(), "refresh failed", slog.String("error", err.Error()))
			render.Render(w, r, apierrors.ErrInternalServer)
			return
		}
		render.JSON(w, r, map[string]string{"status": "refreshed"})
	}
}
