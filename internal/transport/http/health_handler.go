package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"gradecli/pkg/contracts"
)

// HealthHandler serves liveness and version information.
type HealthHandler struct {
	version   string
	startedAt time.Time
	logger    *slog.Logger
}

// NewHealthHandler creates a health handler for the running binary version.
func NewHealthHandler(version string, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		version:   version,
		startedAt: time.Now(),
		logger:    logger.With(slog.String("component", "health_handler")),
	}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.GetHealth)
	r.Get("/version", h.GetVersion)
	return r
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// GetHealth handles GET /health.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, &HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// GetVersion handles GET /health/version.
func (h *HealthHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	info := contracts.GetVersionInfo()
	info.Version = h.version
	render.JSON(w, r, info)
}
