package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"dtxcli/internal/dataset"
)

// HealthHandler reports process liveness and dataset readiness.
type HealthHandler struct {
	provider dataset.Provider
	logger   *slog.Logger
	started  time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(provider dataset.Provider, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		provider: provider,
		logger:   logger.With(slog.String("component", "health_handler")),
		started:  time.Now(),
	}
}

// Health handles GET /health. The dataset probe uses a short deadline so a
// slow first load degrades the report instead of hanging the check.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	}

	snap, err := h.provider.Snapshot(ctx)
	if err != nil {
		status["status"] = "degraded"
		status["dataset"] = map[string]interface{}{
			"loaded": false,
			"error":  err.Error(),
		}
		render.Status(r, http.StatusServiceUnavailable)
	} else {
		status["dataset"] = map[string]interface{}{
			"loaded":          true,
			"enterprise_rows": len(snap.Enterprises),
			"industry_rows":   len(snap.Industries),
			"loaded_at":       snap.LoadedAt.Format(time.RFC3339),
		}
	}

	render.JSON(w, r, status)
}
