package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kmswanson/greenwood/internal/services"
	"github.com/kmswanson/greenwood/internal/session"
)

type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Service    string            `json:"service"`
	Components map[string]string `json:"components"`
}

type HealthHandler struct {
	store    session.Store
	narrator services.NarrationService
	logger   *slog.Logger
}

func NewHealthHandler(store session.Store, narrator services.NarrationService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:    store,
		narrator: narrator,
		logger:   logger,
	}
}

// ServeHTTP reports overall service health. Storage down means degraded;
// narration down is also degraded, since the game still works through the
// deterministic fallback.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := make(map[string]string)
	overallStatus := "healthy"

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("storage health check failed", "error", err)
		components["storage"] = "unhealthy"
		overallStatus = "degraded"
	} else {
		components["storage"] = "healthy"
	}

	if err := h.narrator.Ping(ctx); err != nil {
		h.logger.Warn("narration health check failed", "error", err)
		components["narration"] = "unavailable"
		overallStatus = "degraded"
	} else {
		components["narration"] = "healthy"
	}

	response := HealthResponse{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Service:    "greenwood",
		Components: components,
	}

	statusCode := http.StatusOK
	if overallStatus != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("error encoding health response", "error", err)
	}
}
