package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/rollcall/rollcall/internal/metrics"
)

// HealthChecker defines an interface for checking database connectivity.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages the health check endpoint.
type HealthHandler struct {
	db      HealthChecker
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db HealthChecker, recorder metrics.Recorder, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		metrics: recorder,
		logger:  logger,
	}
}

// HealthResponse represents the health check response.
// Timestamp is set on success, Error on failure.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Health verifies database connectivity by acquiring and releasing a
// pooled connection. This is an operational endpoint, so the failure
// cause is returned to the caller unsanitized.
//
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.metrics.IncHealthCheck("unhealthy")
		h.logger.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unhealthy",
			Error:  err.Error(),
		})
		return
	}

	h.metrics.IncHealthCheck("healthy")
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
