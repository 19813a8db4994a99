package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/rollcall/rollcall/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
//
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "rollcall_users_created_total %d\n", snap.UsersCreated)
	writeMetric(w, "rollcall_users_fetched_total %d\n", snap.UsersFetched)
	writeMetric(w, "rollcall_users_not_found_total %d\n", snap.UsersNotFound)
	writeMetric(w, "rollcall_user_lists_served_total %d\n", snap.UserListsServed)
	writeMetric(w, "rollcall_health_checks_total{status=\"healthy\"} %d\n", snap.HealthChecksHealthy)
	writeMetric(w, "rollcall_health_checks_total{status=\"unhealthy\"} %d\n", snap.HealthChecksUnhealthy)
}

func writeMetric(w io.Writer, format string, value any) {
	_, _ = fmt.Fprintf(w, format, value)
}
