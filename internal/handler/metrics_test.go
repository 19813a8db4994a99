package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rollcall/rollcall/internal/metrics"
)

func TestMetricsHandler_Metrics(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.IncUserCreated()
	recorder.IncUserCreated()
	recorder.IncHealthCheck("unhealthy")

	h := NewMetricsHandler(recorder)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	h.Metrics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, line := range []string{
		"rollcall_users_created_total 2",
		"rollcall_health_checks_total{status=\"unhealthy\"} 1",
		"rollcall_health_checks_total{status=\"healthy\"} 0",
	} {
		if !strings.Contains(body, line) {
			t.Errorf("metrics output missing %q:\n%s", line, body)
		}
	}
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	h.Metrics(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
}
