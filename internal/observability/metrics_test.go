package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsExposure(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveAPI(http.MethodGet, "/api/matching", "200", 20*time.Millisecond)
	m.ApiInflightInc()
	m.ObserveRecommendation("courses", "scored", "ok", 4, 3*time.Millisecond)
	m.IncRateLimited("/api/matching")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{
		"cm_api_requests_total",
		"cm_api_request_duration_seconds",
		"cm_api_inflight_requests 1",
		`cm_recommendations_total{kind="courses",mode="scored",status="ok"} 1`,
		"cm_recommendation_results",
		`cm_rate_limited_total{route="/api/matching"} 1`,
	} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %q in body", name)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveRecommendation("courses", "scored", "ok", 1, time.Millisecond)
	m.IncRateLimited("/")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("nil handler status: %d", rec.Code)
	}
}
