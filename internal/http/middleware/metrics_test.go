package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yungbote/coursemarket-backend/internal/observability"
)

func TestMetricsLabelsAndSkips(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.NewMetrics(prometheus.NewRegistry())
	r := gin.New()
	r.Use(Metrics(m, "/healthcheck"))
	r.GET("/healthcheck", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/courses/:id/similar", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, p := range []string{"/healthcheck", "/api/courses/abc/similar", "/api/courses/def/similar", "/random/path"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	if !strings.Contains(body, `cm_api_requests_total{method="GET",route="/api/courses/:id/similar",status="200"} 2`) {
		t.Fatalf("expected two requests on the route template:\n%s", body)
	}
	if !strings.Contains(body, `route="unmatched",status="404"`) {
		t.Fatalf("expected unmatched label for unknown paths")
	}
	if strings.Contains(body, `route="/healthcheck"`) {
		t.Fatalf("skipped path should not be recorded")
	}
	if strings.Contains(body, "/random/path") {
		t.Fatalf("raw paths must not become labels")
	}
}
