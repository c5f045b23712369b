package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func metricsEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/widgets/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestMetrics_CountsByRouteTemplate(t *testing.T) {
	r := metricsEngine()
	counter := reqTotal.WithLabelValues("/widgets/:id", "GET", "200")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodGet, "/widgets/42", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	// 计数按路由模板，不按实参路径
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Fatalf("counter = %v, want %v", got, before+1)
	}
}

func TestMetrics_UnmatchedRouteCollapses(t *testing.T) {
	r := metricsEngine()
	counter := reqTotal.WithLabelValues("unmatched", "GET", "404")
	before := testutil.ToFloat64(counter)

	for _, p := range []string{"/nope", "/also/nope"} {
		req := httptest.NewRequest(http.MethodGet, p, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	if got := testutil.ToFloat64(counter); got != before+2 {
		t.Fatalf("unmatched bucket = %v, want %v", got, before+2)
	}
}

func TestMetrics_InFlightReturnsToZero(t *testing.T) {
	r := metricsEngine()
	before := testutil.ToFloat64(reqInFlight)

	req := httptest.NewRequest(http.MethodGet, "/widgets/1", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(reqInFlight); got != before {
		t.Fatalf("in-flight gauge leaked: %v, want %v", got, before)
	}
}
