package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 指标统一挂 lawlink 命名空间，path 用路由模板避免 :id 基数爆炸
var (
	reqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lawlink",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Count of HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	reqDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lawlink",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of HTTP requests by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	reqInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lawlink",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})
)

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqInFlight.Inc()
		c.Next()
		reqInFlight.Dec()

		route := c.FullPath()
		if route == "" {
			// 未匹配任何路由（404 等）归并到一个桶
			route = "unmatched"
		}
		reqTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		reqDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
