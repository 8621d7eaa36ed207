package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "echokit_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "echokit_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "echokit_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, httpInFlight)
}

// Metrics records per-route request counts, latencies and in-flight
// requests. The /ws route shows up here only for the upgrade request
// itself; frame traffic is counted by pkg/monitor.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpInFlight.Inc()
		c.Next()
		httpInFlight.Dec()

		status := strconv.Itoa(c.Writer.Status())
		httpRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
