package monitor

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Connections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "echo_connections",
			Help: "Current number of open echo connections",
		},
	)

	ConnectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "echo_connections_total",
			Help: "Total number of accepted echo connections",
		},
	)

	UpgradeFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "echo_upgrade_failures_total",
			Help: "Total number of failed WebSocket upgrade handshakes",
		},
	)

	Messages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "echo_messages_total",
			Help: "Total number of WebSocket data frames",
		},
		[]string{"direction"},
	)
)

func init() {
	prometheus.MustRegister(Connections, ConnectionsTotal, UpgradeFailures, Messages)
}

func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()

	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func ConnectionOpened() {
	Connections.Inc()
	ConnectionsTotal.Inc()
}

func ConnectionClosed() {
	Connections.Dec()
}

func RecordUpgradeFailure() {
	UpgradeFailures.Inc()
}

func RecordMessageReceived() {
	Messages.WithLabelValues("received").Inc()
}

func RecordMessageSent() {
	Messages.WithLabelValues("sent").Inc()
}
