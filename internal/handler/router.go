package handler

import (
	"github.com/gin-gonic/gin"

	"echokit/internal/middleware"
	"echokit/pkg/monitor"
)

// NewRouter assembles the gin engine served by `echokit serve`. Integration
// tests mount the same router so they exercise the production wiring.
func NewRouter(h *WSHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	r.GET("/ws", h.HandleConnection)
	r.GET("/health", h.Health)
	r.GET("/metrics", monitor.MetricsHandler())

	api := r.Group("/api")
	{
		api.GET("/stats", h.GetStats)
		api.POST("/broadcast", h.BroadcastMessage)
	}

	return r
}
