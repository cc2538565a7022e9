package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ludo_broker/internal/http/handlers"
)

// RegisterRoutes wires the HTTP surface: liveness, health, metrics and the
// websocket entry point.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/", h.Root)
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws", h.WS())

	api := r.Group("/api")
	api.GET("/history", h.History)
	api.GET("/history/:matchId", h.HistoryByMatch)
}
