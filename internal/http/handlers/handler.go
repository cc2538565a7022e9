package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ludo_broker/internal/broker"
	"ludo_broker/internal/repository"
	"ludo_broker/internal/ws"
)

// Handler bundles the dependencies of the HTTP surface. Archive is nil when
// no database is configured.
type Handler struct {
	Hub           *ws.Hub
	Service       *broker.Service
	Archive       *repository.MatchArchiveRepository
	Version       string
	AllowedOrigin string
}

func NewHandler(hub *ws.Hub, svc *broker.Service, archive *repository.MatchArchiveRepository, version, allowedOrigin string) *Handler {
	return &Handler{
		Hub:           hub,
		Service:       svc,
		Archive:       archive,
		Version:       version,
		AllowedOrigin: allowedOrigin,
	}
}

// Root is a plain-text liveness banner.
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Ludo Challenge Pool Server is Running!")
}

// Health is the JSON health check.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"version":     h.Version,
		"connections": len(h.Hub.Connections()),
	})
}
