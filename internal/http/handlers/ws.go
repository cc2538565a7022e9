package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"ludo_broker/internal/logger"
	"ludo_broker/internal/ws"
)

// WS upgrades the request to a websocket and hands it to the broker. The
// connection id is transport-assigned here; it is the client's only
// identity.
func (h *Handler) WS() gin.HandlerFunc {
	allowedOrigin := h.AllowedOrigin
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "error", err)
			return
		}

		connID := uuid.New().String()
		client := ws.NewClient(connID, conn, h.Hub, h.Service)
		go client.Run()
	}
}
