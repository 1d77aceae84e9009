package handlers

import (
	"net/http"
	"time"

	"mining_webapp/internal/logger"
	"mining_webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WS upgrades the connection and registers it with the hub. The client
// authenticates with a token query parameter since browsers cannot set
// headers on WebSocket upgrades.
func (h *Handler) WS(c *gin.Context) {
	token := c.Query("token")
	userID, err := service.ParseJWT(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Debug("ws upgrade failed", "error", err)
		return
	}

	h.Hub.Register(userID, conn)

	// Drain incoming frames until the client disconnects; the hub only
	// ever writes.
	go func() {
		defer func() {
			h.Hub.Unregister(userID, conn)
			_ = conn.Close()
		}()

		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		})

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
