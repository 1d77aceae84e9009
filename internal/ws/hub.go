// Package ws pushes balance and farming updates to connected webapp
// clients. The hub is write-only from the server's point of view; clients
// never send anything except pings.
package ws

import (
	"sync"

	"mining_webapp/internal/logger"

	"github.com/gorilla/websocket"
)

type Hub struct {
	mu    sync.RWMutex
	conns map[int64][]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[int64][]*websocket.Conn)}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[userID] = append(h.conns[userID], conn)
}

func (h *Hub) Unregister(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.conns[userID]
	for i, c := range conns {
		if c == conn {
			h.conns[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// Push sends an event to every connection of a user. Delivery is best
// effort; a dead connection is dropped on the next write.
func (h *Hub) Push(userID int64, event any) {
	h.mu.RLock()
	conns := append([]*websocket.Conn(nil), h.conns[userID]...)
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			logger.Debug("ws push failed", "user_id", userID, "error", err)
			_ = conn.Close()
			h.Unregister(userID, conn)
		}
	}
}
