package preview

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// writeTimeout bounds how long one slow client can stall a broadcast
const writeTimeout = 3 * time.Second

// Hub tracks the websocket clients watching the preview
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// Len returns the number of connected clients
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends message to every client, dropping the ones that fail
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	for conn := range h.clients {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(h.clients, conn)
		}
	}
	h.mu.Unlock()
}

// CloseAll disconnects every client
func (h *Hub) CloseAll() {
	h.mu.Lock()
	for conn := range h.clients {
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
		delete(h.clients, conn)
	}
	h.mu.Unlock()
}
