// Package web - websocket hub for live moderation updates.
package web

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsEvent is the payload pushed to connected dashboard clients.
type wsEvent struct {
	Type      string `json:"type"`
	UserID    int64  `json:"user_id"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Hub maintains the set of active websocket clients and broadcasts
// moderation changes to them.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

var (
	hub     *Hub
	hubOnce sync.Once
)

// GetHub returns the global websocket hub
func GetHub() *Hub {
	hubOnce.Do(func() {
		hub = &Hub{clients: make(map[*websocket.Conn]bool)}
	})
	return hub
}

// AttachToStore registers the hub as an observer of the moderation store.
// Every mutation gets pushed to all connected clients.
func (h *Hub) AttachToStore(db *store.Store) {
	db.RegisterObserver(func(ev store.ChangeEvent) {
		h.Broadcast(wsEvent{
			Type:      ev.Type,
			UserID:    ev.UserID,
			Data:      ev.Data,
			Timestamp: time.Now().Unix(),
		})
	})
}

// Broadcast sends an event to every connected client. Dead connections
// get dropped on write failure.
func (h *Hub) Broadcast(ev wsEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(ev); err != nil {
			logger.Debug(fmt.Sprintf("Cliente websocket desconectado: %v", err), "WebSocket")
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// add registers a new client connection.
func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

// remove drops a client connection.
func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		conn.Close()
		delete(h.clients, conn)
	}
	h.mu.Unlock()
}

// wsHandler upgrades the connection and keeps it open until the client
// disconnects. The read loop only drains control frames.
func wsHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(fmt.Sprintf("Error actualizando conexión websocket: %v", err), "WebSocket")
		return
	}

	h := GetHub()
	h.add(conn)
	logger.Info(fmt.Sprintf("Nuevo cliente websocket: %s (%d conectados)", c.ClientIP(), h.ClientCount()), "WebSocket")

	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
