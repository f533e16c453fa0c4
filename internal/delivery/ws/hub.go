// Package ws pushes market notifications to connected browsers over
// WebSocket. Connections are grouped per user so events reach only the
// parties they concern.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type registration struct {
	userID string
	conn   *websocket.Conn
}

// Hub manages WebSocket connections keyed by user ID.
type Hub struct {
	clients    map[string]map[*websocket.Conn]bool
	send       chan userMessage
	register   chan registration
	unregister chan registration
	mu         sync.RWMutex
}

type userMessage struct {
	userID  string
	payload []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		send:       make(chan userMessage, 256),
		register:   make(chan registration),
		unregister: make(chan registration),
	}
}

// Run starts the hub's main event loop. Must be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case reg := <-h.register:
			h.mu.Lock()
			if h.clients[reg.userID] == nil {
				h.clients[reg.userID] = make(map[*websocket.Conn]bool)
			}
			h.clients[reg.userID][reg.conn] = true
			h.mu.Unlock()
			slog.Info("ws client connected", "user_id", reg.userID)

		case reg := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[reg.userID]; ok {
				if conns[reg.conn] {
					delete(conns, reg.conn)
					reg.conn.Close()
				}
				if len(conns) == 0 {
					delete(h.clients, reg.userID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.send:
			h.mu.Lock()
			for conn := range h.clients[msg.userID] {
				if err := conn.WriteMessage(websocket.TextMessage, msg.payload); err != nil {
					conn.Close()
					delete(h.clients[msg.userID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendToUser delivers a JSON payload to every connection of one user. The
// message is dropped when the buffer is full so publishers never block.
func (h *Hub) SendToUser(userID string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case h.send <- userMessage{userID: userID, payload: payload}:
	default:
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// HandleWS upgrades the request and binds the connection to the
// authenticated user.
func (h *Hub) HandleWS(userID string, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("ws upgrade failed", "err", err)
		return
	}

	h.register <- registration{userID: userID, conn: conn}

	// Read pump: keep connection alive and detect disconnects.
	go func() {
		defer func() { h.unregister <- registration{userID: userID, conn: conn} }()
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()

	// Ping ticker to keep connection alive through proxies.
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()
}
