package ws

import (
	"encoding/json"
	"log"
	"sync"

	"psychopulse/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgResultCreated MessageType = "result_created"
	MsgMetricsStale  MessageType = "metrics_stale"
	MsgError         MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Connection represents one open dashboard socket
type Connection struct {
	UserID string
	connID string
	Send   chan []byte
	Hub    *Hub
}

// Hub manages dashboard WebSocket connections per user. A user may hold
// several open dashboards (tabs); events fan out to all of them.
type Hub struct {
	conns map[string]map[string]*Connection // userID -> connID -> conn
	mu    sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
}

// NewHub creates a new WebSocket hub and starts its event loop
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.UserID] == nil {
				h.conns[conn.UserID] = make(map[string]*Connection)
			}
			h.conns[conn.UserID][conn.connID] = conn
			h.mu.Unlock()
			log.Printf("dashboard socket opened for user %s", conn.UserID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if userConns, ok := h.conns[conn.UserID]; ok {
				if existing, ok := userConns[conn.connID]; ok && existing == conn {
					delete(userConns, conn.connID)
					close(conn.Send)
					if len(userConns) == 0 {
						delete(h.conns, conn.UserID)
					}
					log.Printf("dashboard socket closed for user %s", conn.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a connection to the hub
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection from the hub
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// NotifyResultCreated implements service.Broadcaster: pushes the freshly
// appended result to every open dashboard of the user, followed by a
// stale-metrics hint so clients refetch.
func (h *Hub) NotifyResultCreated(userID string, result *model.SurveyResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		log.Printf("marshal result for ws: %v", err)
		return
	}
	h.sendToUser(userID, &Message{Type: MsgResultCreated, Payload: payload})
	h.sendToUser(userID, &Message{Type: MsgMetricsStale})
}

func (h *Hub) sendToUser(userID string, msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal ws message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.conns[userID] {
		select {
		case conn.Send <- data:
		default:
			// Slow consumer; drop rather than block the hub.
		}
	}
}
