package gateway

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"rsi-rotation/internal/markethours"
	"rsi-rotation/internal/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans completed evaluation results out to WebSocket clients.
// A client that connects mid-day immediately receives the most recent
// result before live updates.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	latest  []byte
	seq     int64
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

// Publish broadcasts one run result to every connected client and
// retains it for late joiners. Slow clients are skipped, never blocked on.
func (h *Hub) Publish(res model.RunResult) {
	h.mu.Lock()
	h.seq++
	envelope, err := json.Marshal(map[string]interface{}{
		"type":         "run_result",
		"seq":          h.seq,
		"signal":       res.Signal,
		"path":         res.Path,
		"notify":       res.Notify,
		"reason":       res.NotifyReason,
		"notified":     res.Notified,
		"ts":           res.EvaluatedAt.Format(time.RFC3339Nano),
		"marketOpen":   markethours.IsMarketOpen(res.EvaluatedAt),
		"marketStatus": markethours.StatusString(res.EvaluatedAt),
	})
	if err != nil {
		h.mu.Unlock()
		log.Printf("[gateway] marshal run result: %v", err)
		return
	}
	h.latest = envelope
	for client := range h.clients {
		select {
		case client.send <- envelope:
		default:
		}
	}
	h.mu.Unlock()
}

// HandleWS upgrades the request and registers the client.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[gateway] ws upgrade failed: %v", err)
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 16),
		hub:  h,
	}

	h.mu.Lock()
	h.clients[client] = true
	count := len(h.clients)
	if h.latest != nil {
		client.send <- h.latest
	}
	h.mu.Unlock()

	log.Printf("[gateway] ws client connected (%d total)", count)

	go client.writePump()
	go client.readPump()
}

// RemoveClient removes a client from the hub.
func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected WS clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
