// Package ws pushes notification events to connected browser clients.
// Every event goes to every client; there is no per-patient scoping and
// no delivery history, so clients filter by patientId themselves and use
// the REST API to catch up after reconnecting.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Event is the single message type the channel carries.
type Event struct {
	Type      string `json:"type"`
	PatientID string `json:"patientId"`
	Message   string `json:"message"`
}

// NotificationEvent builds the event published after a doctor appends a
// notification to a patient record.
func NotificationEvent(patientID, message string) Event {
	return Event{Type: "notification", PatientID: patientID, Message: message}
}

// Client is one live connection.
type Client struct {
	ID   string
	Send chan []byte
}

// Hub tracks the set of connected clients. All operations are
// thread-safe via sync.RWMutex.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		log:     log,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
}

// Broadcast sends an event to every connected client. Publishing never
// blocks: a client whose buffer is full misses the event.
func (h *Hub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("ws: failed to marshal event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Client buffer full; skip to avoid blocking.
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS policy is enforced on the API routes, not here.
	},
}

// ServeWS upgrades the request, registers the client and starts the
// read/write pumps. Connections are anonymous; the only state kept per
// client is its send buffer.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws: upgrade failed")
		return
	}

	client := &Client{
		ID:   uuid.New().String(),
		Send: make(chan []byte, 256),
	}
	h.Register(client)
	h.log.Debug().Str("client", client.ID).Msg("ws: client connected")

	go h.writePump(client, conn)
	go h.readPump(client, conn)
}

// readPump discards inbound frames; the channel is push-only. Its real
// job is noticing the disconnect.
func (h *Hub) readPump(client *Client, conn *websocket.Conn) {
	defer func() {
		h.Unregister(client)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump writes messages from the Send channel to the connection.
func (h *Hub) writePump(client *Client, conn *websocket.Conn) {
	defer conn.Close()

	for message := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
