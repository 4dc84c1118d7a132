package entry

import (
	"context"
	"log/slog"
	"sync"
)

// Client-facing event names. The front desk screen and the member app
// both speak this vocabulary, so the names are part of the protocol.
const (
	EventMemberEntryServer    = "memberEntryServer"
	EventMemberEntryClient    = "memberEntryClient"
	EventAdminConfirmServer   = "adminConfirmServer"
	EventAdminConfirmClient   = "adminConfirmClient"
	EventAdminUnconfirmServer = "adminUnconfirmedServer"
	EventAdminUnconfirmClient = "adminUnconfirmedClient"
	EventConnected            = "connected"
)

// Message is one WebSocket frame: an event name plus its payload.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type directed struct {
	clientID string
	message  Message
}

// Hub tracks connected clients and routes entry events. Broadcasts go
// to every client; confirmations go to the one client named by id.
type Hub struct {
	logger *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
	direct     chan directed

	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a hub. Run must be called before clients attach.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, 256),
		direct:     make(chan directed, 256),
		clients:    make(map[string]*Client),
	}
}

// Run processes hub events until the context is cancelled, then closes
// every remaining client so the server can shut down cleanly.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return ctx.Err()

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("entry client connected",
				slog.String("clientId", client.id), slog.Int("total", total))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("entry client disconnected",
				slog.String("clientId", client.id), slog.Int("total", total))

		case message := <-h.broadcast:
			h.sendToAll(message)

		case d := <-h.direct:
			h.sendToOne(d.clientID, d.message)
		}
	}
}

// Broadcast queues a message for every connected client. A full queue
// drops the message rather than blocking the caller.
func (h *Hub) Broadcast(message Message) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("entry broadcast queue full, dropping message",
			slog.String("event", message.Event))
	}
}

// Send queues a message for one client by id.
func (h *Hub) Send(clientID string, message Message) {
	select {
	case h.direct <- directed{clientID: clientID, message: message}:
	default:
		h.logger.Warn("entry direct queue full, dropping message",
			slog.String("event", message.Event), slog.String("clientId", clientID))
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) sendToAll(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		select {
		case client.send <- message:
		default:
			// A client that cannot keep up is dropped.
			close(client.send)
			delete(h.clients, id)
		}
	}
}

func (h *Hub) sendToOne(clientID string, message Message) {
	h.mu.RLock()
	client, ok := h.clients[clientID]
	h.mu.RUnlock()
	if !ok {
		h.logger.Warn("entry message for unknown client",
			slog.String("event", message.Event), slog.String("clientId", clientID))
		return
	}
	select {
	case client.send <- message:
	default:
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		close(client.send)
		delete(h.clients, id)
	}
	h.logger.Info("entry hub stopped")
}
