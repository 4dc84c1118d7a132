package entry

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// Client bridges one WebSocket connection and the hub. The id is handed
// to the peer on connect so the front desk can address confirmations.
type Client struct {
	id      string
	gateway *Gateway
	conn    *websocket.Conn
	send    chan Message
	logger  *slog.Logger
}

func newClient(gateway *Gateway, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		id:      uuid.NewString(),
		gateway: gateway,
		conn:    conn,
		send:    make(chan Message, 64),
		logger:  logger,
	}
}

// ID returns the client's connection id.
func (c *Client) ID() string {
	return c.id
}

func (c *Client) start() {
	c.gateway.hub.register <- c
	go c.writePump()
	go c.readPump()
	// The peer needs its id before it can take part in confirmations.
	c.send <- Message{Event: EventConnected, Data: c.id}
}

func (c *Client) readPump() {
	defer func() {
		c.gateway.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("entry client read failed",
					slog.String("clientId", c.id), slog.Any("error", err))
			}
			return
		}
		c.gateway.dispatch(c, frame.Event, frame.Data)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
