package entry

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PubSubChannel carries entry events between server instances.
const PubSubChannel = "gymmax:entry"

// Notifier hands an entry event to the background worker. The jobs
// client satisfies this.
type Notifier interface {
	EnqueueEntryNotification(ctx context.Context, payload []byte) error
}

// envelope wraps a fanned-out message with its origin instance so an
// instance does not rebroadcast its own publications.
type envelope struct {
	Origin  string  `json:"origin"`
	Message Message `json:"message"`
}

// Gateway owns the hub, the Redis fanout and the notification path for
// the member entry channel.
type Gateway struct {
	instanceID string
	hub        *Hub
	rdb        *redis.Client
	notifier   Notifier
	logger     *slog.Logger
}

// NewGateway builds the entry gateway. rdb and notifier may be nil in
// tests; the gateway then works as a single instance without fanout.
func NewGateway(logger *slog.Logger, rdb *redis.Client, notifier Notifier) *Gateway {
	return &Gateway{
		instanceID: uuid.NewString(),
		hub:        NewHub(logger),
		rdb:        rdb,
		notifier:   notifier,
		logger:     logger,
	}
}

// Hub exposes the underlying hub for the server runtime to supervise.
func (g *Gateway) Hub() *Hub {
	return g.hub
}

// Run drives the hub and the Redis subscription until ctx is cancelled.
func (g *Gateway) Run(ctx context.Context) error {
	if g.rdb != nil {
		go g.subscribe(ctx)
	}
	return g.hub.Run(ctx)
}

// dispatch routes one inbound frame from a client.
func (g *Gateway) dispatch(c *Client, event string, data json.RawMessage) {
	switch event {
	case EventMemberEntryServer:
		g.memberEntry(data)

	case EventAdminConfirmServer:
		if id, ok := decodeClientID(data); ok {
			g.hub.Send(id, Message{Event: EventAdminConfirmClient, Data: id})
		}

	case EventAdminUnconfirmServer:
		if id, ok := decodeClientID(data); ok {
			g.hub.Send(id, Message{Event: EventAdminUnconfirmClient, Data: id})
		}

	default:
		g.logger.Warn("entry event ignored",
			slog.String("event", event), slog.String("clientId", c.id))
	}
}

// memberEntry fans an entry event out to every client of every
// instance and queues the notification record.
func (g *Gateway) memberEntry(data json.RawMessage) {
	msg := Message{Event: EventMemberEntryClient, Data: data}
	g.hub.Broadcast(msg)
	g.publish(msg)

	if g.notifier == nil {
		return
	}
	if err := g.notifier.EnqueueEntryNotification(context.Background(), data); err != nil {
		g.logger.Error("enqueue entry notification failed", slog.Any("error", err))
	}
}

func (g *Gateway) publish(msg Message) {
	if g.rdb == nil {
		return
	}
	raw, err := json.Marshal(envelope{Origin: g.instanceID, Message: msg})
	if err != nil {
		return
	}
	if err := g.rdb.Publish(context.Background(), PubSubChannel, raw).Err(); err != nil {
		g.logger.Warn("entry fanout publish failed", slog.Any("error", err))
	}
}

// subscribe rebroadcasts entry events published by other instances.
func (g *Gateway) subscribe(ctx context.Context) {
	sub := g.rdb.Subscribe(ctx, PubSubChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
				g.logger.Warn("entry fanout payload invalid", slog.Any("error", err))
				continue
			}
			if env.Origin == g.instanceID {
				continue
			}
			g.hub.Broadcast(env.Message)
		}
	}
}

// decodeClientID accepts the target id either as a bare JSON string or
// wrapped in {"memberSocketId": "..."}.
func decodeClientID(data json.RawMessage) (string, bool) {
	var id string
	if err := json.Unmarshal(data, &id); err == nil && id != "" {
		return id, true
	}
	var wrapped struct {
		MemberSocketID string `json:"memberSocketId"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.MemberSocketID != "" {
		return wrapped.MemberSocketID, true
	}
	return "", false
}
