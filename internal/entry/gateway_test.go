package entry

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	payloads [][]byte
}

func (s *stubNotifier) EnqueueEntryNotification(ctx context.Context, payload []byte) error {
	s.payloads = append(s.payloads, payload)
	return nil
}

func runGateway(t *testing.T, rdb *redis.Client, notifier Notifier) *Gateway {
	t.Helper()
	g := NewGateway(testLogger(), rdb, notifier)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = g.Run(ctx) }()
	return g
}

func TestDecodeClientID(t *testing.T) {
	id, ok := decodeClientID(json.RawMessage(`"abc-123"`))
	require.True(t, ok)
	assert.Equal(t, "abc-123", id)

	id, ok = decodeClientID(json.RawMessage(`{"memberSocketId":"abc-123"}`))
	require.True(t, ok)
	assert.Equal(t, "abc-123", id)

	_, ok = decodeClientID(json.RawMessage(`{"somethingElse":1}`))
	assert.False(t, ok)

	_, ok = decodeClientID(json.RawMessage(`""`))
	assert.False(t, ok)
}

func TestMemberEntryBroadcastsAndNotifies(t *testing.T) {
	notifier := &stubNotifier{}
	g := runGateway(t, nil, notifier)
	kiosk := attachClient(t, g.hub, "kiosk")
	screen := attachClient(t, g.hub, "screen")

	payload := json.RawMessage(`{"memberId":7,"fullName":"Ivan Horvat"}`)
	g.dispatch(kiosk, EventMemberEntryServer, payload)

	assert.Equal(t, EventMemberEntryClient, receive(t, kiosk).Event)
	assert.Equal(t, EventMemberEntryClient, receive(t, screen).Event)
	require.Len(t, notifier.payloads, 1)
	assert.JSONEq(t, string(payload), string(notifier.payloads[0]))
}

func TestAdminConfirmRoutesToNamedClient(t *testing.T) {
	g := runGateway(t, nil, nil)
	desk := attachClient(t, g.hub, "desk")
	member := attachClient(t, g.hub, "member-socket")

	g.dispatch(desk, EventAdminConfirmServer, json.RawMessage(`{"memberSocketId":"member-socket"}`))

	got := receive(t, member)
	assert.Equal(t, EventAdminConfirmClient, got.Event)
	assert.Equal(t, "member-socket", got.Data)

	g.dispatch(desk, EventAdminUnconfirmServer, json.RawMessage(`"member-socket"`))
	assert.Equal(t, EventAdminUnconfirmClient, receive(t, member).Event)
}

func TestUnknownEventIsIgnored(t *testing.T) {
	g := runGateway(t, nil, nil)
	kiosk := attachClient(t, g.hub, "kiosk")

	g.dispatch(kiosk, "somethingElse", json.RawMessage(`{}`))

	select {
	case m := <-kiosk.send:
		t.Fatalf("unexpected message: %v", m)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFanoutSkipsOwnOrigin(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	g := runGateway(t, rdb, nil)
	screen := attachClient(t, g.hub, "screen")

	// The subscriber attaches asynchronously, so publish until the first
	// foreign event lands.
	foreign, err := json.Marshal(envelope{
		Origin:  "other-instance",
		Message: Message{Event: EventMemberEntryClient, Data: "sync"},
	})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		require.NoError(t, rdb.Publish(context.Background(), PubSubChannel, foreign).Err())
		select {
		case m := <-screen.send:
			assert.Equal(t, EventMemberEntryClient, m.Event)
			return true
		default:
			return false
		}
	}, 2*time.Second, 50*time.Millisecond)

	// Events published by this instance are not rebroadcast to it. The
	// marker published afterwards proves the own-origin event was seen
	// and skipped, since the channel preserves order.
	own, err := json.Marshal(envelope{Origin: g.instanceID, Message: Message{Event: EventMemberEntryClient}})
	require.NoError(t, err)
	marker, err := json.Marshal(envelope{Origin: "other-instance", Message: Message{Event: "marker"}})
	require.NoError(t, err)
	require.NoError(t, rdb.Publish(context.Background(), PubSubChannel, own).Err())
	require.NoError(t, rdb.Publish(context.Background(), PubSubChannel, marker).Err())

	// Drain the duplicates from the sync loop before checking.
	for {
		m := receive(t, screen)
		if m.Event == "marker" {
			break
		}
		require.Equal(t, EventMemberEntryClient, m.Event)
		require.NotNil(t, m.Data)
	}
}

func TestMemberEntryPublishesForOtherInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	sender := runGateway(t, rdb, nil)
	receiver := runGateway(t, rdb, nil)
	screen := attachClient(t, receiver.hub, "screen")

	payload := json.RawMessage(`{"memberId":7}`)
	require.Eventually(t, func() bool {
		sender.memberEntry(payload)
		select {
		case m := <-screen.send:
			assert.Equal(t, EventMemberEntryClient, m.Event)
			return true
		default:
			return false
		}
	}, 2*time.Second, 50*time.Millisecond)
}
