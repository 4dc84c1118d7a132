package entry

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialEntry(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m Message
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func TestWebSocketEntryFlow(t *testing.T) {
	g := runGateway(t, nil, nil)
	handler := NewHandler(testLogger(), g)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	kiosk := dialEntry(t, server)
	screen := dialEntry(t, server)

	// Each connection is greeted with its id.
	kioskHello := readEvent(t, kiosk)
	require.Equal(t, EventConnected, kioskHello.Event)
	kioskID, ok := kioskHello.Data.(string)
	require.True(t, ok)
	require.NotEmpty(t, kioskID)

	screenHello := readEvent(t, screen)
	require.Equal(t, EventConnected, screenHello.Event)
	assert.NotEqual(t, kioskID, screenHello.Data)

	// A member entry reaches both connections.
	require.NoError(t, kiosk.WriteJSON(Message{
		Event: EventMemberEntryServer,
		Data:  map[string]any{"memberId": 7, "fullName": "Ivan Horvat"},
	}))
	for _, conn := range []*websocket.Conn{kiosk, screen} {
		m := readEvent(t, conn)
		assert.Equal(t, EventMemberEntryClient, m.Event)
	}

	// A confirmation addressed to the kiosk id reaches the kiosk only.
	require.NoError(t, screen.WriteJSON(Message{
		Event: EventAdminConfirmServer,
		Data:  map[string]any{"memberSocketId": kioskID},
	}))
	m := readEvent(t, kiosk)
	assert.Equal(t, EventAdminConfirmClient, m.Event)
	assert.Equal(t, kioskID, m.Data)

	require.NoError(t, screen.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var unexpected Message
	assert.Error(t, screen.ReadJSON(&unexpected), "confirmation must not reach other clients")
}

func TestWebSocketDisconnectUnregisters(t *testing.T) {
	g := runGateway(t, nil, nil)
	handler := NewHandler(testLogger(), g)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	conn := dialEntry(t, server)
	readEvent(t, conn)
	require.Eventually(t, func() bool { return g.hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return g.hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}
