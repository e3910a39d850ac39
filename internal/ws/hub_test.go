package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, hub *Hub, sessionID string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, sessionID)
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, sessionID string, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.ClientCount(sessionID) == n
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_SendToSession(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	srvA := newTestServer(t, hub, "session-a")
	srvB := newTestServer(t, hub, "session-b")
	connA := dial(t, srvA)
	connB := dial(t, srvB)
	waitForClients(t, hub, "session-a", 1)
	waitForClients(t, hub, "session-b", 1)

	hub.SendToSession("session-a", &Event{Type: "notice.show", Payload: map[string]string{"message": "Download Complete!"}})

	connA.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck
	var got Event
	require.NoError(t, connA.ReadJSON(&got))
	assert.Equal(t, "notice.show", got.Type)
	payload, ok := got.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Download Complete!", payload["message"])

	// the other session receives nothing
	connB.SetReadDeadline(time.Now().Add(100 * time.Millisecond)) //nolint:errcheck
	_, _, err := connB.ReadMessage()
	assert.Error(t, err)
}

func TestHub_Disconnect(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	srv := newTestServer(t, hub, "session-a")
	conn := dial(t, srv)
	waitForClients(t, hub, "session-a", 1)

	hub.Disconnect("session-a")
	waitForClients(t, hub, "session-a", 0)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestHub_SendAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	hub.Stop()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			hub.SendToSession("s", &Event{Type: "notice.hide"})
		}
		hub.Disconnect("s")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("send blocked after stop")
	}
}
