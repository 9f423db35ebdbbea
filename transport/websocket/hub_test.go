package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wricardo/snakeysnake/game/engine"
	"github.com/wricardo/snakeysnake/game/service"
)

type mockActionHandler struct {
	mu    sync.Mutex
	calls []string
}

func (m *mockActionHandler) Turn(ctx context.Context, sessionID, side string) (*service.ActionResult, error) {
	m.record("turn:" + side)
	if side != "left" && side != "right" {
		return nil, errors.New("unknown side")
	}
	return &service.ActionResult{Action: "turn", Accepted: true, Message: "Turned " + side}, nil
}

func (m *mockActionHandler) TogglePause(ctx context.Context, sessionID string) (*service.ActionResult, error) {
	m.record("pause")
	return &service.ActionResult{Action: "pause", Accepted: true, Message: "Game paused"}, nil
}

func (m *mockActionHandler) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func newTestClient(hub *Hub, sessionID string) *Client {
	return &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
}

func startServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	go hub.Run()
	t.Cleanup(hub.Stop)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			sessionID = "default"
		}
		hub.ServeWS(w, r, sessionID)
	}))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, sessionID string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount(sessionID) != want {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients in session %s, got %d", want, sessionID, hub.ClientCount(sessionID))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	return message
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if cap(hub.broadcast) != broadcastBuffer {
		t.Errorf("Expected broadcast buffer %d, got %d", broadcastBuffer, cap(hub.broadcast))
	}
	if hub.register == nil || hub.unregister == nil {
		t.Error("Hub register channels are nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()
	client1 := newTestClient(hub, "s1")
	client2 := newTestClient(hub, "s1")

	hub.registerClient(client1)
	hub.registerClient(client2)

	if hub.ClientCount("s1") != 2 {
		t.Errorf("Expected 2 clients in session, got %d", hub.ClientCount("s1"))
	}

	hub.unregisterClient(client1)
	if hub.ClientCount("s1") != 1 {
		t.Errorf("Expected 1 client remaining, got %d", hub.ClientCount("s1"))
	}
	if _, ok := <-client1.send; ok {
		t.Error("Unregistered client send channel should be closed")
	}

	hub.unregisterClient(client2)
	if _, exists := hub.sessions["s1"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}

	// Unregistering twice is harmless
	hub.unregisterClient(client2)
}

func TestHubDeliver(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub, "s1")
	b := newTestClient(hub, "s1")
	other := newTestClient(hub, "s2")
	hub.registerClient(a)
	hub.registerClient(b)
	hub.registerClient(other)

	t.Run("session broadcast", func(t *testing.T) {
		hub.deliver(envelope{message: &Message{SessionID: "s1", Event: "ping"}})
		if len(a.send) != 1 || len(b.send) != 1 {
			t.Errorf("Expected both session clients to receive, got %d and %d", len(a.send), len(b.send))
		}
		if len(other.send) != 0 {
			t.Error("Client of another session should not receive")
		}
		<-a.send
		<-b.send
	})

	t.Run("targeted reply", func(t *testing.T) {
		hub.deliver(envelope{message: &Message{SessionID: "s1", Event: "reply"}, target: a})
		if len(a.send) != 1 {
			t.Errorf("Expected target to receive 1 message, got %d", len(a.send))
		}
		if len(b.send) != 0 {
			t.Error("Non-target client should not receive")
		}
		<-a.send
	})

	t.Run("full client is dropped", func(t *testing.T) {
		slow := &Client{hub: hub, sessionID: "s3", send: make(chan []byte)}
		hub.registerClient(slow)
		hub.deliver(envelope{message: &Message{SessionID: "s3"}})
		if hub.ClientCount("s3") != 0 {
			t.Error("Client with full buffer should be unregistered")
		}
	})
}

func TestHubPublishSnapshotNeverBlocks(t *testing.T) {
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer*2; i++ {
			hub.PublishSnapshot("s1", engine.Snapshot{Score: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("PublishSnapshot blocked without a running hub")
	}
	if len(hub.broadcast) != broadcastBuffer {
		t.Errorf("Expected %d queued messages, got %d", broadcastBuffer, len(hub.broadcast))
	}
}

func TestWebSocketConnectAndDisconnect(t *testing.T) {
	hub := NewHub()
	server := startServer(t, hub)

	conn := dial(t, server, "ws-test")
	waitForClients(t, hub, "ws-test", 1)

	conn.Close()
	waitForClients(t, hub, "ws-test", 0)
}

func TestWebSocketStateUpdate(t *testing.T) {
	hub := NewHub()
	server := startServer(t, hub)

	conn := dial(t, server, "msg-test")
	waitForClients(t, hub, "msg-test", 1)

	hub.PublishSnapshot("msg-test", engine.Snapshot{
		Width:    20,
		Height:   10,
		Segments: []engine.Cell{{X: 10, Y: 5}, {X: 9, Y: 5}},
		Score:    12,
		State:    engine.StatePlaying,
	})

	message := readMessage(t, conn)
	if message.SessionID != "msg-test" {
		t.Errorf("Expected sessionID 'msg-test', got %s", message.SessionID)
	}
	if message.Event != EventStateUpdate {
		t.Errorf("Expected event %s, got %s", EventStateUpdate, message.Event)
	}
	if message.Snapshot == nil {
		t.Fatal("Expected snapshot in message")
	}
	if message.Snapshot.Score != 12 || message.Snapshot.State != engine.StatePlaying {
		t.Errorf("Snapshot not received correctly: %+v", message.Snapshot)
	}
	if len(message.Snapshot.Segments) != 2 || message.Snapshot.Segments[0] != (engine.Cell{X: 10, Y: 5}) {
		t.Errorf("Expected head (10,5), got %v", message.Snapshot.Segments)
	}
}

func TestWebSocketBroadcastEvent(t *testing.T) {
	hub := NewHub()
	server := startServer(t, hub)

	conn := dial(t, server, "evt1")
	waitForClients(t, hub, "evt1", 1)

	hub.BroadcastEvent("evt1", string(engine.EventDeath), engine.Event{Type: engine.EventDeath, Points: 7, At: 900})

	message := readMessage(t, conn)
	if message.Event != string(engine.EventDeath) {
		t.Errorf("Expected event death, got %s", message.Event)
	}
	if message.Snapshot != nil {
		t.Error("Expected no snapshot on a death notification")
	}
	data, ok := message.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected event data object, got %T", message.Data)
	}
	if data["points"] != float64(7) {
		t.Errorf("Expected points 7, got %v", data["points"])
	}
}

func TestWebSocketActions(t *testing.T) {
	hub := NewHub()
	handler := &mockActionHandler{}
	hub.SetActionHandler(handler)
	server := startServer(t, hub)

	conn := dial(t, server, "act1")
	waitForClients(t, hub, "act1", 1)

	tests := []struct {
		name      string
		payload   string
		wantEvent string
	}{
		{"turn left", `{"action":"turn","side":"left"}`, EventActionResult},
		{"pause", `{"action":"pause"}`, EventActionResult},
		{"bad side", `{"action":"turn","side":"up"}`, EventError},
		{"unknown action", `{"action":"jump"}`, EventError},
		{"invalid json", `{not json`, EventError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.payload)); err != nil {
				t.Fatalf("Failed to send action: %v", err)
			}
			message := readMessage(t, conn)
			if message.Event != tt.wantEvent {
				t.Errorf("Expected event %s, got %s (data %v)", tt.wantEvent, message.Event, message.Data)
			}
		})
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()
	want := []string{"turn:left", "pause", "turn:up"}
	if strings.Join(handler.calls, ",") != strings.Join(want, ",") {
		t.Errorf("Expected calls %v, got %v", want, handler.calls)
	}
}

func TestWebSocketActionsWithoutHandler(t *testing.T) {
	hub := NewHub()
	server := startServer(t, hub)

	conn := dial(t, server, "ro")
	waitForClients(t, hub, "ro", 1)

	conn.WriteMessage(websocket.TextMessage, []byte(`{"action":"pause"}`))
	if message := readMessage(t, conn); message.Event != EventError {
		t.Errorf("Expected event %s, got %s", EventError, message.Event)
	}
}
