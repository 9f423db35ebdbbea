package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wricardo/snakeysnake/game/engine"
	"github.com/wricardo/snakeysnake/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Time allowed for one client action to be applied
	actionTimeout = 5 * time.Second

	broadcastBuffer = 256
)

// Events sent to clients
const (
	EventStateUpdate  = "state_update"
	EventActionResult = "action_result"
	EventError        = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browser clients are served from any origin during development
		return true
	},
}

// Message represents an outgoing WebSocket message
type Message struct {
	SessionID string           `json:"session_id"`
	Snapshot  *engine.Snapshot `json:"snapshot,omitempty"`
	Event     string           `json:"event,omitempty"`
	Data      interface{}      `json:"data,omitempty"`
}

// ClientAction is an incoming message, e.g. {"action":"turn","side":"left"}
// or {"action":"pause"}
type ClientAction struct {
	Action string `json:"action"`
	Side   string `json:"side,omitempty"`
}

// ActionHandler applies client input to a session. service.GameService
// satisfies it.
type ActionHandler interface {
	Turn(ctx context.Context, sessionID, side string) (*service.ActionResult, error)
	TogglePause(ctx context.Context, sessionID string) (*service.ActionResult, error)
}

// Client represents a WebSocket client
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// envelope is a queued outgoing message. A nil target means every client
// of the session.
type envelope struct {
	message *Message
	target  *Client
}

// Hub maintains the set of active clients and broadcasts messages. Only
// the Run goroutine mutates the client set.
type Hub struct {
	// Registered clients by session ID
	sessions   map[string]map[*Client]bool
	sessionsMu sync.RWMutex

	// Outbound messages for clients
	broadcast chan envelope

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	actions   ActionHandler
	actionsMu sync.RWMutex

	quit     chan struct{}
	stopOnce sync.Once
	dropped  int64
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan envelope, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

// SetActionHandler routes incoming client actions to h
func (h *Hub) SetActionHandler(handler ActionHandler) {
	h.actionsMu.Lock()
	defer h.actionsMu.Unlock()
	h.actions = handler
}

func (h *Hub) actionHandler() ActionHandler {
	h.actionsMu.RLock()
	defer h.actionsMu.RUnlock()
	return h.actions
}

// Run starts the hub's event loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case env := <-h.broadcast:
			h.deliver(env)

		case <-h.quit:
			h.closeAll()
			return
		}
	}
}

// Stop ends Run and disconnects every client
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.quit)
	})
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: sessionID,
	}

	select {
	case h.register <- client:
	case <-h.quit:
		conn.Close()
		return
	}

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// PublishSnapshot queues a state update for every client of a session. It
// never blocks; updates are dropped while the queue is full.
func (h *Hub) PublishSnapshot(sessionID string, snap engine.Snapshot) {
	h.enqueue(envelope{message: &Message{
		SessionID: sessionID,
		Snapshot:  &snap,
		Event:     EventStateUpdate,
	}})
}

// BroadcastEvent sends a custom event to all clients in a session
func (h *Hub) BroadcastEvent(sessionID string, event string, data interface{}) {
	h.enqueue(envelope{message: &Message{
		SessionID: sessionID,
		Event:     event,
		Data:      data,
	}})
}

func (h *Hub) enqueue(env envelope) {
	select {
	case h.broadcast <- env:
	default:
		h.sessionsMu.Lock()
		h.dropped++
		dropped := h.dropped
		h.sessionsMu.Unlock()
		if dropped%100 == 1 {
			log.Printf("Warning: WebSocket broadcast queue full, %d messages dropped", dropped)
		}
	}
}

// ClientCount returns the number of clients watching a session
func (h *Hub) ClientCount(sessionID string) int {
	h.sessionsMu.RLock()
	defer h.sessionsMu.RUnlock()
	return len(h.sessions[sessionID])
}

// registerClient adds a client to a session
func (h *Hub) registerClient(client *Client) {
	h.sessionsMu.Lock()
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true
	count := len(h.sessions[client.sessionID])
	h.sessionsMu.Unlock()

	log.Printf("Client registered for session %s (total clients: %d)", client.sessionID, count)
}

// unregisterClient removes a client from a session
func (h *Hub) unregisterClient(client *Client) {
	h.sessionsMu.Lock()
	defer h.sessionsMu.Unlock()

	if clients, ok := h.sessions[client.sessionID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Clean up empty sessions
			if len(clients) == 0 {
				delete(h.sessions, client.sessionID)
			}

			log.Printf("Client unregistered from session %s (remaining clients: %d)",
				client.sessionID, len(clients))
		}
	}
}

func (h *Hub) closeAll() {
	h.sessionsMu.Lock()
	defer h.sessionsMu.Unlock()
	for id, clients := range h.sessions {
		for client := range clients {
			close(client.send)
		}
		delete(h.sessions, id)
	}
}

// deliver sends a message to its target client or to all clients in its session
func (h *Hub) deliver(env envelope) {
	data, err := json.Marshal(env.message)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	h.sessionsMu.RLock()
	var targets []*Client
	for client := range h.sessions[env.message.SessionID] {
		if env.target == nil || env.target == client {
			targets = append(targets, client)
		}
	}
	h.sessionsMu.RUnlock()

	for _, client := range targets {
		select {
		case client.send <- data:
		default:
			// Client's send channel is full, close it
			h.unregisterClient(client)
		}
	}
}

// handleAction applies one incoming message and replies to the sender only
func (h *Hub) handleAction(c *Client, raw []byte) {
	reply := &Message{SessionID: c.sessionID, Event: EventActionResult}

	var action ClientAction
	if err := json.Unmarshal(raw, &action); err != nil {
		reply.Event = EventError
		reply.Data = fmt.Sprintf("invalid message: %v", err)
		h.enqueue(envelope{message: reply, target: c})
		return
	}

	handler := h.actionHandler()
	if handler == nil {
		reply.Event = EventError
		reply.Data = "actions are not accepted on this connection"
		h.enqueue(envelope{message: reply, target: c})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	var (
		result *service.ActionResult
		err    error
	)
	switch action.Action {
	case "turn":
		result, err = handler.Turn(ctx, c.sessionID, action.Side)
	case "pause":
		result, err = handler.TogglePause(ctx, c.sessionID)
	default:
		err = fmt.Errorf("unknown action %q", action.Action)
	}

	if err != nil {
		reply.Event = EventError
		reply.Data = err.Error()
	} else {
		reply.Data = result
	}
	h.enqueue(envelope{message: reply, target: c})
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.quit:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		c.hub.handleAction(c, message)
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
