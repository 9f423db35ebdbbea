package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	outboxSize = 16
	writeWait  = 5 * time.Second
)

// ErrOutboxFull is returned when actions are produced faster than the
// connection can write them
var ErrOutboxFull = errors.New("action queue full")

// Client follows one session
type Client struct {
	baseURL   string
	http      *http.Client
	sessionID string

	conn      *websocket.Conn
	outbox    chan clientAction
	closed    chan struct{}
	closeOnce sync.Once

	mu         sync.RWMutex
	state      *Snapshot
	lastUpdate time.Time
	lastError  string
	deaths     int
}

// NewClient creates a client for the server at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SessionID returns the followed session
func (c *Client) SessionID() string {
	return c.sessionID
}

// CreateSession starts a new session with configID, or the server default
// when empty
func (c *Client) CreateSession(configID string) error {
	payload := "{}"
	if configID != "" {
		data, _ := json.Marshal(map[string]string{"config_id": configID})
		payload = string(data)
	}

	resp, err := c.http.Post(c.baseURL+"/api/sessions", "application/json", strings.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("create session failed: %s", strings.TrimSpace(string(body)))
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse session response: %v (body: %s)", err, string(body))
	}

	c.sessionID = result.ID
	log.Printf("Created new session: %s (config: %s)", c.sessionID, configID)
	return nil
}

// Attach follows an existing session
func (c *Client) Attach(sessionID string) {
	c.sessionID = sessionID
}

// wsURL turns the http base URL into the WebSocket endpoint for the session
func (c *Client) wsURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	q := u.Query()
	q.Set("session", c.sessionID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Connect dials the WebSocket and starts listening in the background
func (c *Client) Connect() error {
	if c.sessionID == "" {
		return errors.New("no session ID set")
	}
	wsURL, err := c.wsURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	c.conn = conn
	c.outbox = make(chan clientAction, outboxSize)
	c.closed = make(chan struct{})
	log.Printf("WebSocket connected for session %s", c.sessionID)

	go c.listen()
	go c.writeLoop()
	return nil
}

// Close drops the WebSocket
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	c.closeOnce.Do(func() { close(c.closed) })
	return c.conn.Close()
}

// writeLoop is the only writer on the connection
func (c *Client) writeLoop() {
	for {
		select {
		case <-c.closed:
			return
		case action := <-c.outbox:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(action); err != nil {
				log.Printf("WebSocket write error for %s: %v", c.sessionID, err)
				c.setError("send failed")
			}
		}
	}
}

func (c *Client) listen() {
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error for %s: %v", c.sessionID, err)
			c.setError("disconnected")
			return
		}
		c.handleMessage(message)
	}
}

// handleMessage applies one envelope from the server
func (c *Client) handleMessage(message []byte) {
	var msg wsMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("WebSocket JSON parse error: %v", err)
		return
	}

	if msg.Event == "error" {
		c.setError(fmt.Sprint(msg.Data))
	}
	if msg.Snapshot == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if msg.Snapshot.Died() {
		c.deaths++
	}
	c.state = msg.Snapshot
	c.lastUpdate = time.Now()
	c.lastError = ""
}

func (c *Client) setError(text string) {
	c.mu.Lock()
	c.lastError = text
	c.mu.Unlock()
}

// State returns the latest snapshot, or nil before the first one
func (c *Client) State() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// LastError returns the most recent server or connection error
func (c *Client) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Deaths counts deaths seen since connecting
func (c *Client) Deaths() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deaths
}

// send queues action for the writer without blocking the caller, which is
// usually the window's update loop
func (c *Client) send(action clientAction) error {
	if c.outbox == nil {
		return errors.New("not connected")
	}
	select {
	case c.outbox <- action:
		return nil
	default:
		return ErrOutboxFull
	}
}

// Turn sends a tap on side ("left" or "right")
func (c *Client) Turn(side string) error {
	return c.send(clientAction{Action: "turn", Side: side})
}

// TogglePause pauses or resumes the session
func (c *Client) TogglePause() error {
	return c.send(clientAction{Action: "pause"})
}
