package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wricardo/snakeysnake/game/engine"
	"github.com/wricardo/snakeysnake/game/service"
)

// Client plays one session through the REST API
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) decode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) CreateSession(configID string) (*service.SessionInfo, error) {
	reqBody, err := json.Marshal(map[string]string{"config_id": configID})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	var info service.SessionInfo
	if err := c.decode(resp, &info); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	c.sessionID = info.ID
	return &info, nil
}

// Use plays an existing session
func (c *Client) Use(sessionID string) {
	c.sessionID = sessionID
}

func (c *Client) GetState() (*engine.Snapshot, error) {
	resp, err := c.client.Get(fmt.Sprintf("%s/api/sessions/%s/state", c.baseURL, c.sessionID))
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}

	var snap engine.Snapshot
	if err := c.decode(resp, &snap); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return &snap, nil
}

func (c *Client) Turn(side engine.Side) (*service.ActionResult, error) {
	body, err := json.Marshal(map[string]string{"side": side.String()})
	if err != nil {
		return nil, fmt.Errorf("marshal turn: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/turn", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("turn: %w", err)
	}

	var result service.ActionResult
	if err := c.decode(resp, &result); err != nil {
		return nil, fmt.Errorf("parse turn response: %w", err)
	}
	return &result, nil
}

func (c *Client) TogglePause() (*service.ActionResult, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/pause", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("pause: %w", err)
	}

	var result service.ActionResult
	if err := c.decode(resp, &result); err != nil {
		return nil, fmt.Errorf("parse pause response: %w", err)
	}
	return &result, nil
}
