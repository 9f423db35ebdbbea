package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/snakeysnake/game/engine"
	"github.com/wricardo/snakeysnake/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Snakey Snake",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Snakey Snake - MCP Interface

This is a thin client that proxies all requests to the REST API server.
Games run in real time: the snake keeps moving between your calls.

GAME OBJECTIVE:
Steer the snake with left/right turns, eat items, and avoid walls, obstacles and your own body.

AVAILABLE TOOLS:
- create_session: Create a new game session
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get the board as text plus score and state
- turn: Turn left or right (or start a game from the home or game over screen)
- toggle_pause: Pause or resume
- describe_cell: What occupies one grid cell
- list_configs: List available configurations
- game_instructions: Full rules

TIP: pause the game while you study the board, then resume and turn.`),
	)

	// Register all tools
	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use, see list_configs (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, score and state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "turn",
		Description: "Turn the snake 90 degrees. Left is counter-clockwise, right is clockwise. On the home or game over screen this starts a new game.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"side": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"left", "right"},
					"description": "Which side of the screen was tapped",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you are turning",
				},
			},
			Required: []string{"session_id", "side"},
		},
	}, c.handleTurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "toggle_pause",
		Description: "Pause a running game or resume a paused one",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleTogglePause)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Describe what occupies a grid cell and how far it is from the head",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Column, 0 is the left edge",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Row, 0 is the top edge",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleDescribeCell)

	// Configuration
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of the game and the board legend",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

func intArg(args map[string]interface{}, name string) (int, error) {
	switch v := args[name].(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case string:
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%s must be an integer", name)
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall("POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\nThe game is on the home screen; call turn to start.\n",
		session.ID, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                    `json:"count"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall("GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active sessions: %d\n", response.Count)
	for _, session := range response.Sessions {
		b.WriteString("- " + formatSessionInfo(session) + "\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall("GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	if session.Snapshot != nil {
		result += "\n\n" + formatSnapshot(session.Snapshot, session.Snapshot.Rows())
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/state?render=true")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state struct {
		engine.Snapshot
		Rows []string `json:"rows"`
	}
	if err := c.apiCall("GET", path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&state.Snapshot, state.Rows)), nil
}

func (c *Client) handleTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/turn")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	side, _ := args["side"].(string)

	var result service.ActionResult
	if err := c.apiCall("POST", path, map[string]string{"side": side}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleTogglePause(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/pause")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.ActionResult
	if err := c.apiCall("POST", path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	x, err := intArg(args, "x")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	y, err := intArg(args, "y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := sessionPath(args, fmt.Sprintf("/cells/%d/%d", x, y))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var info engine.CellInfo
	if err := c.apiCall("GET", path, nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCellInfo(&info)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []*service.ConfigInfo
	if err := c.apiCall("GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available configurations:\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "- %s: %s (%dx%d, %d obstacles, %dms per tick)\n",
			cfg.ConfigID, cfg.Description, cfg.GridWidth, cfg.GridHeight, cfg.ObstacleCount, cfg.TickIntervalMs)
	}
	return mcp.NewToolResultText(b.String()), nil
}

const instructions = `Snakey Snake - Instructions

OBJECTIVE:
Eat as much as you can without crashing. The best score per configuration is kept.

CONTROLS:
- turn left: rotate the heading counter-clockwise
- turn right: rotate the heading clockwise
- On the home screen or after a crash, any turn starts a new game
- toggle_pause: freeze the game; timers resume where they stopped

MOVEMENT:
The snake moves one cell per tick in its heading. Each item eaten adds one tail segment.

DEATH:
- Leaving the grid
- Running into your own body
- Running into an obstacle

ITEMS:
- * apple: +1. Respawns when eaten or after its lifetime runs out
- $ bonus: +multiplier points, may speed the snake up for a while
- ! penalty: +multiplier points, may freeze the snake in place for a while
Bonus and penalty items appear only after eating and vanish when their lifetime ends.

BOARD LEGEND (game_state):
@ head, o body, # obstacle, * apple, $ bonus, ! penalty, . empty
x grows to the right, y grows downwards.

TIPS:
- Plan turns a few cells ahead; the snake keeps moving between calls
- Pause, study the board with game_state and describe_cell, then resume
- Avoid boxing yourself in as the body grows`

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	line := fmt.Sprintf("Session %s (config: %s, last access: %s)",
		session.ID, session.ConfigName, session.LastAccessedAt.Format(time.RFC3339))
	if snap := session.Snapshot; snap != nil {
		line += fmt.Sprintf(" state=%s score=%d best=%d", snap.State, snap.Score, snap.HighScore)
	}
	return line
}

func stateLabel(snap *engine.Snapshot) string {
	switch snap.State {
	case engine.StateHome:
		return "🏠 HOME (turn to start)"
	case engine.StatePaused:
		return "⏸ PAUSED"
	case engine.StateGameOver:
		label := "💀 GAME OVER"
		if snap.DeathCause != "" {
			label += fmt.Sprintf(" (%s)", snap.DeathCause)
		}
		return label
	}
	return "▶ PLAYING"
}

func formatSnapshot(snap *engine.Snapshot, rows []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "State: %s\n", stateLabel(snap))
	fmt.Fprintf(&b, "Score: %d (best %d)\n", snap.Score, snap.HighScore)
	fmt.Fprintf(&b, "Head: %s heading %s, length %d\n", snap.Head(), snap.Heading, len(snap.Segments))
	if snap.SpeedFactor != 1 {
		fmt.Fprintf(&b, "Speed: %d cells per tick\n", snap.SpeedFactor)
	}
	for _, it := range snap.Items {
		if it.Visible {
			fmt.Fprintf(&b, "Item: %s at %s worth %d\n", it.Kind, it.Location, it.Multiplier)
		}
	}
	if len(rows) > 0 {
		fmt.Fprintf(&b, "\nBoard %dx%d:\n", snap.Width, snap.Height)
		for _, row := range rows {
			b.WriteString(row + "\n")
		}
	}
	return b.String()
}

func formatActionResult(result *service.ActionResult) string {
	status := "✅"
	if !result.Accepted {
		status = "⚠️"
	}
	text := fmt.Sprintf("%s %s", status, result.Message)
	if snap := result.Snapshot; snap != nil {
		text += fmt.Sprintf("\nState: %s, score %d, head %s heading %s", stateLabel(snap), snap.Score, snap.Head(), snap.Heading)
	}
	return text
}

func formatCellInfo(info *engine.CellInfo) string {
	if !info.InBounds {
		return fmt.Sprintf("Cell %s is outside the grid (moving there is fatal)", info.Cell)
	}
	occupants := "empty"
	if len(info.Occupants) > 0 {
		occupants = strings.Join(info.Occupants, ", ")
	}
	return fmt.Sprintf("Cell %s: %s\nDistance from head: %d", info.Cell, occupants, info.DistanceFromHead)
}
