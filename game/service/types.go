package service

import (
	"time"

	"github.com/wricardo/snakeysnake/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Snapshot       *engine.Snapshot   `json:"snapshot"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// ActionResult contains the outcome of a turn or pause request
type ActionResult struct {
	Action   string           `json:"action"`
	Accepted bool             `json:"accepted"`
	Message  string           `json:"message"`
	Snapshot *engine.Snapshot `json:"snapshot"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename       string `json:"filename"`
	ConfigID       string `json:"config_id"` // The identifier to use for session creation
	Name           string `json:"name"`      // Display name
	Description    string `json:"description"`
	GridWidth      int    `json:"grid_width"`
	GridHeight     int    `json:"grid_height"`
	ObstacleCount  int    `json:"obstacle_count"`
	TickIntervalMs int64  `json:"tick_interval_ms"`
}
