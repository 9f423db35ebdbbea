package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/snakeysnake/game/engine"
	"github.com/wricardo/snakeysnake/game/loop"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Input
	Turn(ctx context.Context, sessionID, side string) (*ActionResult, error)
	TogglePause(ctx context.Context, sessionID string) (*ActionResult, error)

	// Game State
	GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	DescribeCell(ctx context.Context, sessionID string, x, y int) (*engine.CellInfo, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, configID string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	DefaultID() string
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session. The runner owns the engine;
// everything else reads its snapshots.
type Session struct {
	ID             string
	ConfigID       string
	Config         *engine.GameConfig
	Runner         *loop.Runner
	CreatedAt      time.Time
	LastAccessedAt time.Time

	// Stop ends the runner goroutine
	Stop context.CancelFunc
}
