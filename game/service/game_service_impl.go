package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/wricardo/snakeysnake/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

func sessionInfo(sess *Session) *SessionInfo {
	snap := sess.Runner.Snapshot()
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Snapshot:       &snap,
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session. The game waits in the home
// state for the first tap.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	var config *engine.GameConfig
	configID := configName
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				// Provide helpful error message with available options
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", configName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
		configID = s.configs.DefaultID()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", configID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sessionInfo(sess), nil
}

func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession stops and removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// Turn forwards a left or right tap. Outside of play the tap starts a new life.
func (s *gameServiceImpl) Turn(ctx context.Context, sessionID, side string) (*ActionResult, error) {
	parsed, err := engine.ParseSide(side)
	if err != nil {
		return nil, err
	}
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	before := sess.Runner.Snapshot().State
	accepted, err := sess.Runner.RequestTurn(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to send turn: %w", err)
	}
	snap := sess.Runner.Snapshot()

	result := &ActionResult{Action: "turn", Accepted: accepted, Snapshot: &snap}
	switch {
	case !accepted:
		result.Message = fmt.Sprintf("Turn ignored while %s", before)
	case before == engine.StatePlaying:
		result.Message = fmt.Sprintf("Turned %s, now heading %s", parsed, snap.Heading)
	default:
		result.Message = "New game started"
	}

	s.save(sessionID)
	return result, nil
}

// TogglePause pauses or resumes play
func (s *gameServiceImpl) TogglePause(ctx context.Context, sessionID string) (*ActionResult, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	accepted, err := sess.Runner.RequestPauseToggle(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to send pause: %w", err)
	}
	snap := sess.Runner.Snapshot()

	result := &ActionResult{Action: "pause", Accepted: accepted, Snapshot: &snap}
	switch {
	case !accepted:
		result.Message = fmt.Sprintf("Pause ignored while %s", snap.State)
	case snap.State == engine.StatePaused:
		result.Message = "Game paused"
	default:
		result.Message = "Game resumed"
	}

	s.save(sessionID)
	return result, nil
}

func (s *gameServiceImpl) save(sessionID string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s: %v", sessionID, err)
	}
}

// GetSnapshot returns the latest published snapshot
func (s *gameServiceImpl) GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	snap := sess.Runner.Snapshot()
	return &snap, nil
}

// DescribeCell reports what occupies one cell of the latest snapshot
func (s *gameServiceImpl) DescribeCell(ctx context.Context, sessionID string, x, y int) (*engine.CellInfo, error) {
	snap, err := s.GetSnapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	info := snap.Describe(engine.Cell{X: x, Y: y})
	return &info, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}
