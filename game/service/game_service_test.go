package service_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/wricardo/snakeysnake/game/engine"
	"github.com/wricardo/snakeysnake/game/loop"
	"github.com/wricardo/snakeysnake/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	saves    int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id, configID string, config *engine.GameConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config, engine.WithRandom(rand.New(rand.NewSource(1))))
	if err != nil {
		return nil, err
	}
	runner := loop.NewRunner(eng, loop.WithClock(loop.NewManualClock(0)), loop.WithPollInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	go runner.Run(ctx)
	for !runner.Running() {
		time.Sleep(time.Millisecond)
	}

	session := &service.Session{
		ID:             id,
		ConfigID:       configID,
		Config:         config,
		Runner:         runner,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
		Stop:           cancel,
	}
	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	session, exists := m.sessions[id]
	if !exists {
		return service.ErrSessionNotFound
	}
	session.Stop()
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return service.ErrSessionNotFound
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return service.ErrSessionNotFound
	}
	m.saves++
	return nil
}

func (m *MockSessionManager) stopAll() {
	for _, s := range m.sessions {
		s.Stop()
	}
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	defaultConfig := engine.DefaultConfig()
	defaultConfig.Name = "test"
	defaultConfig.ObstacleCount = 0
	defaultConfig.InitialLength = 3

	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"test":    defaultConfig,
			"default": defaultConfig,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, service.ErrConfigNotFound
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".json",
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			GridWidth:   config.GridWidth,
			GridHeight:  config.GridHeight,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.configs["default"]
}

func (m *MockConfigManager) DefaultID() string {
	return "default"
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	if err := engine.ValidateGameConfig(config); err != nil {
		return err
	}
	m.configs[name] = config
	return nil
}

func newTestService(t *testing.T) (service.GameService, *MockSessionManager) {
	sessions := NewMockSessionManager()
	t.Cleanup(sessions.stopAll)
	return service.NewGameService(sessions, NewMockConfigManager()), sessions
}

// Test cases
func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	tests := []struct {
		name       string
		configName string
		wantConfig string
		wantErr    bool
	}{
		{
			name:       "create with default config",
			configName: "",
			wantConfig: "default",
		},
		{
			name:       "create with specific config",
			configName: "test",
			wantConfig: "test",
		},
		{
			name:       "create with invalid config",
			configName: "nonexistent",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := svc.CreateSession(ctx, tt.configName)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, service.ErrConfigNotFound) {
					t.Errorf("Expected ErrConfigNotFound, got %v", err)
				}
				return
			}
			if info.ConfigName != tt.wantConfig {
				t.Errorf("Expected config %q, got %q", tt.wantConfig, info.ConfigName)
			}
			if info.Snapshot == nil || info.Snapshot.State != engine.StateHome {
				t.Errorf("Expected new session at home, got %+v", info.Snapshot)
			}
		})
	}
}

func TestGameService_Turn(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newTestService(t)
	info, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// First tap starts the game
	result, err := svc.Turn(ctx, info.ID, "right")
	if err != nil {
		t.Fatalf("Turn failed: %v", err)
	}
	if !result.Accepted || result.Snapshot.State != engine.StatePlaying {
		t.Errorf("Expected game started, got %+v", result)
	}
	if result.Message != "New game started" {
		t.Errorf("Unexpected message %q", result.Message)
	}

	result, err = svc.Turn(ctx, info.ID, "left")
	if err != nil {
		t.Fatalf("Turn failed: %v", err)
	}
	if result.Snapshot.Heading != engine.Up {
		t.Errorf("Expected heading up after left turn, got %v", result.Snapshot.Heading)
	}
	if sessions.saves != 2 {
		t.Errorf("Expected session saved after each turn, got %d saves", sessions.saves)
	}

	if _, err := svc.Turn(ctx, info.ID, "diagonal"); !errors.Is(err, engine.ErrUnknownSide) {
		t.Errorf("Expected ErrUnknownSide, got %v", err)
	}
	if _, err := svc.Turn(ctx, "nope", "left"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestGameService_TogglePause(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	info, _ := svc.CreateSession(ctx, "test")

	result, err := svc.TogglePause(ctx, info.ID)
	if err != nil {
		t.Fatalf("TogglePause failed: %v", err)
	}
	if result.Accepted {
		t.Error("Expected pause to be ignored at home")
	}

	svc.Turn(ctx, info.ID, "right")
	result, _ = svc.TogglePause(ctx, info.ID)
	if !result.Accepted || result.Snapshot.State != engine.StatePaused {
		t.Errorf("Expected paused, got %+v", result)
	}
	result, _ = svc.TogglePause(ctx, info.ID)
	if result.Message != "Game resumed" {
		t.Errorf("Expected resume message, got %q", result.Message)
	}
}

func TestGameService_SnapshotAndDescribe(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	info, _ := svc.CreateSession(ctx, "test")

	snap, err := svc.GetSnapshot(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	head := snap.Head()

	cell, err := svc.DescribeCell(ctx, info.ID, head.X, head.Y)
	if err != nil {
		t.Fatalf("DescribeCell failed: %v", err)
	}
	if len(cell.Occupants) == 0 || cell.Occupants[0] != "head" {
		t.Errorf("Expected head at %v, got %v", head, cell.Occupants)
	}
	if _, err := svc.DescribeCell(ctx, "nope", 0, 0); err == nil {
		t.Error("Expected error for missing session")
	}
}

func TestGameService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	a, _ := svc.CreateSession(ctx, "test")
	svc.CreateSession(ctx, "")

	list, _ := svc.ListSessions(ctx)
	if len(list) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(list))
	}

	if err := svc.DeleteSession(ctx, a.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, a.ID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestGameService_Configs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	configs, err := svc.ListConfigs(ctx)
	if err != nil || len(configs) != 2 {
		t.Fatalf("Expected 2 configs, got %d (%v)", len(configs), err)
	}

	custom := engine.DefaultConfig()
	custom.Name = "custom"
	if err := svc.SaveConfig(ctx, "custom", custom); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := svc.LoadConfig(ctx, "custom")
	if err != nil || loaded.Name != "custom" {
		t.Errorf("Expected custom config, got %v %v", loaded, err)
	}

	bad := engine.DefaultConfig()
	bad.GridWidth = 0
	if err := svc.SaveConfig(ctx, "bad", bad); !errors.Is(err, engine.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
