package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/snakeysnake/game/engine"
	"github.com/wricardo/snakeysnake/game/loop"
	"github.com/wricardo/snakeysnake/game/score"
	"github.com/wricardo/snakeysnake/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// SnapshotPublisher receives every snapshot a session's runner publishes.
// Implementations are called on the runner goroutine and must not block.
type SnapshotPublisher interface {
	PublishSnapshot(sessionID string, snap engine.Snapshot)
}

// EventPublisher is implemented by publishers that also want death and
// new-record notifications as separate messages
type EventPublisher interface {
	BroadcastEvent(sessionID string, event string, data interface{})
}

// notifiedEvents are forwarded to an EventPublisher on top of the snapshot
var notifiedEvents = map[engine.EventType]bool{
	engine.EventDeath:     true,
	engine.EventNewRecord: true,
}

// Manager handles game session lifecycle. Every session owns a running
// loop.Runner; deleting or expiring the session stops it.
type Manager struct {
	sessions    map[string]*service.Session
	persistence SessionPersistence
	configs     service.ConfigManager
	scoresDir   string
	stores      map[string]*score.FileStore
	publisher   SnapshotPublisher
	runnerOpts  []loop.Option
	mu          sync.RWMutex
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
		stores:   make(map[string]*score.FileStore),
	}
}

// NewManagerWithPersistence creates a new session manager with persistence.
// configs resolves the config ID of sessions restored from storage.
func NewManagerWithPersistence(persistence SessionPersistence, configs service.ConfigManager) *Manager {
	return &Manager{
		sessions:    make(map[string]*service.Session),
		stores:      make(map[string]*score.FileStore),
		persistence: persistence,
		configs:     configs,
	}
}

// SetScoresDir enables best-score files, one per config, under dir
func (m *Manager) SetScoresDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoresDir = dir
}

// SetPublisher forwards runner snapshots of new sessions to p
func (m *Manager) SetPublisher(p SnapshotPublisher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publisher = p
}

// SetRunnerOptions applies opts to runners of sessions created afterwards
func (m *Manager) SetRunnerOptions(opts ...loop.Option) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runnerOpts = opts
}

// Create creates a new session with the given ID and configuration and
// starts its runner. The game waits in the home state for the first tap.
func (m *Manager) Create(id, configID string, config *engine.GameConfig) (*service.Session, error) {
	if id == "" {
		id = m.generateSessionID()
	} else if !validSessionID(id) {
		return nil, ErrInvalidSessionID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Check if session already exists (case-insensitive)
	if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	session, err := m.startSession(id, configID, config, nil)
	if err != nil {
		return nil, err
	}
	m.sessions[strings.ToLower(id)] = session

	// Auto-save if persistence is enabled
	if m.persistence != nil {
		if err := m.persistence.Save(session); err != nil {
			// Log error but don't fail the creation
			log.Printf("Warning: Failed to persist session %s: %v", id, err)
		}
	}

	return session, nil
}

// startSession builds the engine and runner for a session. A resumable
// restored record carries its score into a paused game. Callers hold m.mu.
func (m *Manager) startSession(id, configID string, config *engine.GameConfig, restored *PersistedSessionData) (*service.Session, error) {
	if config == nil {
		return nil, fmt.Errorf("session %s: config is required", id)
	}

	var opts []engine.Option
	if m.scoresDir != "" {
		store, err := m.scoreStore(configID)
		if err != nil {
			return nil, err
		}
		opts = append(opts, engine.WithScoreStore(store))
	}

	eng, err := engine.NewEngine(config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	clock := loop.NewSystemClock()
	if restored != nil && restored.resumable() {
		now := clock.NowMillis()
		eng.ResetWithScore(restored.Score, now)
		eng.RequestPauseToggle(now)
	}

	runnerOpts := append([]loop.Option{loop.WithClock(clock)}, m.runnerOpts...)
	if pub := m.publisher; pub != nil {
		runnerOpts = append(runnerOpts, loop.WithSnapshotHandler(func(snap engine.Snapshot) {
			pub.PublishSnapshot(id, snap)
			// Death events ride on the one snapshot with the death flag
			if events, ok := pub.(EventPublisher); ok && snap.JustDied {
				for _, ev := range snap.Events {
					if notifiedEvents[ev.Type] {
						events.BroadcastEvent(id, string(ev.Type), ev)
					}
				}
			}
		}))
	}
	runner := loop.NewRunner(eng, runnerOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := runner.Run(ctx); err != nil {
			log.Printf("Warning: session %s runner exited: %v", id, err)
		}
	}()

	now := time.Now()
	session := &service.Session{
		ID:             id,
		ConfigID:       configID,
		Config:         config,
		Runner:         runner,
		CreatedAt:      now,
		LastAccessedAt: now,
		Stop:           cancel,
	}
	if restored != nil {
		if !restored.CreatedAt.IsZero() {
			session.CreatedAt = restored.CreatedAt
		}
		if !restored.LastAccessedAt.IsZero() {
			session.LastAccessedAt = restored.LastAccessedAt
		}
	}
	return session, nil
}

// scoreStore returns the store shared by every session of a config, so
// that their writes serialize on one lock. Callers hold m.mu.
func (m *Manager) scoreStore(configID string) (*score.FileStore, error) {
	path := score.PathFor(m.scoresDir, configID)
	if store, ok := m.stores[path]; ok {
		return store, nil
	}
	store, err := score.NewFileStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open score store: %w", err)
	}
	m.stores[path] = store
	return store, nil
}

// restore rebuilds a session from its persisted record. Callers hold m.mu.
func (m *Manager) restore(data *PersistedSessionData) (*service.Session, error) {
	config, configID, err := m.resolveConfig(data.ConfigID)
	if err != nil {
		return nil, err
	}
	return m.startSession(data.ID, configID, config, data)
}

func (m *Manager) resolveConfig(configID string) (*engine.GameConfig, string, error) {
	if m.configs == nil {
		if configID == "" {
			configID = "default"
		}
		return engine.DefaultConfig(), configID, nil
	}
	if configID != "" {
		config, err := m.configs.LoadConfig(configID)
		if err == nil {
			return config, configID, nil
		}
		log.Printf("Warning: config %s unavailable, using default: %v", configID, err)
	}
	return m.configs.GetDefault(), m.configs.DefaultID(), nil
}

// lookup finds an in-memory session. Callers hold m.mu.
func (m *Manager) lookup(id string) (*service.Session, bool) {
	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		// Try exact match for backward compatibility
		session, exists = m.sessions[id]
	}
	return session, exists
}

// Get retrieves a session by ID (case-insensitive). Sessions only present
// in storage are restored and started.
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	session, exists := m.lookup(id)
	m.mu.RUnlock()

	if exists {
		return session, nil
	}

	// Try loading from persistence if not in memory
	if m.persistence != nil && m.persistence.Exists(id) {
		data, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted session: %w", err)
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if session, exists := m.lookup(id); exists {
			return session, nil
		}
		session, err := m.restore(data)
		if err != nil {
			return nil, fmt.Errorf("failed to restore session %s: %w", id, err)
		}
		m.sessions[strings.ToLower(id)] = session
		return session, nil
	}

	return nil, ErrSessionNotFound
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}

	return result
}

// Delete stops and removes a session, including its persisted record
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	inMemory := m.removeLocked(id)

	// Delete from persistence if it exists
	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}

	// If not in persistence and not in memory, it doesn't exist
	if !inMemory {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteFromMemory stops a session and drops it from memory only
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.removeLocked(id) {
		return ErrSessionNotFound
	}
	return nil
}

func (m *Manager) removeLocked(id string) bool {
	for _, key := range []string{strings.ToLower(id), id} {
		if session, exists := m.sessions[key]; exists {
			stopSession(session)
			delete(m.sessions, key)
			return true
		}
	}
	return false
}

func stopSession(session *service.Session) {
	if session.Stop != nil {
		session.Stop()
	}
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.lookup(id)
	if !exists {
		return ErrSessionNotFound
	}

	session.LastAccessedAt = time.Now()

	// Auto-save if persistence is enabled
	if m.persistence != nil {
		if err := m.persistence.Save(session); err != nil {
			log.Printf("Warning: Failed to persist session %s after access update: %v", id, err)
		}
	}

	return nil
}

// Save saves a specific session to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	m.mu.RLock()
	session, exists := m.lookup(id)
	m.mu.RUnlock()
	if !exists {
		return ErrSessionNotFound
	}

	return m.persistence.Save(session)
}

// CleanupExpiredSessions stops and removes sessions that haven't been
// accessed in the given duration. Persisted records are kept.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, session := range m.sessions {
		if session.LastAccessedAt.Before(cutoff) {
			stopSession(session)
			delete(m.sessions, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops every runner. Sessions stay listed so a final
// SaveAllSessions still sees them.
func (m *Manager) Close() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, session := range m.sessions {
		stopSession(session)
	}
}

// generateSessionID generates a random 4-character session ID
func (m *Manager) generateSessionID() string {
	// Generate 2 random bytes (4 hex characters)
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// validSessionID accepts short IDs usable as file names
func validSessionID(id string) bool {
	if len(id) > 64 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// sessionExists checks if a session exists (case-insensitive)
func (m *Manager) sessionExists(id string) bool {
	_, exists := m.lookup(id)
	return exists
}

// LoadPersistedSessions restores all persisted sessions into memory
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	sessionIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loadedCount := 0
	for _, id := range sessionIDs {
		// Skip if already loaded in memory
		if _, exists := m.lookup(id); exists {
			continue
		}

		data, err := m.persistence.Load(id)
		if err != nil {
			log.Printf("Warning: Failed to load persisted session %s: %v", id, err)
			continue
		}
		session, err := m.restore(data)
		if err != nil {
			log.Printf("Warning: Failed to restore session %s: %v", id, err)
			continue
		}

		m.sessions[strings.ToLower(id)] = session
		loadedCount++
	}

	if loadedCount > 0 {
		log.Printf("Loaded %d persisted sessions from storage", loadedCount)
	}

	return nil
}

// SaveAllSessions saves all in-memory sessions to persistence
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	m.mu.RLock()
	sessions := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.mu.RUnlock()

	errorCount := 0
	for _, session := range sessions {
		if err := m.persistence.Save(session); err != nil {
			log.Printf("Warning: Failed to save session %s: %v", session.ID, err)
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("failed to save %d sessions", errorCount)
	}

	return nil
}
