package session

import (
	"time"

	"github.com/wricardo/snakeysnake/game/engine"
	"github.com/wricardo/snakeysnake/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves persisted session metadata by ID
	Load(id string) (*PersistedSessionData, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData represents the JSON structure for persisted sessions.
// Only the score and coarse state survive a restart; the board is rebuilt.
type PersistedSessionData struct {
	ID             string       `json:"id"`
	ConfigID       string       `json:"config_id"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
	Score          int          `json:"score"`
	HighScore      int          `json:"high_score"`
	State          engine.State `json:"state"`
}

// resumable reports whether a restored session should continue its score
func (d *PersistedSessionData) resumable() bool {
	return d.Score > 0 && (d.State == engine.StatePlaying || d.State == engine.StatePaused)
}
