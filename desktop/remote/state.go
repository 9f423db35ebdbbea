// Package remote talks to a Snakey Snake server: it creates sessions over
// REST, follows snapshots over the WebSocket and sends turn and pause actions.
package remote

// Cell is a grid coordinate
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Item is a consumable as the server reports it
type Item struct {
	Kind     string `json:"kind"`
	Location Cell   `json:"location"`
	Visible  bool   `json:"visible"`
}

// Event is a tick-level notification
type Event struct {
	Type   string `json:"type"`
	Item   string `json:"item,omitempty"`
	Points int    `json:"points,omitempty"`
}

// Snapshot mirrors the server's published session state
type Snapshot struct {
	ConfigName  string  `json:"config_name"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Segments    []Cell  `json:"segments"`
	Heading     string  `json:"heading"`
	Obstacles   []Cell  `json:"obstacles"`
	Items       []Item  `json:"items"`
	Score       int     `json:"score"`
	HighScore   int     `json:"high_score"`
	State       string  `json:"state"`
	SpeedFactor int     `json:"speed_factor"`
	DeathCause  string  `json:"death_cause,omitempty"`
	Events      []Event `json:"events,omitempty"`
	Tick        uint64  `json:"tick"`
}

// Head returns the first segment
func (s *Snapshot) Head() (Cell, bool) {
	if len(s.Segments) == 0 {
		return Cell{}, false
	}
	return s.Segments[0], true
}

// Died reports whether this snapshot carries a death event
func (s *Snapshot) Died() bool {
	for _, ev := range s.Events {
		if ev.Type == "death" {
			return true
		}
	}
	return false
}

// wsMessage is the WebSocket envelope
type wsMessage struct {
	SessionID string    `json:"session_id"`
	Snapshot  *Snapshot `json:"snapshot,omitempty"`
	Event     string    `json:"event,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// clientAction is sent to the server over the WebSocket
type clientAction struct {
	Action string `json:"action"`
	Side   string `json:"side,omitempty"`
}
