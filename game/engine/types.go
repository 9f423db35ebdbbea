package engine

import "fmt"

// Heading is the direction the snake head travels
type Heading int

const (
	Up Heading = iota
	Right
	Down
	Left
)

// String returns the lowercase heading name used in JSON and logs
func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("heading(%d)", int(h))
}

// MarshalText implements encoding.TextMarshaler
func (h Heading) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (h *Heading) UnmarshalText(text []byte) error {
	switch string(text) {
	case "up":
		*h = Up
	case "right":
		*h = Right
	case "down":
		*h = Down
	case "left":
		*h = Left
	default:
		return fmt.Errorf("unknown heading %q", string(text))
	}
	return nil
}

// Side is the half of the screen a turn request came from
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// ParseSide converts "left"/"right" into a Side
func ParseSide(s string) (Side, error) {
	switch s {
	case "left", "l":
		return SideLeft, nil
	case "right", "r":
		return SideRight, nil
	}
	return SideLeft, fmt.Errorf("%w: %q", ErrUnknownSide, s)
}

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// State is the coarse session state
type State string

const (
	StateHome     State = "home"
	StatePlaying  State = "playing"
	StatePaused   State = "paused"
	StateGameOver State = "game_over"
)

// ItemKind distinguishes the three consumable variants
type ItemKind string

const (
	RegularApple ItemKind = "regular"
	BonusItem    ItemKind = "bonus"
	PenaltyItem  ItemKind = "penalty"
)

// EventType identifies something that happened during a tick
type EventType string

const (
	EventAte        EventType = "ate"
	EventBoost      EventType = "boost"
	EventSlow       EventType = "slow"
	EventSpeedReset EventType = "speed_reset"
	EventItemSpawn  EventType = "item_spawn"
	EventItemExpire EventType = "item_expire"
	EventDeath      EventType = "death"
	EventNewRecord  EventType = "new_record"
	EventStart      EventType = "start"
	EventPause      EventType = "pause"
	EventResume     EventType = "resume"
)

// Event is a tick-level notification for renderers and audio
type Event struct {
	Type   EventType `json:"type"`
	Item   ItemKind  `json:"item,omitempty"`
	Cell   *Cell     `json:"cell,omitempty"`
	Points int       `json:"points,omitempty"`
	At     int64     `json:"at"`
}

// DeathCause records why the last life ended
type DeathCause string

const (
	CauseNone     DeathCause = ""
	CauseBoundary DeathCause = "boundary"
	CauseSelf     DeathCause = "self"
	CauseObstacle DeathCause = "obstacle"
)

// Validation limits and gameplay defaults
const (
	MinGridSize = 5
	MaxGridSize = 200

	DefaultGridWidth         = 40
	DefaultGridHeight        = 20
	DefaultInitialLength     = 1
	DefaultObstacleCount     = 10
	DefaultTickIntervalMs    = 100
	DefaultItemLifetimeMs    = 8000
	DefaultSpecialLifetimeMs = 6000
	DefaultSpecialCooldownMs = 3000
	DefaultRegularChance     = 0.7
	DefaultBonusShare        = 0.5
	DefaultEffectChance      = 0.3
	DefaultBonusMultiplier   = 3
	DefaultPenaltyMultiplier = 1
	DefaultBoostSteps        = 2
	DefaultBoostDurationMs   = 5000
	DefaultSlowDurationMs    = 2000
	DefaultSpecialMargin     = 1

	BoostedSpeed = 2
	NormalSpeed  = 1
	FrozenSpeed  = 0
)
