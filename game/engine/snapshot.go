package engine

import "strings"

// ItemView is the read-only state of one item
type ItemView struct {
	Kind       ItemKind `json:"kind"`
	Location   Cell     `json:"location"`
	Visible    bool     `json:"visible"`
	Multiplier int      `json:"multiplier"`
	SpawnedAt  int64    `json:"spawned_at"`
	ExpiresAt  int64    `json:"expires_at"`
}

// Snapshot is an immutable copy of the session published after every tick
// or state change. Renderers read it without touching the engine.
type Snapshot struct {
	ConfigName  string        `json:"config_name"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Segments    []Cell        `json:"segments"`
	Heading     Heading       `json:"heading"`
	Obstacles   []Cell        `json:"obstacles"`
	Items       []ItemView    `json:"items"`
	Score       int           `json:"score"`
	HighScore   int           `json:"high_score"`
	State       State         `json:"state"`
	SpeedFactor int           `json:"speed_factor"`
	Effects     []TimedEffect `json:"effects,omitempty"`
	JustDied    bool          `json:"just_died"`
	DeathCause  DeathCause    `json:"death_cause,omitempty"`
	Events      []Event       `json:"events,omitempty"`
	Tick        uint64        `json:"tick"`
	At          int64         `json:"at"`
}

// Snapshot deep-copies the current session state
func (e *GameEngine) Snapshot() Snapshot {
	items := make([]ItemView, 0, 3)
	for _, it := range e.items() {
		items = append(items, ItemView{
			Kind:       it.Kind,
			Location:   it.Location,
			Visible:    it.Visible(),
			Multiplier: it.Multiplier,
			SpawnedAt:  it.SpawnedAt,
			ExpiresAt:  it.SpawnedAt + it.MaxLifetime,
		})
	}
	events := make([]Event, len(e.events))
	for i, ev := range e.events {
		if ev.Cell != nil {
			c := *ev.Cell
			ev.Cell = &c
		}
		events[i] = ev
	}
	return Snapshot{
		ConfigName:  e.config.Name,
		Width:       e.grid.Width,
		Height:      e.grid.Height,
		Segments:    e.snake.Segments(),
		Heading:     e.snake.Heading(),
		Obstacles:   e.obstacles.Cells(),
		Items:       items,
		Score:       e.score,
		HighScore:   e.highScore,
		State:       e.state,
		SpeedFactor: e.snake.SpeedFactor(),
		Effects:     e.timeline.Pending(),
		JustDied:    e.justDied,
		DeathCause:  e.deathCause,
		Events:      events,
		Tick:        e.ticks,
		At:          e.lastNow,
	}
}

// Head returns the head cell of the snapshot
func (s Snapshot) Head() Cell {
	if len(s.Segments) == 0 {
		return OffGrid
	}
	return s.Segments[0]
}

// CellInfo describes what occupies one cell
type CellInfo struct {
	Cell             Cell     `json:"cell"`
	InBounds         bool     `json:"in_bounds"`
	Occupants        []string `json:"occupants"`
	DistanceFromHead int      `json:"distance_from_head"`
}

// Describe lists everything on c, head first
func (s Snapshot) Describe(c Cell) CellInfo {
	info := CellInfo{
		Cell:             c,
		InBounds:         Grid{Width: s.Width, Height: s.Height}.Contains(c),
		Occupants:        []string{},
		DistanceFromHead: ManhattanDistance(s.Head(), c),
	}
	for i, seg := range s.Segments {
		if seg != c {
			continue
		}
		if i == 0 {
			info.Occupants = append(info.Occupants, "head")
		} else {
			info.Occupants = append(info.Occupants, "body")
			break
		}
	}
	for _, o := range s.Obstacles {
		if o == c {
			info.Occupants = append(info.Occupants, "obstacle")
			break
		}
	}
	for _, it := range s.Items {
		if it.Visible && it.Location == c {
			info.Occupants = append(info.Occupants, string(it.Kind))
		}
	}
	return info
}

// Rows renders the board as text: '@' head, 'o' body, '#' obstacle,
// '*' apple, '$' bonus, '!' penalty, '.' empty.
func (s Snapshot) Rows() []string {
	grid := make([][]byte, s.Height)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(".", s.Width))
	}
	put := func(c Cell, ch byte) {
		if c.X >= 0 && c.X < s.Width && c.Y >= 0 && c.Y < s.Height {
			grid[c.Y][c.X] = ch
		}
	}
	for _, o := range s.Obstacles {
		put(o, '#')
	}
	for _, it := range s.Items {
		if !it.Visible {
			continue
		}
		switch it.Kind {
		case RegularApple:
			put(it.Location, '*')
		case BonusItem:
			put(it.Location, '$')
		case PenaltyItem:
			put(it.Location, '!')
		}
	}
	for i := len(s.Segments) - 1; i >= 0; i-- {
		if i == 0 {
			put(s.Segments[i], '@')
		} else {
			put(s.Segments[i], 'o')
		}
	}
	rows := make([]string, s.Height)
	for y := range grid {
		rows[y] = string(grid[y])
	}
	return rows
}
