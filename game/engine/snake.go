package engine

// Snake is the player body. Segment 0 is the head.
type Snake struct {
	segments       []Cell
	heading        Heading
	speedFactor    int
	modifierExpiry int64
}

// NewSnake creates a snake laid out by Reset
func NewSnake(width, height, initialLength int) *Snake {
	s := &Snake{}
	s.Reset(width, height, initialLength)
	return s
}

// Reset places initialLength segments in a horizontal line centred on the
// grid, head first and trailing to the left, heading right at normal speed.
func (s *Snake) Reset(width, height, initialLength int) {
	if initialLength < 1 {
		initialLength = 1
	}
	s.segments = s.segments[:0]
	for i := 0; i < initialLength; i++ {
		s.segments = append(s.segments, Cell{X: width/2 - i, Y: height / 2})
	}
	s.heading = Right
	s.ClearSpeedModifier()
}

// Move applies steps single-cell advances. Each advance shifts every body
// segment onto its forward neighbour, then moves the head along the heading.
// The head is not clamped; leaving the grid is a death condition.
func (s *Snake) Move(steps int) {
	for n := 0; n < steps; n++ {
		for i := len(s.segments) - 1; i > 0; i-- {
			s.segments[i] = s.segments[i-1]
		}
		s.segments[0] = s.segments[0].Step(s.heading)
	}
}

// Advance implements Entity
func (s *Snake) Advance(steps int) {
	s.Move(steps)
}

// Occupies implements Entity. Off-grid tail segments never match a grid cell.
func (s *Snake) Occupies(c Cell) bool {
	for _, seg := range s.segments {
		if seg == c {
			return true
		}
	}
	return false
}

// SwitchHeading rotates clockwise for a right-side tap and counter-clockwise
// for a left-side tap.
func (s *Snake) SwitchHeading(side Side) {
	if side == SideRight {
		s.heading = (s.heading + 1) % 4
		return
	}
	s.heading = (s.heading + 3) % 4
}

// Grow appends a tail segment at OffGrid. Subsequent moves shift it into place.
func (s *Snake) Grow() {
	s.segments = append(s.segments, OffGrid)
}

// DetectDeath reports whether the head left the grid, hit another segment,
// or hit an obstacle. The cause is CauseNone when alive.
func (s *Snake) DetectDeath(grid Grid, obstacles *ObstacleField) (bool, DeathCause) {
	head := s.Head()
	if !grid.Contains(head) {
		return true, CauseBoundary
	}
	for i := len(s.segments) - 1; i > 0; i-- {
		if s.segments[i] == head {
			return true, CauseSelf
		}
	}
	if obstacles != nil && obstacles.CheckCollision(head) {
		return true, CauseObstacle
	}
	return false, CauseNone
}

// ApplySpeedBoost sets the steps-per-tick factor and the modifier expiry.
// Reverting once the expiry passes is the caller's job.
func (s *Snake) ApplySpeedBoost(steps int, durationMs, now int64) {
	s.speedFactor = steps
	s.modifierExpiry = now + durationMs
}

// ApplySpeedDecrease sets a reduced steps-per-tick factor, usually 0
func (s *Snake) ApplySpeedDecrease(steps int, durationMs, now int64) {
	s.speedFactor = steps
	s.modifierExpiry = now + durationMs
}

// ClearSpeedModifier restores normal speed
func (s *Snake) ClearSpeedModifier() {
	s.speedFactor = NormalSpeed
	s.modifierExpiry = 0
}

// SpeedFactor returns the current steps per tick
func (s *Snake) SpeedFactor() int {
	return s.speedFactor
}

// ModifierExpiry returns when the active speed modifier ends, or 0
func (s *Snake) ModifierExpiry() int64 {
	return s.modifierExpiry
}

// Boosted reports a factor above normal
func (s *Snake) Boosted() bool {
	return s.speedFactor > NormalSpeed
}

// Slowed reports a frozen snake
func (s *Snake) Slowed() bool {
	return s.speedFactor < NormalSpeed
}

// Head returns the leading segment
func (s *Snake) Head() Cell {
	return s.segments[0]
}

// Heading returns the current direction of travel
func (s *Snake) Heading() Heading {
	return s.heading
}

// Len returns the number of segments, including off-grid growth segments
func (s *Snake) Len() int {
	return len(s.segments)
}

// Segments returns a copy of the body, head first
func (s *Snake) Segments() []Cell {
	return copyCells(s.segments)
}

func (s *Snake) shiftTimers(delta int64) {
	if s.modifierExpiry != 0 {
		s.modifierExpiry += delta
	}
}
