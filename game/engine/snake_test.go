package engine

import "testing"

func TestSnakeResetLayout(t *testing.T) {
	s := NewSnake(10, 10, 3)

	want := []Cell{{5, 5}, {4, 5}, {3, 5}}
	got := s.Segments()
	if len(got) != len(want) {
		t.Fatalf("Expected %d segments, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected segment %d at %v, got %v", i, want[i], got[i])
		}
	}
	if s.Heading() != Right {
		t.Errorf("Expected heading right, got %v", s.Heading())
	}
	if s.SpeedFactor() != NormalSpeed {
		t.Errorf("Expected normal speed, got %d", s.SpeedFactor())
	}
}

func TestSnakeMoveScenario(t *testing.T) {
	s := NewSnake(10, 10, 3)
	s.Move(1)

	want := []Cell{{6, 5}, {5, 5}, {4, 5}}
	for i, c := range s.Segments() {
		if c != want[i] {
			t.Errorf("Expected segment %d at %v, got %v", i, want[i], c)
		}
	}
}

func TestSnakeMoveProperties(t *testing.T) {
	for _, heading := range []Heading{Up, Right, Down, Left} {
		for steps := 0; steps <= 4; steps++ {
			t.Run(heading.String(), func(t *testing.T) {
				s := NewSnake(40, 40, 4)
				s.heading = heading
				before := s.Head()

				for n := 0; n < steps; n++ {
					prev := s.Segments()
					s.Move(1)
					cur := s.Segments()
					for k := 1; k < len(cur); k++ {
						if cur[k] != prev[k-1] {
							t.Errorf("Expected segment %d at %v, got %v", k, prev[k-1], cur[k])
						}
					}
				}

				if d := ManhattanDistance(before, s.Head()); d != steps {
					t.Errorf("Expected head distance %d, got %d", steps, d)
				}
			})
		}
	}
}

func TestSnakeMultiStepMatchesSingleSteps(t *testing.T) {
	a := NewSnake(40, 40, 5)
	b := NewSnake(40, 40, 5)
	a.Move(3)
	for i := 0; i < 3; i++ {
		b.Move(1)
	}
	sa, sb := a.Segments(), b.Segments()
	for i := range sa {
		if sa[i] != sb[i] {
			t.Errorf("Expected segment %d at %v, got %v", i, sb[i], sa[i])
		}
	}
}

func TestSwitchHeading(t *testing.T) {
	tests := []struct {
		from Heading
		side Side
		want Heading
	}{
		{Up, SideRight, Right},
		{Right, SideRight, Down},
		{Down, SideRight, Left},
		{Left, SideRight, Up},
		{Up, SideLeft, Left},
		{Left, SideLeft, Down},
		{Down, SideLeft, Right},
		{Right, SideLeft, Up},
	}

	for _, tt := range tests {
		s := NewSnake(10, 10, 1)
		s.heading = tt.from
		s.SwitchHeading(tt.side)
		if s.Heading() != tt.want {
			t.Errorf("%v turned %v: expected %v, got %v", tt.from, tt.side, tt.want, s.Heading())
		}
	}
}

func TestSnakeGrow(t *testing.T) {
	s := NewSnake(10, 10, 3)
	before := s.Segments()
	s.Grow()
	after := s.Segments()

	if len(after) != len(before)+1 {
		t.Fatalf("Expected %d segments, got %d", len(before)+1, len(after))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("Expected segment %d to stay at %v, got %v", i, before[i], after[i])
		}
	}
	if after[len(after)-1] != OffGrid {
		t.Errorf("Expected new tail at %v, got %v", OffGrid, after[len(after)-1])
	}

	// The new segment takes the old tail cell after one move
	s.Move(1)
	if got := s.Segments()[3]; got != before[2] {
		t.Errorf("Expected grown tail at %v, got %v", before[2], got)
	}
}

func TestDetectDeathBoundary(t *testing.T) {
	grid := Grid{Width: 10, Height: 8}
	tests := []struct {
		name string
		head Cell
		dead bool
	}{
		{"left edge outside", Cell{-1, 3}, true},
		{"top edge outside", Cell{3, -1}, true},
		{"right edge outside", Cell{10, 3}, true},
		{"bottom edge outside", Cell{3, 8}, true},
		{"origin", Cell{0, 0}, false},
		{"far corner", Cell{9, 7}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Snake{segments: []Cell{tt.head}, speedFactor: NormalSpeed}
			dead, cause := s.DetectDeath(grid, NewObstacleField())
			if dead != tt.dead {
				t.Errorf("Expected dead=%v, got %v", tt.dead, dead)
			}
			if tt.dead && cause != CauseBoundary {
				t.Errorf("Expected cause %q, got %q", CauseBoundary, cause)
			}
		})
	}
}

func TestDetectDeathSelfCollision(t *testing.T) {
	s := &Snake{
		segments:    []Cell{{4, 4}, {5, 4}, {5, 5}, {4, 5}, {3, 5}},
		heading:     Down,
		speedFactor: NormalSpeed,
	}
	s.Move(1)

	dead, cause := s.DetectDeath(Grid{Width: 10, Height: 10}, nil)
	if !dead {
		t.Fatal("Expected snake moving into its own body to die")
	}
	if cause != CauseSelf {
		t.Errorf("Expected cause %q, got %q", CauseSelf, cause)
	}
}

func TestDetectDeathObstacle(t *testing.T) {
	s := NewSnake(10, 10, 2)
	field := &ObstacleField{cells: []Cell{{6, 5}}}
	s.Move(1)

	dead, cause := s.DetectDeath(Grid{Width: 10, Height: 10}, field)
	if !dead || cause != CauseObstacle {
		t.Errorf("Expected obstacle death, got dead=%v cause=%q", dead, cause)
	}
}

func TestGrowthSegmentDoesNotKill(t *testing.T) {
	s := NewSnake(10, 10, 3)
	s.Grow()
	if dead, _ := s.DetectDeath(Grid{Width: 10, Height: 10}, nil); dead {
		t.Error("Expected off-grid growth segment not to count as a collision")
	}
}

func TestSpeedModifiers(t *testing.T) {
	s := NewSnake(10, 10, 1)

	s.ApplySpeedBoost(BoostedSpeed, 5000, 1000)
	if !s.Boosted() || s.SpeedFactor() != BoostedSpeed {
		t.Errorf("Expected boosted speed, got %d", s.SpeedFactor())
	}
	if s.ModifierExpiry() != 6000 {
		t.Errorf("Expected expiry 6000, got %d", s.ModifierExpiry())
	}

	s.ApplySpeedDecrease(FrozenSpeed, 2000, 1500)
	if !s.Slowed() || s.ModifierExpiry() != 3500 {
		t.Errorf("Expected slowed until 3500, got factor %d expiry %d", s.SpeedFactor(), s.ModifierExpiry())
	}

	s.ClearSpeedModifier()
	if s.SpeedFactor() != NormalSpeed || s.ModifierExpiry() != 0 {
		t.Errorf("Expected modifier cleared, got factor %d expiry %d", s.SpeedFactor(), s.ModifierExpiry())
	}
}
