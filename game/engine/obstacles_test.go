package engine

import (
	"math/rand"
	"testing"
)

func TestObstacleFieldInitialize(t *testing.T) {
	grid := Grid{Width: 12, Height: 9}
	f := NewObstacleField()
	f.Initialize(grid, 15, rand.New(rand.NewSource(5)))

	if f.Len() != 15 {
		t.Fatalf("Expected 15 obstacles, got %d", f.Len())
	}
	for _, c := range f.Cells() {
		if !grid.Contains(c) {
			t.Errorf("Expected obstacle inside grid, got %v", c)
		}
		if !f.CheckCollision(c) {
			t.Errorf("Expected collision at %v", c)
		}
	}

	// Re-initializing replaces the field
	f.Initialize(grid, 2, rand.New(rand.NewSource(6)))
	if f.Len() != 2 {
		t.Errorf("Expected 2 obstacles after re-initialize, got %d", f.Len())
	}
}

func TestObstacleDuplicatesHarmless(t *testing.T) {
	f := &ObstacleField{cells: []Cell{{3, 3}, {3, 3}}}
	if !f.CheckCollision(Cell{3, 3}) {
		t.Error("Expected collision on duplicated cell")
	}
	if f.CheckCollision(Cell{3, 4}) {
		t.Error("Expected no collision on adjacent cell")
	}

	f.Advance(5)
	if !f.Occupies(Cell{3, 3}) {
		t.Error("Expected obstacles to stay put when advanced")
	}
}

func TestObstacleCellsIsCopy(t *testing.T) {
	f := &ObstacleField{cells: []Cell{{1, 1}}}
	cells := f.Cells()
	cells[0] = Cell{9, 9}
	if !f.CheckCollision(Cell{1, 1}) {
		t.Error("Expected field to be unaffected by mutating Cells()")
	}
}
