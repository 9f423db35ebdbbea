package engine

import (
	"math/rand"
	"testing"
)

func TestItemStartsOffGrid(t *testing.T) {
	it := NewItem(RegularApple, 1, DefaultItemLifetimeMs, true)
	if it.Visible() {
		t.Error("Expected new item to be invisible")
	}
	if it.Occupies(OffGrid) {
		t.Error("Expected hidden item not to occupy the off-grid sentinel")
	}
}

func TestItemRespawnTiming(t *testing.T) {
	it := NewItem(RegularApple, 1, 8000, true)
	it.Location = Cell{2, 2}
	it.SpawnedAt = 1000

	tests := []struct {
		now  int64
		want bool
	}{
		{1000, false},
		{5000, false},
		{8999, false},
		{9000, false},
		{9001, true},
		{20000, true},
	}

	for _, tt := range tests {
		if got := it.NeedsRespawn(tt.now); got != tt.want {
			t.Errorf("NeedsRespawn(%d): expected %v, got %v", tt.now, tt.want, got)
		}
		if it.Expired(tt.now) {
			t.Errorf("Expected respawning item never to report Expired at %d", tt.now)
		}
	}
}

func TestSpecialItemExpires(t *testing.T) {
	it := NewItem(BonusItem, 3, 6000, false)
	it.Location = Cell{1, 1}

	if it.NeedsRespawn(7000) {
		t.Error("Expected special item never to request a respawn")
	}
	if !it.Expired(6001) {
		t.Error("Expected special item to expire after its lifetime")
	}
	it.Hide()
	if it.Expired(20000) {
		t.Error("Expected hidden item not to expire")
	}
}

func TestItemSpawnStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	grid := Grid{Width: 7, Height: 5}
	it := NewItem(RegularApple, 1, 8000, true)

	for i := 0; i < 500; i++ {
		it.Spawn(grid, rng, int64(i))
		if !grid.Contains(it.Location) {
			t.Fatalf("Expected spawn inside grid, got %v", it.Location)
		}
		if it.SpawnedAt != int64(i) {
			t.Fatalf("Expected SpawnedAt %d, got %d", i, it.SpawnedAt)
		}
	}
}

func TestItemSpawnInRect(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	r := Rect{MinX: 2, MaxX: 4, MinY: 1, MaxY: 1}
	it := NewItem(PenaltyItem, 1, 6000, false)
	seen := map[Cell]bool{}

	for i := 0; i < 300; i++ {
		it.SpawnIn(r, rng, 0)
		if !r.Contains(it.Location) {
			t.Fatalf("Expected spawn inside %v, got %v", r, it.Location)
		}
		seen[it.Location] = true
	}
	if len(seen) != 3 {
		t.Errorf("Expected all 3 cells of the rectangle to be used, got %d", len(seen))
	}
}

func TestItemPoints(t *testing.T) {
	if p := NewItem(RegularApple, 5, 1, true).Points(); p != 1 {
		t.Errorf("Expected regular apple to give 1 point, got %d", p)
	}
	if p := NewItem(BonusItem, 3, 1, false).Points(); p != 3 {
		t.Errorf("Expected bonus to give 3 points, got %d", p)
	}
	if p := NewItem(PenaltyItem, 0, 1, false).Points(); p != 1 {
		t.Errorf("Expected penalty multiplier clamped to 1, got %d", p)
	}
}
