package engine

// Item is a consumable. Items are repositioned, never destroyed.
type Item struct {
	Kind            ItemKind
	Location        Cell
	Multiplier      int
	SpawnedAt       int64
	MaxLifetime     int64
	RespawnOnExpiry bool
}

// NewItem creates an unplaced item
func NewItem(kind ItemKind, multiplier int, maxLifetime int64, respawnOnExpiry bool) *Item {
	if multiplier < 1 {
		multiplier = 1
	}
	return &Item{
		Kind:            kind,
		Location:        OffGrid,
		Multiplier:      multiplier,
		MaxLifetime:     maxLifetime,
		RespawnOnExpiry: respawnOnExpiry,
	}
}

// Spawn moves the item to a uniformly random cell of the full grid. Cells
// under the snake or an obstacle are not avoided.
func (it *Item) Spawn(grid Grid, rng Random, now int64) {
	it.SpawnIn(grid.Bounds(), rng, now)
}

// SpawnIn moves the item to a uniformly random cell of the inclusive rectangle
func (it *Item) SpawnIn(r Rect, rng Random, now int64) {
	it.Location = r.RandomCell(rng)
	it.SpawnedAt = now
}

// Visible reports whether the item is placed on the grid
func (it *Item) Visible() bool {
	return it.Location != OffGrid
}

// Hide takes the item off the grid
func (it *Item) Hide() {
	it.Location = OffGrid
}

func (it *Item) outlived(now int64) bool {
	return it.Visible() && now-it.SpawnedAt > it.MaxLifetime
}

// NeedsRespawn reports whether a respawning item has outlived MaxLifetime
func (it *Item) NeedsRespawn(now int64) bool {
	return it.RespawnOnExpiry && it.outlived(now)
}

// Expired reports whether a non-respawning item has outlived MaxLifetime
func (it *Item) Expired(now int64) bool {
	return !it.RespawnOnExpiry && it.outlived(now)
}

// Advance implements Entity. Items are static between spawns.
func (it *Item) Advance(int) {}

// Occupies implements Entity
func (it *Item) Occupies(c Cell) bool {
	return it.Visible() && it.Location == c
}

// Points is the score awarded for eating the item
func (it *Item) Points() int {
	if it.Kind == RegularApple {
		return 1
	}
	return it.Multiplier
}
