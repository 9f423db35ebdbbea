package engine

import "fmt"

// Cell is an integer grid coordinate
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// OffGrid marks an item that is not placed, or a tail segment that has not
// been shifted into the body yet.
var OffGrid = Cell{X: -10, Y: -10}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the neighbouring cell one unit along h
func (c Cell) Step(h Heading) Cell {
	switch h {
	case Up:
		c.Y--
	case Right:
		c.X++
	case Down:
		c.Y++
	case Left:
		c.X--
	}
	return c
}

// Grid is the playable area [0,Width) x [0,Height)
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether c lies inside the grid
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Bounds returns the whole grid as an inclusive rectangle
func (g Grid) Bounds() Rect {
	return Rect{MinX: 0, MaxX: g.Width - 1, MinY: 0, MaxY: g.Height - 1}
}

// Inset shrinks the grid bounds by margin cells on every side. Margins too
// large for the grid collapse to the centre cell.
func (g Grid) Inset(margin int) Rect {
	r := Rect{MinX: margin, MaxX: g.Width - 1 - margin, MinY: margin, MaxY: g.Height - 1 - margin}
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = g.Width/2, g.Width/2
	}
	if r.MinY > r.MaxY {
		r.MinY, r.MaxY = g.Height/2, g.Height/2
	}
	return r
}

// RandomCell picks a uniformly random cell inside the grid
func (g Grid) RandomCell(rng Random) Cell {
	return g.Bounds().RandomCell(rng)
}

// Rect is an inclusive rectangle of cells
type Rect struct {
	MinX int `json:"min_x"`
	MaxX int `json:"max_x"`
	MinY int `json:"min_y"`
	MaxY int `json:"max_y"`
}

// Contains reports whether c lies inside the rectangle
func (r Rect) Contains(c Cell) bool {
	return c.X >= r.MinX && c.X <= r.MaxX && c.Y >= r.MinY && c.Y <= r.MaxY
}

// RandomCell picks a uniformly random cell inside the rectangle
func (r Rect) RandomCell(rng Random) Cell {
	return Cell{
		X: rng.Intn(r.MaxX-r.MinX+1) + r.MinX,
		Y: rng.Intn(r.MaxY-r.MinY+1) + r.MinY,
	}
}

// Random is the subset of *rand.Rand the engine draws from
type Random interface {
	Intn(n int) int
	Float64() float64
}

// Entity is the shared contract of everything placed on the grid
type Entity interface {
	// Advance moves the entity by steps discrete units. Static entities ignore it.
	Advance(steps int)
	// Occupies reports whether the entity covers c
	Occupies(c Cell) bool
}

var (
	_ Entity = (*Snake)(nil)
	_ Entity = (*Item)(nil)
	_ Entity = (*ObstacleField)(nil)
)
