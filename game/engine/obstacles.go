package engine

// ObstacleField is the set of static blocking cells for one life
type ObstacleField struct {
	cells []Cell
}

// NewObstacleField returns an empty field
func NewObstacleField() *ObstacleField {
	return &ObstacleField{}
}

// Initialize clears the field and places count cells at independent uniform
// positions. Duplicates are possible and behave like a single obstacle.
func (f *ObstacleField) Initialize(grid Grid, count int, rng Random) {
	f.cells = f.cells[:0]
	for i := 0; i < count; i++ {
		f.cells = append(f.cells, grid.RandomCell(rng))
	}
}

// CheckCollision reports whether c equals any obstacle cell
func (f *ObstacleField) CheckCollision(c Cell) bool {
	for _, cell := range f.cells {
		if cell == c {
			return true
		}
	}
	return false
}

// Advance implements Entity. Obstacles never move within a life.
func (f *ObstacleField) Advance(int) {}

// Occupies implements Entity
func (f *ObstacleField) Occupies(c Cell) bool {
	return f.CheckCollision(c)
}

// Cells returns a copy of the obstacle cells
func (f *ObstacleField) Cells() []Cell {
	return copyCells(f.cells)
}

// Len returns the number of placed cells, duplicates included
func (f *ObstacleField) Len() int {
	return len(f.cells)
}
