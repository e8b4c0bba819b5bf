package ui

// Rect is a cell-aligned screen region.
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether the cell at (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
