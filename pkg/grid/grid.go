// Package grid provides the geometry of a rectangular placement grid.
//
// Positions are 1-based slot indices enumerated left-to-right, top-to-bottom.
// A position maps to a 0-based (row, col) pair:
//
//	row = (pos-1) / cols
//	col = (pos-1) % cols
//
// Distances between positions are Manhattan (L1) distances on those
// coordinates, which is how wire length is measured between two elements.
//
// # Example
//
//	g := grid.New(2, 3) // 2 rows, 3 columns, positions 1..6
//	g.Coord(5)          // Coord{Row: 1, Col: 1}
//	g.Manhattan(1, 6)   // 3
//	g.Neighbors(2)      // [1 3 5]
package grid

import "math"

// Grid is a rows × cols board. The zero value has no positions.
type Grid struct {
	Rows int `json:"rows" toml:"rows"`
	Cols int `json:"cols" toml:"cols"`
}

// Coord is a 0-based (row, col) cell coordinate.
type Coord struct {
	Row int
	Col int
}

// New returns a grid with the given dimensions.
func New(rows, cols int) Grid {
	return Grid{Rows: rows, Cols: cols}
}

// Valid reports whether both dimensions are positive and rows*cols fits in
// an int.
func (g Grid) Valid() bool {
	return g.Rows > 0 && g.Cols > 0 && g.Rows <= math.MaxInt/g.Cols
}

// Size returns the number of positions, rows*cols.
func (g Grid) Size() int {
	if !g.Valid() {
		return 0
	}
	return g.Rows * g.Cols
}

// Contains reports whether pos is a position on the grid.
func (g Grid) Contains(pos int) bool {
	return pos >= 1 && pos <= g.Size()
}

// Coord converts a 1-based position to its cell coordinate.
// The result is meaningless for positions outside the grid.
func (g Grid) Coord(pos int) Coord {
	p := pos - 1
	return Coord{Row: p / g.Cols, Col: p % g.Cols}
}

// Position converts a cell coordinate back to a 1-based position.
func (g Grid) Position(row, col int) int {
	return row*g.Cols + col + 1
}

// InBounds reports whether (row, col) lies on the grid.
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Manhattan returns the L1 distance between two positions.
func (g Grid) Manhattan(a, b int) int {
	ca, cb := g.Coord(a), g.Coord(b)
	return abs(ca.Row-cb.Row) + abs(ca.Col-cb.Col)
}

// neighborOffsets lists 4-connected moves in an order that yields
// ascending positions: up, left, right, down.
var neighborOffsets = [4][2]int{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}

// Neighbors returns the on-grid positions at Manhattan distance exactly 1
// from pos, in ascending order.
func (g Grid) Neighbors(pos int) []int {
	c := g.Coord(pos)
	out := make([]int, 0, 4)
	for _, d := range neighborOffsets {
		r, cc := c.Row+d[0], c.Col+d[1]
		if g.InBounds(r, cc) {
			out = append(out, g.Position(r, cc))
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
