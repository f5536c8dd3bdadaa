// Package schema defines the data model shared by the placement engine and
// its consumers: a grid, an adjacency matrix of connection weights, and a
// placement of numbered elements onto grid positions.
//
// # Elements and Positions
//
// A schema with R rows and C columns holds N = R*C elements numbered 1..N
// and N positions numbered 1..N (row-major, see package grid). Row i-1 of the
// adjacency matrix describes element i.
//
// # Placements
//
// A [Placement] maps element → position. It must be injective; it is total
// once a placement run completes but may be partial while one is in progress
// or when a document is still being edited.
//
// # Files
//
// [ReadFile] accepts the editor's JSON documents and a TOML problem format
// (selected by the .toml extension). [WriteFile] always writes JSON:
//
//	{
//	  "cols": 2, "rows": 2,
//	  "nodes": {"1": {"element_number": 1, "grid_position": 1}},
//	  "adjacency_matrix": [[0, 5], [5, 0]],
//	  "directives": [{"element": 1, "position": 1}]
//	}
package schema

import (
	"maps"
	"slices"

	"github.com/matzehuels/gridplace/pkg/errors"
	"github.com/matzehuels/gridplace/pkg/grid"
)

// Placement maps element numbers to grid positions.
type Placement map[int]int

// Directive is a caller-fixed (element, position) pair that a placement run
// must keep unchanged.
type Directive struct {
	Element  int `json:"element" toml:"element"`
	Position int `json:"position" toml:"position"`
}

// Schema is a placement problem or a placed layout.
type Schema struct {
	Grid       grid.Grid
	Matrix     Matrix
	Placement  Placement
	Directives []Directive
}

// New returns an empty rows × cols schema: a zero matrix and the identity
// placement (element i at position i).
func New(rows, cols int) *Schema {
	g := grid.New(rows, cols)
	n := g.Size()
	p := make(Placement, n)
	for i := 1; i <= n; i++ {
		p[i] = i
	}
	return &Schema{
		Grid:      g,
		Matrix:    NewMatrix(n),
		Placement: p,
	}
}

// Size returns the number of elements, which equals the number of positions.
func (s *Schema) Size() int { return s.Grid.Size() }

// Validate checks the grid, the matrix, and the stored placement.
// The placement may be partial.
func (s *Schema) Validate() error {
	if !s.Grid.Valid() {
		return errors.New(errors.ErrCodeInvalidGrid, "grid must have positive dimensions whose product fits in an int, got %dx%d", s.Grid.Rows, s.Grid.Cols)
	}
	if err := ValidateMatrix(s.Matrix, s.Size()); err != nil {
		return err
	}
	return s.Placement.Validate(s.Grid)
}

// Clone returns a deep copy of s.
func (s *Schema) Clone() *Schema {
	return &Schema{
		Grid:       s.Grid,
		Matrix:     s.Matrix.Clone(),
		Placement:  s.Placement.Clone(),
		Directives: slices.Clone(s.Directives),
	}
}

// Clone returns a copy of p. A nil placement clones to an empty one.
func (p Placement) Clone() Placement {
	out := make(Placement, len(p))
	maps.Copy(out, p)
	return out
}

// Elements returns the placed element numbers in ascending order.
func (p Placement) Elements() []int {
	return slices.Sorted(maps.Keys(p))
}

// Occupied returns the inverse mapping, position → element.
func (p Placement) Occupied() map[int]int {
	out := make(map[int]int, len(p))
	for e, pos := range p {
		out[pos] = e
	}
	return out
}

// IsTotal reports whether every element 1..n has a position.
func (p Placement) IsTotal(n int) bool {
	if len(p) != n {
		return false
	}
	for e := 1; e <= n; e++ {
		if _, ok := p[e]; !ok {
			return false
		}
	}
	return true
}

// Validate checks that every entry is on the grid and that no two elements
// share a position.
func (p Placement) Validate(g grid.Grid) error {
	n := g.Size()
	seen := make(map[int]int, len(p))
	for _, e := range p.Elements() {
		pos := p[e]
		if e < 1 || e > n {
			return errors.New(errors.ErrCodeInvalidPlacement, "element %d out of range (1..%d)", e, n)
		}
		if !g.Contains(pos) {
			return errors.New(errors.ErrCodeInvalidPlacement, "element %d has position %d out of range (1..%d)", e, pos, n)
		}
		if other, dup := seen[pos]; dup {
			return errors.New(errors.ErrCodeInvalidPlacement, "elements %d and %d share position %d", other, e, pos)
		}
		seen[pos] = e
	}
	return nil
}
