// Package metric measures the quality of a placement.
//
// The quality of a layout is its total weighted wire length: for every
// connected pair of elements, the connection weight times the Manhattan
// distance between the two elements' grid positions. Lower is better.
//
// Each unordered pair is counted once. Elements that have no position yet
// are skipped, so the metric can be evaluated on partial placements while a
// placement run is in progress.
//
// # Example
//
//	g := grid.New(3, 1)
//	m := schema.NewMatrix(3)
//	m.Connect(1, 2, 1)
//	m.Connect(2, 3, 1)
//	p := schema.Placement{1: 1, 2: 2, 3: 3}
//	metric.TotalWeightedLength(g, m, p) // 2
package metric

import (
	"github.com/matzehuels/gridplace/pkg/grid"
	"github.com/matzehuels/gridplace/pkg/schema"
)

// Edge is a connected, unordered pair of elements with A < B.
type Edge struct {
	A, B   int
	Weight int
}

// Edges returns the connected pairs of m (weight > 0), ordered by A then B.
func Edges(m schema.Matrix) []Edge {
	var out []Edge
	for i, row := range m {
		for j := i + 1; j < len(row); j++ {
			if row[j] > 0 {
				out = append(out, Edge{A: i + 1, B: j + 1, Weight: row[j]})
			}
		}
	}
	return out
}

// PairLength returns weight × distance for elements a and b, and false when
// either element is not placed.
func PairLength(g grid.Grid, m schema.Matrix, p schema.Placement, a, b int) (int, bool) {
	pa, okA := p[a]
	pb, okB := p[b]
	if !okA || !okB {
		return 0, false
	}
	return m[a-1][b-1] * g.Manhattan(pa, pb), true
}

// TotalWeightedLength returns the sum over connected pairs of
// weight × Manhattan distance. Only j > i is visited, so each pair counts once.
func TotalWeightedLength(g grid.Grid, m schema.Matrix, p schema.Placement) int {
	total := 0
	for i, row := range m {
		pi, ok := p[i+1]
		if !ok {
			continue
		}
		for j := i + 1; j < len(row); j++ {
			w := row[j]
			if w <= 0 {
				continue
			}
			pj, ok := p[j+1]
			if !ok {
				continue
			}
			total += w * g.Manhattan(pi, pj)
		}
	}
	return total
}
