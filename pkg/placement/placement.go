// Package placement completes partial placements of elements on a grid.
//
// A placement problem is a grid, a symmetric adjacency matrix of connection
// weights, and a set of directives: elements the caller has already fixed to
// specific positions. A [Placer] assigns every remaining element to a free
// position and returns the total placement.
//
// # Algorithms
//
//   - [Sequential]: connectivity-driven greedy growth. Each step picks the
//     unplaced element with the highest net connectivity to what is already
//     placed (score J) and puts it on the free cell next to the placed region
//     that minimizes weighted Manhattan distance to its placed neighbours
//     (score F). Requires at least one directive to grow from.
//   - [Random]: seeded shuffle of the free positions. Useful as a baseline.
//
// Both honour directives verbatim.
//
// # Determinism
//
// Ties are broken by the lowest element number (for J) and the lowest
// position (for F), so a given problem always yields the same placement.
//
// # Observing a Run
//
// [Sequential] reports every step to an optional [Observer]:
//
//	s := placement.Sequential{Observer: placement.ObserverFunc(func(st placement.Step) {
//	    logger.Debug("placed", "element", st.Element, "J", st.J, "position", st.Position, "F", st.F)
//	})}
//	res, err := s.Place(ctx, problem)
package placement

import (
	"context"

	"github.com/matzehuels/gridplace/pkg/grid"
	"github.com/matzehuels/gridplace/pkg/schema"
)

// Directive fixes an element to a position.
type Directive = schema.Directive

// Placer completes a placement problem.
type Placer interface {
	// Name returns the registry name of the algorithm.
	Name() string

	// Place returns a total, injective placement that contains every
	// directive unchanged. The problem's matrix is never modified.
	Place(ctx context.Context, p Problem) (Result, error)
}

// Problem is the input to a placement run.
type Problem struct {
	Grid       grid.Grid
	Matrix     schema.Matrix
	Directives []Directive
}

// Result is the output of a placement run.
type Result struct {
	// Placement maps every element 1..N to a distinct position.
	Placement schema.Placement

	// Steps is the number of elements placed by the algorithm, i.e. N minus
	// the number of directives.
	Steps int
}

// Validate checks the problem at the boundary before any placement work:
// grid dimensions, matrix shape and symmetry, then the directives.
func (p Problem) Validate() error {
	s := schema.Schema{Grid: p.Grid, Matrix: p.Matrix}
	if err := s.Validate(); err != nil {
		return err
	}
	return ValidateDirectives(p.Grid, p.Directives)
}

// Seed returns the directives as a placement.
func (p Problem) Seed() schema.Placement {
	out := make(schema.Placement, len(p.Directives))
	for _, d := range p.Directives {
		out[d.Element] = d.Position
	}
	return out
}

// ProblemFromSchema builds a problem from a schema document. Directives given
// explicitly take precedence over the ones stored in the document.
func ProblemFromSchema(s *schema.Schema, directives []Directive) Problem {
	if directives == nil {
		directives = s.Directives
	}
	return Problem{Grid: s.Grid, Matrix: s.Matrix, Directives: directives}
}

// Step describes one iteration of a sequential run.
type Step struct {
	Iteration  int   // 1-based iteration number
	Element    int   // element chosen this step
	J          int   // its connectivity score
	Candidates []int // free positions adjacent to placed elements, ascending
	Position   int   // position chosen for Element
	F          int   // weighted distance cost at Position
	Placed     int   // number of placed elements after this step
	Unplaced   int   // number of unplaced elements after this step
}

// Observer receives per-step diagnostics from a placement run.
type Observer interface {
	OnStep(Step)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Step)

// OnStep calls f(s).
func (f ObserverFunc) OnStep(s Step) { f(s) }
