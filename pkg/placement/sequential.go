package placement

import (
	"context"
	"fmt"

	"github.com/matzehuels/gridplace/pkg/errors"
	"github.com/matzehuels/gridplace/pkg/grid"
	"github.com/matzehuels/gridplace/pkg/schema"
)

// Sequential is the sequential connectivity placement heuristic.
//
// Each iteration:
//
//  1. For every unplaced u, J(u) = Σ_placed w[u][p] − Σ_unplaced w[u][v].
//     The element with the largest J is selected (lowest number on ties).
//  2. The candidate cells are the free positions at distance 1 from any
//     occupied position.
//  3. For every candidate c, F(c) = Σ_placed w[sel][v] · dist(c, pos[v]).
//     The candidate with the smallest F wins (lowest position on ties).
//
// The heuristic is greedy and never revisits a decision.
type Sequential struct {
	// Observer, if set, is called after every placed element.
	Observer Observer
}

// Name returns "sequential".
func (Sequential) Name() string { return AlgorithmSequential }

// Place runs the heuristic. It fails with NO_SEED_ELEMENT when there is no
// placed element to grow from, and checks ctx once per iteration.
func (s Sequential) Place(ctx context.Context, p Problem) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	st := newSeqState(p)
	steps := 0
	for len(st.unplaced) > 0 {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("sequential placement: %w", err)
		}

		elem, j := st.selectElement()
		cands := st.frontier()
		if len(cands) == 0 {
			return Result{}, errors.New(errors.ErrCodeNoSeedElement,
				"no placed element to grow from: %d element(s) unplaced and no directive given", len(st.unplaced))
		}
		pos, f := st.selectPosition(elem, cands)
		st.place(elem, pos)
		steps++

		if s.Observer != nil {
			s.Observer.OnStep(Step{
				Iteration:  steps,
				Element:    elem,
				J:          j,
				Candidates: cands,
				Position:   pos,
				F:          f,
				Placed:     len(st.placement),
				Unplaced:   len(st.unplaced),
			})
		}
	}

	return Result{Placement: st.placement, Steps: steps}, nil
}

// seqState is the private bookkeeping of one run.
type seqState struct {
	g grid.Grid
	m schema.Matrix

	placement schema.Placement
	occupied  []int // position → element, 0 when free; index 0 unused
	unplaced  []int // ascending element numbers

	// placedSum[u] is Σ w[u][v] over placed v; rowSum[u] is Σ w[u][v] over
	// all v ≠ u. Both are indexed by element number.
	placedSum []int
	rowSum    []int
}

func newSeqState(p Problem) *seqState {
	n := p.Grid.Size()
	st := &seqState{
		g:         p.Grid,
		m:         p.Matrix,
		placement: make(schema.Placement, n),
		occupied:  make([]int, n+1),
		placedSum: make([]int, n+1),
		rowSum:    make([]int, n+1),
	}
	for u := 1; u <= n; u++ {
		for v := 1; v <= n; v++ {
			if v != u {
				st.rowSum[u] += p.Matrix[u-1][v-1]
			}
		}
	}
	for _, d := range p.Directives {
		st.place(d.Element, d.Position)
	}
	for e := 1; e <= n; e++ {
		if _, ok := st.placement[e]; !ok {
			st.unplaced = append(st.unplaced, e)
		}
	}
	return st
}

// place records elem at pos, drops it from the unplaced list and updates the
// running connectivity sums.
func (st *seqState) place(elem, pos int) {
	st.placement[elem] = pos
	st.occupied[pos] = elem
	for u := 1; u < len(st.placedSum); u++ {
		if u != elem {
			st.placedSum[u] += st.m[u-1][elem-1]
		}
	}
	for i, u := range st.unplaced {
		if u == elem {
			st.unplaced = append(st.unplaced[:i], st.unplaced[i+1:]...)
			break
		}
	}
}

// score returns J(u). Σ_unplaced w[u][v] is rowSum − placedSum because
// every v ≠ u is either placed or unplaced.
func (st *seqState) score(u int) int {
	return st.placedSum[u] - (st.rowSum[u] - st.placedSum[u])
}

func (st *seqState) selectElement() (elem, j int) {
	elem = st.unplaced[0]
	j = st.score(elem)
	for _, u := range st.unplaced[1:] {
		if s := st.score(u); s > j {
			elem, j = u, s
		}
	}
	return elem, j
}

// frontier returns the free positions adjacent to an occupied one, ascending.
func (st *seqState) frontier() []int {
	var out []int
	for pos := 1; pos < len(st.occupied); pos++ {
		if st.occupied[pos] != 0 {
			continue
		}
		for _, nb := range st.g.Neighbors(pos) {
			if st.occupied[nb] != 0 {
				out = append(out, pos)
				break
			}
		}
	}
	return out
}

func (st *seqState) cost(elem, pos int) int {
	f := 0
	for v, vp := range st.placement {
		if w := st.m[elem-1][v-1]; w != 0 {
			f += w * st.g.Manhattan(pos, vp)
		}
	}
	return f
}

func (st *seqState) selectPosition(elem int, cands []int) (pos, f int) {
	pos = cands[0]
	f = st.cost(elem, pos)
	for _, c := range cands[1:] {
		if cf := st.cost(elem, c); cf < f {
			pos, f = c, cf
		}
	}
	return pos, f
}
