package placement

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// Random assigns the non-directive elements to a seeded shuffle of the free
// positions. Unlike [Sequential] it needs no directive to start from.
type Random struct {
	Seed uint64
}

// Name returns "random".
func (Random) Name() string { return AlgorithmRandom }

// Place fixes the directives, then fills the remaining positions. Elements
// are assigned in ascending order, so a seed always yields the same result.
func (r Random) Place(ctx context.Context, p Problem) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("random placement: %w", err)
	}

	n := p.Grid.Size()
	placed := p.Seed()
	taken := make([]bool, n+1)
	for _, pos := range placed {
		taken[pos] = true
	}

	free := make([]int, 0, n-len(placed))
	for pos := 1; pos <= n; pos++ {
		if !taken[pos] {
			free = append(free, pos)
		}
	}
	rng := rand.New(rand.NewPCG(r.Seed, r.Seed))
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	steps := 0
	for e := 1; e <= n; e++ {
		if _, ok := placed[e]; ok {
			continue
		}
		placed[e] = free[steps]
		steps++
	}
	return Result{Placement: placed, Steps: steps}, nil
}
