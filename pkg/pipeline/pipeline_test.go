package pipeline

import (
	"testing"

	"github.com/matzehuels/gridplace/pkg/errors"
	"github.com/matzehuels/gridplace/pkg/grid"
	"github.com/matzehuels/gridplace/pkg/placement"
	"github.com/matzehuels/gridplace/pkg/schema"
)

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.Algorithm != placement.DefaultAlgorithm {
		t.Errorf("Algorithm = %q, want %q", o.Algorithm, placement.DefaultAlgorithm)
	}
	if o.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", o.Seed, DefaultSeed)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	bad := Options{Algorithm: "annealing"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeUnknownAlgorithm) {
		t.Errorf("unknown algorithm: err = %v", err)
	}
}

func TestPlacementKeyOpts(t *testing.T) {
	tests := []struct {
		opts     Options
		wantSeed uint64
	}{
		{Options{Algorithm: "sequential", Seed: 7}, 0},
		{Options{Algorithm: "random", Seed: 7}, 7},
	}
	for _, tt := range tests {
		k := tt.opts.PlacementKeyOpts()
		if k.Algorithm != tt.opts.Algorithm || k.Seed != tt.wantSeed {
			t.Errorf("PlacementKeyOpts(%+v) = %+v", tt.opts, k)
		}
	}
}

func TestProblemHash(t *testing.T) {
	m := schema.NewMatrix(4)
	m.Connect(1, 2, 5)
	base := placement.Problem{
		Grid:       grid.New(2, 2),
		Matrix:     m,
		Directives: []placement.Directive{{Element: 1, Position: 1}, {Element: 3, Position: 4}},
	}
	h := ProblemHash(base)

	reordered := base
	reordered.Directives = []placement.Directive{{Element: 3, Position: 4}, {Element: 1, Position: 1}}
	if ProblemHash(reordered) != h {
		t.Error("directive order should not change the hash")
	}

	other := base
	other.Matrix = m.Clone()
	other.Matrix.Connect(3, 4, 1)
	if ProblemHash(other) == h {
		t.Error("different matrices should hash differently")
	}

	reshaped := base
	reshaped.Grid = grid.New(1, 4)
	if ProblemHash(reshaped) == h {
		t.Error("different grids should hash differently")
	}
}
