package placement

import (
	"slices"
	"testing"

	"github.com/matzehuels/gridplace/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", AlgorithmSequential},
		{"sequential", AlgorithmSequential},
		{"random", AlgorithmRandom},
	}
	for _, tt := range tests {
		p, err := New(tt.name, Options{Seed: 3})
		if err != nil {
			t.Fatalf("New(%q) error: %v", tt.name, err)
		}
		if p.Name() != tt.want {
			t.Errorf("New(%q).Name() = %q, want %q", tt.name, p.Name(), tt.want)
		}
	}

	if _, err := New("annealing", Options{}); !errors.Is(err, errors.ErrCodeUnknownAlgorithm) {
		t.Errorf("New(unknown) error = %v, want UNKNOWN_ALGORITHM", err)
	}
}

func TestNewPassesOptions(t *testing.T) {
	p, _ := New(AlgorithmRandom, Options{Seed: 99})
	if r, ok := p.(Random); !ok || r.Seed != 99 {
		t.Errorf("random placer = %#v, want seed 99", p)
	}

	obs := ObserverFunc(func(Step) {})
	p, _ = New(AlgorithmSequential, Options{Observer: obs})
	if s, ok := p.(Sequential); !ok || s.Observer == nil {
		t.Errorf("sequential placer = %#v, want observer set", p)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if !slices.Equal(names, []string{"random", "sequential"}) {
		t.Errorf("Names() = %v", names)
	}
	for _, n := range names {
		if Title(n) == "" {
			t.Errorf("Title(%q) is empty", n)
		}
	}
	if Title("nope") != "" {
		t.Error("Title(unknown) should be empty")
	}
}
