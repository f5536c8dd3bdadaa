package placement

import (
	"slices"

	"github.com/matzehuels/gridplace/pkg/errors"
)

// Registered algorithm names.
const (
	AlgorithmSequential = "sequential"
	AlgorithmRandom     = "random"

	// DefaultAlgorithm is used when no algorithm is requested.
	DefaultAlgorithm = AlgorithmSequential
)

// Options configures a placer built by [New].
type Options struct {
	// Seed drives [Random]. Ignored by [Sequential].
	Seed uint64

	// Observer receives per-step diagnostics from [Sequential].
	Observer Observer
}

type entry struct {
	title string
	build func(Options) Placer
}

var registry = map[string]entry{
	AlgorithmSequential: {
		title: "sequential connectivity placement",
		build: func(o Options) Placer { return Sequential{Observer: o.Observer} },
	},
	AlgorithmRandom: {
		title: "random placement",
		build: func(o Options) Placer { return Random{Seed: o.Seed} },
	},
}

// New returns the placer registered under name. An empty name selects
// [DefaultAlgorithm].
func New(name string, opts Options) (Placer, error) {
	if name == "" {
		name = DefaultAlgorithm
	}
	e, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownAlgorithm,
			"unknown algorithm %q (must be one of: %v)", name, Names())
	}
	return e.build(opts), nil
}

// Names returns the registered algorithm names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Title returns a human-readable description of an algorithm, or "" if the
// name is not registered.
func Title(name string) string {
	return registry[name].title
}
