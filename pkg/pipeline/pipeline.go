// Package pipeline runs a placement end to end: validate the problem, place
// it (through the result cache), and measure the outcome.
//
// The CLI and the HTTP API both go through a [Runner], so they share the same
// defaults, cache keys and logging.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Place(ctx, doc, pipeline.Options{Algorithm: "sequential"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Length)
package pipeline

import (
	"cmp"
	"encoding/json"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridplace/pkg/cache"
	"github.com/matzehuels/gridplace/pkg/errors"
	"github.com/matzehuels/gridplace/pkg/placement"
	"github.com/matzehuels/gridplace/pkg/schema"
)

// DefaultSeed seeds the random placer when no seed is given.
const DefaultSeed = uint64(42)

// Options configures one run.
type Options struct {
	Algorithm string `json:"algorithm,omitempty"`
	Seed      uint64 `json:"seed,omitempty"`

	// Directives overrides the directives stored in the document. nil keeps
	// the document's own.
	Directives []placement.Directive `json:"directives,omitempty"`

	// Refresh skips the cache lookup; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	// Observer sees each step of a fresh placement. Cached results replay no
	// steps; use Refresh to force a traced run.
	Observer placement.Observer `json:"-"`
}

// ValidateAndSetDefaults fills in defaults and rejects unknown algorithms.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Algorithm == "" {
		o.Algorithm = placement.DefaultAlgorithm
	}
	if placement.Title(o.Algorithm) == "" {
		return errors.New(errors.ErrCodeUnknownAlgorithm,
			"unknown algorithm %q (must be one of: %v)", o.Algorithm, placement.Names())
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// PlacementKeyOpts returns the cache key options. The seed only takes part
// for algorithms that use it, so sequential runs share one entry.
func (o *Options) PlacementKeyOpts() cache.PlacementKeyOpts {
	k := cache.PlacementKeyOpts{Algorithm: o.Algorithm}
	if o.Algorithm == placement.AlgorithmRandom {
		k.Seed = o.Seed
	}
	return k
}

// Result is the outcome of [Runner.Place].
type Result struct {
	// ID identifies this run in logs and API responses.
	ID string

	Algorithm string

	// Schema is a copy of the input document carrying the new placement.
	Schema *schema.Schema

	Placement schema.Placement

	// Length is the total weighted wire length of Placement.
	Length int

	Stats Stats

	// CacheHit is true when Placement came from the cache.
	CacheHit bool
}

// Stats describes a run.
type Stats struct {
	Elements   int
	Edges      int
	Directives int
	Steps      int
	PlaceTime  time.Duration
}

// ProblemHash returns the content hash of a problem. Directive order does not
// matter.
func ProblemHash(p placement.Problem) string {
	ds := slices.Clone(p.Directives)
	slices.SortFunc(ds, func(a, b placement.Directive) int { return cmp.Compare(a.Element, b.Element) })
	data, _ := json.Marshal(struct {
		Rows       int                   `json:"rows"`
		Cols       int                   `json:"cols"`
		Matrix     schema.Matrix         `json:"matrix"`
		Directives []placement.Directive `json:"directives"`
	}{p.Grid.Rows, p.Grid.Cols, p.Matrix, ds})
	return cache.Hash(data)
}

// cachedPlacement is the cache entry format.
type cachedPlacement struct {
	Placement schema.Placement `json:"placement"`
	Steps     int              `json:"steps"`
}
