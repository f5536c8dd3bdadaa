package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gridplace/pkg/cache"
	"github.com/matzehuels/gridplace/pkg/metric"
	"github.com/matzehuels/gridplace/pkg/observability"
	"github.com/matzehuels/gridplace/pkg/placement"
	"github.com/matzehuels/gridplace/pkg/schema"
)

const keyTypePlacement = "placement"

// Runner executes placements with caching.
//
// A Runner holds no per-run state, so one instance may serve many goroutines
// (the HTTP server shares a single Runner).
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL bounds how long stored placements live.
	TTL time.Duration
}

// NewRunner returns a runner. A nil cache disables caching, a nil keyer uses
// cache.DefaultKeyer and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, TTL: cache.TTLPlacement}
}

// Place completes the placement of doc. doc itself is not modified.
//
// Input errors (INVALID_GRID, MALFORMED_MATRIX, INVALID_DIRECTIVE,
// UNKNOWN_ALGORITHM) are reported before any placement work; NO_SEED_ELEMENT
// comes from the sequential placer. Cache failures are logged and never fail
// the run.
func (r *Runner) Place(ctx context.Context, doc *schema.Schema, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	problem := placement.ProblemFromSchema(doc, opts.Directives)
	if err := problem.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		ID:        uuid.NewString(),
		Algorithm: opts.Algorithm,
		Stats: Stats{
			Elements:   problem.Grid.Size(),
			Edges:      len(metric.Edges(problem.Matrix)),
			Directives: len(problem.Directives),
		},
	}
	key := r.Keyer.PlacementKey(ProblemHash(problem), opts.PlacementKeyOpts())

	start := time.Now()
	placed, steps, hit, err := r.placeWithCache(ctx, problem, key, opts)
	if err != nil {
		return nil, err
	}
	result.Placement = placed
	result.CacheHit = hit
	result.Stats.Steps = steps
	result.Stats.PlaceTime = time.Since(start)
	result.Length = metric.TotalWeightedLength(problem.Grid, problem.Matrix, placed)

	out := doc.Clone()
	out.Placement = placed.Clone()
	out.Directives = problem.Directives
	result.Schema = out

	opts.Logger.Info("placed elements",
		"id", result.ID,
		"algorithm", opts.Algorithm,
		"elements", result.Stats.Elements,
		"steps", steps,
		"length", result.Length,
		"cached", hit,
		"duration", result.Stats.PlaceTime)
	return result, nil
}

func (r *Runner) placeWithCache(ctx context.Context, p placement.Problem, key string, opts Options) (schema.Placement, int, bool, error) {
	if !opts.Refresh {
		if cp, ok := r.lookup(ctx, p, key, opts.Logger); ok {
			if opts.Observer != nil {
				opts.Logger.Debug("cached placement, observer skipped", "steps", cp.Steps)
			}
			return cp.Placement, cp.Steps, true, nil
		}
	}

	placer, err := placement.New(opts.Algorithm, placement.Options{Seed: opts.Seed, Observer: opts.Observer})
	if err != nil {
		return nil, 0, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnPlaceStart(ctx, placer.Name(), p.Grid.Size())
	start := time.Now()
	res, err := placer.Place(ctx, p)
	hooks.OnPlaceComplete(ctx, placer.Name(), res.Steps, time.Since(start), err)
	if err != nil {
		return nil, 0, false, fmt.Errorf("%s placement: %w", placer.Name(), err)
	}

	if data, err := json.Marshal(cachedPlacement{Placement: res.Placement, Steps: res.Steps}); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypePlacement, len(data))
		}
	}
	return res.Placement, res.Steps, false, nil
}

// lookup returns a cached placement if one exists and is still valid for p.
func (r *Runner) lookup(ctx context.Context, p placement.Problem, key string, logger *log.Logger) (cachedPlacement, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypePlacement)
		return cachedPlacement{}, false
	}

	var cp cachedPlacement
	if err := json.Unmarshal(data, &cp); err != nil ||
		!cp.Placement.IsTotal(p.Grid.Size()) || cp.Placement.Validate(p.Grid) != nil {
		logger.Debug("discarding unusable cache entry", "key", key)
		observability.Cache().OnCacheMiss(ctx, keyTypePlacement)
		return cachedPlacement{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypePlacement)
	logger.Debug("placement cache hit", "key", key)
	return cp, true
}

// Length validates doc and returns the total weighted wire length of its
// stored placement. Elements without a position are ignored.
func (r *Runner) Length(doc *schema.Schema) (int, error) {
	if err := doc.Validate(); err != nil {
		return 0, err
	}
	return metric.TotalWeightedLength(doc.Grid, doc.Matrix, doc.Placement), nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger gives opts the runner's logger unless it has its own.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
