package coclust

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/coclust/contingency"
	"github.com/hupe1980/coclust/ensemble"
	"github.com/hupe1980/coclust/matrix"
	"github.com/hupe1980/coclust/minhash"
	"github.com/hupe1980/coclust/pairwise"
	"github.com/hupe1980/coclust/partition"
	"github.com/hupe1980/coclust/resource"
	"github.com/hupe1980/coclust/shingle"
	"github.com/hupe1980/coclust/similarity"
)

// Engine runs matrix builds, ensembles and scorings with a shared
// configuration. It is safe for concurrent use.
type Engine struct {
	opts      options
	resources *resource.Controller
	hasher    *minhash.Hasher
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	e := &Engine{
		opts: opts,
		hasher: minhash.New(func(o *minhash.Options) {
			o.NumPerm = opts.sketchSize
		}),
	}
	if opts.resources != nil {
		e.resources = resource.NewController(*opts.resources)
	}
	return e
}

// Workers returns the configured pool size.
func (e *Engine) Workers() int { return e.opts.workers }

// Seed returns the configured seed.
func (e *Engine) Seed() int64 { return e.opts.seed }

// Logger returns the engine's logger.
func (e *Engine) Logger() *Logger { return e.opts.logger }

// DistanceMatrix computes D[i][j] = 1 - sim(items[i], items[j]) on the
// engine's worker pool. The result is symmetric with a zero diagonal.
func DistanceMatrix[T any](ctx context.Context, e *Engine, items []T, sim similarity.Func[T]) (*matrix.Symmetric, error) {
	n := len(items)
	log := e.opts.logger.WithRunID(uuid.NewString()).WithWorkers(e.opts.workers)

	blocks, parallel := 0, false
	if grid, err := partition.Plan(n, e.opts.maxSlices, e.opts.workers); err == nil {
		blocks, parallel = grid.Blocks(), true
	}

	start := time.Now()
	d, err := pairwise.Build(ctx, items, sim, func(o *pairwise.Options) {
		o.Workers = e.opts.workers
		o.MaxSlices = e.opts.maxSlices
		o.Progress = e.opts.progress
		o.Logger = log.Logger
		o.Resources = e.resources
	})
	err = translateError(err)
	elapsed := time.Since(start)

	e.opts.metricsCollector.RecordMatrixBuild(n, blocks, parallel, elapsed, err)
	log.LogMatrixBuild(ctx, n, blocks, parallel, elapsed, err)

	if err != nil {
		return nil, err
	}
	return d, nil
}

// TextDistances estimates 1 - Jaccard over k-word shingles of texts with
// MinHash sketches.
func (e *Engine) TextDistances(ctx context.Context, texts []string, shingleLength int) (*matrix.Symmetric, error) {
	if err := shingle.Validate(shingleLength); err != nil {
		return nil, translateError(err)
	}
	sigs := e.hasher.SketchTexts(texts, shingleLength)
	return DistanceMatrix(ctx, e, sigs, e.hasher.Similarity)
}

// ExactTextDistances computes 1 - Jaccard over k-word shingles exactly.
func (e *Engine) ExactTextDistances(ctx context.Context, texts []string, shingleLength int) (*matrix.Symmetric, error) {
	if err := shingle.Validate(shingleLength); err != nil {
		return nil, translateError(err)
	}
	return DistanceMatrix(ctx, e, similarity.NewSets(texts, shingleLength), similarity.Jaccard)
}

// Ensemble runs evidence accumulation over n items of data. The engine
// supplies seed, workers and logger; optFns may override any of them.
func Ensemble[D any](ctx context.Context, e *Engine, data D, n int, template ensemble.Clusterer[D], optFns ...func(o *ensemble.Options)) (*matrix.Symmetric, error) {
	log := e.opts.logger.WithRunID(uuid.NewString()).WithWorkers(e.opts.workers)

	fns := make([]func(o *ensemble.Options), 0, len(optFns)+2)
	fns = append(fns, func(o *ensemble.Options) {
		o.Seed = e.opts.seed
		o.Workers = e.opts.workers
		o.Logger = log.Logger
	})
	fns = append(fns, optFns...)
	fns = append(fns, func(o *ensemble.Options) {
		next := o.OnIteration
		o.OnIteration = func(s ensemble.IterationStats) {
			e.opts.metricsCollector.RecordIteration(s.K, s.Duration, s.Err)
			log.LogIteration(ctx, s.Iteration, s.K, s.Clusters, s.Duration, s.Err)
			if next != nil {
				next(s)
			}
		}
	})

	agg, err := ensemble.New(template, fns...)
	if err != nil {
		return nil, translateError(err)
	}
	opts := agg.Options()

	start := time.Now()
	m, err := agg.Fit(ctx, data, n)
	err = translateError(err)
	log.LogEnsemble(ctx, opts.Strategy.String(), opts.Iterations, n, time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return m, nil
}

// Evaluate scores labels against categories. Ties are broken with a
// generator seeded from the engine seed, so repeated calls agree.
// ErrDegenerateAssignment is returned when labels hold fewer than two
// clusters; callers should skip that run.
func (e *Engine) Evaluate(categories []string, labels []int) (*contingency.Result, error) {
	rng := rand.New(rand.NewSource(e.opts.seed)) // nolint gosec

	res, err := contingency.Score(categories, labels, rng)
	err = translateError(err)

	e.opts.metricsCollector.RecordScore(errorsIsDegenerate(err))

	ctx := context.Background()
	if err != nil {
		e.opts.logger.LogScore(ctx, 0, 0, err)
		return nil, err
	}
	e.opts.logger.LogScore(ctx, len(res.Categories), res.Accuracy(), nil)
	return res, nil
}
