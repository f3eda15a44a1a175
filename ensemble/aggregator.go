package ensemble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/coclust/matrix"
)

const (
	// DefaultIterations is the default number of clustering runs.
	DefaultIterations = 8

	// DefaultMinK is the default inclusive lower bound of the random k.
	DefaultMinK = 5

	// DefaultMaxK is the default exclusive upper bound of the random k.
	DefaultMaxK = 10
)

var (
	// ErrEmptyInput is returned when the dataset has no items.
	ErrEmptyInput = errors.New("ensemble: no items")

	// ErrInvalidRange is returned unless 1 <= MinK < MaxK.
	ErrInvalidRange = errors.New("ensemble: cluster range must satisfy 1 <= min_k < max_k")

	// ErrInvalidIterations is returned when fewer than one iteration is configured.
	ErrInvalidIterations = errors.New("ensemble: iterations must be >= 1")

	// ErrNilClusterer is returned when no clustering template is supplied.
	ErrNilClusterer = errors.New("ensemble: clusterer is nil")

	// ErrInvalidLabels is returned when a run produces an unusable label assignment.
	ErrInvalidLabels = errors.New("ensemble: invalid label assignment")
)

// IterationStats describes one finished run.
type IterationStats struct {
	Iteration int
	K         int
	Clusters  int
	Duration  time.Duration
	Err       error
}

// Options configures an Aggregator.
type Options struct {
	// Iterations is the number of clustering runs.
	Iterations int

	// MinK and MaxK bound the random cluster count: k is drawn from [MinK, MaxK).
	MinK int
	MaxK int

	// Strategy selects how votes become the final matrix.
	Strategy Strategy

	// Seed derives the per-run generators.
	Seed int64

	// Workers bounds concurrent runs. Values < 1 use runtime.GOMAXPROCS(0).
	Workers int

	// Logger receives debug output. Nil discards.
	Logger *slog.Logger

	// OnIteration, if set, is called after every run from the run's goroutine.
	// It must be safe for concurrent use.
	OnIteration func(IterationStats)
}

// Aggregator accumulates co-membership evidence from repeated clustering runs.
// It is immutable and Fit may be called concurrently.
type Aggregator[D any] struct {
	template Clusterer[D]
	opts     Options
}

// New creates an Aggregator around a clustering template.
func New[D any](template Clusterer[D], optFns ...func(o *Options)) (*Aggregator[D], error) {
	opts := Options{
		Iterations: DefaultIterations,
		MinK:       DefaultMinK,
		MaxK:       DefaultMaxK,
		Strategy:   CoAssociation,
		Seed:       1,
		Workers:    runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if template == nil {
		return nil, ErrNilClusterer
	}
	if opts.Iterations < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIterations, opts.Iterations)
	}
	if opts.MinK < 1 || opts.MinK >= opts.MaxK {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, opts.MinK, opts.MaxK)
	}
	if opts.Strategy == nil {
		opts.Strategy = CoAssociation
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Aggregator[D]{template: template, opts: opts}, nil
}

// Options returns the effective configuration.
func (a *Aggregator[D]) Options() Options {
	return a.opts
}

// Fit runs all iterations over data (n items) and returns the consensus
// matrix. A failing run aborts the whole aggregation; no partial result is
// returned.
func (a *Aggregator[D]) Fit(ctx context.Context, data D, n int) (*matrix.Symmetric, error) {
	if n <= 0 {
		return nil, ErrEmptyInput
	}

	// Draw every run's seed before any run starts so that the k sequence is
	// fixed by Seed alone.
	master := rand.New(rand.NewSource(a.opts.Seed)) // nolint gosec
	seeds := make([]int64, a.opts.Iterations)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	votes := NewVotes(n, a.opts.Iterations)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Workers)

	for it, seed := range seeds {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return a.run(gctx, data, n, it, seed, votes)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.opts.Logger.Debug("ensemble finished",
		"strategy", a.opts.Strategy.String(),
		"iterations", a.opts.Iterations,
		"n", n,
	)

	return a.opts.Strategy.Finalize(votes)
}

func (a *Aggregator[D]) run(ctx context.Context, data D, n, it int, seed int64, votes *Votes) error {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed)) // nolint gosec
	k := a.KFor(rng)

	labels, err := a.template.Clone().Fit(ctx, data, k, rng)
	if err == nil {
		err = labels.validate(n)
	}

	stats := IterationStats{Iteration: it, K: k, Duration: time.Since(start)}
	if err != nil {
		stats.Err = &ClustererError{Iteration: it, K: k, cause: err}
		a.observe(stats)
		return stats.Err
	}

	votes.Add(labels)

	stats.Clusters = labels.Distinct()
	stats.Duration = time.Since(start)
	a.observe(stats)
	return nil
}

// KFor draws a cluster count from [MinK, MaxK) using rng.
func (a *Aggregator[D]) KFor(rng *rand.Rand) int {
	return a.opts.MinK + rng.Intn(a.opts.MaxK-a.opts.MinK)
}

func (a *Aggregator[D]) observe(stats IterationStats) {
	a.opts.Logger.Debug("ensemble iteration",
		"iteration", stats.Iteration,
		"k", stats.K,
		"clusters", stats.Clusters,
		"duration", stats.Duration,
		"error", stats.Err,
	)
	if a.opts.OnIteration != nil {
		a.opts.OnIteration(stats)
	}
}
