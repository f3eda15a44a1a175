package coclust

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/coclust/minhash"
	"github.com/hupe1980/coclust/pairwise"
	"github.com/hupe1980/coclust/partition"
	"github.com/hupe1980/coclust/resource"
)

type options struct {
	workers          int
	maxSlices        int
	seed             int64
	metricsCollector MetricsCollector
	logger           *Logger
	progress         pairwise.ProgressFunc
	resources        *resource.Config
	sketchSize       int
}

func defaultOptions() options {
	return options{
		workers:          runtime.GOMAXPROCS(0),
		maxSlices:        partition.DefaultMaxSlices,
		seed:             1,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		sketchSize:       minhash.DefaultNumPerm,
	}
}

// Option configures an Engine.
type Option func(*options)

// WithWorkers sets the worker pool size for matrix blocks and ensemble runs.
// Values < 1 use runtime.GOMAXPROCS(0). A single worker always builds
// matrices sequentially.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithMaxSlices sets the largest grid side the block partitioner may choose.
// Default: 16.
func WithMaxSlices(s int) Option {
	return func(o *options) {
		if s < 1 {
			s = partition.DefaultMaxSlices
		}
		o.maxSlices = s
	}
}

// WithSeed sets the seed for ensemble k draws and contingency tie-breaks.
// Default: 1.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithProgress installs a progress callback for matrix builds.
//
// Example:
//
//	eng := coclust.New(coclust.WithProgress(func(done, total int) {
//	    fmt.Printf("\r%d/%d", done, total)
//	}))
func WithProgress(fn pairwise.ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithResourceLimits bounds the memory held by in-flight block buffers and
// the number of blocks computed at once.
func WithResourceLimits(cfg resource.Config) Option {
	return func(o *options) {
		o.resources = &cfg
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &coclust.BasicMetricsCollector{}
//	eng := coclust.New(coclust.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Builds: %d, parallel: %d\n", stats.MatrixBuildCount, stats.MatrixBuildParallel)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := coclust.NewJSONLogger(slog.LevelInfo)
//	eng := coclust.New(coclust.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithSketchSize sets the number of MinHash permutations used by
// TextDistances. Default: 128.
func WithSketchSize(numPerm int) Option {
	return func(o *options) {
		o.sketchSize = numPerm
	}
}
