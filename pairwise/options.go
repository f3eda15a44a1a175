package pairwise

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/coclust/partition"
	"github.com/hupe1980/coclust/resource"
)

// ProgressFunc receives coarse progress updates on the building goroutine.
// The final call always has done == total.
type ProgressFunc func(done, total int)

// Options configures a matrix build.
type Options struct {
	// Workers is the size of the block worker pool.
	// Values < 1 use runtime.GOMAXPROCS(0).
	Workers int

	// MaxSlices is the largest grid side considered by the partitioner.
	// Values < 1 use partition.DefaultMaxSlices.
	MaxSlices int

	// Progress, if set, is called roughly every 2% of the work.
	Progress ProgressFunc

	// Logger receives debug output. Nil discards.
	Logger *slog.Logger

	// Resources bounds block buffer memory and concurrent blocks. Nil is unlimited.
	Resources *resource.Controller
}

func buildOptions(optFns []func(o *Options)) Options {
	opts := Options{
		Workers:   runtime.GOMAXPROCS(0),
		MaxSlices: partition.DefaultMaxSlices,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.MaxSlices < 1 {
		opts.MaxSlices = partition.DefaultMaxSlices
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return opts
}
