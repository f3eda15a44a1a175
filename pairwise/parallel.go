package pairwise

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/coclust/matrix"
	"github.com/hupe1980/coclust/partition"
	"github.com/hupe1980/coclust/similarity"
)

// bytesPerValue is the size of one float64 matrix cell.
const bytesPerValue = 8

type blockResult struct {
	id int
	m  *mat.Dense
}

// Build computes the distance matrix of items on a pool of opts.Workers
// goroutines. If the input cannot be partitioned it computes sequentially.
// The first failing block cancels the remaining ones and its error is
// returned; no partial matrix is produced.
func Build[T any](ctx context.Context, items []T, sim similarity.Func[T], optFns ...func(o *Options)) (*matrix.Symmetric, error) {
	opts := buildOptions(optFns)

	n := len(items)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	grid, err := partition.Plan(n, opts.MaxSlices, opts.Workers)
	if err != nil {
		opts.Logger.Debug("falling back to sequential build", "n", n, "workers", opts.Workers, "reason", err)
		return buildSequential(ctx, items, sim, opts)
	}

	opts.Logger.Debug("parallel build",
		"n", n,
		"slices", grid.Slices(),
		"blocks", grid.Blocks(),
		"workers", opts.Workers,
	)

	size := grid.Size()
	blockBytes := int64(size * size * bytesPerValue)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	out := make(chan blockResult, opts.Workers)
	errc := make(chan error, 1)

	go func() {
		for b := range grid.All() {
			if gctx.Err() != nil {
				break
			}
			id := b.ID
			g.Go(func() error {
				return computeBlock(gctx, items, sim, grid, id, blockBytes, opts, out)
			})
		}
		errc <- g.Wait()
		close(out)
	}()

	d := mat.NewDense(n, n, nil)
	p := newProgress(opts, grid.Blocks())
	p.report(0)

	done := 0
	for r := range out {
		// Placement is keyed by the worker id, never by arrival order.
		row, col, err := grid.Coord(r.id)
		if err != nil {
			opts.Resources.ReleaseMemory(blockBytes)
			continue
		}
		r0, r1, c0, c1 := grid.Bounds(row, col)
		d.Slice(r0, r1, c0, c1).(*mat.Dense).Copy(r.m)
		opts.Resources.ReleaseMemory(blockBytes)

		done++
		if done < grid.Blocks() {
			p.report(done)
		}
	}

	if err := <-errc; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.report(p.total)

	return matrix.Wrap(matrix.MirrorUpper(d))
}

// computeBlock fills the dense block of worker id. Diagonal blocks are
// computed in full; their lower half is discarded during assembly.
func computeBlock[T any](
	ctx context.Context,
	items []T,
	sim similarity.Func[T],
	grid partition.Grid,
	id int,
	blockBytes int64,
	opts Options,
	out chan<- blockResult,
) error {
	if err := opts.Resources.AcquireWorker(ctx); err != nil {
		return err
	}
	defer opts.Resources.ReleaseWorker()

	row, col, err := grid.Coord(id)
	if err != nil {
		return err
	}

	if err := opts.Resources.AcquireMemory(ctx, blockBytes); err != nil {
		return err
	}

	r0, r1, c0, c1 := grid.Bounds(row, col)
	m := mat.NewDense(r1-r0, c1-c0, nil)
	for i := r0; i < r1; i++ {
		if err := ctx.Err(); err != nil {
			opts.Resources.ReleaseMemory(blockBytes)
			return err
		}
		for j := c0; j < c1; j++ {
			v, err := similarity.Distance(sim, items, i, j)
			if err != nil {
				opts.Resources.ReleaseMemory(blockBytes)
				return err
			}
			m.Set(i-r0, j-c0, v)
		}
	}

	select {
	case out <- blockResult{id: id, m: m}:
		return nil
	case <-ctx.Done():
		opts.Resources.ReleaseMemory(blockBytes)
		return ctx.Err()
	}
}
