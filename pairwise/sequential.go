package pairwise

import (
	"context"
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/coclust/matrix"
	"github.com/hupe1980/coclust/similarity"
)

// ErrEmptyInput is returned when no items are supplied.
var ErrEmptyInput = errors.New("pairwise: no items")

// BuildSequential computes the distance matrix of items on the calling
// goroutine. Only Progress and Logger are read from the options.
func BuildSequential[T any](ctx context.Context, items []T, sim similarity.Func[T], optFns ...func(o *Options)) (*matrix.Symmetric, error) {
	return buildSequential(ctx, items, sim, buildOptions(optFns))
}

func buildSequential[T any](ctx context.Context, items []T, sim similarity.Func[T], opts Options) (*matrix.Symmetric, error) {
	n := len(items)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	d := mat.NewDense(n, n, nil)
	p := newProgress(opts, n-1)
	step := p.step()

	p.report(0)
	for i := 0; i < n-1; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := i + 1; j < n; j++ {
			v, err := similarity.Distance(sim, items, i, j)
			if err != nil {
				return nil, err
			}
			d.Set(i, j, v)
			d.Set(j, i, v)
		}
		if i%step == 0 {
			p.report(i)
		}
	}
	p.report(p.total)

	return matrix.Wrap(d)
}
