package partition

import (
	"errors"
	"fmt"
	"iter"
)

const (
	// DefaultMaxSlices is the largest slice count Plan considers by default.
	DefaultMaxSlices = 16

	// MinSlices is the smallest slice count Plan accepts.
	MinSlices = 3
)

var (
	// ErrNoPartition signals that no grid fits; callers compute sequentially.
	ErrNoPartition = errors.New("partition: no valid slice count")

	// ErrInvalidBlock indicates a worker id or coordinate outside the grid.
	ErrInvalidBlock = errors.New("partition: invalid block")
)

// Grid is an s×s block layout over n items.
type Grid struct {
	n      int
	slices int
}

// Block is one upper-triangular grid cell.
type Block struct {
	ID  int // 1-based worker id
	Row int // row block index
	Col int // column block index
}

// Plan searches slice counts from maxSlices down to MinSlices and returns the
// grid for the largest s with n%s == 0 and n/s > 1. It returns ErrNoPartition
// when no s qualifies or when fewer than two workers are available.
func Plan(n, maxSlices, workers int) (Grid, error) {
	if workers <= 1 {
		return Grid{}, fmt.Errorf("%w: %d worker(s)", ErrNoPartition, workers)
	}
	for s := maxSlices; s >= MinSlices; s-- {
		if n%s == 0 && n/s > 1 {
			return Grid{n: n, slices: s}, nil
		}
	}
	return Grid{}, fmt.Errorf("%w: n=%d, max slices=%d", ErrNoPartition, n, maxSlices)
}

// N returns the number of items covered by the grid.
func (g Grid) N() int { return g.n }

// Slices returns the number of slices per side.
func (g Grid) Slices() int { return g.slices }

// Size returns the side length of every block.
func (g Grid) Size() int { return g.n / g.slices }

// Blocks returns the number of upper-triangular blocks, s(s+1)/2.
func (g Grid) Blocks() int { return g.slices * (g.slices + 1) / 2 }

// Coord recovers the (row, col) block coordinate of worker id by walking the
// enumeration order.
func (g Grid) Coord(id int) (row, col int, err error) {
	count := 0
	for i := range g.slices {
		for j := i; j < g.slices; j++ {
			count++
			if count == id {
				return i, j, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("%w: worker id %d not in 1..%d", ErrInvalidBlock, id, g.Blocks())
}

// WorkerID returns the worker id assigned to block (row, col).
func (g Grid) WorkerID(row, col int) (int, error) {
	if row < 0 || col < row || col >= g.slices {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrInvalidBlock, row, col)
	}
	// Blocks in rows 0..row-1 plus the offset inside row.
	before := row*g.slices - row*(row-1)/2
	return before + (col - row) + 1, nil
}

// Bounds returns the half-open item ranges [r0,r1) x [c0,c1) of a block.
func (g Grid) Bounds(row, col int) (r0, r1, c0, c1 int) {
	size := g.Size()
	return row * size, (row + 1) * size, col * size, (col + 1) * size
}

// All yields every block in worker id order.
func (g Grid) All() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		id := 0
		for i := range g.slices {
			for j := i; j < g.slices; j++ {
				id++
				if !yield(Block{ID: id, Row: i, Col: j}) {
					return
				}
			}
		}
	}
}
