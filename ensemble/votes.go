package ensemble

import (
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
)

// Votes counts, per unordered pair, how many runs co-clustered it.
// Counters are updated lock-free by concurrent runs.
type Votes struct {
	n          int
	iterations int
	counts     []atomic.Uint32 // packed strict upper triangle
}

// NewVotes allocates counters for n items over the given number of runs.
func NewVotes(n, iterations int) *Votes {
	return &Votes{
		n:          n,
		iterations: iterations,
		counts:     make([]atomic.Uint32, n*(n-1)/2),
	}
}

// N returns the number of items.
func (v *Votes) N() int { return v.n }

// Iterations returns the configured number of runs.
func (v *Votes) Iterations() int { return v.iterations }

// Count returns the votes for pair (i, j). The diagonal has none.
func (v *Votes) Count(i, j int) int {
	if i == j {
		return 0
	}
	if i > j {
		i, j = j, i
	}
	return int(v.counts[v.index(i, j)].Load())
}

func (v *Votes) index(i, j int) int {
	return i*v.n - i*(i+1)/2 + (j - i - 1)
}

// Add records one run. Items sharing a label are grouped into membership
// bitmaps and every pair inside a group receives exactly one vote.
func (v *Votes) Add(labels Labels) {
	groups := make(map[int]*roaring.Bitmap)
	for i, id := range labels {
		bm, ok := groups[id]
		if !ok {
			bm = roaring.New()
			groups[id] = bm
		}
		bm.Add(uint32(i))
	}

	for _, bm := range groups {
		members := bm.ToArray()
		for a, i := range members {
			for _, j := range members[a+1:] {
				v.counts[v.index(int(i), int(j))].Add(1)
			}
		}
	}
}
