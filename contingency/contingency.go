package contingency

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyInput is returned when there is nothing to score.
	ErrEmptyInput = errors.New("contingency: no items")

	// ErrLengthMismatch is returned when categories and labels differ in length.
	ErrLengthMismatch = errors.New("contingency: categories and labels differ in length")

	// ErrDegenerateAssignment is returned when the labels hold fewer than two
	// distinct clusters. It is recoverable: callers skip scoring that run.
	ErrDegenerateAssignment = errors.New("contingency: fewer than two distinct clusters")

	// ErrShapeMismatch is returned by Mean when results have different categories.
	ErrShapeMismatch = errors.New("contingency: results have different shapes")
)

// Result is the outcome of one scoring.
type Result struct {
	// Categories in first-seen order.
	Categories []string

	// Clusters lists the distinct cluster ids in first-seen order.
	Clusters []int

	// Assigned[r] is the cluster chosen for Categories[r].
	Assigned []int

	// Counts[r] is the number of items in Categories[r].
	Counts []int

	// Matrix is len(Categories) x len(Categories).
	Matrix *mat.Dense
}

// Score matches categories to clusters. rng breaks ties between equally good
// clusters and is consulted only when a tie occurs; nil uses a generator
// seeded with 1.
func Score(categories []string, labels []int, rng *rand.Rand) (*Result, error) {
	if len(categories) != len(labels) {
		return nil, fmt.Errorf("%w: %d categories, %d labels", ErrLengthMismatch, len(categories), len(labels))
	}
	if len(categories) == 0 {
		return nil, ErrEmptyInput
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1)) // nolint gosec
	}

	res := &Result{}

	catIdx := make(map[string]int)
	clusterIdx := make(map[int]int)
	for i, c := range categories {
		if _, ok := catIdx[c]; !ok {
			catIdx[c] = len(res.Categories)
			res.Categories = append(res.Categories, c)
		}
		if _, ok := clusterIdx[labels[i]]; !ok {
			clusterIdx[labels[i]] = len(res.Clusters)
			res.Clusters = append(res.Clusters, labels[i])
		}
	}

	if len(res.Clusters) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrDegenerateAssignment, len(res.Clusters))
	}

	nc := len(res.Categories)
	res.Counts = make([]int, nc)
	res.Assigned = make([]int, nc)

	used := make([]bool, len(res.Clusters))
	hist := make([]int, len(res.Clusters))
	ties := make([]int, 0, len(res.Clusters))

	for r, cat := range res.Categories {
		clear(hist)
		for i, c := range categories {
			if c != cat {
				continue
			}
			res.Counts[r]++
			if k := clusterIdx[labels[i]]; !used[k] {
				hist[k]++
			}
		}

		best := 0
		for _, h := range hist {
			best = max(best, h)
		}
		ties = ties[:0]
		for k, h := range hist {
			if h == best {
				ties = append(ties, k)
			}
		}

		pick := ties[0]
		if len(ties) > 1 {
			pick = ties[rng.Intn(len(ties))]
		}
		used[pick] = true
		res.Assigned[r] = res.Clusters[pick]
	}

	res.Matrix = mat.NewDense(nc, nc, nil)
	for i, c := range categories {
		r := catIdx[c]
		for col, cl := range res.Assigned {
			if labels[i] == cl {
				res.Matrix.Set(r, col, res.Matrix.At(r, col)+1)
			}
		}
	}
	for r, n := range res.Counts {
		row := res.Matrix.RawRowView(r)
		for col := range row {
			row[col] /= float64(n)
		}
	}

	return res, nil
}

// Diagonal returns each category's agreement with its own cluster.
func (r *Result) Diagonal() []float64 {
	out := make([]float64, len(r.Categories))
	for i := range out {
		out[i] = r.Matrix.At(i, i)
	}
	return out
}

// Accuracy is the fraction of all items that fall in their category's
// assigned cluster.
func (r *Result) Accuracy() float64 {
	weights := make([]float64, len(r.Counts))
	for i, n := range r.Counts {
		weights[i] = float64(n)
	}
	return stat.Mean(r.Diagonal(), weights)
}

// Mean averages the agreement matrices of several results element-wise.
// All results must have the same number of categories.
func Mean(results ...*Result) (*mat.Dense, error) {
	if len(results) == 0 {
		return nil, ErrEmptyInput
	}

	r, c := results[0].Matrix.Dims()
	sum := mat.NewDense(r, c, nil)
	for i, res := range results {
		rr, cc := res.Matrix.Dims()
		if rr != r || cc != c {
			return nil, fmt.Errorf("%w: result %d is %dx%d, want %dx%d", ErrShapeMismatch, i, rr, cc, r, c)
		}
		sum.Add(sum, res.Matrix)
	}
	sum.Scale(1/float64(len(results)), sum)
	return sum, nil
}
