package cluster

import (
	"context"
	"errors"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/coclust/ensemble"
)

// DefaultMaxIter bounds the refinement rounds of KMeans and KMedoids.
const DefaultMaxIter = 100

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("cluster: k must be positive")

	// ErrDimensionMismatch is returned when vectors differ in length.
	ErrDimensionMismatch = errors.New("cluster: vector dimensions differ")
)

// KMeans clusters feature vectors.
type KMeans struct {
	maxIter int
}

var _ ensemble.Clusterer[[][]float64] = (*KMeans)(nil)

// NewKMeans creates a KMeans collaborator. maxIter < 1 uses DefaultMaxIter.
func NewKMeans(maxIter int) *KMeans {
	if maxIter < 1 {
		maxIter = DefaultMaxIter
	}
	return &KMeans{maxIter: maxIter}
}

// Clone implements ensemble.Clusterer.
func (km *KMeans) Clone() ensemble.Clusterer[[][]float64] {
	return &KMeans{maxIter: km.maxIter}
}

// Fit implements ensemble.Clusterer. If there are fewer vectors than k,
// every vector becomes its own cluster.
func (km *KMeans) Fit(ctx context.Context, vectors [][]float64, k int, rng *rand.Rand) (ensemble.Labels, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	n := len(vectors)
	if n == 0 {
		return ensemble.Labels{}, nil
	}
	dim := len(vectors[0])
	for _, v := range vectors {
		if len(v) != dim {
			return nil, ErrDimensionMismatch
		}
	}
	k = min(k, n)

	centroids := seedPlusPlus(vectors, k, rng)
	assignments := make(ensemble.Labels, n)
	for i := range assignments {
		assignments[i] = -1
	}
	counts := make([]int, k)

	for iter := 0; iter < km.maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		changed := false

		// Assignment step
		for i, vec := range vectors {
			best := nearest(vec, centroids)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		if !changed {
			break
		}

		// Update step
		for j := range centroids {
			for d := range centroids[j] {
				centroids[j][d] = 0
			}
			counts[j] = 0
		}
		for i, vec := range vectors {
			c := assignments[i]
			floats.Add(centroids[c], vec)
			counts[c]++
		}
		for j := range centroids {
			if counts[j] > 0 {
				floats.Scale(1/float64(counts[j]), centroids[j])
			} else {
				// Re-seed an empty cluster with a random point.
				copy(centroids[j], vectors[rng.Intn(n)])
			}
		}
	}

	return assignments, nil
}

// seedPlusPlus picks k initial centroids with k-means++ weighting.
func seedPlusPlus(vectors [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(vectors)
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(vectors[rng.Intn(n)]))

	dists := make([]float64, n)
	for len(centroids) < k {
		var sum float64
		for i, v := range vectors {
			dists[i] = squaredDistance(v, centroids[nearest(v, centroids)])
			sum += dists[i]
		}
		if sum == 0 {
			// All remaining points coincide with a centroid.
			centroids = append(centroids, clone(vectors[rng.Intn(n)]))
			continue
		}
		target := rng.Float64() * sum
		idx := n - 1
		for i, d := range dists {
			target -= d
			if target <= 0 {
				idx = i
				break
			}
		}
		centroids = append(centroids, clone(vectors[idx]))
	}
	return centroids
}

// nearest returns the index of the closest centroid (lowest index on ties).
func nearest(vec []float64, centroids [][]float64) int {
	best := -1
	minDist := math.Inf(1)
	for j, c := range centroids {
		if d := squaredDistance(vec, c); d < minDist {
			minDist = d
			best = j
		}
	}
	return best
}

func squaredDistance(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
