package cluster

import (
	"context"
	"math"
	"math/rand"

	"github.com/hupe1980/coclust/ensemble"
	"github.com/hupe1980/coclust/matrix"
)

// KMedoids clusters items given only their pairwise distance matrix.
type KMedoids struct {
	maxIter int
}

var _ ensemble.Clusterer[*matrix.Symmetric] = (*KMedoids)(nil)

// NewKMedoids creates a KMedoids collaborator. maxIter < 1 uses DefaultMaxIter.
func NewKMedoids(maxIter int) *KMedoids {
	if maxIter < 1 {
		maxIter = DefaultMaxIter
	}
	return &KMedoids{maxIter: maxIter}
}

// Clone implements ensemble.Clusterer.
func (km *KMedoids) Clone() ensemble.Clusterer[*matrix.Symmetric] {
	return &KMedoids{maxIter: km.maxIter}
}

// Fit implements ensemble.Clusterer. The first medoid is a random item; the
// rest are added greedily, each time taking the item that most reduces the
// total distance to the nearest medoid. Fit then alternates between assigning
// items to the closest medoid and moving each medoid to the member with the
// smallest total distance to its cluster.
func (km *KMedoids) Fit(ctx context.Context, d *matrix.Symmetric, k int, rng *rand.Rand) (ensemble.Labels, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	n := d.N()
	if n == 0 {
		return ensemble.Labels{}, nil
	}
	k = min(k, n)

	medoids := build(d, k, rng)
	labels := make(ensemble.Labels, n)

	for iter := 0; iter < km.maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		assign(d, medoids, labels)

		changed := false
		for c := range medoids {
			best, bestCost := medoids[c], math.Inf(1)
			for i := range n {
				if labels[i] != c {
					continue
				}
				var cost float64
				for j := range n {
					if labels[j] == c {
						cost += d.At(i, j)
					}
				}
				if cost < bestCost {
					best, bestCost = i, cost
				}
			}
			if best != medoids[c] {
				medoids[c] = best
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	assign(d, medoids, labels)
	return labels, nil
}

func build(d *matrix.Symmetric, k int, rng *rand.Rand) []int {
	n := d.N()
	medoids := make([]int, 0, k)
	medoids = append(medoids, rng.Intn(n))

	isMedoid := make([]bool, n)
	isMedoid[medoids[0]] = true

	nearestDist := d.Row(medoids[0])
	for len(medoids) < k {
		best, bestGain := -1, -1.0
		for c := range n {
			if isMedoid[c] {
				continue
			}
			var gain float64
			for i := range n {
				if x := nearestDist[i] - d.At(i, c); x > 0 {
					gain += x
				}
			}
			if gain > bestGain {
				best, bestGain = c, gain
			}
		}

		medoids = append(medoids, best)
		isMedoid[best] = true
		for i := range n {
			nearestDist[i] = min(nearestDist[i], d.At(i, best))
		}
	}
	return medoids
}

// assign labels every item with its closest medoid. A medoid always keeps
// its own cluster, even when two medoids sit at distance zero.
func assign(d *matrix.Symmetric, medoids []int, labels ensemble.Labels) {
	for i := range labels {
		best, minDist := 0, math.Inf(1)
		for c, m := range medoids {
			if i == m {
				best = c
				break
			}
			if dist := d.At(i, m); dist < minDist {
				best, minDist = c, dist
			}
		}
		labels[i] = best
	}
}
