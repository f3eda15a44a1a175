package cluster_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/coclust/cluster"
	"github.com/hupe1980/coclust/ensemble"
	"github.com/hupe1980/coclust/matrix"
	"github.com/hupe1980/coclust/pairwise"
	"github.com/hupe1980/coclust/similarity"
	"github.com/hupe1980/coclust/testutil"
)

// samePartition reports whether got groups items exactly as want does,
// regardless of the ids used.
func samePartition(t *testing.T, want []int, got ensemble.Labels) {
	t.Helper()
	require.Len(t, got, len(want))

	fwd := make(map[int]int)
	rev := make(map[int]int)
	for i := range want {
		if g, ok := fwd[want[i]]; ok {
			assert.Equal(t, g, got[i], "item %d", i)
		} else {
			fwd[want[i]] = got[i]
		}
		if w, ok := rev[got[i]]; ok {
			assert.Equal(t, w, want[i], "item %d", i)
		} else {
			rev[got[i]] = want[i]
		}
	}
}

func TestKMeansSeparatedClusters(t *testing.T) {
	vectors, labels := testutil.NewRNG(11).ClusteredVectors(30, 3, 3, 0.3)

	got, err := cluster.NewKMeans(0).Fit(context.Background(), vectors, 3, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	samePartition(t, labels, got)
}

func TestKMeansDeterministic(t *testing.T) {
	vectors, _ := testutil.NewRNG(2).ClusteredVectors(40, 4, 4, 2)
	km := cluster.NewKMeans(50)

	a, err := km.Fit(context.Background(), vectors, 4, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	b, err := km.Clone().Fit(context.Background(), vectors, 4, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestKMeansKLargerThanN(t *testing.T) {
	vectors := [][]float64{{0, 0}, {5, 5}, {10, 10}}

	got, err := cluster.NewKMeans(0).Fit(context.Background(), vectors, 8, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Equal(t, 3, got.Distinct())
}

func TestKMeansErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	km := cluster.NewKMeans(0)

	_, err := km.Fit(context.Background(), [][]float64{{1}}, 0, rng)
	assert.ErrorIs(t, err, cluster.ErrInvalidK)

	_, err = km.Fit(context.Background(), [][]float64{{1, 2}, {1}}, 2, rng)
	assert.ErrorIs(t, err, cluster.ErrDimensionMismatch)

	got, err := km.Fit(context.Background(), nil, 2, rng)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKMeansCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	vectors, _ := testutil.NewRNG(3).ClusteredVectors(20, 2, 2, 1)
	_, err := cluster.NewKMeans(0).Fit(ctx, vectors, 2, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKMedoidsBlocks(t *testing.T) {
	// Two tight groups {0,1,2} and {3,4}.
	d, err := matrix.FromRows([][]float64{
		{0, 0.1, 0.2, 0.9, 0.9},
		{0.1, 0, 0.1, 0.9, 0.8},
		{0.2, 0.1, 0, 0.8, 0.9},
		{0.9, 0.9, 0.8, 0, 0.1},
		{0.9, 0.8, 0.9, 0.1, 0},
	})
	require.NoError(t, err)

	for seed := range int64(10) {
		got, err := cluster.NewKMedoids(0).Fit(context.Background(), d, 2, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		samePartition(t, []int{0, 0, 0, 1, 1}, got)
	}
}

func TestKMedoidsErrors(t *testing.T) {
	d, err := matrix.FromRows([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)

	_, err = cluster.NewKMedoids(0).Fit(context.Background(), d, 0, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, cluster.ErrInvalidK)

	got, err := cluster.NewKMedoids(0).Clone().Fit(context.Background(), d, 5, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Distinct())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = cluster.NewKMedoids(0).Fit(ctx, d, 1, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTextEnsembleEndToEnd(t *testing.T) {
	texts := []string{"the cat sat", "the cat ran", "a dog barked", "a dog howled"}
	sets := similarity.NewSets(texts, 1)

	dist, err := pairwise.BuildSequential(context.Background(), sets, similarity.Jaccard)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, dist.At(0, 1), 1e-12)
	assert.InDelta(t, 1.0, dist.At(0, 2), 1e-12)

	agg, err := ensemble.New[*matrix.Symmetric](cluster.NewKMedoids(0), func(o *ensemble.Options) {
		o.Iterations = 6
		o.MinK, o.MaxK = 2, 3
	})
	require.NoError(t, err)

	co, err := agg.Fit(context.Background(), dist, dist.N())
	require.NoError(t, err)

	assert.Greater(t, co.At(0, 1), 0.5)
	assert.Greater(t, co.At(2, 3), 0.5)
	for _, i := range []int{0, 1} {
		for _, j := range []int{2, 3} {
			assert.Less(t, co.At(i, j), 0.5)
		}
	}
	for i := range 4 {
		assert.Equal(t, 1.0, co.At(i, i))
	}
}
