// Package coclust computes pairwise distance matrices over large item sets
// and aggregates repeated clusterings into consensus matrices.
//
// # Quick Start
//
//	ctx := context.Background()
//	eng := coclust.New(coclust.WithWorkers(8), coclust.WithSeed(42))
//
//	// MinHash estimate of 1 - Jaccard over 2-word shingles.
//	dist, _ := eng.TextDistances(ctx, texts, 2)
//
//	// Evidence accumulation over 30 k-medoids runs with k in [5, 10).
//	co, _ := coclust.Ensemble(ctx, eng, dist, dist.N(), cluster.NewKMedoids(0),
//	    func(o *ensemble.Options) { o.Iterations = 30 })
//
//	// Score a final assignment against known categories.
//	res, _ := eng.Evaluate(categories, labels)
//	fmt.Println(res.Accuracy())
//
// # Parallel Assembly
//
// Distance matrices are built on a block grid: the upper triangle is cut into
// s x s slices (s the largest divisor of N in [3, MaxSlices] with N/s > 1),
// each block is computed on the worker pool, and the assembled matrix is
// mirrored. When no grid exists, or only one worker is configured, the build
// runs sequentially. Both paths produce bit-identical matrices.
//
// # Ensembles
//
// Two accumulation strategies are provided:
//
//   - ensemble.CoAssociation: fraction of runs in which a pair co-clustered,
//     diagonal 1.
//   - ensemble.EnsembleDistance: fraction of runs in which a pair did not,
//     diagonal 0.
//
// Every run gets its own generator derived from the engine seed, so results
// do not depend on the number of workers.
package coclust
