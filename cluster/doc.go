// Package cluster provides clustering collaborators for ensemble.Aggregator.
//
//   - KMeans: Lloyd's algorithm with k-means++ seeding over feature vectors.
//   - KMedoids: greedy-seeded alternating k-medoids over a precomputed
//     distance matrix.
//
// Both consume only the *rand.Rand passed to Fit, so a run is reproducible
// from its seed, and both are cheap to Clone.
package cluster
