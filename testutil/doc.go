// Package testutil provides testing utilities for coclust.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and generators for synthetic texts
// and clustered feature vectors with known ground truth.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	texts := rng.Texts(100, 50, 3, 12)           // random word soup
//	texts, cats := rng.TopicTexts(3, 20, 8)      // separable topics
//	vecs, labels := rng.ClusteredVectors(90, 8, 3, 0.05)
package testutil
