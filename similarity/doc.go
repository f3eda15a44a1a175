// Package similarity defines the pairwise similarity contract used by the
// matrix builders, plus a few concrete estimators.
//
// A Func must be symmetric (f(a,b) == f(b,a)), reflexive (f(a,a) == 1) and
// return values in [0, 1]. Distance is always 1 - similarity.
//
// # Estimators
//
//   - Jaccard: exact Jaccard over hashed shingle sets (roaring bitmaps)
//   - Cosine: cosine similarity of non-negative feature vectors
//   - Euclidean: 1 / (1 + L2 distance)
//   - Precomputed: lookup into an existing distance matrix by index
//
// The sketch based estimator lives in package minhash.
package similarity
