// Package minhash estimates Jaccard similarity with fixed-size MinHash sketches.
//
// Each shingle is hashed once (xxhash, truncated to 32 bits) and then pushed
// through NumPerm universal permutations h(x) = (a*x + b) mod (2^61 - 1).
// A Signature keeps the minimum of every permutation; the similarity of two
// signatures is the fraction of slots that agree.
//
// With the default 128 permutations the standard error of the estimate is at
// most 0.5/sqrt(128) ≈ 0.044.
//
// # Usage
//
//	h := minhash.New()
//	sigs := h.SketchTexts(texts, 2)
//	d, _ := pairwise.BuildSequential(ctx, sigs, h.Similarity)
package minhash
