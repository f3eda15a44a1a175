// Package pairwise builds dense N×N distance matrices from a pairwise
// similarity function.
//
// BuildSequential walks the upper triangle row by row. Build splits the upper
// triangle into a grid of square blocks (package partition), computes the
// blocks on a bounded worker pool and assembles them on the calling
// goroutine. When no grid fits the input size, or only one worker is
// available, Build falls back to the sequential path.
//
// For a deterministic similarity function both paths return bit-identical
// matrices: D[i][j] = 1 - sim(items[i], items[j]) for i < j, mirrored into
// D[j][i], with a zero diagonal.
//
// # Usage
//
//	h := minhash.New()
//	sigs := h.SketchTexts(texts, 2)
//	d, err := pairwise.Build(ctx, sigs, h.Similarity, func(o *pairwise.Options) {
//	    o.Workers = 8
//	})
package pairwise
