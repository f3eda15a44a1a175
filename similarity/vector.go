package similarity

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrDimensionMismatch is returned when two vectors differ in length.
var ErrDimensionMismatch = errors.New("similarity: vector dimensions differ")

// ErrIndexOutOfBounds is returned by Precomputed for indices outside the matrix.
var ErrIndexOutOfBounds = errors.New("similarity: index out of bounds")

// Cosine returns the cosine similarity of a and b, clamped to [0, 1].
// Intended for non-negative feature vectors (term weights, counts).
// Two zero vectors are identical; a zero and a non-zero vector share nothing.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	switch {
	case na == 0 && nb == 0:
		return 1, nil
	case na == 0 || nb == 0:
		return 0, nil
	}
	s := floats.Dot(a, b) / (na * nb)
	return min(max(s, 0), 1), nil
}

// Euclidean maps the L2 distance of a and b into (0, 1] as 1 / (1 + d).
func Euclidean(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	return 1 / (1 + floats.Distance(a, b, 2)), nil
}

// Precomputed turns a distance matrix into a similarity over item indices.
// Items passed to the builders are then simply 0..n-1.
func Precomputed(d mat.Matrix) Func[int] {
	r, c := d.Dims()
	return func(i, j int) (float64, error) {
		if i < 0 || j < 0 || i >= r || j >= c {
			return 0, ErrIndexOutOfBounds
		}
		return 1 - d.At(i, j), nil
	}
}

// Indices returns 0..n-1, the item slice to use with Precomputed.
func Indices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
