package matrix

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotSquare indicates a matrix with differing row and column counts.
	ErrNotSquare = errors.New("matrix: not square")

	// ErrNotSymmetric indicates a matrix with D[i][j] != D[j][i] for some pair.
	ErrNotSymmetric = errors.New("matrix: not symmetric")
)

// Symmetric is an immutable, dense, symmetric N×N matrix.
type Symmetric struct {
	d *mat.Dense
}

var (
	_ mat.Matrix    = (*Symmetric)(nil)
	_ mat.Symmetric = (*Symmetric)(nil)
)

// Wrap takes ownership of d without copying. The caller must not mutate d
// afterwards. d must be square and symmetric.
func Wrap(d *mat.Dense) (*Symmetric, error) {
	r, c := d.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, r, c)
	}
	for i := range r {
		for j := i + 1; j < c; j++ {
			if d.At(i, j) != d.At(j, i) {
				return nil, fmt.Errorf("%w: (%d,%d)", ErrNotSymmetric, i, j)
			}
		}
	}
	return &Symmetric{d: d}, nil
}

// FromRows copies a row-major square matrix into a Symmetric.
func FromRows(rows [][]float64) (*Symmetric, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty", ErrNotSquare)
	}
	d := mat.NewDense(n, n, nil)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrNotSquare, i, len(row))
		}
		d.SetRow(i, row)
	}
	return Wrap(d)
}

// N returns the number of items (rows).
func (s *Symmetric) N() int {
	r, _ := s.d.Dims()
	return r
}

// Dims implements mat.Matrix.
func (s *Symmetric) Dims() (r, c int) {
	return s.d.Dims()
}

// At implements mat.Matrix.
func (s *Symmetric) At(i, j int) float64 {
	return s.d.At(i, j)
}

// T implements mat.Matrix. A symmetric matrix is its own transpose.
func (s *Symmetric) T() mat.Matrix {
	return s
}

// SymmetricDim implements mat.Symmetric.
func (s *Symmetric) SymmetricDim() int {
	return s.N()
}

// Row returns a copy of row i.
func (s *Symmetric) Row(i int) []float64 {
	return mat.Row(nil, i, s.d)
}

// Rows returns a copy of the matrix as nested slices.
func (s *Symmetric) Rows() [][]float64 {
	n := s.N()
	out := make([][]float64, n)
	for i := range n {
		out[i] = s.Row(i)
	}
	return out
}

// Dense returns a mutable copy of the matrix.
func (s *Symmetric) Dense() *mat.Dense {
	return mat.DenseCopyOf(s.d)
}

// Equal reports whether s and o hold bit-identical values.
func (s *Symmetric) Equal(o *Symmetric) bool {
	return mat.Equal(s.d, o.d)
}

// String implements fmt.Stringer.
func (s *Symmetric) String() string {
	return fmt.Sprintf("%v", mat.Formatted(s.d, mat.Squeeze()))
}

// MirrorUpper turns an upper-triangular assembly into a symmetric matrix:
// everything on and below the diagonal is zeroed, then the result is D + Dᵗ.
// Dense diagonal blocks leave values below their local diagonal; this step
// discards them so no pair is counted twice.
func MirrorUpper(d *mat.Dense) *mat.Dense {
	r, c := d.Dims()
	for i := range r {
		for j := 0; j <= i && j < c; j++ {
			d.Set(i, j, 0)
		}
	}
	var out mat.Dense
	out.Add(d, d.T())
	return &out
}

// Complement returns 1 - s element-wise. It turns a co-association matrix
// into a distance matrix and back.
func (s *Symmetric) Complement() *Symmetric {
	out := mat.DenseCopyOf(s.d)
	out.Apply(func(_, _ int, v float64) float64 { return 1 - v }, out)
	return &Symmetric{d: out}
}
