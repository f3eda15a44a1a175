package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFromRows(t *testing.T) {
	s, err := FromRows([][]float64{
		{0, 0.5, 1},
		{0.5, 0, 0.25},
		{1, 0.25, 0},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, s.N())
	assert.Equal(t, 3, s.SymmetricDim())
	assert.Equal(t, 0.25, s.At(1, 2))
	assert.Equal(t, []float64{1, 0.25, 0}, s.Row(2))
	assert.Same(t, s, s.T())
}

func TestFromRows_Invalid(t *testing.T) {
	_, err := FromRows(nil)
	assert.ErrorIs(t, err, ErrNotSquare)

	_, err = FromRows([][]float64{{0, 1}, {1}})
	assert.ErrorIs(t, err, ErrNotSquare)

	_, err = FromRows([][]float64{{0, 1}, {0.5, 0}})
	assert.ErrorIs(t, err, ErrNotSymmetric)

	_, err = Wrap(mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, ErrNotSquare)
}

func TestSymmetric_CopiesAreIndependent(t *testing.T) {
	s, err := FromRows([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)

	row := s.Row(0)
	row[1] = 42
	d := s.Dense()
	d.Set(0, 1, 42)

	assert.Equal(t, 1.0, s.At(0, 1))
	assert.Equal(t, [][]float64{{0, 1}, {1, 0}}, s.Rows())
}

func TestSymmetric_Equal(t *testing.T) {
	a, err := FromRows([][]float64{{0, 0.1}, {0.1, 0}})
	require.NoError(t, err)
	b, err := FromRows([][]float64{{0, 0.1}, {0.1, 0}})
	require.NoError(t, err)
	c, err := FromRows([][]float64{{0, 0.2}, {0.2, 0}})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.NotEmpty(t, a.String())
}

func TestMirrorUpper(t *testing.T) {
	d := mat.NewDense(3, 3, []float64{
		9, 1, 2,
		7, 9, 3,
		7, 7, 9,
	})

	out := MirrorUpper(d)

	expected := mat.NewDense(3, 3, []float64{
		0, 1, 2,
		1, 0, 3,
		2, 3, 0,
	})
	assert.True(t, mat.Equal(expected, out))
}
