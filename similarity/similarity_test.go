package similarity

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		k        int
		expected float64
	}{
		{"Identical", "the cat sat", "the cat sat", 1, 1},
		{"Disjoint", "the cat sat", "a dog barked", 1, 0},
		{"Partial", "the cat sat", "the cat ran", 1, 0.5}, // 2 / 4
		{"BothEmpty", "", "", 2, 1},
		{"OneEmpty", "the cat", "", 2, 0},
		{"Bigrams", "a b c", "a b d", 2, 1.0 / 3.0}, // {ab,bc} vs {ab,bd}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Jaccard(NewSet(tt.a, tt.k), NewSet(tt.b, tt.k))
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)

			rev, err := Jaccard(NewSet(tt.b, tt.k), NewSet(tt.a, tt.k))
			require.NoError(t, err)
			assert.Equal(t, got, rev)
		})
	}
}

func TestNewSets(t *testing.T) {
	sets := NewSets([]string{"a b a", ""}, 1)
	require.Len(t, sets, 2)
	assert.Equal(t, 2, sets[0].Len())
	assert.Equal(t, 0, sets[1].Len())
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"Orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"Opposite", []float64{1, 0}, []float64{-1, 0}, 0},
		{"BothZero", []float64{0, 0}, []float64{0, 0}, 1},
		{"OneZero", []float64{0, 0}, []float64{1, 0}, 0},
		{"Known", []float64{1, 2, 3}, []float64{4, 5, 6}, 32 / math.Sqrt(1078)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}

	_, err := Cosine([]float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestEuclidean(t *testing.T) {
	s, err := Euclidean([]float64{0, 0}, []float64{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/6.0, s, 1e-12)

	s, err = Euclidean([]float64{1, 1}, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, s)

	_, err = Euclidean([]float64{1}, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestPrecomputed(t *testing.T) {
	d := mat.NewDense(2, 2, []float64{0, 0.25, 0.25, 0})
	f := Precomputed(d)

	s, err := f(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.75, s)

	_, err = f(0, 2)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)

	assert.Equal(t, []int{0, 1, 2}, Indices(3))
}

func TestDistance(t *testing.T) {
	items := []float64{0.2, 0.7, 2}
	f := Func[float64](func(a, b float64) (float64, error) {
		if a > 1 || b > 1 {
			return a * b, nil
		}
		return 1 - math.Abs(a-b), nil
	})

	d, err := Distance(f, items, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, d, 1e-12)

	_, err = Distance(f, items, 1, 2)
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.I)
	assert.Equal(t, 2, serr.J)
	assert.ErrorIs(t, err, ErrOutOfRange)

	boom := errors.New("boom")
	failing := Func[float64](func(float64, float64) (float64, error) { return 0, boom })
	_, err = Distance(failing, items, 0, 2)
	assert.ErrorIs(t, err, boom)
}
