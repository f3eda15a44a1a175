package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		slices  int
		wantErr bool
	}{
		{"Sixteen", 16, 8, false},
		{"Twelve", 12, 6, false},
		{"Hundred", 100, 10, false},
		{"ThirtyTwo", 32, 16, false},
		{"Prime", 7, 0, true},
		{"Small", 3, 0, true},
		{"Six", 6, 3, false},
		{"LargePrime", 97, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Plan(tt.n, DefaultMaxSlices, 4)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNoPartition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.slices, g.Slices())
			assert.Equal(t, tt.n/tt.slices, g.Size())
			assert.Equal(t, tt.slices*(tt.slices+1)/2, g.Blocks())
		})
	}
}

func TestPlan_SingleWorker(t *testing.T) {
	_, err := Plan(16, DefaultMaxSlices, 1)
	assert.ErrorIs(t, err, ErrNoPartition)
}

func TestPlan_MaxSlicesBelowMinimum(t *testing.T) {
	_, err := Plan(16, 2, 4)
	assert.ErrorIs(t, err, ErrNoPartition)
}

func TestGrid_Bijection(t *testing.T) {
	for s := MinSlices; s <= DefaultMaxSlices; s++ {
		g := Grid{n: s * 2, slices: s}

		seen := make(map[[2]int]bool)
		for id := 1; id <= g.Blocks(); id++ {
			row, col, err := g.Coord(id)
			require.NoError(t, err)
			require.LessOrEqual(t, row, col)

			key := [2]int{row, col}
			require.False(t, seen[key], "coordinate %v produced twice", key)
			seen[key] = true

			back, err := g.WorkerID(row, col)
			require.NoError(t, err)
			assert.Equal(t, id, back)
		}
		assert.Len(t, seen, s*(s+1)/2)

		_, _, err := g.Coord(g.Blocks() + 1)
		assert.ErrorIs(t, err, ErrInvalidBlock)
		_, _, err = g.Coord(0)
		assert.ErrorIs(t, err, ErrInvalidBlock)
	}
}

func TestGrid_EnumerationOrder(t *testing.T) {
	g := Grid{n: 6, slices: 3}

	var got [][3]int
	for b := range g.All() {
		got = append(got, [3]int{b.ID, b.Row, b.Col})
	}

	assert.Equal(t, [][3]int{
		{1, 0, 0}, {2, 0, 1}, {3, 0, 2},
		{4, 1, 1}, {5, 1, 2},
		{6, 2, 2},
	}, got)
}

func TestGrid_CoversUpperTriangleOnce(t *testing.T) {
	g, err := Plan(12, DefaultMaxSlices, 2)
	require.NoError(t, err)

	hits := make([][]int, g.N())
	for i := range hits {
		hits[i] = make([]int, g.N())
	}
	for b := range g.All() {
		r0, r1, c0, c1 := g.Bounds(b.Row, b.Col)
		for i := r0; i < r1; i++ {
			for j := c0; j < c1; j++ {
				if i < j {
					hits[i][j]++
				}
			}
		}
	}

	for i := range g.N() {
		for j := i + 1; j < g.N(); j++ {
			assert.Equal(t, 1, hits[i][j], "pair (%d,%d)", i, j)
		}
	}
}

func TestGrid_WorkerIDInvalid(t *testing.T) {
	g := Grid{n: 9, slices: 3}
	_, err := g.WorkerID(2, 1)
	assert.ErrorIs(t, err, ErrInvalidBlock)
	_, err = g.WorkerID(0, 3)
	assert.ErrorIs(t, err, ErrInvalidBlock)
}
