package ensemble

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/coclust/matrix"
)

// Strategy turns vote counts into the consensus matrix.
type Strategy interface {
	String() string
	Finalize(v *Votes) (*matrix.Symmetric, error)
}

var (
	// CoAssociation yields the fraction of runs in which each pair co-clustered.
	CoAssociation Strategy = coAssociation{}

	// EnsembleDistance yields the fraction of runs in which each pair did not co-cluster.
	EnsembleDistance Strategy = ensembleDistance{}
)

type coAssociation struct{}

func (coAssociation) String() string { return "co-association" }

// Finalize adds 1/iterations once per vote. The sum of equal addends does not
// depend on which runs cast them, so the table below matches a sequential
// accumulation bit for bit. Every item co-clusters with itself, so the
// diagonal is set to 1 rather than averaged.
func (coAssociation) Finalize(v *Votes) (*matrix.Symmetric, error) {
	inc := 1 / float64(v.iterations)
	table := make([]float64, v.iterations+1)
	for c := 1; c <= v.iterations; c++ {
		table[c] = table[c-1] + inc
	}

	d := mat.NewDense(v.n, v.n, nil)
	for i := range v.n {
		d.Set(i, i, 1)
		for j := i + 1; j < v.n; j++ {
			x := table[v.Count(i, j)]
			d.Set(i, j, x)
			d.Set(j, i, x)
		}
	}
	return matrix.Wrap(d)
}

type ensembleDistance struct{}

func (ensembleDistance) String() string { return "ensemble-distance" }

// Finalize sums a per-run distance that starts at 1 and drops to 0 for every
// co-clustered pair, then divides by the number of runs. The diagonal is 0.
func (ensembleDistance) Finalize(v *Votes) (*matrix.Symmetric, error) {
	iters := float64(v.iterations)

	d := mat.NewDense(v.n, v.n, nil)
	for i := range v.n {
		for j := i + 1; j < v.n; j++ {
			x := float64(v.iterations-v.Count(i, j)) / iters
			d.Set(i, j, x)
			d.Set(j, i, x)
		}
	}
	return matrix.Wrap(d)
}
