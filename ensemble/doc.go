// Package ensemble implements evidence accumulation clustering (EAC).
//
// An Aggregator runs a clustering collaborator many times over the same data,
// each run with a cluster count drawn uniformly from [MinK, MaxK). Every run
// votes once for each pair of items it places in the same cluster. A Strategy
// turns the vote counts into the consensus matrix:
//
//   - CoAssociation: fraction of runs in which a pair co-clustered,
//     accumulated as +1/iterations per vote; the diagonal is fixed at 1.
//   - EnsembleDistance: fraction of runs in which a pair did not co-cluster;
//     the diagonal is 0.
//
// Runs execute concurrently. Each run gets its own clone of the collaborator
// and its own seeded *rand.Rand, derived up front from Options.Seed, so the
// result does not depend on scheduling or worker count.
//
// # Usage
//
//	agg, err := ensemble.New[[][]float64](cluster.NewKMeans(), func(o *ensemble.Options) {
//	    o.Iterations = 30
//	    o.MinK, o.MaxK = 5, 10
//	    o.Strategy = ensemble.CoAssociation
//	})
//	coassoc, err := agg.Fit(ctx, vectors, len(vectors))
package ensemble
