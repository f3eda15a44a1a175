package ensemble

import (
	"context"
	"fmt"
	"math/rand"
)

// Labels maps item index to a non-negative cluster id.
type Labels []int

// Clusterer is the clustering collaborator driven by an Aggregator.
//
// Fit assigns every item of data to a cluster. Collaborators that choose the
// number of clusters themselves ignore k. rng is owned by the current run and
// is the only randomness a Fit should consume.
//
// Clone returns an instance with identical configuration and independent
// internal state; the Aggregator never shares one instance between runs.
type Clusterer[D any] interface {
	Fit(ctx context.Context, data D, k int, rng *rand.Rand) (Labels, error)
	Clone() Clusterer[D]
}

// ClustererError reports a failed clustering run.
//
// The original underlying error can be accessed via errors.Unwrap.
type ClustererError struct {
	Iteration int
	K         int
	cause     error
}

func (e *ClustererError) Error() string {
	return fmt.Sprintf("ensemble: iteration %d (k=%d): %v", e.Iteration, e.K, e.cause)
}

func (e *ClustererError) Unwrap() error { return e.cause }

// validate checks that labels cover exactly n items with non-negative ids.
func (l Labels) validate(n int) error {
	if len(l) != n {
		return fmt.Errorf("%w: got %d labels for %d items", ErrInvalidLabels, len(l), n)
	}
	for i, id := range l {
		if id < 0 {
			return fmt.Errorf("%w: item %d has label %d", ErrInvalidLabels, i, id)
		}
	}
	return nil
}

// Distinct returns the number of distinct cluster ids.
func (l Labels) Distinct() int {
	seen := make(map[int]struct{})
	for _, id := range l {
		seen[id] = struct{}{}
	}
	return len(seen)
}
