package coclust_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hupe1980/coclust"
	"github.com/hupe1980/coclust/cluster"
	"github.com/hupe1980/coclust/ensemble"
	"github.com/hupe1980/coclust/matrix"
)

// Example_textDistances builds an exact Jaccard distance matrix over
// single-word shingles.
func Example_textDistances() {
	ctx := context.Background()
	eng := coclust.New(coclust.WithWorkers(4))

	texts := []string{"the cat sat", "the cat ran", "a dog barked", "a dog howled"}
	dist, err := eng.ExactTextDistances(ctx, texts, 1)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%.2f %.2f %.2f\n", dist.At(0, 1), dist.At(0, 2), dist.At(2, 3))
	// Output: 0.50 1.00 0.50
}

// Example_ensemble aggregates k-medoids runs into a co-association matrix.
func Example_ensemble() {
	ctx := context.Background()
	eng := coclust.New(coclust.WithSeed(7))

	texts := []string{"the cat sat", "the cat ran", "a dog barked", "a dog howled"}
	dist, err := eng.ExactTextDistances(ctx, texts, 1)
	if err != nil {
		log.Fatal(err)
	}

	co, err := coclust.Ensemble[*matrix.Symmetric](ctx, eng, dist, dist.N(), cluster.NewKMedoids(0),
		func(o *ensemble.Options) {
			o.Iterations = 10
			o.MinK, o.MaxK = 2, 3
		})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%.1f %.1f %.1f\n", co.At(0, 1), co.At(2, 3), co.At(1, 2))
	// Output: 1.0 1.0 0.0
}

// Example_evaluate scores a label assignment against known categories.
func Example_evaluate() {
	eng := coclust.New()

	res, err := eng.Evaluate([]string{"A", "A", "B", "B"}, []int{0, 0, 1, 1})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Assigned, res.Accuracy())

	_, err = eng.Evaluate([]string{"A", "B"}, []int{3, 3})
	fmt.Println(errors.Is(err, coclust.ErrDegenerateAssignment))
	// Output:
	// [0 1] 1
	// true
}
