package testutil

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Word returns the i-th word of the synthetic vocabulary.
func Word(i int) string {
	return fmt.Sprintf("w%03d", i)
}

// Texts generates num texts of minWords..maxWords words drawn uniformly from
// a vocabulary of vocab words.
func (r *RNG) Texts(num, vocab, minWords, maxWords int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	texts := make([]string, num)
	for i := range texts {
		n := minWords
		if maxWords > minWords {
			n += r.rand.Intn(maxWords - minWords + 1)
		}
		words := make([]string, n)
		for j := range words {
			words[j] = Word(r.rand.Intn(vocab))
		}
		texts[i] = strings.Join(words, " ")
	}

	return texts
}

// TopicTexts generates topics*perTopic texts of the given length. Every topic
// draws from its own disjoint vocabulary of 10 words, so texts of one topic
// overlap and texts of different topics share nothing. Texts are ordered
// topic by topic; categories[i] is "topic-<t>".
func (r *RNG) TopicTexts(topics, perTopic, words int) (texts, categories []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	const vocabPerTopic = 10

	texts = make([]string, 0, topics*perTopic)
	categories = make([]string, 0, topics*perTopic)
	for t := range topics {
		for range perTopic {
			ws := make([]string, words)
			for j := range ws {
				ws[j] = Word(t*vocabPerTopic + r.rand.Intn(vocabPerTopic))
			}
			texts = append(texts, strings.Join(ws, " "))
			categories = append(categories, fmt.Sprintf("topic-%d", t))
		}
	}

	return texts, categories
}

// ClusteredVectors generates num vectors around clusters well separated
// centroids (one-hot scaled by 10) with Gaussian noise of the given spread.
// labels[i] is the generating centroid of vector i (assigned round robin).
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float64) (vectors [][]float64, labels []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	vectors = make([][]float64, num)
	labels = make([]int, num)

	for i := range num {
		c := i % clusters
		vec := data[i*dim : (i+1)*dim]
		for j := range vec {
			vec[j] = r.rand.NormFloat64() * spread
		}
		vec[c%dim] += 10
		vectors[i] = vec
		labels[i] = c
	}

	return vectors, labels
}
