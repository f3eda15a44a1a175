package similarity

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cespare/xxhash/v2"

	"github.com/hupe1980/coclust/shingle"
)

// Set is an immutable set of hashed shingles.
type Set struct {
	rb *roaring.Bitmap
}

// NewSet hashes the k-word shingles of text into a Set.
// Distinct shingles may collide on the 32-bit id; at the set sizes of short
// texts this is negligible.
func NewSet(text string, k int) *Set {
	rb := roaring.New()
	for s := range shingle.Extract(text, k) {
		rb.Add(uint32(xxhash.Sum64String(s)))
	}
	rb.RunOptimize()
	return &Set{rb: rb}
}

// NewSets builds one Set per text.
func NewSets(texts []string, k int) []*Set {
	sets := make([]*Set, len(texts))
	for i, text := range texts {
		sets[i] = NewSet(text, k)
	}
	return sets
}

// Len returns the number of distinct shingle ids in the set.
func (s *Set) Len() int {
	return int(s.rb.GetCardinality())
}

// Jaccard returns |a ∩ b| / |a ∪ b|. Two empty sets are identical (1.0).
func Jaccard(a, b *Set) (float64, error) {
	if a.rb.IsEmpty() && b.rb.IsEmpty() {
		return 1, nil
	}
	union := a.rb.OrCardinality(b.rb)
	if union == 0 {
		return 0, nil
	}
	return float64(a.rb.AndCardinality(b.rb)) / float64(union), nil
}
