package minhash

import (
	"errors"
	"iter"
	"math/bits"
	"math/rand"

	"github.com/cespare/xxhash/v2"

	"github.com/hupe1980/coclust/shingle"
)

const (
	// DefaultNumPerm is the default number of permutations (sketch slots).
	DefaultNumPerm = 128

	// DefaultSeed seeds the permutation parameters.
	DefaultSeed = 1

	mersennePrime = (1 << 61) - 1
	maxHash       = (1 << 32) - 1
)

// ErrIncompatible is returned when comparing signatures of different sizes.
var ErrIncompatible = errors.New("minhash: signatures have different sizes")

// Options configures a Hasher.
type Options struct {
	// NumPerm is the number of permutations. Values < 1 use DefaultNumPerm.
	NumPerm int

	// Seed makes the permutation parameters reproducible.
	// Sketches are only comparable when produced by Hashers with equal seeds.
	Seed int64
}

// Hasher produces Signatures. It is immutable and safe for concurrent use.
type Hasher struct {
	a, b []uint64
}

// New creates a Hasher.
func New(optFns ...func(o *Options)) *Hasher {
	opts := Options{
		NumPerm: DefaultNumPerm,
		Seed:    DefaultSeed,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.NumPerm < 1 {
		opts.NumPerm = DefaultNumPerm
	}

	rng := rand.New(rand.NewSource(opts.Seed)) // nolint gosec
	h := &Hasher{
		a: make([]uint64, opts.NumPerm),
		b: make([]uint64, opts.NumPerm),
	}
	for i := range opts.NumPerm {
		h.a[i] = uint64(rng.Int63n(mersennePrime-1)) + 1
		h.b[i] = uint64(rng.Int63n(mersennePrime))
	}
	return h
}

// NumPerm returns the sketch size.
func (h *Hasher) NumPerm() int {
	return len(h.a)
}

// Signature is a MinHash sketch of one item.
type Signature struct {
	mins []uint64
}

// Len returns the number of slots in the signature.
func (s *Signature) Len() int {
	return len(s.mins)
}

// Sketch builds the signature of a set of shingles. Duplicates are harmless.
func (h *Hasher) Sketch(shingles iter.Seq[string]) *Signature {
	mins := make([]uint64, len(h.a))
	for i := range mins {
		mins[i] = maxHash
	}

	for s := range shingles {
		x := xxhash.Sum64String(s) & maxHash
		for i := range mins {
			if v := h.permute(i, x); v < mins[i] {
				mins[i] = v
			}
		}
	}

	return &Signature{mins: mins}
}

// SketchText sketches the k-word shingles of text.
func (h *Hasher) SketchText(text string, k int) *Signature {
	return h.Sketch(shingle.Extract(text, k))
}

// SketchTexts sketches every text. The result is index-aligned with texts.
func (h *Hasher) SketchTexts(texts []string, k int) []*Signature {
	sigs := make([]*Signature, len(texts))
	for i, text := range texts {
		sigs[i] = h.SketchText(text, k)
	}
	return sigs
}

// Similarity estimates the Jaccard similarity of the sets behind a and b.
// Its signature matches similarity.Func[*Signature].
func (h *Hasher) Similarity(a, b *Signature) (float64, error) {
	if len(a.mins) != len(b.mins) || len(a.mins) == 0 {
		return 0, ErrIncompatible
	}
	matches := 0
	for i, v := range a.mins {
		if v == b.mins[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(a.mins)), nil
}

// permute computes ((a*x + b) mod p) & maxHash without overflowing.
func (h *Hasher) permute(i int, x uint64) uint64 {
	hi, lo := bits.Mul64(h.a[i], x)
	lo, carry := bits.Add64(lo, h.b[i], 0)
	hi += carry
	return bits.Rem64(hi, lo, mersennePrime) & maxHash
}
