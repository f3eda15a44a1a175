package minhash

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/coclust/similarity"
)

func TestSimilarity_Reflexive(t *testing.T) {
	h := New()
	sig := h.SketchText("the quick brown fox jumps over the lazy dog", 2)

	s, err := h.Similarity(sig, sig)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s)
	assert.Equal(t, DefaultNumPerm, sig.Len())
}

func TestSimilarity_Symmetric(t *testing.T) {
	h := New()
	a := h.SketchText("a b c d e f", 1)
	b := h.SketchText("d e f g h", 1)

	ab, err := h.Similarity(a, b)
	require.NoError(t, err)
	ba, err := h.Similarity(b, a)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestSimilarity_Empty(t *testing.T) {
	h := New()
	empty := h.SketchText("", 2)

	s, err := h.Similarity(empty, h.SketchText("   ", 2))
	require.NoError(t, err)
	assert.Equal(t, 1.0, s)

	s, err = h.Similarity(empty, h.SketchText("some words here", 2))
	require.NoError(t, err)
	assert.Less(t, s, 0.05)
}

func TestSimilarity_Estimate(t *testing.T) {
	words := make([]string, 0, 200)
	for i := range 200 {
		words = append(words, "w"+string(rune('a'+i%26))+string(rune('a'+i/26)))
	}
	// |A ∩ B| = 100, |A ∪ B| = 200
	a := slices.Values(words[:150])
	b := slices.Values(words[50:])

	h := New(func(o *Options) { o.NumPerm = 512 })
	s, err := h.Similarity(h.Sketch(a), h.Sketch(b))
	require.NoError(t, err)

	exact := 0.5
	assert.LessOrEqual(t, math.Abs(s-exact), 0.1)
}

func TestSimilarity_Incompatible(t *testing.T) {
	small := New(func(o *Options) { o.NumPerm = 16 })
	large := New()

	_, err := large.Similarity(small.SketchText("a b", 1), large.SketchText("a b", 1))
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestNew_Deterministic(t *testing.T) {
	h1 := New(func(o *Options) { o.Seed = 7 })
	h2 := New(func(o *Options) { o.Seed = 7 })

	assert.Equal(t, h1.SketchText("x y z", 1), h2.SketchText("x y z", 1))
	assert.Equal(t, DefaultNumPerm, New(func(o *Options) { o.NumPerm = 0 }).NumPerm())
}

func TestSimilarity_IsFunc(t *testing.T) {
	h := New()
	var f similarity.Func[*Signature] = h.Similarity
	sigs := h.SketchTexts([]string{"a b c", "a b c"}, 1)

	d, err := similarity.Distance(f, sigs, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}
