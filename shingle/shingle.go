package shingle

import (
	"errors"
	"iter"
	"strings"
)

// DefaultLength is the window length used when callers have no preference.
const DefaultLength = 2

// ErrInvalidLength is returned when a shingle length below 1 is requested.
var ErrInvalidLength = errors.New("shingle: length must be >= 1")

// Extract returns the k-word shingles of text in order of appearance.
// Panics if k < 1; use Validate to check user supplied lengths first.
func Extract(text string, k int) iter.Seq[string] {
	if k < 1 {
		panic(ErrInvalidLength)
	}

	words := strings.Fields(text)
	w := min(len(words), k)

	return func(yield func(string) bool) {
		if w == 0 {
			return
		}
		for i := 0; i+w <= len(words); i++ {
			if !yield(strings.Join(words[i:i+w], " ")) {
				return
			}
		}
	}
}

// Count returns the number of shingles Extract yields for text.
func Count(text string, k int) int {
	n := len(strings.Fields(text))
	if n == 0 {
		return 0
	}
	return n - min(n, k) + 1
}

// Collect materializes the shingles of text into a slice.
func Collect(text string, k int) []string {
	out := make([]string, 0, Count(text, k))
	for s := range Extract(text, k) {
		out = append(out, s)
	}
	return out
}

// Validate reports whether k is a usable shingle length.
func Validate(k int) error {
	if k < 1 {
		return ErrInvalidLength
	}
	return nil
}
