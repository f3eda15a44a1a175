package similarity

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange indicates an estimator produced a value outside [0, 1].
var ErrOutOfRange = errors.New("similarity: value outside [0,1]")

// Func estimates the similarity of two items.
type Func[T any] func(a, b T) (float64, error)

// Error reports a failed similarity evaluation for the pair (I, J).
//
// The original underlying error can be accessed via errors.Unwrap.
type Error struct {
	I, J  int
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("similarity(%d, %d): %v", e.I, e.J, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// Distance evaluates f on items i and j and returns 1 - similarity.
// Any error or out-of-range value is reported as *Error.
func Distance[T any](f Func[T], items []T, i, j int) (float64, error) {
	s, err := f(items[i], items[j])
	if err != nil {
		return 0, &Error{I: i, J: j, cause: err}
	}
	if math.IsNaN(s) || s < 0 || s > 1 {
		return 0, &Error{I: i, J: j, cause: fmt.Errorf("%w: %g", ErrOutOfRange, s)}
	}
	return 1 - s, nil
}
