package coclust

import (
	"errors"
	"fmt"

	"github.com/hupe1980/coclust/contingency"
	"github.com/hupe1980/coclust/ensemble"
	"github.com/hupe1980/coclust/pairwise"
	"github.com/hupe1980/coclust/shingle"
	"github.com/hupe1980/coclust/similarity"
)

var (
	// ErrEmptyInput is returned when no items are supplied.
	ErrEmptyInput = errors.New("no items")

	// ErrDegenerateAssignment is returned by Evaluate when the labels hold
	// fewer than two clusters. Callers should skip scoring that run.
	ErrDegenerateAssignment = errors.New("degenerate cluster assignment")

	// ErrInvalidArgument is returned for invalid configuration values.
	ErrInvalidArgument = errors.New("invalid argument")
)

// CollaboratorError indicates that a similarity function or clustering run
// failed. The computation was aborted and no partial result was returned.
//
// The original underlying error can be accessed via errors.Unwrap.
type CollaboratorError struct {
	Op    string
	cause error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s collaborator failed: %v", e.Op, e.cause)
}

func (e *CollaboratorError) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Empty input unification.
	if errors.Is(err, pairwise.ErrEmptyInput) ||
		errors.Is(err, ensemble.ErrEmptyInput) ||
		errors.Is(err, contingency.ErrEmptyInput) {
		return fmt.Errorf("%w: %w", ErrEmptyInput, err)
	}

	// Collaborator failures.
	var se *similarity.Error
	if errors.As(err, &se) {
		return &CollaboratorError{Op: "similarity", cause: err}
	}
	var ce *ensemble.ClustererError
	if errors.As(err, &ce) {
		return &CollaboratorError{Op: "clustering", cause: err}
	}

	if errors.Is(err, contingency.ErrDegenerateAssignment) {
		return fmt.Errorf("%w: %w", ErrDegenerateAssignment, err)
	}

	// Argument normalization.
	if errors.Is(err, ensemble.ErrInvalidRange) ||
		errors.Is(err, ensemble.ErrInvalidIterations) ||
		errors.Is(err, ensemble.ErrNilClusterer) ||
		errors.Is(err, shingle.ErrInvalidLength) ||
		errors.Is(err, contingency.ErrLengthMismatch) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return err
}

func errorsIsDegenerate(err error) bool {
	return errors.Is(err, ErrDegenerateAssignment)
}
