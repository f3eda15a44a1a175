// Package matrix provides the dense N×N symmetric matrices produced by the
// pairwise builders and the ensemble aggregator.
//
// Symmetric is a read-only view backed by a gonum mat.Dense. It implements
// mat.Matrix and mat.Symmetric so results can be handed straight to gonum
// routines, and it never exposes its backing storage: Row and Dense return
// copies.
package matrix
