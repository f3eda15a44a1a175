// Package partition splits the upper triangle of an N×N pairwise problem into
// a grid of equally sized square blocks that can be computed independently.
//
// With s slices per side the grid holds s(s+1)/2 blocks (row <= col). Blocks
// are numbered 1..s(s+1)/2 in row-major order over the upper triangle
// including the diagonal:
//
//	s = 3:   (0,0)=1 (0,1)=2 (0,2)=3
//	                 (1,1)=4 (1,2)=5
//	                         (2,2)=6
//
// Grid.Coord and Grid.WorkerID are inverse bijections over that numbering.
package partition
