// Package io reads and writes drawings in the plain text exchange format.
//
// # Text Format
//
// A drawing of a graph on vertices 1..n is stored as 2n+1 lines:
//
//	3
//	0, 0
//	2, 0
//	1, 1
//	0 1 1
//	1 0 1
//	1 1 0
//
// The first line is n. The next n lines hold the grid point "x, y" of
// vertex 1..n in order. The last n lines are the rows of the symmetric 0/1
// adjacency matrix, entries separated by single spaces.
//
// Reading is lenient about whitespace: rows may carry trailing blanks and
// blank lines after the matrix are ignored. It is strict about content: a
// wrong count, a non-integer coordinate or an asymmetric matrix is an
// ErrCodeInvalidFormat error naming the offending line.
//
// # Round Trips
//
// Writing a drawing with [WriteText] and reading it back with [ReadText]
// yields the same edge set under vertex-id identity and the same positions.
//
// For JSON drawings see package graph.
package io
