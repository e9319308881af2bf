// Package graph defines the JSON (and BSON) serialization format of a grid
// drawing.
//
// # Overview
//
// A [Drawing] bundles everything a consumer needs to reproduce a drawing:
// the vertices with their grid points, the edge list, the algorithm that
// produced it and optionally the canonical ordering it followed. The same
// type is used for API responses, the drawing store, the cache and files on
// disk, so a drawing written by one surface can be read by any other.
//
// # Usage
//
// Convert algorithm output with [FromPositions], then marshal or write it:
//
//	d := graph.FromPositions(g, pos)
//	d.Algorithm = graph.AlgorithmShift
//	err := graph.WriteDrawingFile(d, "ref.json")
//
// [Drawing.Graph] and [Drawing.Positions] convert back.
package graph
