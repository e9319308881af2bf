// Package planar provides the undirected graph, rotation-system embedding and
// integer grid geometry shared by the drawing algorithms.
//
// # Overview
//
// Every algorithm in gridraw consumes a triangulated planar graph whose
// vertices are the integers 1..n. The combinatorial embedding is given as a
// rotation system: for each vertex, the clockwise cyclic order of its
// neighbors. The orientation convention used throughout is a drawing where
// v1 sits bottom-left, v2 bottom-right and vn on top, so walking the outer
// face v1, v2, vn goes counterclockwise.
//
// # Basic Usage
//
// Build a graph with [New] and [Graph.AddEdge], or obtain a triangulated
// embedding directly from [GenerateStacked] or [ReferenceEmbedding]:
//
//	emb, err := planar.GenerateStacked(12, 42)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(emb.CW(1, 2)) // 12: the top vertex follows v2 around v1
//
// [NewEmbedding] validates a hand-written rotation system, and
// [Embedding.CheckTriangulated] verifies Euler's formula and that every face
// is a triangle.
//
// # Drawings
//
// A drawing is a [Positions] map from vertex to [Point]. [CheckDrawing]
// verifies that a drawing is a valid straight-line planar embedding: every
// vertex is placed, no two vertices share a point, no vertex lies on an edge
// it is not incident to, and no two edges cross. [SegmentsIntersect] is the
// closed-segment test used both there and by the visibility search of the
// placement algorithms.
package planar
