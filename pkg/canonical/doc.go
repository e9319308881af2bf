// Package canonical computes canonical orderings of plane triangulations.
//
// # Overview
//
// A canonical ordering v1, v2, ..., vn of a triangulation with outer face
// (v1, v2, vn) has the property that for every k >= 2 the graph G_k induced
// by the first k+1 vertices is biconnected and internally triangulated, and
// the earlier neighbors of vk form a contiguous run [wp, ..., wq] on the
// outer face of G_{k-1}. Every grid drawing algorithm in gridraw is driven
// by such an ordering.
//
// # Computing an Ordering
//
// [Order] runs the classic reverse elimination: starting from vn it
// repeatedly removes a vertex of the outer face that has no chord, until
// only v1 and v2 remain. Among eligible vertices the smallest id is always
// taken, so the result is deterministic:
//
//	emb := planar.ReferenceEmbedding()
//	ord, err := canonical.Order(emb, 1, 2, 17)
//
// Each [Entry] carries the vertex and its run, listed from wp to wq.
//
// # Validation and Round Trips
//
// [Validate] checks an ordering against a graph independently of how it was
// produced, and [Ordering.Embedding] rebuilds the rotation system that an
// ordering implies. [Reference] is the hand-made ordering of the 17-vertex
// reference instance.
package canonical
