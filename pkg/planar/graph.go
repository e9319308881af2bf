package planar

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidVertex is returned by [Graph.AddEdge] when an endpoint is not
	// a positive integer. Vertex ids start at 1.
	ErrInvalidVertex = errors.New("vertex id must be positive")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are equal.
	// Planar triangulations are simple graphs.
	ErrSelfLoop = errors.New("self loop")

	// ErrNonContiguous is returned by [Graph.CheckContiguous] when the vertex
	// ids are not exactly 1..n.
	ErrNonContiguous = errors.New("vertex ids must be contiguous from 1")
)

// Edge is an undirected edge stored with U < V.
type Edge struct {
	U, V int
}

// Graph is a simple undirected graph over positive integer vertex ids.
// It is queried only for adjacency by the drawing algorithms, which never
// mutate it.
//
// The zero value is not usable - use New. Graph is safe for concurrent reads
// but not for concurrent mutation.
type Graph struct {
	adj   map[int]map[int]struct{}
	edges int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{adj: make(map[int]map[int]struct{})}
}

// AddVertex adds an isolated vertex. Adding an existing vertex is a no-op.
func (g *Graph) AddVertex(v int) error {
	if v < 1 {
		return ErrInvalidVertex
	}
	if _, ok := g.adj[v]; !ok {
		g.adj[v] = make(map[int]struct{})
	}
	return nil
}

// AddEdge adds the undirected edge {u, v}, creating missing endpoints.
// Adding an existing edge is a no-op.
func (g *Graph) AddEdge(u, v int) error {
	if u < 1 || v < 1 {
		return ErrInvalidVertex
	}
	if u == v {
		return ErrSelfLoop
	}
	_ = g.AddVertex(u)
	_ = g.AddVertex(v)
	if _, ok := g.adj[u][v]; ok {
		return nil
	}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	g.edges++
	return nil
}

// HasVertex reports whether v is in the graph.
func (g *Graph) HasVertex(v int) bool {
	_, ok := g.adj[v]
	return ok
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	_, ok := g.adj[u][v]
	return ok
}

// Neighbors returns the neighbors of v in ascending order.
func (g *Graph) Neighbors(v int) []int {
	return slices.Sorted(maps.Keys(g.adj[v]))
}

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int { return len(g.adj[v]) }

// Vertices returns all vertex ids in ascending order.
func (g *Graph) Vertices() []int {
	return slices.Sorted(maps.Keys(g.adj))
}

// Edges returns all edges sorted by (U, V).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for _, u := range g.Vertices() {
		for _, v := range g.Neighbors(u) {
			if u < v {
				out = append(out, Edge{U: u, V: v})
			}
		}
	}
	return out
}

// NodeCount returns the number of vertices.
func (g *Graph) NodeCount() int { return len(g.adj) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return g.edges }

// CheckContiguous returns [ErrNonContiguous] unless the vertex ids are
// exactly 1..n. The text format and the reference algorithms index
// vertices this way.
func (g *Graph) CheckContiguous() error {
	for v := 1; v <= len(g.adj); v++ {
		if !g.HasVertex(v) {
			return ErrNonContiguous
		}
	}
	return nil
}

// Equal reports whether g and h have the same vertex and edge sets.
func (g *Graph) Equal(h *Graph) bool {
	if g.NodeCount() != h.NodeCount() || g.EdgeCount() != h.EdgeCount() {
		return false
	}
	for u, nbrs := range g.adj {
		if !h.HasVertex(u) {
			return false
		}
		for v := range nbrs {
			if !h.HasEdge(u, v) {
				return false
			}
		}
	}
	return true
}
