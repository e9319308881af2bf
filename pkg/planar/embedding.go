package planar

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
)

var (
	// ErrAsymmetricRotation is returned by [NewEmbedding] when u appears in
	// the rotation of v but v does not appear in the rotation of u.
	ErrAsymmetricRotation = errors.New("rotation system is not symmetric")

	// ErrDuplicateNeighbor is returned by [NewEmbedding] when a rotation
	// lists the same neighbor twice.
	ErrDuplicateNeighbor = errors.New("duplicate neighbor in rotation")

	// ErrEulerViolation is returned by [Embedding.CheckTriangulated] when
	// V - E + F != 2 for the traced faces, i.e. the rotation system does not
	// describe a connected plane graph.
	ErrEulerViolation = errors.New("rotation system violates Euler's formula")

	// ErrNonTriangularFace is returned by [Embedding.CheckTriangulated] when
	// some face has more than three sides.
	ErrNonTriangularFace = errors.New("face is not a triangle")
)

// Embedding is a combinatorial planar embedding given as a rotation system:
// for each vertex, its neighbors in clockwise cyclic order.
//
// An Embedding is immutable after construction and safe for concurrent use.
type Embedding struct {
	g   *Graph
	rot map[int][]int
	at  map[int]map[int]int // v -> neighbor -> index in rot[v]
}

// NewEmbedding validates a rotation system and builds the embedding and its
// underlying graph. Rotation slices are copied.
func NewEmbedding(rot map[int][]int) (*Embedding, error) {
	e := &Embedding{
		g:   New(),
		rot: make(map[int][]int, len(rot)),
		at:  make(map[int]map[int]int, len(rot)),
	}
	for v, nbrs := range rot {
		if err := e.g.AddVertex(v); err != nil {
			return nil, gerr.Wrap(gerr.ErrCodeInvalidEmbedding, err, "vertex %d", v)
		}
		idx := make(map[int]int, len(nbrs))
		for i, u := range nbrs {
			if _, dup := idx[u]; dup {
				return nil, gerr.Wrap(gerr.ErrCodeInvalidEmbedding, ErrDuplicateNeighbor, "vertex %d lists %d twice", v, u)
			}
			idx[u] = i
		}
		e.rot[v] = slices.Clone(nbrs)
		e.at[v] = idx
	}
	for v, nbrs := range e.rot {
		for _, u := range nbrs {
			if _, ok := e.at[u][v]; !ok {
				return nil, gerr.Wrap(gerr.ErrCodeInvalidEmbedding, ErrAsymmetricRotation, "%d lists %d but not vice versa", v, u)
			}
			if err := e.g.AddEdge(u, v); err != nil {
				return nil, gerr.Wrap(gerr.ErrCodeInvalidEmbedding, err, "edge %d-%d", v, u)
			}
		}
	}
	return e, nil
}

// Graph returns the underlying graph. Callers must not mutate it.
func (e *Embedding) Graph() *Graph { return e.g }

// Vertices returns all vertex ids in ascending order.
func (e *Embedding) Vertices() []int { return slices.Sorted(maps.Keys(e.rot)) }

// Len returns the number of vertices.
func (e *Embedding) Len() int { return len(e.rot) }

// Rotation returns a copy of the clockwise rotation of v.
func (e *Embedding) Rotation(v int) []int { return slices.Clone(e.rot[v]) }

// Rotations returns a deep copy of the whole rotation system.
func (e *Embedding) Rotations() map[int][]int {
	out := make(map[int][]int, len(e.rot))
	for v, r := range e.rot {
		out[v] = slices.Clone(r)
	}
	return out
}

// CW returns the neighbor following u in the clockwise rotation of v.
// It returns 0 if u is not a neighbor of v.
func (e *Embedding) CW(v, u int) int {
	i, ok := e.at[v][u]
	if !ok {
		return 0
	}
	r := e.rot[v]
	return r[(i+1)%len(r)]
}

// CCW returns the neighbor preceding u in the clockwise rotation of v.
// It returns 0 if u is not a neighbor of v.
func (e *Embedding) CCW(v, u int) int {
	i, ok := e.at[v][u]
	if !ok {
		return 0
	}
	r := e.rot[v]
	return r[(i+len(r)-1)%len(r)]
}

// Mirror returns the embedding with every rotation reversed.
func (e *Embedding) Mirror() *Embedding {
	rot := e.Rotations()
	for _, r := range rot {
		slices.Reverse(r)
	}
	m, _ := NewEmbedding(rot)
	return m
}

// Faces traces the faces of the embedding. Each face is listed once as the
// cycle of vertices met when walking its darts; faces are returned in a
// deterministic order starting from the smallest dart.
func (e *Embedding) Faces() [][]int {
	seen := make(map[Edge]bool) // directed dart U->V
	var faces [][]int
	for _, u := range e.Vertices() {
		for _, v := range e.rot[u] {
			if seen[Edge{u, v}] {
				continue
			}
			var face []int
			a, b := u, v
			for !seen[Edge{a, b}] {
				seen[Edge{a, b}] = true
				face = append(face, a)
				a, b = b, e.CCW(b, a)
			}
			faces = append(faces, face)
		}
	}
	return faces
}

// CheckTriangulated verifies that the embedding is a plane triangulation:
// Euler's formula holds and every face is a triangle. Failures carry
// ErrCodeNotPlanar or ErrCodeNotTriangulated.
func (e *Embedding) CheckTriangulated() error {
	n := e.Len()
	if n < 3 {
		return gerr.New(gerr.ErrCodeInvalidInputSize, "need at least 3 vertices, got %d", n)
	}
	faces := e.Faces()
	if n-e.g.EdgeCount()+len(faces) != 2 {
		return gerr.Wrap(gerr.ErrCodeNotPlanar, ErrEulerViolation,
			"V=%d E=%d F=%d", n, e.g.EdgeCount(), len(faces))
	}
	for _, f := range faces {
		if len(f) != 3 {
			return gerr.Wrap(gerr.ErrCodeNotTriangulated, ErrNonTriangularFace, "face %v", f)
		}
	}
	return nil
}

// String renders the rotation system one vertex per line.
func (e *Embedding) String() string {
	var b strings.Builder
	for _, v := range e.Vertices() {
		fmt.Fprintf(&b, "%d: %v\n", v, e.rot[v])
	}
	return b.String()
}
