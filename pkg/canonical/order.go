package canonical

import (
	"errors"

	"github.com/emirpasic/gods/sets/treeset"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/planar"
)

var (
	// ErrOuterFace is returned by [Order] when (v1, v2, vn) are not three
	// distinct vertices bounding a face of the embedding.
	ErrOuterFace = errors.New("vertices do not bound a face")

	// ErrNoEligibleVertex is returned by [Order] when no outer-face vertex
	// is free of chords. This cannot happen for a triangulation.
	ErrNoEligibleVertex = errors.New("no eligible vertex")

	// ErrBrokenRun is returned by [Order] when walking the rotation of the
	// removed vertex from wp does not reach wq through unremoved vertices.
	ErrBrokenRun = errors.New("neighbor run does not close")
)

// eliminator holds the state of one reverse elimination. The outer face of
// the remaining graph is the path left/right from v1 to v2 plus the edge
// v2-v1.
type eliminator struct {
	emb      *planar.Embedding
	v1, v2   int
	left     map[int]int
	right    map[int]int
	onFace   map[int]bool
	removed  map[int]bool
	chords   map[int]int
	eligible *treeset.Set
}

// Order computes a canonical ordering of emb with outer face (v1, v2, vn).
//
// The rotation system may be given in either orientation: if vn follows v2
// counterclockwise around v1 rather than clockwise, the embedding is
// mirrored first. The smallest eligible vertex id is taken at every step.
//
// Order fails with ErrCodeInvalidInputSize for fewer than 3 vertices,
// ErrCodeInvalidOuterFace if (v1, v2, vn) is not a face, and
// ErrCodeNotTriangulated if the elimination gets stuck.
func Order(emb *planar.Embedding, v1, v2, vn int) (Ordering, error) {
	n := emb.Len()
	if n < 3 {
		return nil, gerr.New(gerr.ErrCodeInvalidInputSize, "need at least 3 vertices, got %d", n)
	}
	g := emb.Graph()
	if v1 == v2 || v2 == vn || v1 == vn ||
		!g.HasEdge(v1, v2) || !g.HasEdge(v2, vn) || !g.HasEdge(v1, vn) {
		return nil, gerr.Wrap(gerr.ErrCodeInvalidOuterFace, ErrOuterFace, "(%d, %d, %d)", v1, v2, vn)
	}
	if n == 3 {
		return Ordering{{Vertex: v1}, {Vertex: v2}, {Vertex: vn, Neighbors: []int{v1, v2}}}, nil
	}

	switch {
	case emb.CW(v1, v2) == vn:
	case emb.CCW(v1, v2) == vn:
		emb = emb.Mirror()
	default:
		return nil, gerr.Wrap(gerr.ErrCodeNotTriangulated, ErrOuterFace, "(%d, %d, %d)", v1, v2, vn)
	}

	el := &eliminator{
		emb:      emb,
		v1:       v1,
		v2:       v2,
		left:     map[int]int{v2: vn, vn: v1},
		right:    map[int]int{v1: vn, vn: v2},
		onFace:   map[int]bool{v1: true, v2: true, vn: true},
		removed:  make(map[int]bool, n),
		chords:   make(map[int]int, n),
		eligible: treeset.NewWithIntComparator(),
	}
	for _, v := range []int{v1, v2, vn} {
		for _, u := range emb.Rotation(v) {
			if el.onFace[u] && !el.faceNeighbors(v, u) {
				el.chords[v]++
			}
		}
	}
	if el.chords[vn] == 0 {
		el.eligible.Add(vn)
	}

	out := make(Ordering, n)
	out[0] = Entry{Vertex: v1}
	out[1] = Entry{Vertex: v2}
	for k := n - 1; k >= 2; k-- {
		e, err := el.removeNext(k)
		if err != nil {
			return nil, err
		}
		out[k] = e
	}
	return out, nil
}

// faceNeighbors reports whether u and v are consecutive on the outer face.
func (el *eliminator) faceNeighbors(v, u int) bool {
	if r, ok := el.right[v]; ok && r == u {
		return true
	}
	if l, ok := el.left[v]; ok && l == u {
		return true
	}
	return false
}

// removeNext eliminates the smallest eligible vertex and returns its entry
// for position k.
func (el *eliminator) removeNext(k int) (Entry, error) {
	it := el.eligible.Iterator()
	if !it.First() {
		return Entry{}, gerr.Wrap(gerr.ErrCodeNotTriangulated, ErrNoEligibleVertex, "step %d", k)
	}
	v := it.Value().(int)
	el.eligible.Remove(v)
	el.removed[v] = true
	delete(el.onFace, v)

	wp, wq := el.left[v], el.right[v]
	run := []int{wp}
	for nb := wp; nb != wq; {
		nx := el.emb.CCW(v, nb)
		if nx == 0 || el.removed[nx] || len(run) >= el.emb.Graph().Degree(v) {
			return Entry{}, gerr.Wrap(gerr.ErrCodeNotTriangulated, ErrBrokenRun, "step %d: vertex %d from %d to %d", k, v, wp, wq)
		}
		run = append(run, nx)
		el.right[nb] = nx
		el.left[nx] = nb
		el.onFace[nx] = true
		nb = nx
	}
	delete(el.left, v)
	delete(el.right, v)

	if len(run) == 2 {
		for _, w := range run {
			el.chords[w]--
			if el.chords[w] == 0 && w != el.v1 && w != el.v2 {
				el.eligible.Add(w)
			}
		}
		return Entry{Vertex: v, Neighbors: run}, nil
	}

	interior := run[1 : len(run)-1]
	isNew := make(map[int]bool, len(interior))
	for _, w := range interior {
		isNew[w] = true
	}
	for _, w := range interior {
		el.eligible.Add(w)
		for _, u := range el.emb.Rotation(w) {
			if !el.onFace[u] || el.faceNeighbors(w, u) {
				continue
			}
			el.chords[w]++
			el.eligible.Remove(w)
			if !isNew[u] {
				el.chords[u]++
				el.eligible.Remove(u)
			}
		}
	}
	return Entry{Vertex: v, Neighbors: run}, nil
}
