// Package domino precomputes the domino chains, dominators, stability
// flags and U-sets that drive the contour placement algorithms.
//
// For vertex vk with leftmost run vertex wp, the closing vertex vz is the
// first later vertex adjacent to both vk and wp. The 1-based position ind
// of vk in the run of vz decides how vk is classified:
//
//	ind == 2  vk starts a chain, dom = vz, unstable
//	ind == 3  vk extends the chain of vz and inherits its dom and stability
//	ind >= 4  vk starts a chain, dom = vz, stable
//
// v1, v2 and vn are stable single-vertex chains without a dominator.
//
// The U-set of vk is vk together with the U-sets of the vertices it covers
// on the contour. Shifting every vertex of U[c] for each contour vertex c
// right of some point moves the whole drawing right of that point rigidly.
package domino

import (
	"errors"
	"maps"
	"slices"

	"github.com/matzehuels/gridraw/pkg/canonical"
	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/planar"
)

// Undefined is the dominator of v1, v2, vn and of every chain ending there.
const Undefined = -1

var (
	// ErrNoClosingVertex is returned by [Compute] when no later vertex is
	// adjacent to both vk and its wp.
	ErrNoClosingVertex = errors.New("no closing vertex")

	// ErrNotInRun is returned by [Compute] when vk is adjacent to its
	// closing vertex but missing from that vertex's run.
	ErrNotInRun = errors.New("vertex missing from closing run")
)

// Result holds the precomputed maps of one ordering. It is immutable after
// [Compute] returns.
type Result struct {
	// Chain maps each vertex to its domino chain, from the chain head down
	// to the vertex itself.
	Chain map[int][]int `json:"chain"`
	// Dom maps each vertex to its dominator or Undefined.
	Dom map[int]int `json:"dom"`
	// Stable reports whether a vertex can be placed without a shift.
	Stable map[int]bool `json:"stable"`
	// U maps each vertex to the vertices that move together with it.
	U map[int][]int `json:"u"`
}

// Compute derives chains, dominators, stability and U-sets for ord, a
// canonical ordering of g. Chain resolution is iterative, so deep chains
// cannot exhaust the stack.
func Compute(g *planar.Graph, ord canonical.Ordering) (*Result, error) {
	n := len(ord)
	if n < 3 {
		return nil, gerr.New(gerr.ErrCodeInvalidInputSize, "need at least 3 vertices, got %d", n)
	}
	for k := 2; k < n; k++ {
		if e := ord[k]; len(e.Neighbors) < 2 {
			return nil, gerr.New(gerr.ErrCodeInvalidOrdering, "entry %d: vertex %d has run %v", k, e.Vertex, e.Neighbors)
		}
	}
	r := &Result{
		Chain:  make(map[int][]int, n),
		Dom:    make(map[int]int, n),
		Stable: make(map[int]bool, n),
		U:      make(map[int][]int, n),
	}
	for _, v := range []int{ord[n-1].Vertex, ord[0].Vertex, ord[1].Vertex} {
		r.Chain[v] = []int{v}
		r.Dom[v] = Undefined
		r.Stable[v] = true
	}

	// pending links a vertex with ind == 3 to the closing vertex whose
	// chain it extends once that chain is known.
	type pending struct{ v, z int }
	for k := 2; k < n; k++ {
		var path []pending
		for cur := k; ; {
			vk := ord[cur].Vertex
			if _, done := r.Chain[vk]; done {
				break
			}
			z, ind, err := closing(g, ord, cur)
			if err != nil {
				return nil, err
			}
			vz := ord[z].Vertex
			if ind == 3 {
				path = append(path, pending{vk, vz})
				cur = z
				continue
			}
			r.Chain[vk] = []int{vk}
			r.Dom[vk] = vz
			r.Stable[vk] = ind >= 4
			break
		}
		for _, p := range slices.Backward(path) {
			r.Chain[p.v] = append(slices.Clone(r.Chain[p.z]), p.v)
			r.Dom[p.v] = r.Dom[p.z]
			r.Stable[p.v] = r.Stable[p.z]
		}
	}

	for _, e := range ord[:3] {
		r.U[e.Vertex] = []int{e.Vertex}
	}
	for _, e := range ord[3:] {
		u := []int{e.Vertex}
		for _, w := range e.Interior() {
			u = append(u, r.U[w]...)
		}
		r.U[e.Vertex] = u
	}
	return r, nil
}

// closing finds the closing vertex of entry k and the 1-based position of
// vk in its run.
func closing(g *planar.Graph, ord canonical.Ordering, k int) (z, ind int, err error) {
	vk := ord[k].Vertex
	wp := ord[k].Wp()
	for j := k + 1; j < len(ord); j++ {
		vj := ord[j].Vertex
		if !g.HasEdge(vj, vk) || !g.HasEdge(vj, wp) {
			continue
		}
		i := slices.Index(ord[j].Neighbors, vk)
		if i < 0 {
			return 0, 0, gerr.Wrap(gerr.ErrCodeInvalidOrdering, ErrNotInRun, "vertex %d, closing vertex %d", vk, vj)
		}
		return j, i + 1, nil
	}
	return 0, 0, gerr.Wrap(gerr.ErrCodeInvalidOrdering, ErrNoClosingVertex, "vertex %d with wp %d", vk, wp)
}

// Head returns the first vertex of the chain containing v.
func (r *Result) Head(v int) int { return r.Chain[v][0] }

// Chains groups the vertices by chain head. Each group lists its members
// in ascending id order.
func (r *Result) Chains() map[int][]int {
	out := make(map[int][]int)
	for _, v := range slices.Sorted(maps.Keys(r.Chain)) {
		h := r.Head(v)
		out[h] = append(out[h], v)
	}
	return out
}

// DomPath follows dominators from v until Undefined and returns the
// vertices visited, v first.
func (r *Result) DomPath(v int) []int {
	path := []int{v}
	for d := r.Dom[v]; d != Undefined; d = r.Dom[d] {
		path = append(path, d)
		if len(path) > len(r.Dom) {
			break
		}
	}
	return path
}
