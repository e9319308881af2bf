package canonical

import (
	"slices"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/planar"
)

// Embedding rebuilds the rotation system implied by the ordering. Vertex
// vk takes the reversed run as its rotation and is inserted into the
// rotation of each run vertex between its contour neighbors. The result
// uses the package orientation, so Order(emb, v1, v2, vn) on it succeeds.
//
// Embedding assumes a structurally valid ordering; use [Validate] first
// for untrusted input.
func (o Ordering) Embedding() (*planar.Embedding, error) {
	if len(o) < 3 {
		return nil, gerr.New(gerr.ErrCodeInvalidInputSize, "need at least 3 vertices, got %d", len(o))
	}
	v1, v2, v3 := o[0].Vertex, o[1].Vertex, o[2].Vertex
	rot := map[int][]int{
		v1: {v3, v2},
		v2: {v1, v3},
		v3: {v2, v1},
	}
	for k, e := range o[3:] {
		run := e.Neighbors
		if len(run) < 2 {
			return nil, gerr.Wrap(gerr.ErrCodeInvalidOrdering, ErrRunMismatch, "entry %d: run %v", k+3, run)
		}
		r := slices.Clone(run)
		slices.Reverse(r)
		rot[e.Vertex] = r
		for i, w := range run {
			// run[0] gets vk just before run[1]; the others just after
			// their left run neighbor.
			anchor, shift := run[1], 0
			if i > 0 {
				anchor, shift = run[i-1], 1
			}
			at := slices.Index(rot[w], anchor)
			if at < 0 {
				return nil, gerr.Wrap(gerr.ErrCodeInvalidOrdering, ErrRunMismatch, "entry %d: %d not adjacent to %d", k+3, w, anchor)
			}
			rot[w] = slices.Insert(rot[w], at+shift, e.Vertex)
		}
	}
	return planar.NewEmbedding(rot)
}
