// Package shift implements the shift method of Chrobak and Payne, placing
// a plane triangulation on a (2n-4) x (n-2) grid from a canonical ordering.
//
// Vertices are kept in a binary tree over the insertion history. Every
// vertex stores its x offset relative to its tree parent and its absolute
// row, so the horizontal shifts done when a vertex is added cost O(1) and
// the absolute x coordinates are resolved in one traversal at the end.
package shift

import (
	"errors"

	"github.com/matzehuels/gridraw/pkg/canonical"
	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/planar"
)

var (
	// ErrOddOffset is returned by [Embed] when the offset numerator of a
	// vertex is odd. Halving it would silently misplace the vertex.
	ErrOddOffset = errors.New("odd offset numerator")

	// ErrUnplacedNeighbor is returned by [Embed] when a run refers to a
	// vertex that has not been added yet.
	ErrUnplacedNeighbor = errors.New("run vertex not yet placed")
)

// node is a vertex of the offset tree.
type node struct {
	left, right int // child vertex ids, 0 when absent
	dx          int // x offset from the tree parent
	y           int // absolute row
}

// Embed computes grid positions for ord. The ordering must be canonical;
// [canonical.Validate] can check untrusted input beforehand.
//
// v1 lands on (0, 0) and v2 on (2n-4, 0). Errors carry
// ErrCodeArithmeticParityViolation, ErrCodeInvalidOrdering or
// ErrCodeInvalidInputSize, and no partial drawing is returned.
func Embed(ord canonical.Ordering) (planar.Positions, error) {
	if len(ord) < 3 {
		return nil, gerr.New(gerr.ErrCodeInvalidInputSize, "need at least 3 vertices, got %d", len(ord))
	}
	t, err := build(ord)
	if err != nil {
		return nil, err
	}
	pos := t.resolve(ord[0].Vertex)
	if len(pos) != len(ord) {
		return nil, gerr.New(gerr.ErrCodeInvalidOrdering, "offset tree reaches %d of %d vertices", len(pos), len(ord))
	}
	return pos, nil
}

type tree map[int]*node

// build runs the incremental phase: every vertex is added on top of the
// contour, the run is stretched by one unit on either side and vk is
// placed at the intersection of the +1 and -1 slopes from wp and wq.
func build(ord canonical.Ordering) (tree, error) {
	v1, v2, v3 := ord[0].Vertex, ord[1].Vertex, ord[2].Vertex
	t := tree{
		v1: {right: v3},
		v2: {dx: 1},
		v3: {right: v2, dx: 1, y: 1},
	}

	for k := 3; k < len(ord); k++ {
		e := ord[k]
		if len(e.Neighbors) < 2 {
			return nil, gerr.New(gerr.ErrCodeInvalidOrdering, "entry %d: vertex %d has run %v", k, e.Vertex, e.Neighbors)
		}
		for _, w := range e.Neighbors {
			if t[w] == nil {
				return nil, gerr.Wrap(gerr.ErrCodeInvalidOrdering, ErrUnplacedNeighbor, "entry %d: vertex %d", k, w)
			}
		}
		if t[e.Vertex] != nil {
			return nil, gerr.New(gerr.ErrCodeInvalidOrdering, "entry %d: vertex %d added twice", k, e.Vertex)
		}

		wp, wq, wp1, wq1 := t[e.Wp()], t[e.Wq()], t[e.Wp1()], t[e.Wq1()]
		wide := len(e.Neighbors) > 2

		wp1.dx++
		wq.dx++
		sum := 0
		for _, w := range e.Neighbors[1:] {
			sum += t[w].dx
		}
		num := sum + wq.y - wp.y
		if num%2 != 0 {
			return nil, gerr.Wrap(gerr.ErrCodeParityViolation, ErrOddOffset,
				"entry %d: vertex %d has numerator %d", k, e.Vertex, num)
		}

		vk := &node{
			dx: num / 2,
			y:  (sum + wp.y + wq.y) / 2,
		}
		wq.dx = sum - vk.dx
		if wide {
			wp1.dx -= vk.dx
		}

		wp.right = e.Vertex
		vk.right = e.Wq()
		if wide {
			vk.left = e.Wp1()
			wq1.right = 0
		}
		t[e.Vertex] = vk
	}
	return t, nil
}

// resolve accumulates offsets from root down the tree. Parents are
// visited before their children through an explicit stack. Vertices that
// a malformed tree does not reach are left out.
func (t tree) resolve(root int) planar.Positions {
	pos := make(planar.Positions, len(t))
	pos[root] = planar.Point{X: 0, Y: t[root].y}
	stack := []int{root}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range []int{t[p].left, t[p].right} {
			if _, seen := pos[c]; c == 0 || seen {
				continue
			}
			pos[c] = planar.Point{X: pos[p].X + t[c].dx, Y: t[c].y}
			stack = append(stack, c)
		}
	}
	return pos
}
