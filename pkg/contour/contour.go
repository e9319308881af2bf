// Package contour maintains the outer face of a partially built canonical
// drawing.
//
// The contour of G_k is the path v1 = c0, c1, ..., cm = v2 along the outer
// face of the subgraph built from the first k+1 vertices of a canonical
// ordering; the closing edge v2-v1 is implicit. Adding vertex vk with run
// [wp, ..., wq] replaces everything strictly between wp and wq by vk.
//
// Positions are stored as order-maintenance labels in a red-black tree, so
// [Contour.Splice], [Contour.Next] and [Contour.Less] cost O(log n) and only
// [Contour.Index] walks the path.
package contour

import (
	"errors"
	"slices"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
)

// gap is the initial spacing between consecutive labels.
const gap int64 = 1 << 32

var (
	// ErrNotOnContour is returned by [Contour.Splice] when an end of the run
	// is not on the contour.
	ErrNotOnContour = errors.New("vertex not on contour")

	// ErrNotContiguous is returned by [Contour.Splice] when the run is not
	// the contiguous contour segment from its first to its last vertex.
	ErrNotContiguous = errors.New("run is not contiguous on contour")

	// ErrAlreadyOnContour is returned by [Contour.Splice] when the inserted
	// vertex is already part of the contour.
	ErrAlreadyOnContour = errors.New("vertex already on contour")

	// ErrShortRun is returned by [Contour.Splice] for runs with fewer than
	// two vertices.
	ErrShortRun = errors.New("run needs at least two vertices")
)

// Contour is the ordered outer-face path from v1 to v2. No vertex appears
// twice. The zero value is not usable - use New.
//
// A Contour is owned by a single drawing run and is not safe for concurrent use.
type Contour struct {
	tree  *redblacktree.Tree // label (int64) -> vertex (int)
	label map[int]int64
}

// New creates a contour holding vs from left to right.
// Duplicate vertices are ignored after their first occurrence.
func New(vs ...int) *Contour {
	c := &Contour{
		tree:  redblacktree.NewWith(utils.Int64Comparator),
		label: make(map[int]int64, len(vs)),
	}
	for _, v := range vs {
		if _, ok := c.label[v]; ok {
			continue
		}
		l := gap * int64(len(c.label)+1)
		c.label[v] = l
		c.tree.Put(l, v)
	}
	return c
}

// Len returns the number of vertices on the contour.
func (c *Contour) Len() int { return len(c.label) }

// Contains reports whether v is on the contour.
func (c *Contour) Contains(v int) bool {
	_, ok := c.label[v]
	return ok
}

// First returns the leftmost vertex, or 0 for an empty contour.
func (c *Contour) First() int {
	if n := c.tree.Left(); n != nil {
		return n.Value.(int)
	}
	return 0
}

// Last returns the rightmost vertex, or 0 for an empty contour.
func (c *Contour) Last() int {
	if n := c.tree.Right(); n != nil {
		return n.Value.(int)
	}
	return 0
}

// Next returns the right neighbor of v on the contour.
func (c *Contour) Next(v int) (int, bool) {
	l, ok := c.label[v]
	if !ok {
		return 0, false
	}
	n, found := c.tree.Ceiling(l + 1)
	if !found {
		return 0, false
	}
	return n.Value.(int), true
}

// Prev returns the left neighbor of v on the contour.
func (c *Contour) Prev(v int) (int, bool) {
	l, ok := c.label[v]
	if !ok {
		return 0, false
	}
	n, found := c.tree.Floor(l - 1)
	if !found {
		return 0, false
	}
	return n.Value.(int), true
}

// Less reports whether a lies strictly left of b. Both must be on the contour.
func (c *Contour) Less(a, b int) bool {
	return c.label[a] < c.label[b]
}

// Index returns the 0-based rank of v from the left, or -1 if v is not on
// the contour. It walks the contour and costs O(n).
func (c *Contour) Index(v int) int {
	l, ok := c.label[v]
	if !ok {
		return -1
	}
	i := 0
	it := c.tree.Iterator()
	for it.Next() {
		if it.Key().(int64) == l {
			return i
		}
		i++
	}
	return -1
}

// Vertices returns the contour from left to right.
func (c *Contour) Vertices() []int {
	out := make([]int, 0, c.Len())
	it := c.tree.Iterator()
	for it.Next() {
		out = append(out, it.Value().(int))
	}
	return out
}

// Between returns the contour vertices from a to b inclusive. It returns nil
// unless both are on the contour with a not right of b.
func (c *Contour) Between(a, b int) []int {
	la, okA := c.label[a]
	lb, okB := c.label[b]
	if !okA || !okB || la > lb {
		return nil
	}
	var out []int
	for n, found := c.tree.Ceiling(la); found; n, found = c.tree.Ceiling(n.Key.(int64) + 1) {
		if n.Key.(int64) > lb {
			break
		}
		out = append(out, n.Value.(int))
	}
	return out
}

// From returns the contour vertices from v to the right end inclusive, or
// nil if v is not on the contour.
func (c *Contour) From(v int) []int {
	if !c.Contains(v) {
		return nil
	}
	return c.Between(v, c.Last())
}

// Segments returns consecutive contour vertex pairs from left to right.
func (c *Contour) Segments() [][2]int {
	vs := c.Vertices()
	if len(vs) < 2 {
		return nil
	}
	out := make([][2]int, 0, len(vs)-1)
	for i := 0; i+1 < len(vs); i++ {
		out = append(out, [2]int{vs[i], vs[i+1]})
	}
	return out
}

// Splice replaces the contour segment run[0]..run[len(run)-1] by
// run[0], vk, run[len(run)-1]. The run must be exactly the current contour
// segment between its ends. Errors carry ErrCodeInvalidOrdering and leave
// the contour unchanged.
func (c *Contour) Splice(run []int, vk int) error {
	if len(run) < 2 {
		return gerr.Wrap(gerr.ErrCodeInvalidOrdering, ErrShortRun, "vertex %d", vk)
	}
	if c.Contains(vk) {
		return gerr.Wrap(gerr.ErrCodeInvalidOrdering, ErrAlreadyOnContour, "vertex %d", vk)
	}
	wp, wq := run[0], run[len(run)-1]
	if !c.Contains(wp) || !c.Contains(wq) {
		return gerr.Wrap(gerr.ErrCodeInvalidOrdering, ErrNotOnContour, "run %v of vertex %d", run, vk)
	}
	if seg := c.Between(wp, wq); !slices.Equal(seg, run) {
		return gerr.Wrap(gerr.ErrCodeInvalidOrdering, ErrNotContiguous, "run %v of vertex %d, contour has %v", run, vk, seg)
	}

	for _, w := range run[1 : len(run)-1] {
		c.tree.Remove(c.label[w])
		delete(c.label, w)
	}
	lp, lq := c.label[wp], c.label[wq]
	if lq-lp < 2 {
		c.relabel()
		lp, lq = c.label[wp], c.label[wq]
	}
	l := lp + (lq-lp)/2
	c.label[vk] = l
	c.tree.Put(l, vk)
	return nil
}

// relabel spreads all labels evenly again once a gap is exhausted.
func (c *Contour) relabel() {
	vs := c.Vertices()
	c.tree.Clear()
	for i, v := range vs {
		l := gap * int64(i+1)
		c.label[v] = l
		c.tree.Put(l, v)
	}
}

// Clone returns an independent copy of c.
func (c *Contour) Clone() *Contour {
	return New(c.Vertices()...)
}
