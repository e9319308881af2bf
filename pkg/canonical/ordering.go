package canonical

import (
	"errors"
	"fmt"
	"slices"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/contour"
	"github.com/matzehuels/gridraw/pkg/planar"
)

var (
	// ErrEntryCount is returned by [Validate] when the ordering does not
	// list every vertex of the graph exactly once.
	ErrEntryCount = errors.New("ordering must list every vertex once")

	// ErrBaseEntry is returned by [Validate] when entry 0 or 1 has a
	// neighbor run or when v1 and v2 are not adjacent.
	ErrBaseEntry = errors.New("first two entries must be an edge with empty runs")

	// ErrRunMismatch is returned by [Validate] when a run differs from the
	// set of earlier neighbors of its vertex.
	ErrRunMismatch = errors.New("run does not match earlier neighbors")
)

// Entry is one step of a canonical ordering: the inserted vertex and its
// contiguous run of outer-face neighbors in G_{k-1}, listed from wp to wq.
// Entries 0 and 1 have empty runs.
type Entry struct {
	Vertex    int   `json:"vertex" bson:"vertex"`
	Neighbors []int `json:"neighbors,omitempty" bson:"neighbors,omitempty"`
}

// Wp returns the leftmost run vertex.
func (e Entry) Wp() int { return e.Neighbors[0] }

// Wq returns the rightmost run vertex.
func (e Entry) Wq() int { return e.Neighbors[len(e.Neighbors)-1] }

// Wp1 returns the run vertex right of wp.
func (e Entry) Wp1() int { return e.Neighbors[1] }

// Wq1 returns the run vertex left of wq.
func (e Entry) Wq1() int { return e.Neighbors[len(e.Neighbors)-2] }

// Interior returns the run without wp and wq. These are the vertices that
// vk covers on the contour.
func (e Entry) Interior() []int {
	if len(e.Neighbors) <= 2 {
		return nil
	}
	return e.Neighbors[1 : len(e.Neighbors)-1]
}

func (e Entry) String() string {
	return fmt.Sprintf("%d%v", e.Vertex, e.Neighbors)
}

// Ordering is a canonical ordering indexed 0..n-1.
type Ordering []Entry

// Vertices returns the vertices in ordering sequence.
func (o Ordering) Vertices() []int {
	out := make([]int, len(o))
	for i, e := range o {
		out[i] = e.Vertex
	}
	return out
}

// Index returns the position of every vertex in the ordering.
func (o Ordering) Index() map[int]int {
	idx := make(map[int]int, len(o))
	for i, e := range o {
		idx[e.Vertex] = i
	}
	return idx
}

// Clone returns a deep copy of o.
func (o Ordering) Clone() Ordering {
	out := make(Ordering, len(o))
	for i, e := range o {
		out[i] = Entry{Vertex: e.Vertex, Neighbors: slices.Clone(e.Neighbors)}
	}
	return out
}

// Validate checks that ord is a canonical ordering of g: every vertex
// appears once, v1 and v2 are adjacent, each run equals the set of earlier
// neighbors of its vertex, and each run is contiguous on the contour of the
// previous prefix. Errors carry ErrCodeInvalidOrdering.
func Validate(g *planar.Graph, ord Ordering) error {
	n := g.NodeCount()
	if n < 3 {
		return gerr.New(gerr.ErrCodeInvalidInputSize, "need at least 3 vertices, got %d", n)
	}
	if len(ord) != n {
		return gerr.Wrap(gerr.ErrCodeInvalidOrdering, ErrEntryCount, "%d entries for %d vertices", len(ord), n)
	}
	idx := make(map[int]int, n)
	for i, e := range ord {
		if !g.HasVertex(e.Vertex) {
			return gerr.Wrap(gerr.ErrCodeInvalidOrdering, ErrEntryCount, "unknown vertex %d", e.Vertex)
		}
		if _, dup := idx[e.Vertex]; dup {
			return gerr.Wrap(gerr.ErrCodeInvalidOrdering, ErrEntryCount, "vertex %d listed twice", e.Vertex)
		}
		idx[e.Vertex] = i
	}
	if len(ord[0].Neighbors) != 0 || len(ord[1].Neighbors) != 0 || !g.HasEdge(ord[0].Vertex, ord[1].Vertex) {
		return gerr.Wrap(gerr.ErrCodeInvalidOrdering, ErrBaseEntry, "entries %v, %v", ord[0], ord[1])
	}

	c := contour.New(ord[0].Vertex, ord[1].Vertex)
	for k := 2; k < n; k++ {
		e := ord[k]
		var earlier []int
		for _, u := range g.Neighbors(e.Vertex) {
			if idx[u] < k {
				earlier = append(earlier, u)
			}
		}
		run := slices.Sorted(slices.Values(e.Neighbors))
		if !slices.Equal(run, earlier) {
			return gerr.Wrap(gerr.ErrCodeInvalidOrdering, ErrRunMismatch,
				"entry %d: vertex %d has run %v, earlier neighbors %v", k, e.Vertex, e.Neighbors, earlier)
		}
		if err := c.Splice(e.Neighbors, e.Vertex); err != nil {
			return fmt.Errorf("entry %d: %w", k, err)
		}
	}
	return nil
}
