package planar

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
)

var (
	// ErrUnplacedVertex is returned by [CheckDrawing] when a graph vertex
	// has no position.
	ErrUnplacedVertex = errors.New("vertex has no position")

	// ErrDuplicatePosition is returned by [CheckDrawing] when two vertices
	// share a grid point.
	ErrDuplicatePosition = errors.New("two vertices share a position")

	// ErrVertexOnEdge is returned by [CheckDrawing] when a vertex lies on an
	// edge it is not an endpoint of.
	ErrVertexOnEdge = errors.New("vertex lies on a foreign edge")

	// ErrEdgeCrossing is returned by [CheckDrawing] when two edges without a
	// common endpoint intersect.
	ErrEdgeCrossing = errors.New("edges cross")
)

// Point is an integer grid coordinate.
type Point struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point { return Point{p.X + dx, p.Y + dy} }

func (p Point) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Positions maps vertex ids to grid points.
type Positions map[int]Point

// Clone returns a copy of pos.
func (pos Positions) Clone() Positions {
	out := make(Positions, len(pos))
	for v, p := range pos {
		out[v] = p
	}
	return out
}

// Bounds returns the bounding box of pos. An empty map yields the zero box.
func (pos Positions) Bounds() (minP, maxP Point) {
	first := true
	for _, p := range pos {
		if first {
			minP, maxP = p, p
			first = false
			continue
		}
		minP.X, minP.Y = min(minP.X, p.X), min(minP.Y, p.Y)
		maxP.X, maxP.Y = max(maxP.X, p.X), max(maxP.Y, p.Y)
	}
	return minP, maxP
}

// Width returns the horizontal extent of the drawing in grid units.
func (pos Positions) Width() int {
	lo, hi := pos.Bounds()
	return hi.X - lo.X
}

// Height returns the vertical extent of the drawing in grid units.
func (pos Positions) Height() int {
	lo, hi := pos.Bounds()
	return hi.Y - lo.Y
}

// Orient returns the sign of the cross product (b-a) x (c-a): +1 for a
// counterclockwise turn, -1 for clockwise, 0 for collinear points.
func Orient(a, b, c Point) int {
	v := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// onSegment reports whether c, known to be collinear with a and b, lies
// within their bounding box.
func onSegment(a, b, c Point) bool {
	return min(a.X, b.X) <= c.X && c.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= c.Y && c.Y <= max(a.Y, b.Y)
}

// SegmentsIntersect reports whether the closed segments p1p2 and p3p4 share
// at least one point. Touching endpoints and collinear overlap count.
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	d1 := Orient(p3, p4, p1)
	d2 := Orient(p3, p4, p2)
	d3 := Orient(p1, p2, p3)
	d4 := Orient(p1, p2, p4)
	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	return (d1 == 0 && onSegment(p3, p4, p1)) ||
		(d2 == 0 && onSegment(p3, p4, p2)) ||
		(d3 == 0 && onSegment(p1, p2, p3)) ||
		(d4 == 0 && onSegment(p1, p2, p4))
}

// CheckDrawing verifies that pos is a straight-line planar drawing of g.
// Failures carry ErrCodeInvalidDrawing and wrap one of the Err* sentinels
// above. The check is quadratic in the number of edges.
func CheckDrawing(g *Graph, pos Positions) error {
	owner := make(map[Point]int, len(pos))
	for _, v := range g.Vertices() {
		p, ok := pos[v]
		if !ok {
			return gerr.Wrap(gerr.ErrCodeInvalidDrawing, ErrUnplacedVertex, "vertex %d", v)
		}
		if u, dup := owner[p]; dup {
			return gerr.Wrap(gerr.ErrCodeInvalidDrawing, ErrDuplicatePosition, "vertices %d and %d at %v", u, v, p)
		}
		owner[p] = v
	}

	edges := g.Edges()
	for _, e := range edges {
		a, b := pos[e.U], pos[e.V]
		for p, v := range owner {
			if v == e.U || v == e.V {
				continue
			}
			if SegmentsIntersect(a, b, p, p) {
				return gerr.Wrap(gerr.ErrCodeInvalidDrawing, ErrVertexOnEdge, "vertex %d on edge %d-%d", v, e.U, e.V)
			}
		}
	}

	for i, e := range edges {
		for _, f := range edges[i+1:] {
			if e.U == f.U || e.U == f.V || e.V == f.U || e.V == f.V {
				continue
			}
			if SegmentsIntersect(pos[e.U], pos[e.V], pos[f.U], pos[f.V]) {
				return gerr.Wrap(gerr.ErrCodeInvalidDrawing, ErrEdgeCrossing, "edges %d-%d and %d-%d", e.U, e.V, f.U, f.V)
			}
		}
	}
	return nil
}

// EmbeddingFromPositions reads the rotation system off a straight-line
// drawing: the neighbors of each vertex sorted clockwise by direction.
// The drawing is not checked for crossings.
func EmbeddingFromPositions(g *Graph, pos Positions) (*Embedding, error) {
	rot := make(map[int][]int, g.NodeCount())
	for _, v := range g.Vertices() {
		pv, ok := pos[v]
		if !ok {
			return nil, gerr.Wrap(gerr.ErrCodeInvalidDrawing, ErrUnplacedVertex, "vertex %d", v)
		}
		nbrs := g.Neighbors(v)
		for _, u := range nbrs {
			if _, ok := pos[u]; !ok {
				return nil, gerr.Wrap(gerr.ErrCodeInvalidDrawing, ErrUnplacedVertex, "vertex %d", u)
			}
		}
		slices.SortStableFunc(nbrs, func(a, b int) int {
			return -compareDirection(pos[a].sub(pv), pos[b].sub(pv))
		})
		rot[v] = nbrs
	}
	return NewEmbedding(rot)
}

func (p Point) sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// compareDirection orders direction vectors counterclockwise starting at
// the positive x axis.
func compareDirection(a, b Point) int {
	if ha, hb := half(a), half(b); ha != hb {
		return cmp.Compare(ha, hb)
	}
	return -Orient(Point{}, a, b)
}

func half(d Point) int {
	if d.Y > 0 || (d.Y == 0 && d.X > 0) {
		return 0
	}
	return 1
}
