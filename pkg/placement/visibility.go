package placement

import (
	"github.com/matzehuels/gridraw/pkg/canonical"
	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/planar"
)

// placeVisible places vk by Algorithm A and reports whether the contour
// was shifted for it.
func (s *state) placeVisible(k int, e canonical.Entry) (planar.Point, bool, error) {
	stable := s.dom.Stable[e.Vertex]
	y := max(s.pos[e.Wp1()].Y, s.pos[e.Wq1()].Y)
	shifted := false

	if len(e.Neighbors) == 2 {
		if !stable {
			s.shiftFrom(e.Wq())
			shifted = true
		}
		p, q := s.pos[e.Wp()], s.pos[e.Wq()]
		switch {
		case p.Y < q.Y && p.X < q.X: // upward
			y = q.Y
		case p.Y == q.Y: // horizontal
			y = q.Y + 1
		case p.Y > q.Y && p.X < q.X: // downward
			y = p.Y
			if stable {
				y++
			}
		}
	}

	x := s.column(e)
	if len(e.Neighbors) > 2 {
		row, ok := s.visibleRow(x, y, e.Neighbors)
		if !ok {
			return planar.Point{}, shifted, gerr.Wrap(gerr.ErrCodeVisibilitySearch, ErrNoVisibleRow,
				"entry %d: vertex %d, rows %d..%d at x=%d", k, e.Vertex, y, y+s.opts.MaxIncrements-1, x)
		}
		y = row
	}

	p := planar.Point{X: x, Y: y}
	s.pos[e.Vertex] = p
	return p, shifted, nil
}

// visibleRow searches upward from y for the first row where (x, row) sees
// every run vertex.
func (s *state) visibleRow(x, y int, run []int) (int, bool) {
	segs := s.c.Segments()
	for inc := range s.opts.MaxIncrements {
		cand := planar.Point{X: x, Y: y + inc}
		if s.visible(cand, run, segs) {
			return cand.Y, true
		}
	}
	return 0, false
}

// visible reports whether the segment from cand to each run vertex misses
// every contour segment not incident to that vertex.
func (s *state) visible(cand planar.Point, run []int, segs [][2]int) bool {
	for _, w := range run {
		pw := s.pos[w]
		for _, seg := range segs {
			if seg[0] == w || seg[1] == w {
				continue
			}
			if planar.SegmentsIntersect(cand, pw, s.pos[seg[0]], s.pos[seg[1]]) {
				return false
			}
		}
	}
	return true
}
