package placement

import (
	"github.com/matzehuels/gridraw/pkg/canonical"
	"github.com/matzehuels/gridraw/pkg/planar"
)

// slack is 4*(x[u]-x[v]) + (y[u]-y[v]).
func (s *state) slack(u, v int) int {
	pu, pv := s.pos[u], s.pos[v]
	return 4*(pu.X-pv.X) + (pu.Y - pv.Y)
}

// placeSlack places vk by Algorithm B and reports whether the contour was
// shifted for it.
func (s *state) placeSlack(e canonical.Entry) (planar.Point, bool) {
	stable := s.dom.Stable[e.Vertex]
	wp, wq := e.Wp(), e.Wq()
	x := s.column(e)
	shifted := false

	var y int
	if len(e.Neighbors) == 2 {
		if stable {
			y = max(s.pos[wp].Y+1, s.pos[wq].Y)
		} else {
			s.shiftFrom(wq)
			shifted = true
			p, q := s.pos[wp], s.pos[wq]
			if p.Y < q.Y && p.X < q.X {
				y = q.Y
			} else {
				y = max(p.Y, q.Y+1)
			}
		}
	} else {
		run := e.Neighbors
		r := len(run) - 1
		for i := 2; i < len(run); i++ {
			if s.dom.Stable[run[i]] {
				r = i
				break
			}
		}
		wr, wr1 := run[r], run[r-1]
		yp := s.pos[wr].Y + 4*(x-s.pos[wr].X) - s.slack(wr1, wr)
		if r == 1 || (!stable && r == 2) {
			yp++
		}
		y = max(yp, s.pos[wq].Y)
	}

	p := planar.Point{X: x, Y: y}
	s.pos[e.Vertex] = p
	if s.slack(e.Vertex, wq) == 0 {
		s.shiftFrom(wq)
		shifted = true
	}
	// A shift moves wq but never vk.
	return p, shifted
}
