package placement

import (
	"errors"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridraw/pkg/canonical"
	"github.com/matzehuels/gridraw/pkg/contour"
	"github.com/matzehuels/gridraw/pkg/domino"
	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/planar"
)

// DefaultMaxIncrements bounds the upward visibility search of Algorithm A.
const DefaultMaxIncrements = 100

// ErrNoVisibleRow is returned by [Place] with [Visibility] when no row
// within the search bound sees every run vertex.
var ErrNoVisibleRow = errors.New("no visible row")

// Algorithm selects a placement rule.
type Algorithm string

const (
	// Visibility is Algorithm A.
	Visibility Algorithm = "a"
	// Slack is Algorithm B.
	Slack Algorithm = "b"
)

// Algorithms lists the supported placement rules.
var Algorithms = []Algorithm{Visibility, Slack}

// ParseAlgorithm maps a name to an Algorithm. It accepts the short names
// "a" and "b" as well as "visibility" and "slack".
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "a", "A", "visibility":
		return Visibility, nil
	case "b", "B", "slack":
		return Slack, nil
	}
	return "", gerr.New(gerr.ErrCodeUnknownAlgorithm, "unknown placement algorithm %q", s)
}

// Options configures a placement run.
type Options struct {
	// Logger receives one debug record per step. Nil discards.
	Logger *log.Logger
	// Trace records a Step with a position snapshot for every vertex.
	Trace bool
	// MaxIncrements bounds the visibility search. Zero means
	// DefaultMaxIncrements.
	MaxIncrements int
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.MaxIncrements <= 0 {
		o.MaxIncrements = DefaultMaxIncrements
	}
}

// Step records one ordering step of a traced run.
type Step struct {
	Index     int              `json:"index"`
	Vertex    int              `json:"vertex"`
	Neighbors []int            `json:"neighbors"`
	Contour   []int            `json:"contour"`
	Position  planar.Point     `json:"position"`
	Shifted   bool             `json:"shifted"`
	Positions planar.Positions `json:"positions"`
}

// Run is the outcome of a placement run.
type Run struct {
	Algorithm Algorithm        `json:"algorithm"`
	Positions planar.Positions `json:"positions"`
	Domino    *domino.Result   `json:"domino"`
	Steps     []Step           `json:"steps,omitempty"`
}

// Place runs alg over ord, a canonical ordering of g. The run owns all of
// its state, so concurrent calls on the same graph are safe. Any error
// aborts the run and no positions are returned.
func Place(g *planar.Graph, ord canonical.Ordering, alg Algorithm, opts Options) (*Run, error) {
	switch alg {
	case Visibility, Slack:
	default:
		return nil, gerr.New(gerr.ErrCodeUnknownAlgorithm, "unknown placement algorithm %q", alg)
	}
	opts.SetDefaults()

	s, err := newState(g, ord, alg, opts)
	if err != nil {
		return nil, err
	}
	for k := 3; k < len(ord); k++ {
		e := ord[k]
		if len(e.Neighbors) < 2 || !slices.Equal(s.c.Between(e.Wp(), e.Wq()), e.Neighbors) {
			return nil, gerr.Wrap(gerr.ErrCodeInvalidOrdering, contour.ErrNotContiguous,
				"entry %d: run %v of vertex %d", k, e.Neighbors, e.Vertex)
		}
		var p planar.Point
		var shifted bool
		if alg == Visibility {
			p, shifted, err = s.placeVisible(k, e)
		} else {
			p, shifted = s.placeSlack(e)
		}
		if err != nil {
			return nil, err
		}
		if err := s.c.Splice(e.Neighbors, e.Vertex); err != nil {
			return nil, err
		}
		s.record(k, e, p, shifted)
	}

	s.opts.Logger.Info("drawing complete",
		"algorithm", alg, "vertices", len(s.pos),
		"width", s.pos.Width(), "height", s.pos.Height())
	return &Run{Algorithm: alg, Positions: s.pos, Domino: s.dom, Steps: s.steps}, nil
}

// state is the mutable per-run data.
type state struct {
	opts  Options
	dom   *domino.Result
	pos   planar.Positions
	c     *contour.Contour
	steps []Step
}

func newState(g *planar.Graph, ord canonical.Ordering, alg Algorithm, opts Options) (*state, error) {
	n := len(ord)
	if n < 3 {
		return nil, gerr.New(gerr.ErrCodeInvalidInputSize, "need at least 3 vertices, got %d", n)
	}
	if n != g.NodeCount() {
		return nil, gerr.New(gerr.ErrCodeInvalidOrdering, "%d entries for %d vertices", n, g.NodeCount())
	}
	dom, err := domino.Compute(g, ord)
	if err != nil {
		return nil, err
	}
	v1, v2, v3 := ord[0].Vertex, ord[1].Vertex, ord[2].Vertex
	s := &state{
		opts: opts,
		dom:  dom,
		pos:  make(planar.Positions, n),
	}
	if n == 3 {
		s.pos[v1] = planar.Point{X: 0, Y: 0}
		s.pos[v2] = planar.Point{X: 1, Y: 0}
		s.pos[v3] = planar.Point{X: 0, Y: 1}
	} else {
		s.pos[v1] = planar.Point{X: 0, Y: 0}
		s.pos[v2] = planar.Point{X: 2, Y: 0}
		s.pos[v3] = planar.Point{X: 1, Y: 1}
	}
	s.c = contour.New(v1, v3, v2)
	opts.Logger.Debug("seeded", "algorithm", alg, "contour", s.c.Vertices())
	return s, nil
}

// shiftFrom moves the U-sets of wq and every contour vertex right of it
// one column to the right.
func (s *state) shiftFrom(wq int) {
	for _, c := range s.c.From(wq) {
		for _, t := range s.dom.U[c] {
			s.pos[t] = s.pos[t].Add(1, 0)
		}
	}
}

// column is the x coordinate of vk: above wp when stable, one right of it
// otherwise.
func (s *state) column(e canonical.Entry) int {
	x := s.pos[e.Wp()].X
	if !s.dom.Stable[e.Vertex] {
		x++
	}
	return x
}

func (s *state) record(k int, e canonical.Entry, p planar.Point, shifted bool) {
	cont := s.c.Vertices()
	s.opts.Logger.Debug("placed",
		"step", k, "vertex", e.Vertex, "neighbors", e.Neighbors,
		"contour", cont, "x", p.X, "y", p.Y, "shifted", shifted)
	if !s.opts.Trace {
		return
	}
	s.steps = append(s.steps, Step{
		Index:     k,
		Vertex:    e.Vertex,
		Neighbors: slices.Clone(e.Neighbors),
		Contour:   cont,
		Position:  p,
		Shifted:   shifted,
		Positions: s.pos.Clone(),
	})
}
