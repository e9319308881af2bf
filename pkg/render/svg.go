package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/gridraw/pkg/planar"
)

const (
	defaultScale  = 32.0
	defaultMargin = 24.0
	defaultRadius = 5.0
)

// SVGOption configures [SVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale     float64
	margin    float64
	radius    float64
	labels    bool
	grid      bool
	highlight map[int]bool
}

func WithScale(px float64) SVGOption  { return func(r *svgRenderer) { r.scale = px } }
func WithMargin(px float64) SVGOption { return func(r *svgRenderer) { r.margin = px } }
func WithGrid() SVGOption             { return func(r *svgRenderer) { r.grid = true } }
func WithoutLabels() SVGOption        { return func(r *svgRenderer) { r.labels = false } }

// WithHighlight marks vertices to be filled in the accent colour, e.g. the
// vertex placed in a replayed step.
func WithHighlight(vs ...int) SVGOption {
	return func(r *svgRenderer) {
		for _, v := range vs {
			r.highlight[v] = true
		}
	}
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		scale:     defaultScale,
		margin:    defaultMargin,
		radius:    defaultRadius,
		labels:    true,
		highlight: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = defaultScale
	}
	if r.margin < 0 {
		r.margin = 0
	}
	return r
}

// SVG renders the straight-line drawing of g at pos. Vertices missing from
// pos are skipped together with their edges.
func SVG(g *planar.Graph, pos planar.Positions, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	lo, hi := pos.Bounds()
	minX, minY, maxX, maxY := lo.X, lo.Y, hi.X, hi.Y
	width := float64(maxX-minX)*r.scale + 2*r.margin
	height := float64(maxY-minY)*r.scale + 2*r.margin

	px := func(p planar.Point) (float64, float64) {
		return r.margin + float64(p.X-minX)*r.scale, r.margin + float64(maxY-p.Y)*r.scale
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")

	if r.grid && len(pos) > 0 {
		buf.WriteString(`  <g class="grid" stroke="#e5e5e5" stroke-width="1">` + "\n")
		for x := minX; x <= maxX; x++ {
			x0, y0 := px(planar.Point{X: x, Y: maxY})
			_, y1 := px(planar.Point{X: x, Y: minY})
			fmt.Fprintf(&buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x0, y0, x0, y1)
		}
		for y := minY; y <= maxY; y++ {
			x0, y0 := px(planar.Point{X: minX, Y: y})
			x1, _ := px(planar.Point{X: maxX, Y: y})
			fmt.Fprintf(&buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x0, y0, x1, y0)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString(`  <g class="edges" stroke="#333" stroke-width="1.5">` + "\n")
	for _, e := range g.Edges() {
		pu, okU := pos[e.U]
		pv, okV := pos[e.V]
		if !okU || !okV {
			continue
		}
		x1, y1 := px(pu)
		x2, y2 := px(pv)
		fmt.Fprintf(&buf, `    <line id="edge-%d-%d" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", e.U, e.V, x1, y1, x2, y2)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="vertices" stroke="#333" stroke-width="1.5">` + "\n")
	for _, v := range g.Vertices() {
		p, ok := pos[v]
		if !ok {
			continue
		}
		x, y := px(p)
		fill := "white"
		if r.highlight[v] {
			fill = "#e4572e"
		}
		fmt.Fprintf(&buf, `    <circle id="vertex-%d" cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", v, x, y, r.radius, fill)
	}
	buf.WriteString("  </g>\n")

	if r.labels {
		buf.WriteString(`  <g class="labels" font-family="monospace" font-size="11" fill="#111">` + "\n")
		for _, v := range g.Vertices() {
			p, ok := pos[v]
			if !ok {
				continue
			}
			x, y := px(p)
			fmt.Fprintf(&buf, `    <text x="%.1f" y="%.1f">%d</text>`+"\n", x+r.radius+2, y-r.radius-2, v)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
