package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/planar"
)

// Format is an output format of [RenderDOT].
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ErrUnsupportedFormat is returned by [RenderDOT] for formats other than
// [FormatSVG] and [FormatPNG].
var ErrUnsupportedFormat = errors.New("unsupported render format")

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// Unit is the length of one grid unit in inches. Zero means 0.5.
	Unit float64
	// Title is written as the graph label when non-empty.
	Title string
}

// ToDOT converts a drawing to Graphviz DOT with every vertex pinned to its
// grid point. The result must be laid out with neato, which [RenderDOT]
// does.
func ToDOT(g *planar.Graph, pos planar.Positions, opts DOTOptions) string {
	unit := opts.Unit
	if unit <= 0 {
		unit = 0.5
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, width=0.3, fixedsize=true, fontsize=10, pin=true];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		p, ok := pos[v]
		if !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %d [pos=\"%s,%s!\"];\n", v, inches(p.X, unit), inches(p.Y, unit))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if _, ok := pos[e.U]; !ok {
			continue
		}
		if _, ok := pos[e.V]; !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func inches(c int, unit float64) string {
	return strconv.FormatFloat(float64(c)*unit, 'f', -1, 64)
}

// RenderDOT lays out dot with neato and renders it in the given format.
func RenderDOT(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, gerr.Wrap(gerr.ErrCodeUnsupported, ErrUnsupportedFormat, "format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root tag so the image scales from
// the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
