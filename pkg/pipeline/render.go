package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/gridraw/pkg/graph"
	gio "github.com/matzehuels/gridraw/pkg/io"
	"github.com/matzehuels/gridraw/pkg/render"
)

// Render generates output artifacts for d in the requested formats.
func Render(ctx context.Context, d graph.Drawing, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	g, err := d.Graph()
	if err != nil {
		return nil, err
	}
	pos := d.Positions()

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		switch format {
		case FormatJSON:
			data, err = graph.MarshalDrawing(d)
		case FormatText:
			var buf bytes.Buffer
			err = gio.WriteText(g, pos, &buf)
			data = buf.Bytes()
		case FormatSVG:
			svgOpts := []render.SVGOption{render.WithScale(opts.Scale)}
			if opts.Grid {
				svgOpts = append(svgOpts, render.WithGrid())
			}
			data = render.SVG(g, pos, svgOpts...)
		case FormatDOT:
			data = []byte(render.ToDOT(g, pos, render.DOTOptions{Title: d.Name}))
		case FormatPNG:
			data, err = render.RenderDOT(ctx, render.ToDOT(g, pos, render.DOTOptions{Title: d.Name}), render.FormatPNG)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
