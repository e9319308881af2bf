// Package render turns grid drawings into images.
//
// # Overview
//
// Two renderers are provided:
//
//   - [SVG] writes a self-contained SVG document directly. Grid points map
//     to pixel coordinates with y pointing up, so the base edge v1-v2 sits at
//     the bottom of the image.
//   - [ToDOT] emits a Graphviz document with every node pinned to its grid
//     point, which [RenderDOT] lays out with neato and renders to SVG or PNG.
//
// Both take the graph and its [planar.Positions]; neither checks the drawing.
// Use [planar.CheckDrawing] first if crossings matter.
//
//	svg := render.SVG(g, pos, render.WithScale(40), render.WithGrid())
//
//	dot := render.ToDOT(g, pos, render.DOTOptions{})
//	png, err := render.RenderDOT(ctx, dot, render.FormatPNG)
package render
