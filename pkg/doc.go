// Package pkg holds the libraries behind gridraw, which draws maximal
// planar graphs on integer grids.
//
// # Layout
//
//  1. [planar] - graphs, rotation systems, geometry and generators
//  2. [canonical], [contour], [domino] - canonical orderings and the
//     structures built on them
//  3. [shift], [placement] - the shift method and Algorithms A and B
//  4. [graph], [io], [render] - drawing formats and renderers
//  5. [pipeline] - load, order, draw and render with caching
//  6. [cache], [store], [observability] - infrastructure
//  7. [api], [config] - HTTP server and configuration files
//
// # Data Flow
//
//	instance (reference, generated, rotation system or file)
//	         ↓
//	    [canonical] ordering for an outer face (v1, v2, vn)
//	         ↓
//	    [shift] or [placement] grid positions
//	         ↓
//	    [render] SVG, DOT, PNG, JSON or text
//
// # Quick Start
//
//	emb := planar.ReferenceEmbedding()
//	ord, _ := canonical.Order(emb, 1, 2, 17)
//	run, _ := placement.Place(emb.Graph(), ord, placement.Visibility, placement.Options{})
//	fmt.Println(run.Positions.Width(), run.Positions.Height()) // 6 25
package pkg
