package pipeline

import (
	"github.com/matzehuels/gridraw/pkg/canonical"
	"github.com/matzehuels/gridraw/pkg/graph"
	"github.com/matzehuels/gridraw/pkg/placement"
	"github.com/matzehuels/gridraw/pkg/planar"
	"github.com/matzehuels/gridraw/pkg/shift"
)

// OuterFace resolves the outer face of a run: the requested one, or the
// instance default.
func OuterFace(inst *Instance, opts Options) [3]int {
	if len(opts.OuterFace) == 3 {
		return [3]int{opts.OuterFace[0], opts.OuterFace[1], opts.OuterFace[2]}
	}
	if inst.Ordering != nil {
		return [3]int{inst.Ordering[0].Vertex, inst.Ordering[1].Vertex, inst.Ordering[len(inst.Ordering)-1].Vertex}
	}
	return DefaultOuterFace(inst.Embedding)
}

// Order returns the canonical ordering of a run. An ordering that came with
// the instance is used unless an outer face is requested explicitly.
func Order(inst *Instance, opts Options) (canonical.Ordering, error) {
	if inst.Ordering != nil && len(opts.OuterFace) == 0 {
		return inst.Ordering.Clone(), nil
	}
	f := OuterFace(inst, opts)
	return canonical.Order(inst.Embedding, f[0], f[1], f[2])
}

// Draw places the vertices of g along ord with the selected algorithm. The
// placement run is returned for Algorithm A and B and is nil for the shift
// method.
func Draw(g *planar.Graph, ord canonical.Ordering, opts Options) (planar.Positions, *placement.Run, error) {
	if err := opts.ValidateForDraw(); err != nil {
		return nil, nil, err
	}
	if opts.Algorithm == graph.AlgorithmShift {
		pos, err := shift.Embed(ord)
		if err != nil {
			return nil, nil, err
		}
		opts.Logger.Info("drawing complete",
			"algorithm", opts.Algorithm, "vertices", len(pos),
			"width", pos.Width(), "height", pos.Height())
		return pos, nil, nil
	}

	run, err := placement.Place(g, ord, placement.Algorithm(opts.Algorithm), placement.Options{
		Logger:        opts.Logger,
		Trace:         opts.Trace,
		MaxIncrements: opts.MaxIncrements,
	})
	if err != nil {
		return nil, nil, err
	}
	return run.Positions, run, nil
}
