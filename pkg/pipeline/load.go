package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/matzehuels/gridraw/pkg/canonical"
	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/graph"
	gio "github.com/matzehuels/gridraw/pkg/io"
	"github.com/matzehuels/gridraw/pkg/planar"
)

// Instance is a loaded, triangulated input.
type Instance struct {
	Name      string
	Embedding *planar.Embedding

	// Ordering is an ordering that came with the instance: the fixed
	// ordering of the reference instance or one stored in a JSON drawing.
	// It is used when no outer face is requested.
	Ordering canonical.Ordering
}

// Load builds the instance described by opts and checks that it is a
// triangulation.
func Load(ctx context.Context, opts Options) (*Instance, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inst := &Instance{Name: opts.InstanceName()}
	var err error
	switch opts.Source {
	case SourceReference:
		inst.Embedding = planar.ReferenceEmbedding()
		inst.Ordering = canonical.Reference()
	case SourceGenerate:
		inst.Embedding, err = planar.GenerateStacked(opts.Vertices, opts.Seed)
	case SourceInline:
		inst.Embedding, err = planar.NewEmbedding(opts.Rotation)
	case SourceFile:
		err = loadFile(inst, opts.Path)
	}
	if err != nil {
		return nil, err
	}

	if err := inst.Embedding.CheckTriangulated(); err != nil {
		return nil, err
	}
	opts.Logger.Debug("loaded instance",
		"name", inst.Name, "source", opts.Source,
		"vertices", inst.Embedding.Len(), "edges", inst.Embedding.Graph().EdgeCount())
	return inst, nil
}

// loadFile reads a JSON drawing (.json) or the plain text format (any
// other extension). Both carry positions, from which the rotation system
// is read off.
func loadFile(inst *Instance, path string) error {
	var (
		g   *planar.Graph
		pos planar.Positions
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		var d graph.Drawing
		if d, err = graph.ReadDrawingFile(path); err != nil {
			return gerr.Wrap(gerr.ErrCodeInvalidFormat, err, "%s", path)
		}
		if g, err = d.Graph(); err != nil {
			return gerr.Wrap(gerr.ErrCodeInvalidFormat, err, "%s", path)
		}
		pos = d.Positions()
		inst.Ordering = d.CanonicalOrdering()
		if inst.Name == baseName(path) && d.Name != "" {
			inst.Name = d.Name
		}
	} else if g, pos, err = gio.ImportText(path); err != nil {
		return err
	}

	if err := gerr.ValidateVertexCount(g.NodeCount()); err != nil {
		return err
	}
	inst.Embedding, err = planar.EmbeddingFromPositions(g, pos)
	if err != nil {
		return err
	}
	if inst.Ordering != nil {
		if err := canonical.Validate(g, inst.Ordering); err != nil {
			return err
		}
	}
	return nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// DefaultOuterFace returns the outer face used when none is requested:
// the smallest vertex, its smallest neighbor, and the vertex following
// that neighbor clockwise. For the reference instance and generated
// instances this is (1, 2, n).
func DefaultOuterFace(emb *planar.Embedding) [3]int {
	vs := emb.Vertices()
	v1 := vs[0]
	v2 := emb.Graph().Neighbors(v1)[0]
	return [3]int{v1, v2, emb.CW(v1, v2)}
}
