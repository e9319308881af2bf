package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/pipeline"
)

// instanceFlags selects the input instance of a command.
type instanceFlags struct {
	input     string
	generate  int
	seed      uint64
	outerFace string
	name      string
}

func (f *instanceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "read the instance from a .txt or .json drawing file")
	cmd.Flags().IntVarP(&f.generate, "generate", "n", 0, "generate a random stacked triangulation with n vertices")
	cmd.Flags().Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "random seed for --generate")
	cmd.Flags().StringVar(&f.outerFace, "outer-face", "", "outer face v1,v2,vn (default: derived from the instance)")
	cmd.Flags().StringVar(&f.name, "name", "", "instance name used for output files")
	cmd.MarkFlagsMutuallyExclusive("input", "generate")
}

// apply fills the instance part of opts. Without --input or --generate the
// reference instance is used.
func (f *instanceFlags) apply(opts *pipeline.Options) error {
	switch {
	case f.input != "":
		path, err := absPath(f.input)
		if err != nil {
			return err
		}
		opts.Source, opts.Path = pipeline.SourceFile, path
	case f.generate != 0:
		opts.Source, opts.Vertices, opts.Seed = pipeline.SourceGenerate, f.generate, f.seed
	default:
		opts.Source = pipeline.SourceReference
	}
	opts.Name = f.name
	face, err := parseOuterFace(f.outerFace)
	if err != nil {
		return err
	}
	opts.OuterFace = face
	return nil
}

// parseOuterFace parses "v1,v2,vn". An empty string means no face.
func parseOuterFace(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, gerr.New(gerr.ErrCodeInvalidOuterFace, "outer face needs 3 vertices, got %q", s)
	}
	face := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, gerr.Wrap(gerr.ErrCodeInvalidOuterFace, err, "outer face vertex %q", p)
		}
		face[i] = v
	}
	return face, nil
}

func formatFace(face [3]int) string {
	return fmt.Sprintf("(%d, %d, %d)", face[0], face[1], face[2])
}
