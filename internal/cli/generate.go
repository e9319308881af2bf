package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridraw/pkg/graph"
	"github.com/matzehuels/gridraw/pkg/pipeline"
)

// generateCommand creates the generate command, which writes a random
// stacked triangulation with straight-line coordinates from the shift
// method.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		n      int
		seed   uint64
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random stacked triangulation",
		Long: `Write a random stacked triangulation on n vertices.

The coordinates come from the shift method, so the file is a valid planar
straight-line drawing that other commands accept with --input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != pipeline.FormatText && format != pipeline.FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'txt' or 'json')", format)
			}
			opts := pipeline.Options{
				Source:    pipeline.SourceGenerate,
				Vertices:  n,
				Seed:      seed,
				Algorithm: graph.AlgorithmShift,
				Formats:   []string{format},
			}
			return c.runGenerate(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().IntVarP(&n, "vertices", "n", pipeline.DefaultVertices, "number of vertices")
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "random seed")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatText, "file format: txt, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: stacked-<n>-<seed>)")
	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string) error {
	runner, err := c.newRunner(ctx, nil, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close(context.Background())

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	paths, err := writeArtifacts(res.Artifacts, opts.Formats, outputBase(output, res.Name))
	if err != nil {
		return err
	}

	c.printSuccess("Generated %s", res.Name)
	for _, p := range paths {
		c.printFile(p)
	}
	c.printStats(res.Stats.Vertices, res.Stats.Width, res.Stats.Height, res.CacheInfo.DrawHit)
	c.printNewline()
	c.printNextStep("Draw", "gridraw draw -i "+paths[0])
	return nil
}
