package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridraw/pkg/graph"
	gio "github.com/matzehuels/gridraw/pkg/io"
	"github.com/matzehuels/gridraw/pkg/pipeline"
)

// renderCommand creates the render command, which converts a drawing file
// to other formats without recomputing it.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formats string
		output  string
	)
	opts := pipeline.Options{Scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a drawing file to SVG, DOT, PNG or text",
		Long: `Render an existing drawing (.json or .txt) to other formats.

The positions in the file are used as they are; no ordering or placement is
computed.

Examples:
  gridraw render reference.json -f svg,png
  gridraw render graph.txt -f svg --grid --scale 16`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats, pipeline.FormatSVG)
			return c.runRender(cmd.Context(), args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), json, txt, dot, png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input path without extension)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "SVG pixels per grid unit")
	cmd.Flags().BoolVar(&opts.Grid, "grid", false, "draw grid lines in SVG output")
	return cmd
}

func (c *CLI) runRender(ctx context.Context, path, output string, opts pipeline.Options) error {
	d, err := readDrawing(path)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, nil, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close(context.Background())

	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, d, opts)
	if err != nil {
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path))
	}
	paths, err := writeArtifacts(artifacts, opts.Formats, outputBase(output, d.Name))
	if err != nil {
		return err
	}

	c.printSuccess("Rendered %s", path)
	for _, p := range paths {
		c.printFile(p)
	}
	c.printStats(len(d.Vertices), d.Width, d.Height, hit)
	return nil
}

// readDrawing reads a JSON drawing, or a text file whose name becomes the
// drawing name.
func readDrawing(path string) (graph.Drawing, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return graph.ReadDrawingFile(path)
	}
	g, pos, err := gio.ImportText(path)
	if err != nil {
		return graph.Drawing{}, err
	}
	d := graph.FromPositions(g, pos)
	d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return d, nil
}
