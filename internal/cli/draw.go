package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridraw/pkg/api"
	"github.com/matzehuels/gridraw/pkg/pipeline"
)

type drawFlags struct {
	instance instanceFlags
	formats  string
	output   string
	store    bool
	remote   string
}

// drawCommand creates the draw command, which runs the full pipeline.
func (c *CLI) drawCommand() *cobra.Command {
	var flags drawFlags
	opts := pipeline.Options{Algorithm: pipeline.DefaultAlgorithm}

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Compute a grid drawing and write it in the requested formats",
		Long: `Compute a grid drawing of an instance and write it in the requested formats.

Without --input or --generate the built-in 17-vertex reference instance is
drawn. Artifacts are written to <output>.<format>, where output defaults to
the instance name.

Examples:
  gridraw draw                                  # reference instance, Algorithm A, SVG
  gridraw draw -n 200 --seed 7 -a shift -f svg,json
  gridraw draw -i graph.txt -a b --trace        # also writes graph.steps.json
  gridraw draw -n 50 --remote http://localhost:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.instance.apply(&opts); err != nil {
				return err
			}
			opts.Formats = parseFormats(flags.formats, pipeline.FormatSVG)
			if flags.remote != "" {
				return c.runRemoteDraw(cmd.Context(), opts, flags)
			}
			return c.runDraw(cmd.Context(), opts, flags)
		},
	}

	flags.instance.register(cmd)
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", opts.Algorithm, "placement method: a (visibility), b (slack), shift")
	cmd.Flags().IntVar(&opts.MaxIncrements, "max-increments", 0, "height increments tried per vertex by Algorithm A (default 100)")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "record every placement step and write <output>.steps.json")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "check that no two edges cross")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute instead of reading the cache")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "SVG pixels per grid unit")
	cmd.Flags().BoolVar(&opts.Grid, "grid", false, "draw grid lines in SVG output")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), json, txt, dot, png (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output base path (default: instance name)")
	cmd.Flags().BoolVar(&flags.store, "store", false, "save the drawing to the configured store")
	cmd.Flags().StringVar(&flags.remote, "remote", "", "draw on a gridraw server at this URL")

	return cmd
}

func (c *CLI) runDraw(ctx context.Context, opts pipeline.Options, flags drawFlags) error {
	runner, err := c.newRunner(ctx, nil, flags.store)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close(context.Background())

	spinner := newSpinner(ctx, os.Stderr, "Drawing...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		c.printError("Drawing failed")
		return err
	}

	base := outputBase(flags.output, res.Name)
	paths, err := writeArtifacts(res.Artifacts, opts.Formats, base)
	if err != nil {
		return err
	}
	if res.Run != nil && len(res.Run.Steps) > 0 {
		path := base + ".steps.json"
		if err := writeJSONFile(path, res.Run); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	c.printSuccess("Drawing complete")
	for _, p := range paths {
		c.printFile(p)
	}
	c.printStats(res.Stats.Vertices, res.Stats.Width, res.Stats.Height, res.CacheInfo.DrawHit)
	if res.Drawing.ID != "" {
		c.printDetail("stored as %s", res.Drawing.ID)
	}
	if slices.Contains(opts.Formats, pipeline.FormatJSON) {
		c.printNewline()
		c.printNextStep("Inspect", "gridraw inspect "+base+".json")
	}
	return nil
}

func (c *CLI) runRemoteDraw(ctx context.Context, opts pipeline.Options, flags drawFlags) error {
	if opts.Source == pipeline.SourceFile {
		return fmt.Errorf("--remote cannot be combined with --input")
	}
	client := api.NewClient(flags.remote)

	spinner := newSpinner(ctx, os.Stderr, "Drawing on "+flags.remote+"...")
	spinner.Start()
	resp, err := client.Draw(ctx, opts)
	spinner.Stop()
	if err != nil {
		c.printError("Remote drawing failed")
		return err
	}

	artifacts := make(map[string][]byte, len(resp.Artifacts))
	for format, s := range resp.Artifacts {
		data, err := api.DecodeArtifact(format, s)
		if err != nil {
			return fmt.Errorf("decode %s artifact: %w", format, err)
		}
		artifacts[format] = data
	}
	paths, err := writeArtifacts(artifacts, opts.Formats, outputBase(flags.output, resp.Drawing.Name))
	if err != nil {
		return err
	}

	c.printSuccess("Drawing complete")
	for _, p := range paths {
		c.printFile(p)
	}
	c.printStats(resp.Stats.Vertices, resp.Stats.Width, resp.Stats.Height, resp.Cache.Drawing)
	if resp.Drawing.ID != "" {
		c.printDetail("stored as %s", resp.Drawing.ID)
	}
	return nil
}

// writeArtifacts writes each format to base.format, creating the parent
// directory, and returns the written paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
