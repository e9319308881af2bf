package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridraw/pkg/canonical"
	"github.com/matzehuels/gridraw/pkg/pipeline"
)

// orderCommand creates the order command, which prints a canonical ordering.
func (c *CLI) orderCommand() *cobra.Command {
	var (
		instance instanceFlags
		output   string
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Compute a canonical ordering",
		Long: `Compute a canonical ordering of an instance for the chosen outer face.

Each row lists an inserted vertex and its contiguous run of neighbors on the
outer face of the graph drawn so far, from wp to wq.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			if err := instance.apply(&opts); err != nil {
				return err
			}
			return c.runOrder(cmd.Context(), opts, output)
		},
	}

	instance.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the ordering as JSON to this file")
	return cmd
}

func (c *CLI) runOrder(ctx context.Context, opts pipeline.Options, output string) error {
	runner, err := c.newRunner(ctx, nil, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close(context.Background())

	inst, err := pipeline.Load(ctx, opts)
	if err != nil {
		return err
	}
	ord, hit, err := runner.OrderWithCacheInfo(ctx, inst, opts)
	if err != nil {
		return err
	}

	if output != "" {
		if err := writeJSONFile(output, ord); err != nil {
			return err
		}
		c.printSuccess("Ordering of %s", inst.Name)
		c.printFile(output)
		return nil
	}

	c.printKeyValue("instance", inst.Name)
	c.printKeyValue("outer face", formatFace(pipeline.OuterFace(inst, opts)))
	c.printKeyValue("cached", strconv.FormatBool(hit))
	c.printTable([]string{"k", "vertex", "neighbors"}, orderingRows(ord))
	return nil
}

func orderingRows(ord canonical.Ordering) [][]string {
	rows := make([][]string, len(ord))
	for k, e := range ord {
		nbrs := make([]string, len(e.Neighbors))
		for i, w := range e.Neighbors {
			nbrs[i] = strconv.Itoa(w)
		}
		rows[k] = []string{strconv.Itoa(k + 1), strconv.Itoa(e.Vertex), strings.Join(nbrs, " ")}
	}
	return rows
}
