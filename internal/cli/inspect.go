package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridraw/pkg/canonical"
	"github.com/matzehuels/gridraw/pkg/graph"
	"github.com/matzehuels/gridraw/pkg/planar"
)

// inspection is the report of the inspect command.
type inspection struct {
	Name         string   `json:"name,omitempty"`
	Algorithm    string   `json:"algorithm,omitempty"`
	Vertices     int      `json:"vertices"`
	Edges        int      `json:"edges"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Area         int      `json:"area"`
	Ordering     bool     `json:"ordering"`
	Planar       bool     `json:"planar"`
	Triangulated bool     `json:"triangulated"`
	Problems     []string `json:"problems,omitempty"`
}

// ok reports whether the drawing passed every check.
func (r inspection) ok() bool { return len(r.Problems) == 0 }

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarise and verify a drawing file",
		Long: `Summarise a drawing (.json or .txt) and check that it is a planar
straight-line grid drawing of a maximal planar graph. A stored canonical
ordering is validated too.

The command fails when any check fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDrawing(args[0])
			if err != nil {
				return err
			}
			report, err := inspect(d)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				c.printInspection(report)
			}
			if !report.ok() {
				return fmt.Errorf("%s: %d check(s) failed", args[0], len(report.Problems))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func inspect(d graph.Drawing) (inspection, error) {
	g, err := d.Graph()
	if err != nil {
		return inspection{}, err
	}
	pos := d.Positions()
	r := inspection{
		Name:      d.Name,
		Algorithm: d.Algorithm,
		Vertices:  g.NodeCount(),
		Edges:     g.EdgeCount(),
		Width:     pos.Width(),
		Height:    pos.Height(),
		Ordering:  len(d.Ordering) > 0,
	}
	r.Area = (r.Width + 1) * (r.Height + 1)

	if err := planar.CheckDrawing(g, pos); err != nil {
		r.Problems = append(r.Problems, err.Error())
	} else {
		r.Planar = true
	}
	if r.Planar {
		if emb, err := planar.EmbeddingFromPositions(g, pos); err != nil {
			r.Problems = append(r.Problems, err.Error())
		} else if err := emb.CheckTriangulated(); err != nil {
			r.Problems = append(r.Problems, err.Error())
		} else {
			r.Triangulated = true
		}
	}
	if r.Ordering {
		if err := canonical.Validate(g, d.CanonicalOrdering()); err != nil {
			r.Problems = append(r.Problems, err.Error())
		}
	}
	return r, nil
}

func (c *CLI) printInspection(r inspection) {
	if r.Name != "" {
		c.printKeyValue("name", r.Name)
	}
	if r.Algorithm != "" {
		c.printKeyValue("algorithm", r.Algorithm)
	}
	c.printKeyValue("vertices", strconv.Itoa(r.Vertices))
	c.printKeyValue("edges", strconv.Itoa(r.Edges))
	c.printKeyValue("grid", fmt.Sprintf("%d × %d (%d points)", r.Width, r.Height, r.Area))
	c.printKeyValue("ordering", yesNo(r.Ordering))
	c.printNewline()

	check := func(ok bool, label string) {
		if ok {
			c.printSuccess("%s", label)
		} else {
			c.printError("%s", label)
		}
	}
	check(r.Planar, "no crossing edges")
	check(r.Triangulated, "maximal planar")
	for _, p := range r.Problems {
		c.printDetail("%s", p)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
