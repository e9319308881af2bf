package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/planar"
)

// WriteText writes g and pos in the text format. The vertex ids of g must
// be exactly 1..n and every vertex must have a position.
func WriteText(g *planar.Graph, pos planar.Positions, w io.Writer) error {
	if err := g.CheckContiguous(); err != nil {
		return gerr.Wrap(gerr.ErrCodeInvalidInput, err, "text format needs vertices 1..n")
	}
	n := g.NodeCount()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", n)
	for v := 1; v <= n; v++ {
		p, ok := pos[v]
		if !ok {
			return gerr.Wrap(gerr.ErrCodeInvalidInput, planar.ErrUnplacedVertex, "vertex %d", v)
		}
		fmt.Fprintf(bw, "%d, %d\n", p.X, p.Y)
	}
	row := make([]string, n)
	for u := 1; u <= n; u++ {
		for v := 1; v <= n; v++ {
			row[v-1] = "0"
			if g.HasEdge(u, v) {
				row[v-1] = "1"
			}
		}
		bw.WriteString(strings.Join(row, " "))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ExportText writes g and pos to a text file at path.
func ExportText(g *planar.Graph, pos planar.Positions, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteText(g, pos, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
