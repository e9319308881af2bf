package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/planar"
)

// ReadText decodes a drawing in the text format from r.
//
// ReadText returns an ErrCodeInvalidFormat error if:
//   - the vertex count is missing, not an integer or below 1
//   - a coordinate line is not "x, y" with integer x and y
//   - a matrix row does not have exactly n entries of 0 or 1
//   - the matrix has a nonzero diagonal or is not symmetric
//   - the input ends early or has extra non-blank lines
//
// ReadText does not close r.
func ReadText(r io.Reader) (*planar.Graph, planar.Positions, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	next := func(what string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("read: %w", err)
			}
			return "", gerr.New(gerr.ErrCodeInvalidFormat, "line %d: unexpected end of input, want %s", line+1, what)
		}
		line++
		return strings.TrimSpace(sc.Text()), nil
	}

	s, err := next("vertex count")
	if err != nil {
		return nil, nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return nil, nil, gerr.New(gerr.ErrCodeInvalidFormat, "line %d: invalid vertex count %q", line, s)
	}

	g := planar.New()
	pos := make(planar.Positions, n)
	for v := 1; v <= n; v++ {
		s, err := next("coordinates")
		if err != nil {
			return nil, nil, err
		}
		p, err := parsePoint(s)
		if err != nil {
			return nil, nil, gerr.Wrap(gerr.ErrCodeInvalidFormat, err, "line %d: vertex %d", line, v)
		}
		pos[v] = p
		_ = g.AddVertex(v)
	}

	matrix := make([][]bool, n+1)
	for u := 1; u <= n; u++ {
		s, err := next("adjacency row")
		if err != nil {
			return nil, nil, err
		}
		fields := strings.Fields(s)
		if len(fields) != n {
			return nil, nil, gerr.New(gerr.ErrCodeInvalidFormat, "line %d: %d entries, want %d", line, len(fields), n)
		}
		matrix[u] = make([]bool, n+1)
		for i, f := range fields {
			switch f {
			case "0":
			case "1":
				matrix[u][i+1] = true
			default:
				return nil, nil, gerr.New(gerr.ErrCodeInvalidFormat, "line %d: entry %q is not 0 or 1", line, f)
			}
		}
		if matrix[u][u] {
			return nil, nil, gerr.New(gerr.ErrCodeInvalidFormat, "line %d: vertex %d adjacent to itself", line, u)
		}
	}
	for u := 1; u <= n; u++ {
		for v := u + 1; v <= n; v++ {
			if matrix[u][v] != matrix[v][u] {
				return nil, nil, gerr.New(gerr.ErrCodeInvalidFormat, "adjacency matrix not symmetric at (%d, %d)", u, v)
			}
			if matrix[u][v] {
				_ = g.AddEdge(u, v)
			}
		}
	}

	for sc.Scan() {
		line++
		if strings.TrimSpace(sc.Text()) != "" {
			return nil, nil, gerr.New(gerr.ErrCodeInvalidFormat, "line %d: unexpected content after matrix", line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read: %w", err)
	}
	return g, pos, nil
}

// ImportText reads a text drawing from the file at path.
func ImportText(path string) (*planar.Graph, planar.Positions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadText(f)
}

func parsePoint(s string) (planar.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return planar.Point{}, fmt.Errorf("want \"x, y\", got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return planar.Point{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return planar.Point{}, fmt.Errorf("y: %w", err)
	}
	return planar.Point{X: x, Y: y}, nil
}
