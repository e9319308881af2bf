package graph

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/matzehuels/gridraw/pkg/canonical"
	"github.com/matzehuels/gridraw/pkg/planar"
)

// =============================================================================
// Constants
// =============================================================================

// Algorithm names used in drawings, cache keys and the CLI.
const (
	AlgorithmShift      = "shift"
	AlgorithmVisibility = "a"
	AlgorithmSlack      = "b"
)

// AllAlgorithms lists every drawing algorithm in a fixed order.
var AllAlgorithms = []string{AlgorithmShift, AlgorithmVisibility, AlgorithmSlack}

// =============================================================================
// Drawing
// =============================================================================

// Drawing is the serialization format of a grid drawing.
type Drawing struct {
	ID        string            `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string            `json:"name,omitempty" bson:"name,omitempty"`
	Algorithm string            `json:"algorithm,omitempty" bson:"algorithm,omitempty"`
	Vertices  []Vertex          `json:"vertices" bson:"vertices"`
	Edges     []Edge            `json:"edges" bson:"edges"`
	Ordering  []canonical.Entry `json:"ordering,omitempty" bson:"ordering,omitempty"`
	Width     int               `json:"width" bson:"width"`
	Height    int               `json:"height" bson:"height"`
	CreatedAt time.Time         `json:"created_at,omitzero" bson:"created_at,omitempty"`
}

// Vertex is a placed vertex.
type Vertex struct {
	ID int `json:"id" bson:"id"`
	X  int `json:"x" bson:"x"`
	Y  int `json:"y" bson:"y"`
}

// Edge is an undirected edge with U < V.
type Edge struct {
	U int `json:"u" bson:"u"`
	V int `json:"v" bson:"v"`
}

// FromPositions converts a graph and its positions to a Drawing. Vertices
// are sorted by id, and vertices without a position are placed at the
// origin. Width and Height are taken from the positions.
func FromPositions(g *planar.Graph, pos planar.Positions) Drawing {
	d := Drawing{
		Vertices: make([]Vertex, 0, g.NodeCount()),
		Edges:    make([]Edge, 0, g.EdgeCount()),
		Width:    pos.Width(),
		Height:   pos.Height(),
	}
	for _, v := range g.Vertices() {
		p := pos[v]
		d.Vertices = append(d.Vertices, Vertex{ID: v, X: p.X, Y: p.Y})
	}
	for _, e := range g.Edges() {
		d.Edges = append(d.Edges, Edge{U: e.U, V: e.V})
	}
	return d
}

// Graph rebuilds the planar graph of d. Every edge endpoint must be a
// listed vertex.
func (d Drawing) Graph() (*planar.Graph, error) {
	g := planar.New()
	for _, v := range d.Vertices {
		if err := g.AddVertex(v.ID); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", v.ID, err)
		}
	}
	for _, e := range d.Edges {
		if !g.HasVertex(e.U) || !g.HasVertex(e.V) {
			return nil, fmt.Errorf("edge %d-%d: unknown endpoint", e.U, e.V)
		}
		if err := g.AddEdge(e.U, e.V); err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", e.U, e.V, err)
		}
	}
	return g, nil
}

// Positions returns the grid points of d.
func (d Drawing) Positions() planar.Positions {
	pos := make(planar.Positions, len(d.Vertices))
	for _, v := range d.Vertices {
		pos[v.ID] = planar.Point{X: v.X, Y: v.Y}
	}
	return pos
}

// CanonicalOrdering returns the ordering carried by d, or nil.
func (d Drawing) CanonicalOrdering() canonical.Ordering {
	if len(d.Ordering) == 0 {
		return nil
	}
	return canonical.Ordering(d.Ordering).Clone()
}

// UnmarshalDrawing deserializes JSON bytes into a Drawing and checks that
// its edges refer to listed vertices.
func UnmarshalDrawing(data []byte) (Drawing, error) {
	var d Drawing
	if err := json.Unmarshal(data, &d); err != nil {
		return Drawing{}, fmt.Errorf("unmarshal drawing: %w", err)
	}
	ids := make([]int, len(d.Vertices))
	for i, v := range d.Vertices {
		ids[i] = v.ID
	}
	slices.Sort(ids)
	for _, e := range d.Edges {
		if _, ok := slices.BinarySearch(ids, e.U); !ok {
			return Drawing{}, fmt.Errorf("edge %d-%d: unknown vertex %d", e.U, e.V, e.U)
		}
		if _, ok := slices.BinarySearch(ids, e.V); !ok {
			return Drawing{}, fmt.Errorf("edge %d-%d: unknown vertex %d", e.U, e.V, e.V)
		}
	}
	return d, nil
}
