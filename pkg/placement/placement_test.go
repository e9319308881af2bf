package placement

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridraw/pkg/canonical"
	"github.com/matzehuels/gridraw/pkg/domino"
	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/planar"
)

func checkPositions(t *testing.T, got, want planar.Positions) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("got %d positions, want %d", len(got), len(want))
	}
	for v, p := range want {
		if got[v] != p {
			t.Errorf("pos[%d] = %v, want %v", v, got[v], p)
		}
	}
}

func TestVisibilityReference(t *testing.T) {
	g := planar.ReferenceGraph()
	run, err := Place(g, canonical.Reference(), Visibility, Options{})
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	checkPositions(t, run.Positions, planar.Positions{
		1: {X: 0, Y: 0}, 2: {X: 6, Y: 0}, 3: {X: 4, Y: 1}, 4: {X: 3, Y: 1}, 5: {X: 2, Y: 1}, 6: {X: 1, Y: 1},
		7: {X: 4, Y: 2}, 8: {X: 4, Y: 3}, 9: {X: 5, Y: 4}, 10: {X: 3, Y: 3}, 11: {X: 2, Y: 2}, 12: {X: 2, Y: 3},
		13: {X: 2, Y: 4}, 14: {X: 1, Y: 3}, 15: {X: 4, Y: 4}, 16: {X: 3, Y: 4}, 17: {X: 0, Y: 25},
	})
	for v, p := range run.Positions {
		if p.X < 0 || p.Y < 0 {
			t.Errorf("pos[%d] = %v is negative", v, p)
		}
	}
	if err := planar.CheckDrawing(g, run.Positions); err != nil {
		t.Errorf("CheckDrawing() = %v", err)
	}
	if run.Domino.Dom[17] != domino.Undefined || !run.Domino.Stable[1] || !run.Domino.Stable[2] {
		t.Errorf("dom[17] = %d, stable[1] = %v, stable[2] = %v",
			run.Domino.Dom[17], run.Domino.Stable[1], run.Domino.Stable[2])
	}
}

func TestVisibilityComputedOrdering(t *testing.T) {
	emb := planar.ReferenceEmbedding()
	ord, err := canonical.Order(emb, 1, 2, 17)
	if err != nil {
		t.Fatal(err)
	}
	run, err := Place(emb.Graph(), ord, Visibility, Options{})
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	checkPositions(t, run.Positions, planar.Positions{
		1: {X: 0, Y: 0}, 2: {X: 8, Y: 0}, 3: {X: 1, Y: 1}, 4: {X: 1, Y: 2}, 5: {X: 1, Y: 3}, 6: {X: 1, Y: 5},
		7: {X: 7, Y: 1}, 8: {X: 7, Y: 2}, 9: {X: 7, Y: 3}, 10: {X: 5, Y: 2}, 11: {X: 2, Y: 4}, 12: {X: 2, Y: 3},
		13: {X: 4, Y: 3}, 14: {X: 3, Y: 4}, 15: {X: 6, Y: 3}, 16: {X: 5, Y: 3}, 17: {X: 0, Y: 25},
	})
	if err := planar.CheckDrawing(emb.Graph(), run.Positions); err != nil {
		t.Errorf("CheckDrawing() = %v", err)
	}
}

func TestVisibilityExhausted(t *testing.T) {
	emb := planar.ReferenceEmbedding()
	ord, err := canonical.Order(emb, 8, 10, 9)
	if err != nil {
		t.Fatal(err)
	}
	run, err := Place(emb.Graph(), ord, Visibility, Options{})
	if run != nil {
		t.Error("Place() returned a partial run")
	}
	if !gerr.Is(err, gerr.ErrCodeVisibilitySearch) || !errors.Is(err, ErrNoVisibleRow) {
		t.Fatalf("Place() error = %v, want VISIBILITY_SEARCH_EXHAUSTED", err)
	}
	if !strings.Contains(err.Error(), "vertex 5") {
		t.Errorf("error %q should name vertex 5", err)
	}
}

func TestSlackReference(t *testing.T) {
	run, err := Place(planar.ReferenceGraph(), canonical.Reference(), Slack, Options{})
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	checkPositions(t, run.Positions, planar.Positions{
		1: {X: 0, Y: 0}, 2: {X: 7, Y: 0}, 3: {X: 4, Y: 1}, 4: {X: 3, Y: 1}, 5: {X: 2, Y: 1}, 6: {X: 1, Y: 1},
		7: {X: 4, Y: 2}, 8: {X: 4, Y: 3}, 9: {X: 5, Y: 4}, 10: {X: 3, Y: 4}, 11: {X: 2, Y: 2}, 12: {X: 2, Y: 3},
		13: {X: 2, Y: 4}, 14: {X: 1, Y: 4}, 15: {X: 4, Y: 5}, 16: {X: 3, Y: 5}, 17: {X: 0, Y: 3},
	})
}

func TestSmallInstances(t *testing.T) {
	tests := []struct {
		name string
		n    int
		alg  Algorithm
		want planar.Positions
	}{
		{"triangle A", 3, Visibility, planar.Positions{1: {X: 0, Y: 0}, 2: {X: 1, Y: 0}, 3: {X: 0, Y: 1}}},
		{"triangle B", 3, Slack, planar.Positions{1: {X: 0, Y: 0}, 2: {X: 1, Y: 0}, 3: {X: 0, Y: 1}}},
		{"K4 A", 4, Visibility, planar.Positions{1: {X: 0, Y: 0}, 2: {X: 2, Y: 0}, 3: {X: 1, Y: 1}, 4: {X: 0, Y: 3}}},
		// Algorithm B puts the apex of K4 onto v1.
		{"K4 B", 4, Slack, planar.Positions{1: {X: 0, Y: 0}, 2: {X: 2, Y: 0}, 3: {X: 1, Y: 1}, 4: {X: 0, Y: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emb, _ := planar.GenerateStacked(tt.n, 0)
			ord, err := canonical.Order(emb, 1, 2, tt.n)
			if err != nil {
				t.Fatal(err)
			}
			run, err := Place(emb.Graph(), ord, tt.alg, Options{})
			if err != nil {
				t.Fatalf("Place() error = %v", err)
			}
			checkPositions(t, run.Positions, tt.want)
		})
	}
}

func TestVisibilityGenerated(t *testing.T) {
	for n := 4; n <= 40; n++ {
		for seed := uint64(0); seed < 4; seed++ {
			emb, _ := planar.GenerateStacked(n, seed)
			ord, err := canonical.Order(emb, 1, 2, n)
			if err != nil {
				t.Fatal(err)
			}
			run, err := Place(emb.Graph(), ord, Visibility, Options{})
			if err != nil {
				t.Errorf("n=%d seed=%d: Place() error = %v", n, seed, err)
				continue
			}
			if len(run.Positions) != n {
				t.Errorf("n=%d seed=%d: %d positions", n, seed, len(run.Positions))
			}
			if _, err := Place(emb.Graph(), ord, Slack, Options{}); err != nil {
				t.Errorf("n=%d seed=%d: Slack Place() error = %v", n, seed, err)
			}
		}
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	run, err := Place(planar.ReferenceGraph(), canonical.Reference(), Visibility, Options{
		Logger: logger,
		Trace:  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(run.Steps) != 14 {
		t.Fatalf("len(Steps) = %d, want 14", len(run.Steps))
	}
	first := run.Steps[0]
	if first.Index != 3 || first.Vertex != 4 || first.Position != (planar.Point{X: 1, Y: 1}) {
		t.Errorf("first step = %+v", first)
	}
	if !first.Shifted {
		t.Error("unstable vertex 4 should shift the contour")
	}
	if got := len(first.Positions); got != 4 {
		t.Errorf("first snapshot has %d positions, want 4", got)
	}
	last := run.Steps[len(run.Steps)-1]
	if last.Vertex != 17 || len(last.Contour) != 3 {
		t.Errorf("last step = vertex %d, contour %v", last.Vertex, last.Contour)
	}

	out := buf.String()
	for _, want := range []string{"placed", "drawing complete", "width=6", "height=25"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q", want)
		}
	}
}

func TestPlaceErrors(t *testing.T) {
	g := planar.ReferenceGraph()

	if _, err := Place(g, canonical.Reference(), "c", Options{}); !gerr.Is(err, gerr.ErrCodeUnknownAlgorithm) {
		t.Errorf("unknown algorithm: error = %v", err)
	}
	if _, err := Place(g, canonical.Reference()[:2], Visibility, Options{}); !gerr.Is(err, gerr.ErrCodeInvalidInputSize) {
		t.Errorf("short ordering: error = %v", err)
	}

	bad := canonical.Reference().Clone()
	bad[9].Neighbors = []int{4, 7, 3, 8, 9}
	if _, err := Place(g, bad, Slack, Options{}); !gerr.Is(err, gerr.ErrCodeInvalidOrdering) {
		t.Errorf("scrambled run: error = %v, want INVALID_ORDERING", err)
	}

	for k := 2; k < len(canonical.Reference()); k++ {
		for _, alg := range Algorithms {
			empty := canonical.Reference().Clone()
			empty[k].Neighbors = nil
			if _, err := Place(g, empty, alg, Options{}); !gerr.Is(err, gerr.ErrCodeInvalidOrdering) {
				t.Errorf("%s with empty run at entry %d: error = %v, want INVALID_ORDERING", alg, k, err)
			}
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want Algorithm
		ok   bool
	}{
		{"a", Visibility, true},
		{"visibility", Visibility, true},
		{"B", Slack, true},
		{"slack", Slack, true},
		{"shift", "", false},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %q, %v", tt.in, got, err)
		}
	}
}
