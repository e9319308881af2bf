package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/gridraw/pkg/graph"
	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/pipeline"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.SetOutput(&out)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExist(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s: %v", p, err)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		def  []string
		want []string
	}{
		{"", []string{"svg"}, []string{"svg"}},
		{"", nil, nil},
		{"json", nil, []string{"json"}},
		{"svg, png,,dot ", nil, []string{"svg", "png", "dot"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in, tt.def...); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		output, name, want string
	}{
		{"", "reference", "reference"},
		{"out/ref", "reference", "out/ref"},
		{"out/ref.svg", "reference", "out/ref"},
		{"out/ref.json", "x", "out/ref"},
		{"out/ref.v2", "x", "out/ref.v2"},
	}
	for _, tt := range tests {
		if got := outputBase(tt.output, tt.name); got != tt.want {
			t.Errorf("outputBase(%q, %q) = %q, want %q", tt.output, tt.name, got, tt.want)
		}
	}
}

func TestParseOuterFace(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"1,2,17", []int{1, 2, 17}, false},
		{" 8, 10 ,9", []int{8, 10, 9}, false},
		{"1,2", nil, true},
		{"1,2,x", nil, true},
	}
	for _, tt := range tests {
		got, err := parseOuterFace(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseOuterFace(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !gerr.Is(err, gerr.ErrCodeInvalidOuterFace) {
			t.Errorf("parseOuterFace(%q) code = %s", tt.in, gerr.GetCode(err))
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("parseOuterFace(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInstanceFlagsApply(t *testing.T) {
	tests := []struct {
		name  string
		flags instanceFlags
		check func(t *testing.T, o pipeline.Options)
	}{
		{"reference", instanceFlags{}, func(t *testing.T, o pipeline.Options) {
			if o.Source != pipeline.SourceReference {
				t.Errorf("Source = %q", o.Source)
			}
		}},
		{"generate", instanceFlags{generate: 30, seed: 9, outerFace: "1,2,30"}, func(t *testing.T, o pipeline.Options) {
			if o.Source != pipeline.SourceGenerate || o.Vertices != 30 || o.Seed != 9 {
				t.Errorf("got %+v", o)
			}
			if !slices.Equal(o.OuterFace, []int{1, 2, 30}) {
				t.Errorf("OuterFace = %v", o.OuterFace)
			}
		}},
		{"relative input", instanceFlags{input: "graph.txt", name: "g"}, func(t *testing.T, o pipeline.Options) {
			if o.Source != pipeline.SourceFile || !filepath.IsAbs(o.Path) || o.Name != "g" {
				t.Errorf("got %+v", o)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o pipeline.Options
			if err := tt.flags.apply(&o); err != nil {
				t.Fatal(err)
			}
			tt.check(t, o)
		})
	}
}

func TestDrawRenderSteps(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "ref")

	out, err := execute(t, "--no-cache", "draw", "-f", "json,svg", "--trace", "--verify", "-o", base)
	if err != nil {
		t.Fatalf("draw: %v\n%s", err, out)
	}
	mustExist(t, base+".json", base+".svg", base+".steps.json")

	d, err := graph.ReadDrawingFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	if d.Width != 6 || d.Height != 25 || d.Algorithm != graph.AlgorithmVisibility {
		t.Errorf("drawing = %s %dx%d, want a 6x25", d.Algorithm, d.Width, d.Height)
	}

	if out, err := execute(t, "--no-cache", "render", base+".json", "-f", "dot"); err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	mustExist(t, base+".dot")

	out, err = execute(t, "steps", base+".steps.json", "--plain")
	if err != nil {
		t.Fatalf("steps: %v", err)
	}
	// Vertex 9 is placed at (4, 4) and shifted to (5, 4) later.
	for _, want := range []string{"placed", "final", "(4, 4)", "(5, 4)"} {
		if !strings.Contains(out, want) {
			t.Errorf("steps output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateOrderInspect(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "g")

	if out, err := execute(t, "--no-cache", "generate", "-n", "12", "--seed", "3", "-o", base); err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	mustExist(t, base+".txt")

	out, err := execute(t, "inspect", base+".txt", "--json")
	if err != nil {
		t.Fatalf("inspect: %v\n%s", err, out)
	}
	var report inspection
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("unmarshal report: %v\n%s", err, out)
	}
	if report.Vertices != 12 || report.Edges != 30 || report.Width != 20 {
		t.Errorf("report = %+v, want 12 vertices, 30 edges, width 20", report)
	}
	if !report.Planar || !report.Triangulated {
		t.Errorf("report = %+v, want planar and triangulated", report)
	}

	out, err = execute(t, "--no-cache", "order", "-n", "12", "--seed", "3")
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	for _, want := range []string{"stacked-12-3", "(1, 2, 12)"} {
		if !strings.Contains(out, want) {
			t.Errorf("order output missing %q:\n%s", want, out)
		}
	}
}

func TestInspectCrossing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "k4.txt")
	k4 := "4\n0, 0\n2, 0\n2, 2\n0, 2\n0 1 1 1\n1 0 1 1\n1 1 0 1\n1 1 1 0\n"
	if err := os.WriteFile(path, []byte(k4), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "inspect", path, "--json")
	if err == nil {
		t.Fatal("inspect of a crossing drawing should fail")
	}
	var report inspection
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("unmarshal report: %v\n%s", err, out)
	}
	if report.Planar || len(report.Problems) == 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestDrawErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code gerr.Code
	}{
		{"short outer face", []string{"draw", "--outer-face", "1,2"}, gerr.ErrCodeInvalidOuterFace},
		{"non-face", []string{"draw", "--outer-face", "1,2,5"}, gerr.ErrCodeInvalidOuterFace},
		{"exhausted search", []string{"draw", "--outer-face", "8,10,9"}, gerr.ErrCodeVisibilitySearch},
		{"too small", []string{"draw", "-n", "2"}, gerr.ErrCodeInvalidInputSize},
		{"unknown algorithm", []string{"draw", "-a", "c"}, gerr.ErrCodeUnknownAlgorithm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--no-cache"}, tt.args...)
			args = append(args, "-o", filepath.Join(t.TempDir(), "out"))
			_, err := execute(t, args...)
			if !gerr.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}

	if _, err := execute(t, "draw", "-i", "x.txt", "-n", "5"); err == nil {
		t.Error("--input with --generate should fail")
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	cfg := `
[output]
dir = "out"
formats = ["json"]

[batch]
workers = 2

[batch.sweep]
vertices = [10]
algorithms = ["shift", "b"]
seeds = { from = 1, count = 2 }
`
	path := filepath.Join(dir, "bench.toml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--no-cache", "batch", path)
	if err != nil {
		t.Fatalf("batch: %v\n%s", err, out)
	}
	outDir := filepath.Join(dir, "out")
	mustExist(t,
		filepath.Join(outDir, "stacked-10-1.shift.json"),
		filepath.Join(outDir, "stacked-10-2.shift.json"),
		filepath.Join(outDir, "stacked-10-1.b.json"),
		filepath.Join(outDir, "stacked-10-2.b.json"),
	)
	if !strings.Contains(out, "4/4 jobs succeeded") {
		t.Errorf("summary missing:\n%s", out)
	}

	if _, err := execute(t, "batch"); err == nil {
		t.Error("batch without a configuration should fail")
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gridraw.toml")
	if err := os.WriteFile(path, []byte("[cache]\ndir = \"c\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cacheDir := filepath.Join(dir, "c")

	if _, err := execute(t, "--config", path, "draw", "--outer-face", "1,2,17", "-o", filepath.Join(dir, "ref"), "-f", "json,svg"); err != nil {
		t.Fatalf("draw: %v", err)
	}

	out, err := execute(t, "--config", path, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != cacheDir {
		t.Errorf("cache path = %q, want %q", out, cacheDir)
	}

	out, err = execute(t, "--config", path, "cache", "stats")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"ordering", "drawing", "artifact"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}

	if _, err := execute(t, "--config", path, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "--config", path, "cache", "stats")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "drawing") {
		t.Errorf("stats after clear:\n%s", out)
	}
}
