package pipeline

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/gridraw/pkg/cache"
	"github.com/matzehuels/gridraw/pkg/canonical"
	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/graph"
	gio "github.com/matzehuels/gridraw/pkg/io"
	"github.com/matzehuels/gridraw/pkg/observability"
	"github.com/matzehuels/gridraw/pkg/planar"
	"github.com/matzehuels/gridraw/pkg/shift"
	"github.com/matzehuels/gridraw/pkg/store"
)

func newRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { _ = r.Close(context.Background()) })
	return r
}

func TestExecuteReference(t *testing.T) {
	r := newRunner(t)
	res, err := r.Execute(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !slices.EqualFunc(res.Ordering, canonical.Reference(), func(a, b canonical.Entry) bool {
		return a.Vertex == b.Vertex && slices.Equal(a.Neighbors, b.Neighbors)
	}) {
		t.Errorf("reference run did not use the reference ordering")
	}
	if res.Stats.Width != 6 || res.Stats.Height != 25 {
		t.Errorf("size = %dx%d, want 6x25", res.Stats.Width, res.Stats.Height)
	}
	if res.Positions[9] != (planar.Point{X: 5, Y: 4}) {
		t.Errorf("pos[9] = %v", res.Positions[9])
	}
	if res.Run == nil || res.Run.Domino == nil {
		t.Error("Algorithm A run missing")
	}
	if res.Drawing.Name != "reference" || res.Drawing.Algorithm != "a" || len(res.Drawing.Ordering) != 17 {
		t.Errorf("Drawing = %q/%q with %d entries", res.Drawing.Name, res.Drawing.Algorithm, len(res.Drawing.Ordering))
	}
}

func TestExecuteOuterFace(t *testing.T) {
	r := newRunner(t)
	ctx := context.Background()

	res, err := r.Execute(ctx, Options{OuterFace: []int{1, 2, 17}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Stats.Width != 8 || res.Stats.Height != 25 {
		t.Errorf("size = %dx%d, want 8x25", res.Stats.Width, res.Stats.Height)
	}

	_, err = r.Execute(ctx, Options{OuterFace: []int{8, 10, 9}})
	if !gerr.Is(err, gerr.ErrCodeVisibilitySearch) || !gerr.IsCoreFailure(err) {
		t.Errorf("Execute(8, 10, 9) error = %v, want %s", err, gerr.ErrCodeVisibilitySearch)
	}

	_, err = r.Execute(ctx, Options{OuterFace: []int{1, 2, 5}})
	if !gerr.Is(err, gerr.ErrCodeInvalidOuterFace) || !gerr.IsCoreFailure(err) {
		t.Errorf("Execute(1, 2, 5) error = %v, want %s", err, gerr.ErrCodeInvalidOuterFace)
	}
}

func TestExecuteCache(t *testing.T) {
	r := newRunner(t)
	ctx := context.Background()
	opts := Options{Source: SourceGenerate, Vertices: 40, Seed: 3, Algorithm: "shift", Formats: []string{"svg", "json"}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo != (CacheInfo{}) {
		t.Errorf("first run CacheInfo = %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.OrderHit || !second.CacheInfo.DrawHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v", second.CacheInfo)
	}
	if string(first.Artifacts["svg"]) != string(second.Artifacts["svg"]) {
		t.Error("cached SVG differs")
	}
	for v, p := range first.Positions {
		if second.Positions[v] != p {
			t.Errorf("cached pos[%d] = %v, want %v", v, second.Positions[v], p)
		}
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.OrderHit || third.CacheInfo.DrawHit {
		t.Errorf("refresh run CacheInfo = %+v", third.CacheInfo)
	}

	traced, err := r.Execute(ctx, Options{Source: SourceGenerate, Vertices: 40, Seed: 3, Algorithm: "b", Trace: true})
	if err != nil {
		t.Fatal(err)
	}
	if traced.CacheInfo.DrawHit || traced.Run == nil || len(traced.Run.Steps) != 37 {
		t.Errorf("traced run: hit %v, steps %v", traced.CacheInfo.DrawHit, traced.Run)
	}
}

func TestRenderJSONOnlyIsNeverCached(t *testing.T) {
	r := newRunner(t)
	ctx := context.Background()
	res, err := r.Execute(ctx, Options{Source: SourceGenerate, Vertices: 12, Seed: 5, Algorithm: "shift"})
	if err != nil {
		t.Fatal(err)
	}

	opts := Options{Formats: []string{FormatJSON}}
	for i := range 2 {
		artifacts, hit, err := r.RenderWithCacheInfo(ctx, res.Drawing, opts)
		if err != nil {
			t.Fatalf("render %d: %v", i, err)
		}
		if hit {
			t.Errorf("render %d of JSON alone reported a cache hit", i)
		}
		if len(artifacts[FormatJSON]) == 0 {
			t.Errorf("render %d: JSON artifact missing", i)
		}
	}

	opts.Formats = []string{FormatSVG, FormatJSON}
	if _, hit, _ := r.RenderWithCacheInfo(ctx, res.Drawing, opts); hit {
		t.Error("first SVG render reported a cache hit")
	}
	if _, hit, _ := r.RenderWithCacheInfo(ctx, res.Drawing, opts); !hit {
		t.Error("second SVG render missed the cache")
	}
}

func TestExecuteGeneratedShiftVerified(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	for _, n := range []int{3, 4, 10, 75} {
		res, err := r.Execute(context.Background(), Options{
			Source: SourceGenerate, Vertices: n, Seed: uint64(n), Algorithm: "shift", Verify: true,
		})
		if err != nil {
			t.Fatalf("n=%d: Execute() error = %v", n, err)
		}
		if n > 3 && (res.Stats.Width != 2*n-4 || res.Stats.Height > n-2) {
			t.Errorf("n=%d: size %dx%d", n, res.Stats.Width, res.Stats.Height)
		}
		if res.Run != nil {
			t.Errorf("n=%d: shift run should have no placement run", n)
		}
	}
}

func TestExecuteInline(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Rotation:  map[int][]int{1: {3, 4, 2}, 2: {1, 4, 3}, 3: {2, 4, 1}, 4: {2, 1, 3}},
		Algorithm: "shift",
		Verify:    true,
		Formats:   []string{"txt"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Name != "inline" || len(res.Positions) != 4 {
		t.Errorf("Name %q, %d positions", res.Name, len(res.Positions))
	}
	if !strings.HasPrefix(string(res.Artifacts["txt"]), "4\n") {
		t.Errorf("txt artifact = %q", res.Artifacts["txt"])
	}

	_, err = r.Execute(context.Background(), Options{
		Rotation: map[int][]int{1: {3, 2, 4}, 2: {1, 3, 4}, 3: {2, 1, 4}, 4: {1, 3, 2}},
	})
	if !gerr.IsCoreFailure(err) {
		t.Errorf("scrambled rotation error = %v, want a core failure", err)
	}
}

func TestExecuteFiles(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	dir := t.TempDir()

	emb, err := planar.GenerateStacked(25, 9)
	if err != nil {
		t.Fatal(err)
	}
	ord, err := canonical.Order(emb, 1, 2, 25)
	if err != nil {
		t.Fatal(err)
	}
	pos, err := shift.Embed(ord)
	if err != nil {
		t.Fatal(err)
	}

	txt := filepath.Join(dir, "stack25.txt")
	if err := gio.ExportText(emb.Graph(), pos, txt); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Path: txt, Algorithm: "b"})
	if err != nil {
		t.Fatalf("Execute(txt) error = %v", err)
	}
	if res.Name != "stack25" || len(res.Positions) != 25 {
		t.Errorf("txt: name %q, %d positions", res.Name, len(res.Positions))
	}

	d := graph.FromPositions(emb.Graph(), pos)
	d.Name = "from-json"
	d.Ordering = ord
	js := filepath.Join(dir, "stack25.json")
	if err := graph.WriteDrawingFile(d, js); err != nil {
		t.Fatal(err)
	}
	res, err = r.Execute(ctx, Options{Path: js, Algorithm: "shift"})
	if err != nil {
		t.Fatalf("Execute(json) error = %v", err)
	}
	if res.Name != "from-json" {
		t.Errorf("json: name %q", res.Name)
	}
	for v, p := range pos {
		if res.Positions[v] != p {
			t.Errorf("json: pos[%d] = %v, want %v", v, res.Positions[v], p)
		}
	}

	if _, err := r.Execute(ctx, Options{Path: filepath.Join(dir, "missing.txt")}); err == nil {
		t.Error("missing file should fail")
	}
}

func TestExecuteRenderFormats(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Algorithm: "shift",
		Formats:   []string{"json", "txt", "svg", "dot"},
		Grid:      true,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, f := range []string{"json", "txt", "svg", "dot"} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("artifact %s empty", f)
		}
	}
	d, err := graph.UnmarshalDrawing(res.Artifacts["json"])
	if err != nil || d.Algorithm != "shift" {
		t.Errorf("json artifact: %v, algorithm %q", err, d.Algorithm)
	}
	if !strings.Contains(string(res.Artifacts["dot"]), `label="reference"`) {
		t.Error("dot artifact missing title")
	}
	if !strings.Contains(string(res.Artifacts["svg"]), `class="grid"`) {
		t.Error("svg artifact missing grid")
	}
}

func TestExecuteStore(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	r.Store = store.NewMemoryStore()
	ctx := context.Background()

	res, err := r.Execute(ctx, Options{Name: "ref-b", Algorithm: "b", Formats: []string{"json"}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Drawing.ID == "" {
		t.Fatal("stored drawing has no ID")
	}
	got, err := r.Store.Get(ctx, res.Drawing.ID)
	if err != nil {
		t.Fatalf("Store.Get() error = %v", err)
	}
	if got.Name != "ref-b" || got.Algorithm != "b" {
		t.Errorf("stored drawing = %q/%q", got.Name, got.Algorithm)
	}
	if !strings.Contains(string(res.Artifacts["json"]), res.Drawing.ID) {
		t.Error("json artifact lacks the stored ID")
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRunner(nil, nil, nil).Execute(ctx, Options{}); err == nil {
		t.Error("canceled context should fail")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu    sync.Mutex
	draws []string
	hits  []string
}

func (h *recordingHooks) OnDrawComplete(_ context.Context, alg string, w, ht int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.draws = append(h.draws, alg)
}

func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits = append(h.hits, keyType)
}

func TestExecuteHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	defer observability.Reset()

	r := newRunner(t)
	ctx := context.Background()
	opts := Options{Source: SourceGenerate, Vertices: 12, Algorithm: "b"}
	for range 2 {
		if _, err := r.Execute(ctx, opts); err != nil {
			t.Fatal(err)
		}
	}
	if !slices.Equal(h.draws, []string{"b"}) {
		t.Errorf("draws = %v, want one Algorithm B run", h.draws)
	}
	if !slices.Equal(h.hits, []string{"ordering", "drawing"}) {
		t.Errorf("cache hits = %v", h.hits)
	}
}

func TestDefaultOuterFace(t *testing.T) {
	if got := DefaultOuterFace(planar.ReferenceEmbedding()); got != [3]int{1, 2, 17} {
		t.Errorf("DefaultOuterFace(reference) = %v", got)
	}
	emb, _ := planar.GenerateStacked(30, 1)
	if got := DefaultOuterFace(emb); got != [3]int{1, 2, 30} {
		t.Errorf("DefaultOuterFace(stacked) = %v", got)
	}
}
