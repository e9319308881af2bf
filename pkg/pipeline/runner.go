package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridraw/pkg/cache"
	"github.com/matzehuels/gridraw/pkg/canonical"
	"github.com/matzehuels/gridraw/pkg/graph"
	"github.com/matzehuels/gridraw/pkg/observability"
	"github.com/matzehuels/gridraw/pkg/placement"
	"github.com/matzehuels/gridraw/pkg/planar"
	"github.com/matzehuels/gridraw/pkg/store"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, the optional store and the
// logger. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Store receives every finished drawing when set.
	Store store.Store
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → order → draw → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	loadStart := time.Now()
	inst, err := Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	g := inst.Embedding.Graph()
	result := &Result{
		Name:      inst.Name,
		Embedding: inst.Embedding,
		GraphHash: cache.GraphHash(g),
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Vertices = g.NodeCount()
	result.Stats.Edges = g.EdgeCount()

	orderStart := time.Now()
	ord, orderHit, err := r.OrderWithCacheInfo(ctx, inst, opts)
	if err != nil {
		return nil, fmt.Errorf("order: %w", err)
	}
	result.Ordering = ord
	result.Stats.OrderTime = time.Since(orderStart)
	result.CacheInfo.OrderHit = orderHit

	r.Logger.Debug("computed ordering",
		"vertices", len(ord),
		"outer_face", OuterFace(inst, opts),
		"cached", orderHit,
		"duration", result.Stats.OrderTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	drawStart := time.Now()
	d, run, drawHit, err := r.DrawWithCacheInfo(ctx, g, ord, opts)
	if err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}
	d.Name = inst.Name
	result.Run = run
	result.Positions = d.Positions()
	result.Stats.DrawTime = time.Since(drawStart)
	result.Stats.Width, result.Stats.Height = d.Width, d.Height
	result.CacheInfo.DrawHit = drawHit

	r.Logger.Info("computed drawing",
		"name", inst.Name,
		"algorithm", opts.Algorithm,
		"width", d.Width,
		"height", d.Height,
		"cached", drawHit,
		"duration", result.Stats.DrawTime)

	if opts.Verify {
		if err := planar.CheckDrawing(g, result.Positions); err != nil {
			return nil, fmt.Errorf("verify: %w", err)
		}
	}

	if r.Store != nil {
		id, err := r.Store.Save(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		d.ID = id
	}
	result.Drawing = d

	if len(opts.Formats) > 0 {
		renderStart := time.Now()
		artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.RenderHit = renderHit

		r.Logger.Debug("rendered outputs",
			"formats", opts.Formats,
			"cached", renderHit,
			"duration", result.Stats.RenderTime)
	}
	return result, nil
}

// OrderWithCacheInfo computes the canonical ordering of inst with caching
// and returns cache hit info. Orderings that came with the instance bypass
// the cache.
func (r *Runner) OrderWithCacheInfo(ctx context.Context, inst *Instance, opts Options) (canonical.Ordering, bool, error) {
	n := inst.Embedding.Len()
	if inst.Ordering != nil && len(opts.OuterFace) == 0 {
		return inst.Ordering.Clone(), false, nil
	}

	face := OuterFace(inst, opts)
	cacheKey := r.Keyer.OrderingKey(cache.GraphHash(inst.Embedding.Graph()), cache.OrderingKeyOpts{
		V1: face[0], V2: face[1], Vn: face[2],
	})
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var ord canonical.Ordering
			if json.Unmarshal(data, &ord) == nil && len(ord) == n {
				observability.Cache().OnCacheHit(ctx, "ordering")
				return ord, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "ordering")
	}

	hooks := observability.Pipeline()
	hooks.OnOrderStart(ctx, n)
	start := time.Now()
	ord, err := Order(inst, opts)
	hooks.OnOrderComplete(ctx, n, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(ord); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLOrdering) == nil {
			observability.Cache().OnCacheSet(ctx, "ordering", len(data))
		}
	}
	return ord, false, nil
}

// DrawWithCacheInfo computes the drawing of g along ord with caching and
// returns the placement run (nil on a cache hit or for the shift method)
// and cache hit info. Traced runs bypass the cache.
func (r *Runner) DrawWithCacheInfo(ctx context.Context, g *planar.Graph, ord canonical.Ordering, opts Options) (graph.Drawing, *placement.Run, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForDraw(); err != nil {
		return graph.Drawing{}, nil, false, err
	}

	ordData, err := json.Marshal(ord)
	if err != nil {
		return graph.Drawing{}, nil, false, fmt.Errorf("serialize ordering for cache key: %w", err)
	}
	cacheKey := r.Keyer.DrawingKey(cache.Hash(ordData), opts.DrawingKeyOpts())
	useCache := !opts.Trace

	if useCache && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if d, err := graph.UnmarshalDrawing(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "drawing")
				return d, nil, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "drawing")
	}

	hooks := observability.Pipeline()
	hooks.OnDrawStart(ctx, opts.Algorithm, len(ord))
	start := time.Now()
	pos, run, err := Draw(g, ord, opts)
	if err != nil {
		hooks.OnDrawComplete(ctx, opts.Algorithm, 0, 0, time.Since(start), err)
		return graph.Drawing{}, nil, false, err
	}
	hooks.OnDrawComplete(ctx, opts.Algorithm, pos.Width(), pos.Height(), time.Since(start), nil)

	d := graph.FromPositions(g, pos)
	d.Algorithm = opts.Algorithm
	d.Ordering = ord

	if useCache {
		if data, err := graph.MarshalDrawing(d); err == nil {
			if r.Cache.Set(ctx, cacheKey, data, cache.TTLDrawing) == nil {
				observability.Cache().OnCacheSet(ctx, "drawing", len(data))
			}
		}
	}
	return d, run, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d graph.Drawing, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// ID and CreatedAt do not change the picture.
	keyed := d
	keyed.ID, keyed.CreatedAt = "", time.Time{}
	drawingData, err := graph.MarshalDrawing(keyed)
	if err != nil {
		return nil, false, fmt.Errorf("serialize drawing for cache key: %w", err)
	}
	drawingHash := cache.Hash(drawingData)

	if artifacts, ok := r.cachedArtifacts(ctx, d, drawingHash, opts); ok {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, d, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		if format == FormatJSON {
			continue
		}
		key := r.Keyer.ArtifactKey(drawingHash, opts.ArtifactKeyOpts(format))
		if r.Cache.Set(ctx, key, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// cachedArtifacts returns the artifacts of d if every requested format is
// cached. The JSON artifact carries the stored ID, so it is never cached
// and is produced directly instead. A request for JSON alone is a miss.
func (r *Runner) cachedArtifacts(ctx context.Context, d graph.Drawing, drawingHash string, opts Options) (map[string][]byte, bool) {
	if !slices.ContainsFunc(opts.Formats, func(f string) bool { return f != FormatJSON }) {
		return nil, false
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if format == FormatJSON {
			continue
		}
		key := r.Keyer.ArtifactKey(drawingHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	if slices.Contains(opts.Formats, FormatJSON) {
		data, err := graph.MarshalDrawing(d)
		if err != nil {
			return nil, false
		}
		artifacts[FormatJSON] = data
	}
	return artifacts, true
}

// Close releases resources held by the runner.
func (r *Runner) Close(ctx context.Context) error {
	var errs []error
	if r.Cache != nil {
		errs = append(errs, r.Cache.Close())
	}
	if r.Store != nil {
		errs = append(errs, r.Store.Close(ctx))
	}
	return errors.Join(errs...)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
