// Package pipeline runs the drawing pipeline shared by the CLI, the batch
// runner and the HTTP API.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: build a triangulated embedding from the reference instance, a
//     random stacked triangulation, an inline rotation system or a file
//  2. Order: compute a canonical ordering for the chosen outer face
//  3. Draw: place the vertices with the shift method or Algorithm A or B
//  4. Render: produce JSON, text, SVG, DOT or PNG artifacts
//
// Orderings, drawings and artifacts are cached through [cache.Cache], and
// every stage reports to the hooks of the observability package.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:    pipeline.SourceGenerate,
//	    Vertices:  200,
//	    Seed:      7,
//	    Algorithm: graph.AlgorithmVisibility,
//	    Formats:   []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridraw/pkg/cache"
	"github.com/matzehuels/gridraw/pkg/canonical"
	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/graph"
	"github.com/matzehuels/gridraw/pkg/placement"
	"github.com/matzehuels/gridraw/pkg/planar"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Batch
// =============================================================================

const (
	// DefaultVertices is the size of generated instances.
	DefaultVertices = 20

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultAlgorithm is the default drawing algorithm.
	DefaultAlgorithm = graph.AlgorithmVisibility

	// DefaultScale is the SVG pixel size of one grid unit.
	DefaultScale = 32.0
)

// Instance sources.
const (
	SourceReference = "reference"
	SourceGenerate  = "generate"
	SourceInline    = "inline"
	SourceFile      = "file"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatText = "txt"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatText: true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPNG:  true,
}

// ValidSources is the set of supported instance sources.
var ValidSources = map[string]bool{
	SourceReference: true,
	SourceGenerate:  true,
	SourceInline:    true,
	SourceFile:      true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run. It supports JSON
// for API requests and TOML for batch files.
type Options struct {
	// Instance options
	Source   string        `json:"source,omitempty" toml:"source"`
	Path     string        `json:"path,omitempty" toml:"path"`
	Vertices int           `json:"vertices,omitempty" toml:"vertices"`
	Seed     uint64        `json:"seed,omitempty" toml:"seed"`
	Rotation map[int][]int `json:"rotation,omitempty" toml:"-"`
	Name     string        `json:"name,omitempty" toml:"name"`

	// OuterFace is (v1, v2, vn). Empty selects the instance default.
	OuterFace []int `json:"outer_face,omitempty" toml:"outer_face"`

	// Drawing options
	Algorithm     string `json:"algorithm,omitempty" toml:"algorithm"`
	MaxIncrements int    `json:"max_increments,omitempty" toml:"max_increments"`
	Verify        bool   `json:"verify,omitempty" toml:"verify"`
	Trace         bool   `json:"trace,omitempty" toml:"trace"`
	Refresh       bool   `json:"refresh,omitempty" toml:"refresh"`

	// Render options
	Formats []string `json:"formats,omitempty" toml:"formats"`
	Scale   float64  `json:"scale,omitempty" toml:"scale"`
	Grid    bool     `json:"grid,omitempty" toml:"grid"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Name      string
	Embedding *planar.Embedding
	Ordering  canonical.Ordering
	Positions planar.Positions

	// Run holds the placement details of Algorithm A or B. It is nil for
	// the shift method and when the drawing came from the cache.
	Run *placement.Run

	// Drawing is the serializable drawing, with ID set once stored.
	Drawing graph.Drawing

	GraphHash string
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Vertices   int
	Edges      int
	Width      int
	Height     int
	LoadTime   time.Duration
	OrderTime  time.Duration
	DrawTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	OrderHit  bool
	DrawHit   bool
	RenderHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return gerr.New(gerr.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, txt, svg, dot, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAlgorithm checks that an algorithm name is valid.
func ValidateAlgorithm(alg string) error {
	if !slices.Contains(graph.AllAlgorithms, alg) {
		return gerr.New(gerr.ErrCodeUnknownAlgorithm, "invalid algorithm: %q (must be one of: shift, a, b)", alg)
	}
	return nil
}

// ValidateSource checks that an instance source is valid.
func ValidateSource(src string) error {
	if !ValidSources[src] {
		return gerr.New(gerr.ErrCodeInvalidInput, "invalid source: %q (must be one of: reference, generate, inline, file)", src)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForDraw(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the instance options.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" {
		switch {
		case o.Path != "":
			o.Source = SourceFile
		case len(o.Rotation) > 0:
			o.Source = SourceInline
		default:
			o.Source = SourceReference
		}
	}
	if err := ValidateSource(o.Source); err != nil {
		return err
	}
	switch o.Source {
	case SourceGenerate:
		if o.Vertices == 0 {
			o.Vertices = DefaultVertices
		}
		if o.Seed == 0 {
			o.Seed = DefaultSeed
		}
		if err := gerr.ValidateVertexCount(o.Vertices); err != nil {
			return err
		}
	case SourceFile:
		if err := gerr.ValidatePath(o.Path); err != nil {
			return err
		}
	case SourceInline:
		if len(o.Rotation) == 0 {
			return gerr.New(gerr.ErrCodeInvalidInput, "inline source needs a rotation system")
		}
		if err := gerr.ValidateVertexCount(len(o.Rotation)); err != nil {
			return err
		}
	}
	if o.Name != "" {
		if err := gerr.ValidateInstanceName(o.Name); err != nil {
			return err
		}
	}
	if len(o.OuterFace) != 0 && len(o.OuterFace) != 3 {
		return gerr.New(gerr.ErrCodeInvalidOuterFace, "outer face needs 3 vertices, got %d", len(o.OuterFace))
	}
	o.setLogger()
	return nil
}

// ValidateForDraw checks the drawing options.
func (o *Options) ValidateForDraw() error {
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if alg, err := placement.ParseAlgorithm(o.Algorithm); err == nil {
		o.Algorithm = string(alg)
	}
	if o.MaxIncrements <= 0 {
		o.MaxIncrements = placement.DefaultMaxIncrements
	}
	o.setLogger()
	return ValidateAlgorithm(o.Algorithm)
}

// ValidateForRender checks the render options.
func (o *Options) ValidateForRender() error {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsShift reports whether the shift method is selected.
func (o *Options) IsShift() bool {
	return o.Algorithm == graph.AlgorithmShift
}

// InstanceName returns Name, or a name derived from the source.
func (o *Options) InstanceName() string {
	if o.Name != "" {
		return o.Name
	}
	switch o.Source {
	case SourceGenerate:
		return fmt.Sprintf("stacked-%d-%d", o.Vertices, o.Seed)
	case SourceFile:
		return baseName(o.Path)
	case SourceInline:
		return "inline"
	}
	return SourceReference
}

// DrawingKeyOpts returns cache key options for the drawing stage.
func (o *Options) DrawingKeyOpts() cache.DrawingKeyOpts {
	k := cache.DrawingKeyOpts{Algorithm: o.Algorithm}
	if o.Algorithm == graph.AlgorithmVisibility {
		k.MaxIncrements = o.MaxIncrements
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if format == FormatSVG {
		k.Scale = o.Scale
		k.Grid = o.Grid
	}
	return k
}
