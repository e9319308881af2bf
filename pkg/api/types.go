package api

import (
	"encoding/base64"
	"time"

	"github.com/matzehuels/gridraw/pkg/canonical"
	"github.com/matzehuels/gridraw/pkg/graph"
	"github.com/matzehuels/gridraw/pkg/pipeline"
)

// OrderingResponse is the body of POST /v1/orderings.
type OrderingResponse struct {
	Name      string             `json:"name"`
	OuterFace [3]int             `json:"outer_face"`
	Ordering  canonical.Ordering `json:"ordering"`
	Cached    bool               `json:"cached"`
}

// DrawingResponse is the body of POST /v1/drawings.
type DrawingResponse struct {
	Drawing graph.Drawing `json:"drawing"`
	Stats   Stats         `json:"stats"`
	Cache   CacheInfo     `json:"cache"`

	// Steps is the number of traced placement steps.
	Steps int `json:"steps,omitempty"`

	// Artifacts holds the requested formats. PNG is base64 encoded, the
	// text formats are included verbatim.
	Artifacts map[string]string `json:"artifacts,omitempty"`
}

// Stats summarises a pipeline run.
type Stats struct {
	Vertices   int     `json:"vertices"`
	Edges      int     `json:"edges"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	DurationMS float64 `json:"duration_ms"`
}

// CacheInfo reports per-stage cache hits.
type CacheInfo struct {
	Ordering bool `json:"ordering"`
	Drawing  bool `json:"drawing"`
	Render   bool `json:"render"`
}

// DrawingSummary is one entry of GET /v1/drawings.
type DrawingSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Algorithm string    `json:"algorithm"`
	Vertices  int       `json:"vertices"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResponse is the body of GET /v1/drawings.
type ListResponse struct {
	Drawings []DrawingSummary `json:"drawings"`
}

func newDrawingResponse(res *pipeline.Result, total time.Duration) DrawingResponse {
	resp := DrawingResponse{
		Drawing: res.Drawing,
		Stats: Stats{
			Vertices:   res.Stats.Vertices,
			Edges:      res.Stats.Edges,
			Width:      res.Stats.Width,
			Height:     res.Stats.Height,
			DurationMS: float64(total.Microseconds()) / 1000,
		},
		Cache: CacheInfo{
			Ordering: res.CacheInfo.OrderHit,
			Drawing:  res.CacheInfo.DrawHit,
			Render:   res.CacheInfo.RenderHit,
		},
	}
	if res.Run != nil {
		resp.Steps = len(res.Run.Steps)
	}
	if len(res.Artifacts) > 0 {
		resp.Artifacts = make(map[string]string, len(res.Artifacts))
		for format, data := range res.Artifacts {
			resp.Artifacts[format] = encodeArtifact(format, data)
		}
	}
	return resp
}

func summarize(d graph.Drawing) DrawingSummary {
	return DrawingSummary{
		ID:        d.ID,
		Name:      d.Name,
		Algorithm: d.Algorithm,
		Vertices:  len(d.Vertices),
		Width:     d.Width,
		Height:    d.Height,
		CreatedAt: d.CreatedAt,
	}
}

func encodeArtifact(format string, data []byte) string {
	if format == pipeline.FormatPNG {
		return base64.StdEncoding.EncodeToString(data)
	}
	return string(data)
}

// DecodeArtifact reverses the artifact encoding of DrawingResponse.
func DecodeArtifact(format, s string) ([]byte, error) {
	if format == pipeline.FormatPNG {
		return base64.StdEncoding.DecodeString(s)
	}
	return []byte(s), nil
}

// contentTypes maps output formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatPNG:  "image/png",
}
