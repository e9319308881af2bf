package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/httputil"
	"github.com/matzehuels/gridraw/pkg/pipeline"
	"github.com/matzehuels/gridraw/pkg/store"
)

// decodeOptions reads and validates the instance part of a request.
func decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	if err := httputil.DecodeJSON(w, r, &opts); err != nil {
		return opts, err
	}
	if opts.Path != "" || opts.Source == pipeline.SourceFile {
		return opts, gerr.New(gerr.ErrCodeInvalidInput, "file sources are not accepted over HTTP")
	}
	return opts, opts.ValidateForLoad()
}

func (s *Server) createOrdering(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeOptions(w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	inst, err := pipeline.Load(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ord, hit, err := s.runner.OrderWithCacheInfo(r.Context(), inst, opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OrderingResponse{
		Name:      inst.Name,
		OuterFace: pipeline.OuterFace(inst, opts),
		Ordering:  ord,
		Cached:    hit,
	})
}

func (s *Server) createDrawing(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	opts, err := decodeOptions(w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	status := http.StatusOK
	if res.Drawing.ID != "" {
		status = http.StatusCreated
		w.Header().Set("Location", "/v1/drawings/"+res.Drawing.ID)
	}
	httputil.WriteJSON(w, status, newDrawingResponse(res, time.Since(start)))
}

func (s *Server) listDrawings(w http.ResponseWriter, r *http.Request) {
	st, err := s.store()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	q := r.URL.Query()
	opts := store.ListOptions{Name: q.Get("name"), Algorithm: q.Get("algorithm")}
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			httputil.WriteError(w, gerr.New(gerr.ErrCodeInvalidInput, "invalid limit %q", l))
			return
		}
		opts.Limit = n
	}
	drawings, err := st.List(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	resp := ListResponse{Drawings: make([]DrawingSummary, len(drawings))}
	for i, d := range drawings {
		resp.Drawings[i] = summarize(d)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) getDrawing(w http.ResponseWriter, r *http.Request) {
	st, err := s.store()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	d, err := st.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, notFound(err, id))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		httputil.WriteJSON(w, http.StatusOK, d)
		return
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		httputil.WriteError(w, err)
		return
	}
	opts := pipeline.Options{Formats: []string{format}, Grid: r.URL.Query().Has("grid")}
	artifacts, _, err := s.runner.RenderWithCacheInfo(r.Context(), d, opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) deleteDrawing(w http.ResponseWriter, r *http.Request) {
	st, err := s.store()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := st.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, notFound(err, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) store() (store.Store, error) {
	if s.runner.Store == nil {
		return nil, gerr.New(gerr.ErrCodeUnsupported, "no drawing store configured")
	}
	return s.runner.Store, nil
}

func notFound(err error, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return gerr.Wrap(gerr.ErrCodeNotFound, err, "drawing %s", id)
	}
	return err
}
