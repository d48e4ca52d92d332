package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/layerscope/layerscope/pkg/buildinfo"
	"github.com/layerscope/layerscope/pkg/errors"
	"github.com/layerscope/layerscope/pkg/layer"
	"github.com/layerscope/layerscope/pkg/pipeline"
)

// sceneResponse is the build result returned by POST /v1/scenes. Traces is
// the same coordinate-array document the CLI writes as its JSON artifact.
type sceneResponse struct {
	GraphHash string          `json:"graph_hash"`
	Layers    int             `json:"layers"`
	Nodes     int             `json:"nodes"`
	Edges     int             `json:"edges"`
	Cached    bool            `json:"cached"`
	Traces    json.RawMessage `json:"traces"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": buildinfo.Version})
}

func (s *Server) handleBuildScene(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	// The API always returns the trace document; other formats are CLI-only.
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sceneResponse{
		GraphHash: result.GraphHash,
		Layers:    result.Stats.LayerCount,
		Nodes:     result.Stats.NodeCount,
		Edges:     result.Stats.EdgeCount,
		Cached:    result.CacheInfo.BuildHit,
		Traces:    json.RawMessage(result.Artifacts[pipeline.FormatJSON]),
	})
}

func (s *Server) handleSaveGraph(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	var g layer.Graph
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode graph body"))
		return
	}

	name := chi.URLParam(r, "name")
	if err := s.store.Save(ctx, name, &g); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

func (s *Server) handleLoadGraph(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	g, err := s.store.Load(ctx, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	recs, err := s.store.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	type entry struct {
		Name      string `json:"name"`
		Layers    int    `json:"layers"`
		UpdatedAt string `json:"updated_at"`
	}
	entries := make([]entry, len(recs))
	for i, rec := range recs {
		entries[i] = entry{
			Name:      rec.Name,
			Layers:    rec.Graph.LayerCount(),
			UpdatedAt: rec.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	name := chi.URLParam(r, "name")
	if err := s.store.Delete(ctx, name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}
