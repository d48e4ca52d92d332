package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/layerscope/layerscope/pkg/cache"
	"github.com/layerscope/layerscope/pkg/errors"
	"github.com/layerscope/layerscope/pkg/layer"
	"github.com/layerscope/layerscope/pkg/observability"
	"github.com/layerscope/layerscope/pkg/provider"
	"github.com/layerscope/layerscope/pkg/render"
	"github.com/layerscope/layerscope/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, provider, and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Provider provider.Provider
	Logger   *log.Logger
}

// NewRunner creates a runner with the given cache, keyer, and provider.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If p is nil, the standard sheet provider is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, p provider.Provider, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if p == nil {
		p = provider.NewSheetProvider()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Provider: p,
		Logger:   logger,
	}
}

// Execute runs the complete fetch → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Fetch
	fetchStart := time.Now()
	g, fetchHit, err := r.FetchWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.FetchTime = time.Since(fetchStart)
	result.Stats.LayerCount = g.LayerCount()
	result.CacheInfo.FetchHit = fetchHit

	// Content hash for cache keys and API responses
	if graphData, err := layer.MarshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	r.Logger.Info("fetched graph",
		"source", opts.Source(),
		"layers", g.LayerCount(),
		"cells", g.NodeCount(),
		"duration", result.Stats.FetchTime)

	// Stage 2: Build
	buildStart := time.Now()
	s, buildHit, err := r.BuildWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Scene = s
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = s.NodeCount()
	result.Stats.EdgeCount = s.EdgeCount()
	result.CacheInfo.BuildHit = buildHit

	r.Logger.Info("built scene",
		"traces", len(s.Traces),
		"nodes", s.NodeCount(),
		"edges", s.EdgeCount(),
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, s, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// FetchWithCacheInfo obtains the graph with caching and returns cache hit info.
//
// Inline graphs are validated and returned as-is; local files are read
// directly. Only remote sheet fetches go through the cache.
func (r *Runner) FetchWithCacheInfo(ctx context.Context, opts Options) (*layer.Graph, bool, error) {
	if err := opts.ValidateForFetch(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if opts.Graph != nil {
		if err := opts.Graph.Validate(); err != nil {
			return nil, false, err
		}
		return opts.Graph, false, nil
	}
	if opts.GraphFile != "" {
		g, err := provider.NewFileProvider(opts.GraphFile).Fetch(ctx, provider.Request{})
		return g, false, err
	}

	cacheKey := r.Keyer.GraphKey(opts.SheetID, opts.GraphKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := layer.UnmarshalGraph(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	p := r.Provider
	if opts.Provider != nil {
		p = opts.Provider
	}

	start := time.Now()
	observability.Pipeline().OnFetchStart(ctx, opts.SheetID)
	g, err := p.Fetch(ctx, provider.Request{SheetID: opts.SheetID, Endpoint: opts.Endpoint})
	layers := 0
	if g != nil {
		layers = g.LayerCount()
	}
	observability.Pipeline().OnFetchComplete(ctx, opts.SheetID, layers, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := layer.MarshalGraph(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}

	return g, false, nil
}

// Fetch is a convenience wrapper that discards the cache hit info.
func (r *Runner) Fetch(ctx context.Context, opts Options) (*layer.Graph, error) {
	g, _, err := r.FetchWithCacheInfo(ctx, opts)
	return g, err
}

// BuildWithCacheInfo assembles the scene with caching and returns cache hit info.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, g *layer.Graph, opts Options) (*scene.Scene, bool, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	graphData, err := layer.MarshalGraph(g)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize graph for cache key")
	}
	cacheKey := r.Keyer.SceneKey(cache.Hash(graphData), opts.SceneKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached scene.Scene
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "scene")
			return &cached, true, nil
		}
		// Deserialization failure falls through to recompute.
	}
	observability.Cache().OnCacheMiss(ctx, "scene")

	start := time.Now()
	observability.Pipeline().OnBuildStart(ctx, g.LayerCount())
	s, err := scene.AssembleWithOptions(g, *opts.Config, scene.InterEdgeOptions{Cap: opts.EdgeCap})
	nodes, edges := 0, 0
	if s != nil {
		nodes, edges = s.NodeCount(), s.EdgeCount()
	}
	observability.Pipeline().OnBuildComplete(ctx, nodes, edges, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(s); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLScene)
		observability.Cache().OnCacheSet(ctx, "scene", len(data))
	}

	return s, false, nil
}

// Build is a convenience wrapper that discards the cache hit info.
func (r *Runner) Build(ctx context.Context, g *layer.Graph, opts Options) (*scene.Scene, error) {
	s, _, err := r.BuildWithCacheInfo(ctx, g, opts)
	return s, err
}

// RenderWithCacheInfo encodes artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *scene.Scene, g *layer.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	sceneData, err := json.Marshal(s)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize scene for cache key")
	}
	sceneHash := cache.Hash(sceneData)

	// Try to get all formats from cache.
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := r.renderFormats(s, g, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s *scene.Scene, g *layer.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, g, opts)
	return artifacts, err
}

func (r *Runner) renderFormats(s *scene.Scene, g *layer.Graph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	dotOpts := render.DOTOptions{Detailed: opts.Detailed}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			data, err := render.RenderJSON(s, render.WithJSONSource(opts.Source()))
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		case FormatDOT:
			artifacts[format] = []byte(render.ToDOT(g, dotOpts))
		case FormatSVG:
			data, err := render.RenderSVG(render.ToDOT(g, dotOpts))
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		case FormatPNG:
			data, err := render.RenderPNG(render.ToDOT(g, dotOpts))
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		}
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
