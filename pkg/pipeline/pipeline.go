// Package pipeline provides the core scene-building pipeline.
//
// This package implements the complete fetch → build → render pipeline
// shared by the CLI and API entry points. Centralizing it keeps caching
// and validation behavior identical regardless of how a build is invoked.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: Obtain a validated layer graph from a provider (remote sheet
//     endpoint or local file)
//  2. Build: Assemble the graph into a 3D scene of trace descriptors
//  3. Render: Encode the scene into output artifacts (JSON, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	opts := pipeline.Options{
//	    SheetID: "my-sheet",
//	    Formats: []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifacts["json"]
//
// Run individual stages:
//
//	g, err := runner.Fetch(ctx, opts)
//	s, err := runner.Build(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, s, g, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/layerscope/layerscope/pkg/cache"
	"github.com/layerscope/layerscope/pkg/errors"
	"github.com/layerscope/layerscope/pkg/layer"
	"github.com/layerscope/layerscope/pkg/provider"
	"github.com/layerscope/layerscope/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output artifacts.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Fetch options. Exactly one input source is required: a sheet ID, a
	// local graph file, or an inline graph.
	SheetID   string       `json:"sheet_id,omitempty"`
	Endpoint  string       `json:"endpoint,omitempty"`
	GraphFile string       `json:"graph_file,omitempty"`
	Graph     *layer.Graph `json:"graph,omitempty"`
	Refresh   bool         `json:"refresh,omitempty"`

	// Build options. A nil Config means scene.DefaultConfig.
	Config  *scene.Config `json:"config,omitempty"`
	EdgeCap int           `json:"edge_cap,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized). A non-nil Provider overrides the
	// runner's provider for this run.
	Logger   *log.Logger       `json:"-"`
	Provider provider.Provider `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the fetched layer graph.
	Graph *layer.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Scene is the assembled trace list.
	Scene *scene.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LayerCount int
	NodeCount  int
	EdgeCount  int
	FetchTime  time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FetchHit  bool // Whether the graph came from cache
	BuildHit  bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg, png)", format)
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

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForFetch(); err != nil {
		return err
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForFetch checks required fields for fetching.
func (o *Options) ValidateForFetch() error {
	sources := 0
	if o.SheetID != "" {
		sources++
	}
	if o.GraphFile != "" {
		sources++
	}
	if o.Graph != nil {
		sources++
	}
	if sources == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "a sheet ID, graph file, or inline graph is required")
	}
	if sources > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "only one input source may be set")
	}
	if o.SheetID != "" {
		if err := errors.ValidateSheetID(o.SheetID); err != nil {
			return err
		}
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForBuild validates and sets defaults for scene assembly.
func (o *Options) ValidateForBuild() error {
	if o.Config == nil {
		cfg := scene.DefaultConfig()
		o.Config = &cfg
	}
	if o.EdgeCap == 0 {
		o.EdgeCap = scene.DefaultInterEdgeCap
	}
	o.setLoggerDefault()
	return o.Config.Validate()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	o.setLoggerDefault()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Source names the configured input, for logs and artifact metadata.
func (o *Options) Source() string {
	switch {
	case o.SheetID != "":
		return o.SheetID
	case o.GraphFile != "":
		return o.GraphFile
	default:
		return "inline"
	}
}

// GraphKeyOpts returns cache key options for the fetch stage.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		Endpoint: o.Endpoint,
	}
}

// SceneKeyOpts returns cache key options for the build stage.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		ShowLabels:          o.Config.ShowLabels,
		ShowLayerNames:      o.Config.ShowLayerNames,
		ShowInterLayerEdges: o.Config.ShowInterLayerEdges,
		ZSpacing:            o.Config.ZSpacing,
		EdgeCap:             o.EdgeCap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
