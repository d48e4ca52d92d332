package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/layerscope/layerscope/pkg/pipeline"
	"github.com/layerscope/layerscope/pkg/scene"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	sheetID    string  // fetch the graph from a sheet instead of a file
	endpoint   string  // sheet endpoint override
	output     string  // output file path (or base path for multiple formats)
	formats    []string // output formats: "json", "dot", "svg", "png"
	labels     bool    // show per-node labels
	layerNames bool    // show layer name anchors
	interEdges bool    // show inter-layer edges
	zSpacing   float64 // vertical distance between layers
	edgeCap    int     // max inter-layer edges per layer pair
	detailed   bool    // include dimensions in structural previews
	refresh    bool    // bypass the fetch cache
	noCache    bool    // disable caching entirely
}

// buildCommand creates the build command for assembling scenes.
func (c *CLI) buildCommand() *cobra.Command {
	var formatsStr string
	defaults := scene.DefaultConfig()
	opts := buildOpts{
		labels:     defaults.ShowLabels,
		layerNames: defaults.ShowLayerNames,
		interEdges: defaults.ShowInterLayerEdges,
		zSpacing:   defaults.ZSpacing,
	}

	cmd := &cobra.Command{
		Use:   "build [graph.json|graph.toml]",
		Short: "Assemble a layer graph into a 3D scene",
		Long: `Assemble a layer graph into a 3D scene.

The build command runs the full pipeline: it obtains a layer graph (from a
local JSON or TOML file, or directly from a sheet with --sheet), assembles
the 3D scene, and writes the requested artifacts. The JSON artifact is the
trace document consumed by 3D plotting surfaces; DOT, SVG, and PNG are flat
structural previews.

Each stage is cached, so rebuilding with different formats or configuration
reuses earlier work where possible.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && opts.sheetID != "" {
				return fmt.Errorf("pass a graph file or --sheet, not both")
			}
			if len(args) == 0 && opts.sheetID == "" {
				return fmt.Errorf("a graph file or --sheet is required")
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.sheetID, "sheet", "", "fetch the graph from this sheet ID")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "override the sheet endpoint URL")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "show per-node labels")
	cmd.Flags().BoolVar(&opts.layerNames, "layer-names", opts.layerNames, "show layer name anchors")
	cmd.Flags().BoolVar(&opts.interEdges, "inter-edges", opts.interEdges, "show inter-layer edges")
	cmd.Flags().Float64Var(&opts.zSpacing, "z-spacing", opts.zSpacing, "vertical distance between layers")
	cmd.Flags().IntVar(&opts.edgeCap, "edge-cap", 0, "max inter-layer edges per layer pair (0 = default)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show layer dimensions in previews")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the fetch cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, input string, opts *buildOpts) error {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	cfg := scene.Config{
		ShowLabels:          opts.labels,
		ShowLayerNames:      opts.layerNames,
		ShowInterLayerEdges: opts.interEdges,
		ZSpacing:            opts.zSpacing,
	}
	pipeOpts := pipeline.Options{
		SheetID:   opts.sheetID,
		Endpoint:  opts.endpoint,
		GraphFile: input,
		Config:    &cfg,
		EdgeCap:   opts.edgeCap,
		Formats:   opts.formats,
		Detailed:  opts.detailed,
		Refresh:   opts.refresh,
		Logger:    logger,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building %s...", pipeOpts.Source()))
	spinner.Start()
	prog := newProgress(logger)

	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Assembled %d traces", len(result.Scene.Traces)))

	printSuccess("Built scene from %s", pipeOpts.Source())
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.BuildHit)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.formats,
		input:     pipeOpts.Source(),
		output:    opts.output,
	})
}
