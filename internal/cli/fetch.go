package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/layerscope/layerscope/pkg/layer"
	"github.com/layerscope/layerscope/pkg/pipeline"
)

// fetchCommand creates the fetch command for downloading layer graphs.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		endpoint string
		output   string
		refresh  bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <sheet-id>",
		Short: "Fetch a layer graph from a sheet endpoint",
		Long: `Fetch a layer graph from a sheet endpoint.

The fetch command downloads the layer matrix data for a spreadsheet ID,
validates it, and writes it as graph JSON. Results are cached locally, so
repeated fetches of the same sheet are instant until the cache entry
expires; use --refresh to force a re-download.

Use 'build' afterwards to assemble the graph into a scene, or combine both
steps with 'build --sheet'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd.Context(), args[0], endpoint, output, refresh, noCache)
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "override the sheet endpoint URL")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <sheet-id>.json)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and re-fetch")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runFetch(ctx context.Context, sheetID, endpoint, output string, refresh, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		SheetID:  sheetID,
		Endpoint: endpoint,
		Refresh:  refresh,
		Logger:   loggerFromContext(ctx),
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching %s...", sheetID))
	spinner.Start()

	g, cacheHit, err := runner.FetchWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return err
	}
	spinner.Stop()

	if output == "" {
		output = sheetID + ".json"
	}
	if err := layer.WriteGraphFile(g, output); err != nil {
		return err
	}

	printSuccess("Fetched %s", sheetID)
	printStats(g.NodeCount(), 0, cacheHit)
	printFile(output)
	printNextStep("Build a scene", fmt.Sprintf("layerscope build %s", output))
	return nil
}
