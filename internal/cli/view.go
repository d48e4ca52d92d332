package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/layerscope/layerscope/pkg/pipeline"
	"github.com/layerscope/layerscope/pkg/render"
	"github.com/layerscope/layerscope/pkg/scene"
)

// viewCommand creates the view command for interactive configuration.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		sheetID  string
		endpoint string
		output   string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "view [graph.json|graph.toml]",
		Short: "Tune the scene configuration interactively",
		Long: `Tune the scene configuration interactively.

The view command loads a layer graph and opens a configuration editor.
Edits are staged: the scene keeps its current form while you adjust values,
and nothing changes until you commit with Enter. A failed commit (for
example a non-positive z-spacing) leaves both the scene and your staged
edits untouched. Esc discards staged edits.

On exit, the scene built from the last committed configuration is written
as a JSON trace document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && sheetID != "" {
				return fmt.Errorf("pass a graph file or --sheet, not both")
			}
			if len(args) == 0 && sheetID == "" {
				return fmt.Errorf("a graph file or --sheet is required")
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runView(cmd.Context(), input, sheetID, endpoint, output, noCache)
		},
	}

	cmd.Flags().StringVar(&sheetID, "sheet", "", "fetch the graph from this sheet ID")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "override the sheet endpoint URL")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for the final scene (default <source>.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runView(ctx context.Context, input, sheetID, endpoint, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		SheetID:   sheetID,
		Endpoint:  endpoint,
		GraphFile: input,
		Logger:    loggerFromContext(ctx),
	}
	g, err := runner.Fetch(ctx, opts)
	if err != nil {
		return err
	}

	model, err := NewConfigModel(g, scene.DefaultConfig(), 0)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	m, ok := final.(*ConfigModel)
	if !ok || m.Scene == nil {
		return nil
	}

	data, err := render.RenderJSON(m.Scene, render.WithJSONSource(opts.Source()))
	if err != nil {
		return err
	}

	if output == "" {
		output = basePath("", opts.Source()) + ".json"
	}
	if err := writeArtifact(output, data); err != nil {
		return err
	}
	printSuccess("Saved scene from %s", opts.Source())
	printStats(m.Scene.NodeCount(), m.Scene.EdgeCount(), false)
	return nil
}
