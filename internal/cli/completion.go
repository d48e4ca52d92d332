package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for layerscope.

Bash:
  $ source <(layerscope completion bash)

  # Persist across sessions:
  $ layerscope completion bash > /etc/bash_completion.d/layerscope

Zsh:
  # Requires compinit; enable once with:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  $ layerscope completion zsh > "${fpath[1]}/_layerscope"

Fish:
  $ layerscope completion fish | source

  # Persist across sessions:
  $ layerscope completion fish > ~/.config/fish/completions/layerscope.fish

PowerShell:
  PS> layerscope completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}
