package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fractal/pkg/render"
)

// directions are the Graphviz rankdir values accepted by --direction.
var directions = []string{"TB", "BT", "LR", "RL"}

// completionGenerators maps shell names to cobra's script generators.
var completionGenerators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(r *cobra.Command, w io.Writer) error { return r.GenBashCompletionV2(w, true) },
	"zsh":        (*cobra.Command).GenZshCompletion,
	"fish":       func(r *cobra.Command, w io.Writer) error { return r.GenFishCompletion(w, true) },
	"powershell": (*cobra.Command).GenPowerShellCompletionWithDesc,
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for fractal and write it to stdout.

  bash:        source <(fractal completion bash)
  zsh:         fractal completion zsh > "${fpath[1]}/_fractal"
  fish:        fractal completion fish | source
  powershell:  fractal completion powershell | Out-String | Invoke-Expression

Start a new shell after installing a script for it to take effect.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionGenerators[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// registerRenderCompletions completes the values of --format and
// --direction.
func registerRenderCompletions(cmd *cobra.Command) {
	formats := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		formats[i] = string(f)
	}
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formats, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("direction", cobra.FixedCompletions(directions, cobra.ShellCompDirectiveNoFileComp))
}
