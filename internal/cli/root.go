package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/fractal/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The --config flag is resolved in PersistentPreRunE, so every subcommand
// sees the loaded configuration in c.Config. Callers that add their own
// PersistentPreRunE (main does, for --verbose) must chain to this one.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Fractal explores and edits fractal trees",
		Long:         `Fractal is a CLI tool for the algebra of rooted trees whose vertices have at most two children: classify them, apply the divide and cut transforms, enumerate them by rank, draw them, and edit them interactively or over HTTP.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/fractal/config.toml)")

	// Register all subcommands
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.divideCommand())
	root.AddCommand(c.cutCommand())
	root.AddCommand(c.subtreesCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.enumerateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
