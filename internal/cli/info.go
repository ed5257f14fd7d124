package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fractal/pkg/render/text"
	"github.com/matzehuels/fractal/pkg/tree"
)

// infoCommand creates the info command, which prints the classification of
// a tree.
func (c *CLI) infoCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info <tree>",
		Short: "Classify a tree",
		Long: `Print the rank, depth, size and fractal predicates of a tree.

The tree is given in canonical form (0, (W), [W,W]) or as nested arrays
([] for a leaf). Use "-" to read it from standard input.`,
		Example: `  fractal info '[(0),0]'
  fractal info '[[],[[]]]' --json
  echo '[0,0]' | fractal info -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTree(cmd, args[0])
			if err != nil {
				return err
			}
			return c.runInfo(cmd, t, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the classification as JSON")
	return cmd
}

func (c *CLI) runInfo(cmd *cobra.Command, t tree.Tree, asJSON bool) error {
	out := cmd.OutOrStdout()
	cl := tree.Classify(t)

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cl)
	}

	fmt.Fprintln(out, text.Colorize(t, c.textOptions(out)))
	fmt.Fprintln(out)
	printClassification(out, cl)
	return nil
}
