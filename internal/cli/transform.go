package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fractal/pkg/errors"
	"github.com/matzehuels/fractal/pkg/render/text"
	"github.com/matzehuels/fractal/pkg/tree"
)

// transformCommand builds a command that applies fn to a tree repeatedly
// and prints every intermediate result.
func (c *CLI) transformCommand(name, short, long string, fn func(tree.Tree) tree.Tree) *cobra.Command {
	var times int

	cmd := &cobra.Command{
		Use:   name + " <tree>",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if times < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "-n must be at least 1, got %d", times)
			}
			t, err := readTree(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			opts := c.textOptions(out)
			for i := range times {
				next := fn(t)
				c.Logger.Debug(name, "step", i+1, "from", tree.Format(t), "to", tree.Format(next))
				if times > 1 {
					fmt.Fprintf(out, "%s %s\n", StyleDim.Render(strconv.Itoa(i+1)), text.Colorize(next, opts))
				} else {
					fmt.Fprintln(out, text.Colorize(next, opts))
				}
				t = next
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&times, "times", "n", 1, "apply the transform n times")
	return cmd
}

// divideCommand creates the divide command.
func (c *CLI) divideCommand() *cobra.Command {
	cmd := c.transformCommand("divide",
		"Apply the division transform D",
		`Apply the division transform D to a tree.

Division never grows a tree: every binary vertex whose right child is a leaf
collapses to a leaf.`,
		tree.Divide)
	cmd.Example = `  fractal divide '[[0,0],[0,[0,0]]]'
  fractal divide -n 3 '[[[0,0],0],[0,0]]'`
	return cmd
}

// cutCommand creates the cut command.
func (c *CLI) cutCommand() *cobra.Command {
	cmd := c.transformCommand("cut",
		"Apply the cut transform C",
		`Apply the cut transform C to a tree.

Cut keeps the right spine of every binary vertex. Trees with C(W) = W are
cut fixed points; fractal trees are exactly the semi-fractal ones among them.`,
		tree.Cut)
	cmd.Example = `  fractal cut '(0)'
  fractal cut -n 2 '[[0,0],(0)]'`
	return cmd
}

// subtreesCommand creates the subtrees command, which lists the rank-n
// subtrees of a tree.
func (c *CLI) subtreesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "subtrees <tree> <n>",
		Short: "List the subtrees n levels below the root",
		Long: `List the rank-n subtrees of a tree, left to right.

At the first level only the last child counts; deeper levels include every
child. A tree is semi-fractal when every level lists one repeated shape.`,
		Example: `  fractal subtrees '[[0,0],[0,0]]' 2`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTree(cmd, args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "n must be a positive integer, got %q", args[1])
			}

			out := cmd.OutOrStdout()
			subs := tree.RankNSubtrees(t, n)
			if len(subs) == 0 {
				printInfo(cmd.ErrOrStderr(), "no subtrees at level %d", n)
				return nil
			}
			opts := c.textOptions(out)
			for _, s := range subs {
				fmt.Fprintln(out, text.Colorize(s, opts))
			}
			return nil
		},
	}
}

// resolveCommand creates the resolve command, which prints the subtree at
// a path.
func (c *CLI) resolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <tree> <path>",
		Short: "Print the subtree at a path",
		Long: `Print the subtree at a path.

A path is a string of branch digits read from the root: 0 takes the only or
left child, 1 takes the right child. The empty string is the root.`,
		Example: `  fractal resolve '[(0),[0,0]]' 10`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTree(cmd, args[0])
			if err != nil {
				return err
			}
			p, err := tree.ParsePath(args[1])
			if err != nil {
				return err
			}
			sub, err := tree.Resolve(t, p)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, text.Colorize(sub, c.textOptions(out)))
			return nil
		},
	}
}
