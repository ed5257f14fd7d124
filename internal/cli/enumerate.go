package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fractal/pkg/errors"
	"github.com/matzehuels/fractal/pkg/render/text"
	"github.com/matzehuels/fractal/pkg/tree"
)

// enumerateOpts holds the command-line flags for the enumerate command.
type enumerateOpts struct {
	semiFractal bool // keep only semi-fractal trees
	fractal     bool // keep only fractal trees
	limit       int  // stop after this many matches; 0 means no limit
	count       bool // print the number of matches instead of the trees
}

// enumerateCommand creates the enumerate command, which lists every tree of
// a given rank.
func (c *CLI) enumerateCommand() *cobra.Command {
	opts := enumerateOpts{limit: 100}

	cmd := &cobra.Command{
		Use:   "enumerate <rank>",
		Short: "List every tree of a rank",
		Long: `List every tree of a given rank, unary vertices first.

The number of trees grows doubly exponentially with the rank (1, 2, 6, 42,
1806, ...), so output stops after --limit matches unless --limit is 0.`,
		Example: `  fractal enumerate 2
  fractal enumerate 4 --fractal
  fractal enumerate 4 --semi-fractal --count --limit 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rank, err := strconv.Atoi(args[0])
			if err != nil || rank < 0 || rank > maxEnumerateRank {
				return errors.New(errors.ErrCodeInvalidInput,
					"rank must be an integer between 0 and %d, got %q", maxEnumerateRank, args[0])
			}
			if opts.limit < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--limit must not be negative")
			}
			return c.runEnumerate(cmd, rank, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.semiFractal, "semi-fractal", false, "only list semi-fractal trees")
	cmd.Flags().BoolVar(&opts.fractal, "fractal", false, "only list fractal trees")
	cmd.Flags().IntVar(&opts.limit, "limit", opts.limit, "stop after this many trees (0 for no limit)")
	cmd.Flags().BoolVar(&opts.count, "count", false, "print the number of matching trees only")
	return cmd
}

func (o enumerateOpts) keep(t tree.Tree) bool {
	switch {
	case o.fractal:
		return tree.IsFractal(t)
	case o.semiFractal:
		return tree.IsSemiFractal(t)
	default:
		return true
	}
}

func (c *CLI) runEnumerate(cmd *cobra.Command, rank int, opts enumerateOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	prog := newProgress(c.Logger)
	c.Logger.Debug("enumerate", "rank", rank, "total", tree.CountRank(rank))

	textOpts := c.textOptions(out)
	n := 0
	for t := range tree.Enumerate(rank) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !opts.keep(t) {
			continue
		}
		n++
		if !opts.count {
			fmt.Fprintln(out, text.Colorize(t, textOpts))
		}
		if opts.limit > 0 && n >= opts.limit {
			break
		}
	}

	if opts.count {
		fmt.Fprintln(out, n)
	}
	prog.done(fmt.Sprintf("Listed %d trees of rank %d", n, rank))
	return nil
}
