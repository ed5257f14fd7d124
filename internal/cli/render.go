package cli

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fractal/pkg/cache"
	"github.com/matzehuels/fractal/pkg/errors"
	"github.com/matzehuels/fractal/pkg/render"
	"github.com/matzehuels/fractal/pkg/render/nodelink"
	"github.com/matzehuels/fractal/pkg/tree"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path; empty writes to stdout
	format    string // dot, svg, pdf or png
	detailed  bool   // label vertices with path and arity
	direction string // Graphviz rankdir
	noCache   bool   // bypass the diagram cache
}

// renderCommand creates the render command for node-link diagrams.
//
// Without -o the diagram is written to standard output. When -f is not set
// the format is taken from the extension of -o, falling back to DOT.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <tree>",
		Short: "Render a tree as a node-link diagram",
		Long: `Render a tree as a node-link diagram.

DOT and SVG need no external tools. PDF and PNG are converted from SVG with
rsvg-convert (brew install librsvg, apt install librsvg2-bin).`,
		Example: `  fractal render '[(0),0]' > tree.dot
  fractal render '[(0),[0,0]]' -o tree.svg --detailed
  fractal render '[0,0]' -f png -o tree.png --direction BT`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTree(cmd, args[0])
			if err != nil {
				return err
			}

			f, err := opts.resolveFormat()
			if err != nil {
				return err
			}

			dopts := c.diagramOptions()
			if cmd.Flags().Changed("detailed") {
				dopts.Detailed = opts.detailed
			}
			if opts.direction != "" {
				dir := strings.ToUpper(opts.direction)
				if !slices.Contains(directions, dir) {
					return errors.New(errors.ErrCodeInvalidInput, "--direction must be one of %s, got %q", strings.Join(directions, ", "), opts.direction)
				}
				dopts.Direction = dir
			}

			prog := newProgress(c.Logger)
			data, err := c.renderDiagram(cmd.Context(), t, f, dopts, opts.noCache)
			if err != nil {
				return err
			}

			if opts.output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return err
			}
			prog.done("Rendered " + string(f))
			printFile(cmd.ErrOrStderr(), opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, pdf, png (default from -o, else dot)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label vertices with path and arity")
	cmd.Flags().StringVar(&opts.direction, "direction", "", "graph direction: TB, BT, LR, RL (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render even if a cached diagram exists")
	registerRenderCompletions(cmd)
	return cmd
}

// renderDiagram renders t, reading and filling the diagram cache for the
// formats that need Graphviz or rsvg-convert.
func (c *CLI) renderDiagram(ctx context.Context, t tree.Tree, f render.Format, opts nodelink.Options, noCache bool) ([]byte, error) {
	if f == render.FormatDOT {
		return []byte(nodelink.ToDOT(t, opts)), nil
	}

	dc := c.openCache(noCache)
	defer dc.Close()

	data, hit, err := cache.Fetch(ctx, dc, diagramKey(t, f, opts), diagramTTL, func() ([]byte, error) {
		return nodelink.Render(ctx, t, f, opts)
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", f)
	}
	c.Logger.Debug("diagram", "format", f, "cached", hit)
	return data, nil
}

// resolveFormat picks the output format from -f, then from the extension
// of -o.
func (o renderOpts) resolveFormat() (render.Format, error) {
	if o.format != "" {
		f, err := render.ParseFormat(o.format)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "--format")
		}
		return f, nil
	}
	if i := strings.LastIndexByte(o.output, '.'); i >= 0 {
		if f, err := render.ParseFormat(o.output[i+1:]); err == nil {
			return f, nil
		}
	}
	return render.FormatDOT, nil
}
