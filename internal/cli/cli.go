// Package cli implements the fractal command-line interface.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fractal/pkg/config"
	"github.com/matzehuels/fractal/pkg/errors"
	"github.com/matzehuels/fractal/pkg/render/nodelink"
	"github.com/matzehuels/fractal/pkg/render/text"
	"github.com/matzehuels/fractal/pkg/tree"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "fractal"

	// maxEnumerateRank bounds `fractal enumerate`; rank 7 has more trees
	// than an int64 can count.
	maxEnumerateRank = 6
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs, from --config or the
	// default location.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration file named by --config, or the
// default one.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "initial", cfg.Initial)
	return nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// textOptions returns text rendering options for output written to w.
func (c *CLI) textOptions(w io.Writer) text.Options {
	return text.Options{
		Palette:  c.Config.Render.DepthColors,
		Renderer: lipgloss.NewRenderer(w),
	}
}

// diagramOptions returns node-link options from the configuration.
func (c *CLI) diagramOptions() nodelink.Options {
	return nodelink.Options{
		Detailed:  c.Config.Render.Detailed,
		Direction: c.Config.Render.Direction,
	}
}

// markColor returns the colour for the i-th mark, preferring the configured
// palette.
func (c *CLI) markColor(i int) string {
	if pal := c.Config.Render.MarkColors; len(pal) > 0 {
		return pal[i%len(pal)]
	}
	return text.MarkColor(i)
}

// =============================================================================
// Argument Helpers
// =============================================================================

// readTree parses a tree argument. "-" reads the tree from the command's
// standard input.
func readTree(cmd *cobra.Command, arg string) (tree.Tree, error) {
	if arg == "-" {
		data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), errors.MaxTreeTextLength+1))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read tree from stdin")
		}
		arg = strings.TrimSpace(string(data))
	}
	return tree.Parse(arg)
}

// isTerminal reports whether f is an interactive terminal.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
