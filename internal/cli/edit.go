package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fractal/pkg/errors"
	"github.com/matzehuels/fractal/pkg/store"
	"github.com/matzehuels/fractal/pkg/tree"
)

// editCommand creates the edit command, which opens the interactive editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [tree]",
		Short: "Edit a tree interactively",
		Long: `Open an interactive editor over a tree.

Move the cursor over the vertices with the arrow keys. Edits apply at the
cursor and every edit can be undone. Without an argument the editor starts
from the configured initial tree.`,
		Example: `  fractal edit
  fractal edit '[(0),[0,0]]'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				t   tree.Tree
				err error
			)
			if len(args) == 1 {
				t, err = readTree(cmd, args[0])
			} else {
				t, err = c.Config.InitialTree()
			}
			if err != nil {
				return err
			}
			if !isTerminal(os.Stdin) {
				return errors.New(errors.ErrCodeInvalidInput, "edit needs an interactive terminal")
			}
			return c.runEditor(cmd, t)
		},
	}
}

func (c *CLI) runEditor(cmd *cobra.Command, t tree.Tree) error {
	s, err := c.newStore(t)
	if err != nil {
		return err
	}

	m := NewEditorModel(s, c.textOptions(os.Stdout), c.markColor)
	p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := final.(EditorModel); ok {
		printSuccess(cmd.OutOrStdout(), "%s", tree.Format(fm.Store.Tree()))
	}
	return nil
}

// newStore creates a store holding t with the configured history limit.
// Store events are logged at debug level.
func (c *CLI) newStore(t tree.Tree) (*store.Store, error) {
	return store.New(
		store.WithTree(t),
		store.WithHistoryLimit(c.Config.Editor.HistoryLimit),
		store.WithLogger(c.Logger.WithPrefix("store")),
	)
}
