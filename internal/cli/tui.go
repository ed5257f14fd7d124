package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/fractal/pkg/render/text"
	"github.com/matzehuels/fractal/pkg/store"
	"github.com/matzehuels/fractal/pkg/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

const editorHelp = "↑/↓ move  a add  x remove  p promote  d divide  c cut  u undo  r redo  m mark  q quit"

// =============================================================================
// EditorModel - Interactive tree editor
// =============================================================================

// EditorModel is the bubbletea model for `fractal edit`. The cursor walks
// the vertices of the current tree in pre-order; every edit goes through
// the store, so undo and redo cover the whole session.
type EditorModel struct {
	Store  *store.Store
	Cursor int
	Height int
	Offset int

	// Marks colours vertices by path. Marks whose path disappears after an
	// edit are dropped.
	Marks map[string]string

	Status string
	Err    error

	lines     []text.Line
	textOpts  text.Options
	markColor func(int) string
	nextMark  int
}

// NewEditorModel creates an editor over s. markColor hands out the colour
// of the i-th mark; nil uses text.MarkColor.
func NewEditorModel(s *store.Store, opts text.Options, markColor func(int) string) EditorModel {
	if markColor == nil {
		markColor = text.MarkColor
	}
	m := EditorModel{
		Store:     s,
		Height:    15,
		Marks:     make(map[string]string),
		textOpts:  opts,
		markColor: markColor,
	}
	m.refresh()
	return m
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(+1)
		case "a":
			p := m.selected()
			m.apply("added at "+pathName(p), m.Store.Add(p))
			m.focus(p)
		case "x":
			p := m.selected()
			m.apply("removed "+pathName(p), m.Store.Remove(p))
			if m.Err == nil {
				m.focus(p.Parent())
			}
		case "p":
			p := m.selected()
			m.apply("promoted "+pathName(p), m.Store.Promote(p))
			if m.Err == nil {
				m.focus(nil)
			}
		case "d":
			m.apply("divided", m.Store.DivideAll())
		case "c":
			m.apply("cut", m.Store.CutAll())
		case "u", "ctrl+z":
			m.history("undo", m.Store.Undo())
		case "r", "ctrl+y":
			m.history("redo", m.Store.Redo())
		case "m":
			m.toggleMark()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
		m.scroll()
	}
	return m, nil
}

// selected returns the path under the cursor.
func (m *EditorModel) selected() tree.Path {
	if m.Cursor >= len(m.lines) {
		return nil
	}
	return m.lines[m.Cursor].Path
}

func (m *EditorModel) move(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.lines) {
		return
	}
	m.Cursor = next
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *EditorModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// focus moves the cursor to the vertex at p, or clamps it when p is gone.
func (m *EditorModel) focus(p tree.Path) {
	want := p.String()
	for i, l := range m.lines {
		if l.Path.String() == want {
			m.Cursor = i
			m.scroll()
			return
		}
	}
	m.clamp()
}

func (m *EditorModel) clamp() {
	m.Cursor = min(m.Cursor, len(m.lines)-1)
	m.Offset = min(m.Offset, m.Cursor)
	m.scroll()
}

func (m *EditorModel) apply(status string, err error) {
	m.Err = err
	if err != nil {
		m.Status = ""
		return
	}
	m.Status = status
	m.refresh()
}

func (m *EditorModel) history(op string, moved bool) {
	m.Err = nil
	if !moved {
		m.Status = "nothing to " + op
		return
	}
	m.Status = fmt.Sprintf("%s (%d/%d)", op, m.Store.Index()+1, len(m.Store.History()))
	m.refresh()
}

func (m *EditorModel) toggleMark() {
	key := m.selected().String()
	if _, ok := m.Marks[key]; ok {
		delete(m.Marks, key)
		m.Status = "unmarked " + pathName(m.selected())
		return
	}
	m.Marks[key] = m.markColor(m.nextMark)
	m.nextMark++
	m.Status = "marked " + pathName(m.selected())
}

// refresh recomputes the outline after the tree changed and prunes marks
// that no longer name a vertex.
func (m *EditorModel) refresh() {
	t := m.Store.Tree()
	m.lines = text.Outline(t)
	for key := range m.Marks {
		p, err := tree.ParsePath(key)
		if err == nil {
			_, err = tree.Resolve(t, p)
		}
		if err != nil {
			delete(m.Marks, key)
		}
	}
	m.clamp()
}

func (m EditorModel) View() string {
	var b strings.Builder
	t := m.Store.Tree()

	b.WriteString(StyleTitle.Render("Fractal Editor"))
	b.WriteString("\n\n")

	opts := m.textOpts
	opts.Marks = m.Marks
	b.WriteString("  " + text.Colorize(t, opts))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("  " + summary(m.Store.Classify())))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.lines))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		l := m.lines[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := ""
		if _, ok := m.Marks[l.Path.String()]; ok {
			mark = "●"
		}
		rows = append(rows, []string{
			cursor,
			strings.Repeat("  ", l.Depth) + l.Name(),
			l.Kind(),
			text.Colorize(l.Tree, m.textOpts),
			mark,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Vertex", "Kind", "Subtree", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.lines) {
				return lipgloss.NewStyle()
			}
			if col == 4 {
				if c, ok := m.Marks[m.lines[idx].Path.String()]; ok {
					return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
				}
			}
			if idx == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(tbl.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.lines))))
	b.WriteString("\n\n")

	switch {
	case m.Err != nil:
		b.WriteString(listErrorStyle.Render(iconError + " " + m.Err.Error()))
	case m.Status != "":
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + m.Status)
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(editorHelp))
	b.WriteString("\n")

	return b.String()
}

// summary renders a classification on one line.
func summary(c tree.Classification) string {
	rank := "unranked"
	if c.Ranked {
		rank = "rank " + strconv.Itoa(c.Rank)
	}
	parts := []string{
		rank,
		fmt.Sprintf("depth %d", c.MaxDepth),
		fmt.Sprintf("%d vertices", c.Size),
	}
	switch {
	case c.Fractal:
		parts = append(parts, "fractal")
	case c.SemiFractal:
		parts = append(parts, "semi-fractal")
	}
	if c.CutFixedPoint {
		parts = append(parts, "C(W) = W")
	}
	return strings.Join(parts, " · ")
}

func pathName(p tree.Path) string {
	if p.IsRoot() {
		return "root"
	}
	return p.String()
}
