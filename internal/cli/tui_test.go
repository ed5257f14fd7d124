package cli

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/fractal/pkg/errors"
	"github.com/matzehuels/fractal/pkg/render/text"
	"github.com/matzehuels/fractal/pkg/store"
	"github.com/matzehuels/fractal/pkg/tree"
)

func newTestEditor(t *testing.T, initial string) EditorModel {
	t.Helper()
	s, err := store.New(store.WithTree(tree.MustParse(initial)))
	if err != nil {
		t.Fatal(err)
	}
	opts := text.Options{Renderer: lipgloss.NewRenderer(io.Discard)}
	return NewEditorModel(s, opts, func(i int) string { return []string{"#111111", "#222222"}[i%2] })
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+z":
		return tea.KeyMsg{Type: tea.KeyCtrlZ}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m EditorModel, keys ...string) EditorModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(EditorModel)
	}
	return m
}

func TestEditorAddRemoveUndo(t *testing.T) {
	m := newTestEditor(t, "0")

	m = press(m, "a", "a")
	if got := m.Store.Tree().String(); got != "[0,0]" {
		t.Fatalf("after two adds tree = %s, want [0,0]", got)
	}

	m = press(m, "down", "a")
	if got := m.Store.Tree().String(); got != "[(0),0]" {
		t.Fatalf("add at 0: tree = %s, want [(0),0]", got)
	}
	if got := m.selected().String(); got != "0" {
		t.Errorf("cursor at %q after add, want 0", got)
	}

	m = press(m, "x")
	if got := m.Store.Tree().String(); got != "(0)" {
		t.Fatalf("remove 0: tree = %s, want (0)", got)
	}
	if !m.selected().IsRoot() {
		t.Errorf("cursor at %q after remove, want root", m.selected())
	}

	m = press(m, "u")
	if got := m.Store.Tree().String(); got != "[(0),0]" {
		t.Errorf("undo: tree = %s, want [(0),0]", got)
	}
	if m.Status != "undo (4/5)" {
		t.Errorf("status = %q", m.Status)
	}

	m = press(m, "ctrl+y")
	if got := m.Store.Tree().String(); got != "(0)" {
		t.Errorf("redo: tree = %s, want (0)", got)
	}
	m = press(m, "r")
	if m.Status != "nothing to redo" {
		t.Errorf("status = %q, want nothing to redo", m.Status)
	}
}

func TestEditorPromote(t *testing.T) {
	m := newTestEditor(t, "[(0),[0,0]]")

	// pre-order: root, 0, 00, 1, 10, 11
	m = press(m, "down", "down", "down")
	if got := m.selected().String(); got != "1" {
		t.Fatalf("cursor at %q, want 1", got)
	}
	m = press(m, "p")
	if got := m.Store.Tree().String(); got != "[0,0]" {
		t.Errorf("promote: tree = %s, want [0,0]", got)
	}
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after promote, want 0", m.Cursor)
	}
}

func TestEditorTransforms(t *testing.T) {
	m := newTestEditor(t, "(0)")
	m = press(m, "c")
	if got := m.Store.Tree().String(); got != "[0,0]" {
		t.Errorf("cut: tree = %s", got)
	}
	m = press(m, "d")
	if got := m.Store.Tree().String(); got != "0" {
		t.Errorf("divide: tree = %s", got)
	}
	m = press(m, "ctrl+z", "ctrl+z")
	if got := m.Store.Tree().String(); got != "(0)" {
		t.Errorf("undo twice: tree = %s", got)
	}
}

func TestEditorRejectedEdit(t *testing.T) {
	m := newTestEditor(t, "[0,0]")
	m = press(m, "x")

	if errors.GetCode(m.Err) != errors.ErrCodeInvalidPath {
		t.Fatalf("err = %v, want INVALID_PATH", m.Err)
	}
	if got := m.Store.Tree().String(); got != "[0,0]" {
		t.Errorf("tree changed to %s", got)
	}
	if !strings.Contains(m.View(), "cannot remove the root") {
		t.Error("view does not show the error")
	}

	m = press(m, "down")
	if m.Err != nil {
		t.Errorf("moving should not clear the error: %v", m.Err)
	}
	m = press(m, "x")
	if m.Err != nil {
		t.Errorf("valid remove left error %v", m.Err)
	}
}

func TestEditorMarks(t *testing.T) {
	m := newTestEditor(t, "[(0),[0,0]]")

	m = press(m, "down", "down", "down", "down") // 10
	m = press(m, "m")
	if got := m.Marks["10"]; got != "#111111" {
		t.Fatalf("mark colour = %q, want #111111", got)
	}
	m = press(m, "up", "m") // 1
	if got := m.Marks["1"]; got != "#222222" {
		t.Fatalf("second mark colour = %q, want #222222", got)
	}
	m = press(m, "m")
	if _, ok := m.Marks["1"]; ok {
		t.Fatal("second press should unmark")
	}

	// Adding at a binary vertex collapses it, so 10 disappears.
	m = press(m, "a")
	if got := m.Store.Tree().String(); got != "[(0),0]" {
		t.Fatalf("tree = %s, want [(0),0]", got)
	}
	if len(m.Marks) != 0 {
		t.Errorf("marks = %v, want pruned", m.Marks)
	}
}

func TestEditorCursorBounds(t *testing.T) {
	m := newTestEditor(t, "(0)")

	m = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
	m = press(m, "down", "down", "down")
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}

	// Dividing shrinks the outline to the root and the cursor follows.
	m = press(m, "d")
	if got := m.Store.Tree().String(); got != "0" {
		t.Fatalf("tree = %s", got)
	}
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after shrink, want 0", m.Cursor)
	}
}

func TestEditorWindowSize(t *testing.T) {
	m := newTestEditor(t, "0")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if got := next.(EditorModel).Height; got != 5 {
		t.Errorf("height = %d, want 5", got)
	}
	next, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	if got := next.(EditorModel).Height; got != 28 {
		t.Errorf("height = %d, want 28", got)
	}
}

func TestEditorQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m := newTestEditor(t, "0")
		_, cmd := m.Update(key(k))
		if cmd == nil {
			t.Fatalf("%s: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command is not quit", k)
		}
	}
}

func TestEditorView(t *testing.T) {
	m := newTestEditor(t, "[[0,0],[0,0]]")
	view := m.View()

	for _, want := range []string{"Fractal Editor", "[[0,0],[0,0]]", "rank 2", "fractal", "root", "binary", editorHelp} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSummary(t *testing.T) {
	got := summary(tree.Classify(tree.MustParse("(0)")))
	if !strings.HasPrefix(got, "rank ") && !strings.HasPrefix(got, "unranked") {
		t.Errorf("summary = %q", got)
	}
	if !strings.Contains(got, "depth 2") || !strings.Contains(got, "2 vertices") {
		t.Errorf("summary = %q", got)
	}
}
