// Package store holds an editable tree together with its linear undo/redo
// history.
//
// A [Store] owns the current tree and a list of snapshots. Each snapshot
// keeps the tree value itself, which is immutable, next to its canonical
// text; undo and redo restore the value and never re-parse. Every edit computes its result with the pure functions of package
// tree first and only then commits it, so a rejected edit leaves both the
// tree and the history exactly as they were.
//
//	s, _ := store.New()
//	s.Add(nil)    // (0)
//	s.CutAll()    // [0,0]
//	s.Undo()      // back to (0)
//
// A Store is not safe for concurrent use. Callers that share one across
// goroutines (the HTTP API does) serialize access themselves.
package store

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fractal/pkg/errors"
	"github.com/matzehuels/fractal/pkg/observability"
	"github.com/matzehuels/fractal/pkg/tree"
)

// Store is an editable tree with history.
type Store struct {
	tree    tree.Tree
	history []snapshot
	index   int

	limit  int
	logger *log.Logger
}

// snapshot is one history entry.
type snapshot struct {
	tree tree.Tree
	text string
}

// Option configures a Store at construction.
type Option func(*Store)

// WithLogger sets the logger used for edit and history events.
// By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTree sets the initial tree. The default is a single leaf.
func WithTree(t tree.Tree) Option {
	return func(s *Store) { s.tree = t }
}

// WithHistoryLimit caps the number of snapshots kept. When a new snapshot
// would exceed the cap the oldest one is dropped. Zero or negative means
// unbounded, which is the default.
func WithHistoryLimit(n int) Option {
	return func(s *Store) { s.limit = n }
}

// New creates a store and records the initial tree as the first snapshot.
// It fails with STRUCTURAL_VIOLATION if the initial tree is malformed.
func New(opts ...Option) (*Store, error) {
	s := &Store{
		tree:   tree.Leaf{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := tree.Validate(s.tree); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStructuralViolation, err, "initial tree")
	}
	s.Record()
	return s, nil
}

// Tree returns the current tree. Trees are immutable, so the result may be
// kept after further edits.
func (s *Store) Tree() tree.Tree { return s.tree }

// History returns a copy of the snapshot list, oldest first.
func (s *Store) History() []string {
	out := make([]string, len(s.history))
	for i, snap := range s.history {
		out[i] = snap.text
	}
	return out
}

// Index returns the position of the current snapshot in History.
func (s *Store) Index() int { return s.index }

// CanUndo reports whether Undo would move.
func (s *Store) CanUndo() bool { return s.index > 0 }

// CanRedo reports whether Redo would move.
func (s *Store) CanRedo() bool { return s.index < len(s.history)-1 }

// Classify classifies the current tree.
func (s *Store) Classify() tree.Classification { return tree.Classify(s.tree) }

// Record truncates the history after the current index and appends the
// current tree as the newest snapshot.
func (s *Store) Record() {
	snap := snapshot{tree: s.tree, text: tree.Format(s.tree)}
	s.history = append(s.history[:min(s.index+1, len(s.history))], snap)
	if s.limit > 0 && len(s.history) > s.limit {
		n := copy(s.history, s.history[len(s.history)-s.limit:])
		clear(s.history[n:])
		s.history = s.history[:n]
	}
	s.index = len(s.history) - 1
}

// Undo moves one snapshot back and restores it. At the oldest snapshot it
// does nothing and returns false.
func (s *Store) Undo() bool {
	return s.move("undo", -1)
}

// Redo moves one snapshot forward and restores it. At the newest snapshot it
// does nothing and returns false.
func (s *Store) Redo() bool {
	return s.move("redo", +1)
}

func (s *Store) move(op string, delta int) bool {
	next := s.index + delta
	if next < 0 || next >= len(s.history) {
		s.logger.Debug("history boundary", "op", op, "index", s.index)
		observability.Store().OnHistory(op, false)
		return false
	}
	s.index = next
	s.tree = s.history[next].tree
	s.logger.Debug("history", "op", op, "index", s.index, "tree", s.history[next].text)
	observability.Store().OnHistory(op, true)
	return true
}
