package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/fractal/pkg/buildinfo"
	"github.com/matzehuels/fractal/pkg/cache"
	"github.com/matzehuels/fractal/pkg/errors"
	"github.com/matzehuels/fractal/pkg/render"
	"github.com/matzehuels/fractal/pkg/render/nodelink"
	"github.com/matzehuels/fractal/pkg/store"
	"github.com/matzehuels/fractal/pkg/tree"
)

// State is the JSON view of a session.
type State struct {
	ID             string              `json:"id"`
	Tree           string              `json:"tree"`
	JSON           json.RawMessage     `json:"json"`
	History        []string            `json:"history"`
	Index          int                 `json:"index"`
	CanUndo        bool                `json:"can_undo"`
	CanRedo        bool                `json:"can_redo"`
	Classification tree.Classification `json:"classification"`

	// Moved is set by undo and redo: false means the history was already
	// at its end and nothing changed.
	Moved *bool `json:"moved,omitempty"`
}

func newState(id string, st *store.Store) State {
	t := st.Tree()
	return State{
		ID:             id,
		Tree:           tree.Format(t),
		JSON:           json.RawMessage(tree.FormatJSON(t)),
		History:        st.History(),
		Index:          st.Index(),
		CanUndo:        st.CanUndo(),
		CanRedo:        st.CanRedo(),
		Classification: st.Classify(),
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type (
	pathEditFunc func(*store.Store, tree.Path, ...store.EditOption) error
	editFunc     func(*store.Store, ...store.EditOption) error
)

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	text, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	initial := s.initial
	if strings.TrimSpace(text) != "" {
		if initial, err = tree.Parse(text); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	sess, err := s.sessions.Create(r.Context(), initial)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	state, err := s.update(r, sess.ID, func(*store.Store) error { return nil })
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+sess.ID)
	s.writeJSON(w, http.StatusCreated, state)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, func(*store.Store) error { return nil })
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) pathEdit(fn pathEditFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := tree.ParsePath(r.URL.Query().Get("path"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.respond(w, r, func(st *store.Store) error { return fn(st, p) })
	}
}

func (s *Server) edit(fn editFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, r, func(st *store.Store) error { return fn(st) })
	}
}

func (s *Server) history(move func(*store.Store) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var moved bool
		state, err := s.update(r, chi.URLParam(r, "id"), func(st *store.Store) error {
			moved = move(st)
			return nil
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		state.Moved = &moved
		s.writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) {
	text, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, func(st *store.Store) error { return st.Load(text) })
}

func (s *Server) diagramHandler(svg bool) http.HandlerFunc {
	format, contentType := render.FormatDOT, "text/vnd.graphviz; charset=utf-8"
	if svg {
		format, contentType = render.FormatSVG, "image/svg+xml"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		var t tree.Tree
		_ = sess.Do(func(st *store.Store) error {
			t = st.Tree()
			return nil
		})

		opts := s.diagram
		if r.URL.Query().Get("detailed") == "true" {
			opts.Detailed = true
		}
		out, hit, err := s.renderDiagram(r, t, format, opts)
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format))
			return
		}
		if format != render.FormatDOT {
			status := "miss"
			if hit {
				status = "hit"
			}
			w.Header().Set("X-Cache", status)
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	}
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

// renderDiagram renders t, going through the diagram cache for every
// format except DOT.
func (s *Server) renderDiagram(r *http.Request, t tree.Tree, f render.Format, opts nodelink.Options) ([]byte, bool, error) {
	if f == render.FormatDOT {
		return []byte(nodelink.ToDOT(t, opts)), false, nil
	}
	key := cache.DiagramKey(tree.Format(t), string(f), opts)
	return cache.Fetch(r.Context(), s.cache, key, s.ttl, func() ([]byte, error) {
		return nodelink.Render(r.Context(), t, f, opts)
	})
}

func (s *Server) classify(w http.ResponseWriter, r *http.Request) {
	t, err := tree.Parse(r.URL.Query().Get("tree"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tree.Classify(t))
}

// respond applies fn to the session named in the URL and writes the
// resulting state.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, fn func(*store.Store) error) {
	state, err := s.update(r, chi.URLParam(r, "id"), fn)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

// update runs fn under the session lock and snapshots the state in the same
// critical section.
func (s *Server) update(r *http.Request, id string, fn func(*store.Store) error) (State, error) {
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		return State{}, err
	}
	var state State
	err = sess.Do(func(st *store.Store) error {
		if err := fn(st); err != nil {
			return err
		}
		state = newState(sess.ID, st)
		return nil
	})
	return state, err
}

func readBody(w http.ResponseWriter, r *http.Request) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, errors.MaxTreeTextLength))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return string(body), nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidPath, errors.ErrCodeParseFailure, errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	s.writeJSON(w, status, ErrorResponse{Code: code, Message: errors.UserMessage(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}
