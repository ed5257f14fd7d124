// Package session keeps the editing sessions served by the HTTP API.
//
// A [Session] wraps one [store.Store] behind a mutex; it is the only place
// where a store is shared between goroutines. A [Registry] maps session IDs
// (random UUIDs) to sessions, expires idle ones, and caps how many exist.
//
// # Usage
//
//	reg := session.NewRegistry(session.Options{TTL: time.Hour})
//
//	sess, err := reg.Create(ctx, tree.Leaf{})
//	if err != nil {
//	    return err
//	}
//
//	err = sess.Do(func(s *store.Store) error {
//	    return s.Add(nil)
//	})
//
// Sessions live in memory only and are lost on restart.
package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/fractal/pkg/errors"
	"github.com/matzehuels/fractal/pkg/observability"
	"github.com/matzehuels/fractal/pkg/store"
	"github.com/matzehuels/fractal/pkg/tree"
)

// Default limits.
const (
	// DefaultTTL is how long a session survives without being used.
	DefaultTTL = time.Hour

	// DefaultMaxSessions caps the number of live sessions.
	DefaultMaxSessions = 1000
)

// Session is one editing session.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	store    *store.Store
	lastUsed time.Time
	clock    func() time.Time
}

// Do runs fn with exclusive access to the session's store.
func (s *Session) Do(fn func(*store.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = s.clock()
	return fn(s.store)
}

// LastUsed returns the time of the most recent Do call, or CreatedAt.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// IsExpired reports whether the session has been idle longer than ttl at
// time now. A non-positive ttl never expires.
func (s *Session) IsExpired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.LastUsed()) > ttl
}

// Options configures a Registry.
type Options struct {
	TTL          time.Duration  // idle lifetime; 0 disables expiry
	MaxSessions  int            // 0 means unlimited
	StoreOptions []store.Option // applied to every new store
	Logger       *log.Logger
}

// Registry holds the live sessions. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     Options
	logger   *log.Logger
	now      func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{
		sessions: make(map[string]*Session),
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// Create starts a session whose store holds initial. Expired sessions are
// dropped first; if the registry is still full it fails with LIMIT_EXCEEDED.
func (r *Registry) Create(ctx context.Context, initial tree.Tree) (*Session, error) {
	if initial == nil {
		initial = tree.Leaf{}
	}
	opts := append([]store.Option{
		store.WithTree(initial),
		store.WithLogger(r.logger),
	}, r.opts.StoreOptions...)
	st, err := store.New(opts...)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cleanupLocked()
	if r.opts.MaxSessions > 0 && len(r.sessions) >= r.opts.MaxSessions {
		r.mu.Unlock()
		return nil, errors.New(errors.ErrCodeLimitExceeded, "too many sessions (limit %d)", r.opts.MaxSessions)
	}
	now := r.now()
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		store:     st,
		lastUsed:  now,
		clock:     r.now,
	}
	r.sessions[sess.ID] = sess
	count := len(r.sessions)
	r.mu.Unlock()

	r.logger.Debug("session created", "id", sess.ID, "tree", tree.Format(initial))
	observability.Server().OnSessions(ctx, count)
	return sess, nil
}

// Get returns the session with the given ID. Unknown, malformed, and
// expired IDs fail with SESSION_NOT_FOUND.
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}

	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	if sess.IsExpired(r.now(), r.opts.TTL) {
		r.remove(ctx, id)
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q expired", id)
	}
	return sess, nil
}

// Delete ends a session. Deleting an unknown session fails with
// SESSION_NOT_FOUND.
func (r *Registry) Delete(ctx context.Context, id string) error {
	if !r.remove(ctx, id) {
		return errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	r.logger.Debug("session deleted", "id", id)
	return nil
}

func (r *Registry) remove(ctx context.Context, id string) bool {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	count := len(r.sessions)
	r.mu.Unlock()

	if ok {
		observability.Server().OnSessions(ctx, count)
	}
	return ok
}

// Len returns the number of sessions, expired ones included until the next
// cleanup.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Cleanup removes expired sessions and returns how many it removed.
func (r *Registry) Cleanup(ctx context.Context) int {
	r.mu.Lock()
	n := r.cleanupLocked()
	count := len(r.sessions)
	r.mu.Unlock()

	if n > 0 {
		r.logger.Debug("expired sessions removed", "count", n)
		observability.Server().OnSessions(ctx, count)
	}
	return n
}

func (r *Registry) cleanupLocked() int {
	if r.opts.TTL <= 0 {
		return 0
	}
	now := r.now()
	var n int
	for id, sess := range r.sessions {
		if sess.IsExpired(now, r.opts.TTL) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (r *Registry) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Cleanup(ctx)
		}
	}
}
