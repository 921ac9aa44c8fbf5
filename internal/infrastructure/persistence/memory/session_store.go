// Package memory implements the default in-process session store.
// Sessions live for the process lifetime only; each user's slot is guarded
// by its own mutex so events for the same user serialize while different
// users proceed concurrently.
package memory

import (
	"context"
	"sync"

	"github.com/kayrademirkan/mebtg/internal/domain/session"
	"github.com/kayrademirkan/mebtg/internal/domain/shared"
)

// SessionStore keeps one entry per user. The outer map is guarded by mu;
// each entry carries its own lock for the per-user critical section.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[int64]*entry
}

type entry struct {
	mu   sync.Mutex
	sess *session.Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[int64]*entry),
	}
}

// entryFor returns the user's entry, creating the slot on first touch.
func (s *SessionStore) entryFor(userID int64) *entry {
	s.mu.RLock()
	e, ok := s.entries[userID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[userID]; ok {
		return e
	}
	e = &entry{}
	s.entries[userID] = e
	return e
}

// Get returns a copy of the user's session.
func (s *SessionStore) Get(ctx context.Context, userID int64) (session.Session, error) {
	if err := ctx.Err(); err != nil {
		return session.Session{}, err
	}

	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess == nil {
		return session.Session{}, shared.ErrSessionNotFound
	}
	return *e.sess, nil
}

// Update runs fn while holding the user's slot exclusively. The function
// receives a private copy; the store keeps its own record, so callers cannot
// leak aliased state across the critical section.
func (s *SessionStore) Update(ctx context.Context, userID int64, fn session.UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	var current *session.Session
	if e.sess != nil {
		copied := *e.sess
		current = &copied
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next != nil {
		copied := *next
		e.sess = &copied
	}
	return nil
}

// Len returns the number of tracked users, for stats logging.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
