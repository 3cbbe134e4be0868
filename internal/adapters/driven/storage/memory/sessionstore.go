// Package memory provides in-memory implementations of the driven
// storage ports, for tests and ephemeral runs.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// Snapshots are deep-copied through JSON so callers cannot mutate
// stored state, matching the isolation of a persisted store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.ChatSession
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*domain.ChatSession),
	}
}

// Save upserts a session snapshot.
func (s *SessionStore) Save(_ context.Context, session *domain.ChatSession) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidInput
	}

	snapshot, err := cloneSession(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = snapshot
	return nil
}

// Get retrieves a session by ID.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneSession(session)
}

// List returns all sessions, newest first by update time.
func (s *SessionStore) List(_ context.Context) ([]domain.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ChatSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		snapshot, err := cloneSession(session)
		if err != nil {
			return nil, err
		}
		out = append(out, *snapshot)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes a session. Missing sessions are not an error.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *SessionStore) Close() error {
	return nil
}

// cloneSession deep-copies a session through its JSON encoding.
func cloneSession(session *domain.ChatSession) (*domain.ChatSession, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	var out domain.ChatSession
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
