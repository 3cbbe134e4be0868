package driven

import (
	"context"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
)

// SessionStore persists chat session history locally. The full session
// snapshot is written on every mutation; writes are last-writer-wins
// with no cross-process coordination.
type SessionStore interface {
	// Save upserts a session snapshot.
	Save(ctx context.Context, session *domain.ChatSession) error

	// Get retrieves a session by ID. Returns domain.ErrNotFound when
	// the session does not exist.
	Get(ctx context.Context, id string) (*domain.ChatSession, error)

	// List returns all sessions ordered by update time, newest first.
	List(ctx context.Context) ([]domain.ChatSession, error)

	// Delete removes a session. Deleting a missing session is not an
	// error.
	Delete(ctx context.Context, id string) error

	// Close releases the store.
	Close() error
}
