package driving

import (
	"context"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
)

// ChatUpdate notifies a consumer that the current session changed
// during an asynchronous match operation. The consumer re-renders from
// the session snapshot; the update itself carries only control flow.
type ChatUpdate struct {
	// Candidates is set when a match produced multiple options and the
	// user must choose. Empty when a single match was auto-selected.
	Candidates []domain.TemplateMatch

	// QuestionsReady is set once the question set for an auto-selected
	// template has been fetched.
	QuestionsReady bool

	// Done marks the final update for the operation.
	Done bool

	// Err is set on the final update when the operation failed.
	Err error
}

// ChatService manages the current chat session, its transcript, and
// the match/questions/generate workflow.
//
// At most one session is current at a time; switching replaces all
// derived state wholesale from the stored snapshot.
type ChatService interface {
	// Current returns the current session, or nil before the first
	// session is created.
	Current() *domain.ChatSession

	// NewSession makes a fresh session current. If the prior session
	// has messages, its snapshot is persisted first.
	NewSession(ctx context.Context) (*domain.ChatSession, error)

	// Switch loads a stored session and makes it current, replacing
	// all derived state.
	Switch(ctx context.Context, id string) (*domain.ChatSession, error)

	// Sessions lists stored sessions, newest first.
	Sessions(ctx context.Context) ([]domain.ChatSession, error)

	// DeleteSession removes a stored session. Deleting the current
	// session leaves an empty current session behind.
	DeleteSession(ctx context.Context, id string) error

	// SubmitQuery appends the user query to the transcript and starts
	// a streaming template match. Progress is rendered into a single
	// evolving assistant message. Returns domain.ErrMatchInProgress if
	// a match is already running.
	//
	// The returned channel closes after the final update. Cancel the
	// context to abort the stream early.
	SubmitQuery(ctx context.Context, query string) (<-chan ChatUpdate, error)

	// SelectTemplate picks a match candidate for the current session
	// and fetches its question set.
	SelectTemplate(ctx context.Context, templateID, title string) error

	// SetAnswer records an answer for a question key. Setting a value
	// clears the key's prefilled flag.
	SetAnswer(ctx context.Context, key string, value any) error

	// ClearAnswer removes an answer and its prefilled flag.
	ClearAnswer(ctx context.Context, key string) error

	// Generate validates the collected answers and requests a draft.
	// On failure, previously answered questions are left intact.
	Generate(ctx context.Context) (*domain.Draft, error)
}
