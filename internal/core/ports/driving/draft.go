package driving

import (
	"context"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
)

// DraftService exposes the question and draft endpoints outside of a
// chat session, for one-shot CLI and MCP use.
type DraftService interface {
	// Match performs a synchronous template match.
	Match(ctx context.Context, query string) (*domain.MatchResult, error)

	// MatchEvents starts a streaming template match and returns the
	// decoded status events. The channel closes after the terminal
	// event; a stream failure surfaces as a final error-status event.
	// Cancel the context to abort early.
	MatchEvents(ctx context.Context, query string) (<-chan domain.MatchEvent, error)

	// Questions fetches the question set for a template.
	Questions(ctx context.Context, templateID, query string) (*domain.QuestionSet, error)

	// Generate validates answers against the template's questions and
	// requests a draft.
	Generate(ctx context.Context, templateID string, answers domain.AnswerMap, query string) (*domain.Draft, error)
}
