package driven

import (
	"context"
	"io"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
)

// BackendClient wraps the drafting backend's JSON-over-HTTP contract.
// One method per backend operation. Implementations unwrap the uniform
// response envelope: an error envelope, or a null body on an otherwise
// successful call, is returned as an error carrying the backend message
// verbatim.
type BackendClient interface {
	// Upload sends a document (PDF or DOCX, validated by the caller)
	// and returns the stored document plus its extracted template.
	Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*domain.UploadResult, error)

	// ListTemplates returns one page of template summaries.
	ListTemplates(ctx context.Context, skip, limit int) (*domain.TemplatePage, error)

	// GetTemplate returns the full detail for a template.
	GetTemplate(ctx context.Context, id string) (*domain.Template, error)

	// DeleteTemplate removes a template from the backend.
	DeleteTemplate(ctx context.Context, id string) error

	// Match performs a synchronous template match for a free-text query.
	Match(ctx context.Context, query string) (*domain.MatchResult, error)

	// MatchStream starts a streaming match and returns a handle for
	// consuming status events.
	MatchStream(ctx context.Context, query string) (MatchStream, error)

	// GetQuestions returns the question set for a template, with any
	// answers the backend inferred from the query.
	GetQuestions(ctx context.Context, templateID, query string) (*domain.QuestionSet, error)

	// GenerateDraft renders a draft from a template and an answer map.
	GenerateDraft(ctx context.Context, templateID string, answers domain.AnswerMap, query string) (*domain.Draft, error)
}

// MatchStream is a lazy, cancelable sequence of typed match status
// events, decoupling transport framing from status interpretation.
type MatchStream interface {
	// Events returns the event channel. The channel is closed after a
	// terminal event (success, error, no_templates), a stream failure,
	// or cancellation; the underlying connection is released at that
	// point.
	Events() <-chan domain.MatchEvent

	// Err returns the failure that closed the stream, or nil if the
	// stream ended on a terminal event or cancellation. Valid only
	// after Events is closed.
	Err() error

	// Cancel aborts the stream early. Safe to call more than once.
	// After Cancel returns, no further events are delivered.
	Cancel()
}
