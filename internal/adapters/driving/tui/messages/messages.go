// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewChat is the conversation view where queries are typed.
	ViewChat ViewType = iota
	// ViewQuestions is the answer form for the selected template.
	ViewQuestions
	// ViewDraft shows the generated draft.
	ViewDraft
	// ViewSessions lists stored chat sessions.
	ViewSessions
	// ViewTemplates lists the backend template library.
	ViewTemplates
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewChat:
		return "chat"
	case ViewQuestions:
		return "questions"
	case ViewDraft:
		return "draft"
	case ViewSessions:
		return "sessions"
	case ViewTemplates:
		return "templates"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// MatchProgressed carries one update from an in-flight template match.
// The transcript itself lives on the session; the message signals that a
// re-render is due and carries the control-flow payload.
type MatchProgressed struct {
	// Candidates is non-empty when the user must pick between matches.
	Candidates []domain.TemplateMatch

	// QuestionsReady is set once questions for an auto-selected
	// template have been fetched.
	QuestionsReady bool

	// Done marks the final update for this match.
	Done bool

	Err error

	// Updates is the remaining update stream. Nil once Done is set.
	Updates <-chan driving.ChatUpdate
}

// TemplateSelected signals a match candidate was chosen and its
// questions fetched.
type TemplateSelected struct {
	TemplateID string
	Title      string
	Err        error
}

// AnswerSubmitted signals an answer was recorded (or rejected).
type AnswerSubmitted struct {
	Key string
	Err error
}

// AnswerCleared signals an answer was removed.
type AnswerCleared struct {
	Key string
	Err error
}

// DraftGenerated carries the result of draft generation.
type DraftGenerated struct {
	Draft *domain.Draft
	Err   error
}

// DraftSaved signals the draft was written to a local file.
type DraftSaved struct {
	Path string
	Err  error
}

// SessionsLoaded carries the list of stored sessions.
type SessionsLoaded struct {
	Sessions []domain.ChatSession
	Err      error
}

// SessionSwitched signals a session became current.
type SessionSwitched struct {
	Session *domain.ChatSession
	Err     error
}

// SessionDeleted signals a stored session was removed.
type SessionDeleted struct {
	ID  string
	Err error
}

// TemplatesLoaded carries one page of the template library.
type TemplatesLoaded struct {
	Page *domain.TemplatePage
	Err  error
}

// TemplateDetailLoaded carries full detail for one template.
type TemplateDetailLoaded struct {
	Template *domain.Template
	Err      error
}

// TemplateDeleted signals a template was removed from the backend.
type TemplateDeleted struct {
	ID  string
	Err error
}

// UploadCompleted carries the result of a document upload started from
// the chat input.
type UploadCompleted struct {
	Result *domain.UploadResult
	Err    error
}
