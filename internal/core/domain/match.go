package domain

// MatchStatus is a status event kind on the streaming match endpoint.
//
// The vocabulary below is what the backend currently emits. There is no
// formal protocol document for it, so unknown statuses are delivered to
// the consumer and rendered verbatim rather than dropped.
type MatchStatus string

const (
	// StatusSearching indicates the backend is searching its library.
	StatusSearching MatchStatus = "searching"

	// StatusSearchingWeb indicates the backend widened to a web search.
	StatusSearchingWeb MatchStatus = "searching_web"

	// StatusSuccess is terminal and carries the match payload.
	StatusSuccess MatchStatus = "success"

	// StatusError is terminal and carries an error message.
	StatusError MatchStatus = "error"

	// StatusNoTemplates is terminal: nothing matched.
	StatusNoTemplates MatchStatus = "no_templates"
)

// Known reports whether the status belongs to the known vocabulary.
func (s MatchStatus) Known() bool {
	switch s {
	case StatusSearching, StatusSearchingWeb, StatusSuccess, StatusError, StatusNoTemplates:
		return true
	}
	return false
}

// Terminal reports whether the status ends the stream.
func (s MatchStatus) Terminal() bool {
	switch s {
	case StatusSuccess, StatusError, StatusNoTemplates:
		return true
	}
	return false
}

// Progress returns the human-readable status line for a non-terminal
// status, used for the evolving transcript message.
func (s MatchStatus) Progress() string {
	switch s {
	case StatusSearching:
		return "Searching template library..."
	case StatusSearchingWeb:
		return "Searching the web for a matching template..."
	}
	return string(s)
}

// MatchEvent is one decoded event from the match status stream.
type MatchEvent struct {
	Status MatchStatus `json:"status"`

	// Match is the top candidate, set on StatusSuccess.
	Match *TemplateMatch `json:"match,omitempty"`

	// Alternatives are further candidates, set on StatusSuccess.
	Alternatives []TemplateMatch `json:"alternatives,omitempty"`

	// Message carries detail on StatusError.
	Message string `json:"message,omitempty"`
}
