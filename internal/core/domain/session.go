package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a transcript message.
type Role string

const (
	// RoleUser is a message typed by the user.
	RoleUser Role = "user"

	// RoleAssistant is a message produced on behalf of the backend.
	RoleAssistant Role = "assistant"

	// RoleSystem is an informational message from the client itself.
	RoleSystem Role = "system"
)

// MessageMeta carries optional structured payloads attached to a message.
// A message holds at most one of these at a time in practice, but the
// struct keeps them together so the transcript can be rendered from the
// message list alone.
type MessageMeta struct {
	// Matches are template candidates attached to a match result message.
	Matches []TemplateMatch `json:"matches,omitempty"`

	// Questions is a question set attached after template selection.
	Questions []Question `json:"questions,omitempty"`

	// Draft is a generated draft attached to a completion message.
	Draft *Draft `json:"draft,omitempty"`

	// Prefilled is the answer subset the backend inferred from the query.
	Prefilled AnswerMap `json:"prefilled,omitempty"`
}

// Message is a single entry in a chat session transcript.
// Messages are immutable once appended, except through the ReplaceLast
// and ExtendLast operations used to evolve an in-progress status line.
type Message struct {
	ID        string       `json:"id"`
	Role      Role         `json:"role"`
	Content   string       `json:"content"`
	Timestamp time.Time    `json:"timestamp"`
	Meta      *MessageMeta `json:"meta,omitempty"`
}

// NewMessage creates a message with a fresh ID and the current time.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// ChatSession is a conversation transcript plus the state derived from
// it: the selected template, the collected answers, and the generated
// draft. Sessions are persisted on every mutation and never expire.
type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// TemplateID is the selected template, empty until a match is
	// accepted or a template is picked manually.
	TemplateID    string `json:"template_id,omitempty"`
	TemplateTitle string `json:"template_title,omitempty"`

	// Questions is the question set for the selected template.
	Questions []Question `json:"questions,omitempty"`

	// Answers maps question keys to user-supplied values.
	Answers AnswerMap `json:"answers,omitempty"`

	// PrefilledKeys marks answers the backend pre-populated so the UI
	// can flag them for review or clearing.
	PrefilledKeys []string `json:"prefilled_keys,omitempty"`

	// Draft is the generated draft, nil until generation succeeds.
	Draft *Draft `json:"draft,omitempty"`
}

// NewSessionID returns a time-prefixed identifier with a random suffix.
// The time prefix keeps identifiers roughly sortable by creation order.
func NewSessionID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// NewChatSession creates an empty session with a fresh identifier.
func NewChatSession() *ChatSession {
	now := time.Now().UTC()
	return &ChatSession{
		ID:        NewSessionID(),
		Title:     DefaultSessionTitle,
		Answers:   AnswerMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultSessionTitle is used until the session has a user message.
const DefaultSessionTitle = "New conversation"

// DeriveTitle returns the first user message verbatim, or the default
// title when the transcript has no user message yet.
func (s *ChatSession) DeriveTitle() string {
	for i := range s.Messages {
		if s.Messages[i].Role == RoleUser {
			return s.Messages[i].Content
		}
	}
	return DefaultSessionTitle
}

// Touch refreshes the derived fields after a mutation: title and
// updated-at. Callers persist the session afterwards.
func (s *ChatSession) Touch() {
	s.Title = s.DeriveTitle()
	s.UpdatedAt = time.Now().UTC()
}

// HasMessages reports whether the transcript has any entries.
func (s *ChatSession) HasMessages() bool {
	return len(s.Messages) > 0
}

// LastMessage returns the most recent message, or nil on an empty
// transcript.
func (s *ChatSession) LastMessage() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}

// IsPrefilled reports whether the given answer key was pre-populated by
// the backend.
func (s *ChatSession) IsPrefilled(key string) bool {
	for _, k := range s.PrefilledKeys {
		if k == key {
			return true
		}
	}
	return false
}

// ClearPrefilled removes the prefilled flag for a key. Called when the
// user edits or clears a pre-populated answer.
func (s *ChatSession) ClearPrefilled(key string) {
	for i, k := range s.PrefilledKeys {
		if k == key {
			s.PrefilledKeys = append(s.PrefilledKeys[:i], s.PrefilledKeys[i+1:]...)
			return
		}
	}
}
