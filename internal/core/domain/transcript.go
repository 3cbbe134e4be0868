package domain

import "time"

// MessageOpKind discriminates transcript operations.
type MessageOpKind int

const (
	// OpAppend adds a message to the end of the transcript.
	OpAppend MessageOpKind = iota

	// OpReplaceLast overwrites the last message, keeping its ID and
	// timestamp. Used to replace an in-progress status line with its
	// final content.
	OpReplaceLast

	// OpExtendLast concatenates text onto the last message's content.
	// Used for progressive status updates rendered as one evolving
	// assistant message.
	OpExtendLast
)

// MessageOp is a tagged transcript operation. Construct with Append,
// ReplaceLast, or ExtendLast and apply with ChatSession.Apply.
type MessageOp struct {
	Kind    MessageOpKind
	Message Message
	Text    string
}

// Append returns an operation that appends msg to the transcript.
func Append(msg Message) MessageOp {
	return MessageOp{Kind: OpAppend, Message: msg}
}

// ReplaceLast returns an operation that replaces the last message's
// content and metadata with those of msg.
func ReplaceLast(msg Message) MessageOp {
	return MessageOp{Kind: OpReplaceLast, Message: msg}
}

// ExtendLast returns an operation that appends text to the last
// message's content, separated by a newline.
func ExtendLast(text string) MessageOp {
	return MessageOp{Kind: OpExtendLast, Text: text}
}

// Apply mutates the transcript with the given operation and refreshes
// the session's derived fields.
//
// ReplaceLast and ExtendLast degrade to a plain append on an empty
// transcript, so applying any operation to a fresh session is safe.
func (s *ChatSession) Apply(op MessageOp) {
	switch op.Kind {
	case OpAppend:
		s.Messages = append(s.Messages, op.Message)

	case OpReplaceLast:
		if len(s.Messages) == 0 {
			s.Messages = append(s.Messages, op.Message)
			break
		}
		last := &s.Messages[len(s.Messages)-1]
		last.Content = op.Message.Content
		last.Meta = op.Message.Meta
		last.Role = op.Message.Role
		last.Timestamp = time.Now().UTC()

	case OpExtendLast:
		if len(s.Messages) == 0 {
			s.Messages = append(s.Messages, NewMessage(RoleAssistant, op.Text))
			break
		}
		last := &s.Messages[len(s.Messages)-1]
		if last.Content == "" {
			last.Content = op.Text
		} else {
			last.Content += "\n" + op.Text
		}
		last.Timestamp = time.Now().UTC()
	}

	s.Touch()
}
