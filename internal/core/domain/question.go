package domain

import (
	"fmt"
	"regexp"
)

// QuestionType declares the expected answer type for a question.
type QuestionType string

const (
	TypeString  QuestionType = "string"
	TypeNumber  QuestionType = "number"
	TypeBoolean QuestionType = "boolean"
	TypeDate    QuestionType = "date"
)

// Question is a single variable prompt supplied by the backend for a
// selected template. Questions are read-only on the client.
type Question struct {
	// Key is the template variable name this question fills.
	Key string `json:"key"`

	// Prompt is the question text shown to the user.
	Prompt string `json:"prompt"`

	// Description elaborates on the prompt. Optional.
	Description string `json:"description,omitempty"`

	// Example is a sample answer. Optional.
	Example string `json:"example,omitempty"`

	// Pattern is a regular expression string answers must match. Optional.
	Pattern string `json:"pattern,omitempty"`

	// Enum restricts string answers to a fixed set. Optional.
	Enum []string `json:"enum,omitempty"`

	// Type is the declared answer type. Defaults to string when empty.
	Type QuestionType `json:"type,omitempty"`

	// Required marks the answer as mandatory for draft generation.
	Required bool `json:"required"`
}

// AnswerMap maps question keys to answer values. Values are strings,
// numbers (float64), booleans, or nil, matching their JSON encoding.
type AnswerMap map[string]any

// Clone returns a shallow copy of the map. Values are scalars so a
// shallow copy is a full copy.
func (a AnswerMap) Clone() AnswerMap {
	if a == nil {
		return nil
	}
	out := make(AnswerMap, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// ValidateAnswer checks a single value against the question's declared
// type and constraints. A nil value is valid unless the question is
// required.
func (q Question) ValidateAnswer(value any) error {
	if value == nil {
		if q.Required {
			return fmt.Errorf("%w: %q is required", ErrInvalidInput, q.Key)
		}
		return nil
	}

	switch q.Type {
	case TypeNumber:
		switch value.(type) {
		case float64, int, int64:
		default:
			return fmt.Errorf("%w: %q expects a number", ErrInvalidInput, q.Key)
		}
		return nil

	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: %q expects a boolean", ErrInvalidInput, q.Key)
		}
		return nil
	}

	// String and date answers arrive as strings.
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %q expects a string", ErrInvalidInput, q.Key)
	}
	if q.Required && s == "" {
		return fmt.Errorf("%w: %q is required", ErrInvalidInput, q.Key)
	}

	if q.Pattern != "" {
		re, err := regexp.Compile(q.Pattern)
		if err != nil {
			// A broken server-supplied pattern must not block the user.
			return nil
		}
		if !re.MatchString(s) {
			return fmt.Errorf("%w: %q does not match required format", ErrInvalidInput, q.Key)
		}
	}

	if len(q.Enum) > 0 {
		for _, allowed := range q.Enum {
			if s == allowed {
				return nil
			}
		}
		return fmt.Errorf("%w: %q must be one of %v", ErrInvalidInput, q.Key, q.Enum)
	}

	return nil
}

// ValidateAnswers checks every answer against its question and that all
// required questions are answered. The first violation is returned.
func ValidateAnswers(questions []Question, answers AnswerMap) error {
	for _, q := range questions {
		if err := q.ValidateAnswer(answers[q.Key]); err != nil {
			return err
		}
	}
	return nil
}
