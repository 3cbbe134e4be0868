package services

import (
	"context"
	"fmt"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// Ensure DraftService implements the interface.
var _ driving.DraftService = (*DraftService)(nil)

// DraftService exposes matching, questions and draft generation for
// one-shot use outside of a chat session.
type DraftService struct {
	backend driven.BackendClient
}

// NewDraftService creates a new draft service.
func NewDraftService(backend driven.BackendClient) *DraftService {
	return &DraftService{backend: backend}
}

// Match performs a synchronous template match.
func (s *DraftService) Match(ctx context.Context, query string) (*domain.MatchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	return s.backend.Match(ctx, query)
}

// MatchEvents starts a streaming template match and forwards its
// decoded events. A stream failure after the connection opened is
// delivered as a final error-status event so consumers have a single
// channel to drain.
func (s *DraftService) MatchEvents(ctx context.Context, query string) (<-chan domain.MatchEvent, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}

	stream, err := s.backend.MatchStream(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make(chan domain.MatchEvent, 8)
	go func() {
		defer close(out)
		for ev := range stream.Events() {
			out <- ev
		}
		if err := stream.Err(); err != nil {
			out <- domain.MatchEvent{Status: domain.StatusError, Message: err.Error()}
		}
	}()
	return out, nil
}

// Questions fetches the question set for a template.
func (s *DraftService) Questions(ctx context.Context, templateID, query string) (*domain.QuestionSet, error) {
	if templateID == "" {
		return nil, fmt.Errorf("%w: template id is empty", domain.ErrInvalidInput)
	}
	return s.backend.GetQuestions(ctx, templateID, query)
}

// Generate validates answers against the template's questions, then
// requests a draft. Validation failures never reach the backend.
func (s *DraftService) Generate(ctx context.Context, templateID string, answers domain.AnswerMap, query string) (*domain.Draft, error) {
	if templateID == "" {
		return nil, fmt.Errorf("%w: template id is empty", domain.ErrInvalidInput)
	}

	qs, err := s.backend.GetQuestions(ctx, templateID, query)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	if err := domain.ValidateAnswers(qs.Questions, answers); err != nil {
		return nil, err
	}

	return s.backend.GenerateDraft(ctx, templateID, answers, query)
}
