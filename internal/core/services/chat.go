package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
	"github.com/lexdraft-labs/lexdraft-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// Transcript copy for the states the match flow can end in.
const (
	msgMatchStarting  = "Matching your request to a template..."
	msgNoTemplates    = "No matching template was found. Try rephrasing your request, or upload a document to create one."
	msgMatchFailed    = "Template matching failed"
	msgChooseTemplate = "Found several possible templates. Pick the one that fits best:"
)

// ChatService manages the current chat session and runs the
// match/questions/generate workflow against the backend. All session
// mutations go through this service; the session snapshot returned by
// Current is what drivers render.
type ChatService struct {
	backend driven.BackendClient
	store   driven.SessionStore

	mu       sync.Mutex
	current  *domain.ChatSession
	matching bool
}

// NewChatService creates a new chat service.
func NewChatService(backend driven.BackendClient, store driven.SessionStore) *ChatService {
	return &ChatService{
		backend: backend,
		store:   store,
	}
}

// Current returns the current session, or nil before the first session
// is created.
func (s *ChatService) Current() *domain.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// NewSession makes a fresh session current. The prior session is
// persisted first if it has messages; empty sessions are discarded
// rather than stored.
func (s *ChatService) NewSession(ctx context.Context) (*domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.matching {
		return nil, domain.ErrMatchInProgress
	}

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}

	s.current = domain.NewChatSession()
	logger.Debug("new session %s", s.current.ID)
	return s.current, nil
}

// Switch loads a stored session and makes it current. Every piece of
// derived state, transcript, template, questions, answers and draft,
// is replaced wholesale from the snapshot.
func (s *ChatService) Switch(ctx context.Context, id string) (*domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.matching {
		return nil, domain.ErrMatchInProgress
	}

	loaded, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}

	s.current = loaded
	logger.Debug("switched to session %s", id)
	return s.current, nil
}

// Sessions lists stored sessions, newest first.
func (s *ChatService) Sessions(ctx context.Context) ([]domain.ChatSession, error) {
	return s.store.List(ctx)
}

// DeleteSession removes a stored session. Deleting the current session
// leaves a fresh empty session current.
func (s *ChatService) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.matching {
		return domain.ErrMatchInProgress
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if s.current != nil && s.current.ID == id {
		s.current = domain.NewChatSession()
	}
	return nil
}

// SubmitQuery appends the user query and starts a streaming template
// match. Returns domain.ErrMatchInProgress while a previous match is
// still running. The returned channel closes after the final update.
func (s *ChatService) SubmitQuery(ctx context.Context, query string) (<-chan driving.ChatUpdate, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.matching {
		return nil, domain.ErrMatchInProgress
	}
	if s.current == nil {
		s.current = domain.NewChatSession()
	}

	s.current.Apply(domain.Append(domain.NewMessage(domain.RoleUser, query)))
	s.current.Apply(domain.Append(domain.NewMessage(domain.RoleAssistant, msgMatchStarting)))
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}

	stream, err := s.backend.MatchStream(ctx, query)
	if err != nil {
		s.current.Apply(domain.ReplaceLast(domain.NewMessage(domain.RoleAssistant, matchFailureText(err))))
		if perr := s.persistLocked(ctx); perr != nil {
			logger.Error("persist session: %v", perr)
		}
		return nil, err
	}

	s.matching = true
	updates := make(chan driving.ChatUpdate, 8)
	go s.consumeMatch(ctx, query, stream, updates)
	return updates, nil
}

// consumeMatch drains the match stream, evolving the last assistant
// message as statuses arrive, and finishes with a terminal update.
func (s *ChatService) consumeMatch(ctx context.Context, query string, stream driven.MatchStream, updates chan<- driving.ChatUpdate) {
	defer close(updates)

	final := driving.ChatUpdate{Done: true}

	for ev := range stream.Events() {
		switch {
		case ev.Status == domain.StatusSuccess:
			result := domain.MatchResult{Top: ev.Match, Alternatives: ev.Alternatives, Found: ev.Match != nil}
			final = s.applySuccess(ctx, query, result)

		case ev.Status == domain.StatusNoTemplates:
			s.extendStatus(ctx, msgNoTemplates)

		case ev.Status == domain.StatusError:
			s.extendStatus(ctx, matchFailureMessage(ev.Message))
			final.Err = fmt.Errorf("%s: %s", msgMatchFailed, ev.Message)

		default:
			// Non-terminal, including statuses outside the known
			// vocabulary, which render verbatim. Stages accumulate on
			// the evolving message so the search narrative stays
			// visible.
			s.extendStatus(ctx, ev.Status.Progress())
			updates <- driving.ChatUpdate{}
		}
	}

	if err := stream.Err(); err != nil {
		s.extendStatus(ctx, matchFailureText(err))
		final = driving.ChatUpdate{Done: true, Err: err}
	}

	s.mu.Lock()
	s.matching = false
	s.mu.Unlock()

	updates <- final
}

// applySuccess handles a terminal success event: a single candidate is
// selected automatically and its questions fetched; multiple candidates
// are presented for the user to choose from.
func (s *ChatService) applySuccess(ctx context.Context, query string, result domain.MatchResult) driving.ChatUpdate {
	candidates := result.Candidates()
	if len(candidates) == 0 {
		s.extendStatus(ctx, msgNoTemplates)
		return driving.ChatUpdate{Done: true}
	}

	if len(candidates) > 1 {
		s.replaceStatus(ctx, msgChooseTemplate, &domain.MessageMeta{Matches: candidates})
		return driving.ChatUpdate{Done: true, Candidates: candidates}
	}

	top := candidates[0]
	s.replaceStatus(ctx, fmt.Sprintf("Matched template: %s (%.0f%% confidence)", top.Title, top.Confidence*100),
		&domain.MessageMeta{Matches: candidates})

	if err := s.fetchQuestions(ctx, query, top.TemplateID, top.Title); err != nil {
		s.appendStatus(ctx, fmt.Sprintf("Could not fetch questions for %s: %v", top.Title, err))
		return driving.ChatUpdate{Done: true, Err: err}
	}
	return driving.ChatUpdate{Done: true, QuestionsReady: true}
}

// SelectTemplate picks a match candidate for the current session and
// fetches its question set.
func (s *ChatService) SelectTemplate(ctx context.Context, templateID, title string) error {
	if templateID == "" {
		return fmt.Errorf("%w: template id is empty", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if current == nil {
		return domain.ErrNoCurrentSession
	}

	query := lastUserQuery(current)
	if err := s.fetchQuestions(ctx, query, templateID, title); err != nil {
		return err
	}
	return nil
}

// fetchQuestions selects the template on the current session, loads its
// question set, applies backend-prefilled answers and appends the
// questions message.
func (s *ChatService) fetchQuestions(ctx context.Context, query, templateID, title string) error {
	qs, err := s.backend.GetQuestions(ctx, templateID, query)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.ErrNoCurrentSession
	}

	s.current.TemplateID = templateID
	s.current.TemplateTitle = title
	if s.current.TemplateTitle == "" {
		s.current.TemplateTitle = qs.TemplateTitle
	}
	s.current.Questions = qs.Questions
	s.current.Draft = nil

	// Prefilled answers replace any previous answers for this session.
	s.current.Answers = domain.AnswerMap{}
	s.current.PrefilledKeys = nil
	for k, v := range qs.Prefilled {
		s.current.Answers[k] = v
		s.current.PrefilledKeys = append(s.current.PrefilledKeys, k)
	}

	msg := domain.NewMessage(domain.RoleAssistant, fmt.Sprintf(
		"I need a few details to draft %s. %d question(s) to answer.",
		s.current.TemplateTitle, len(qs.Questions)))
	msg.Meta = &domain.MessageMeta{Questions: qs.Questions, Prefilled: qs.Prefilled}
	s.current.Apply(domain.Append(msg))
	return s.persistLocked(ctx)
}

// SetAnswer records an answer for a question key. Setting a value
// clears the key's prefilled flag so the UI stops marking it for
// review.
func (s *ChatService) SetAnswer(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.ErrNoCurrentSession
	}
	if s.current.TemplateID == "" {
		return domain.ErrNoTemplateSelected
	}

	q, ok := findQuestion(s.current.Questions, key)
	if !ok {
		return fmt.Errorf("%w: question %q", domain.ErrNotFound, key)
	}
	if err := q.ValidateAnswer(value); err != nil {
		return err
	}

	if s.current.Answers == nil {
		s.current.Answers = domain.AnswerMap{}
	}
	s.current.Answers[key] = value
	s.current.ClearPrefilled(key)
	s.current.Touch()
	return s.persistLocked(ctx)
}

// ClearAnswer removes an answer and its prefilled flag.
func (s *ChatService) ClearAnswer(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.ErrNoCurrentSession
	}

	delete(s.current.Answers, key)
	s.current.ClearPrefilled(key)
	s.current.Touch()
	return s.persistLocked(ctx)
}

// Generate validates the collected answers and requests a draft. On
// failure the session keeps its questions and answers so the user can
// correct and retry.
func (s *ChatService) Generate(ctx context.Context) (*domain.Draft, error) {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		return nil, domain.ErrNoCurrentSession
	}
	if current.TemplateID == "" {
		return nil, domain.ErrNoTemplateSelected
	}
	if err := domain.ValidateAnswers(current.Questions, current.Answers); err != nil {
		return nil, err
	}

	draft, err := s.backend.GenerateDraft(ctx, current.TemplateID, current.Answers.Clone(), lastUserQuery(current))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Draft = draft

	content := fmt.Sprintf("Draft generated: %s", s.current.TemplateTitle)
	if draft.HasMissing {
		content = fmt.Sprintf("%s (missing: %v)", content, draft.MissingVariables)
	}
	msg := domain.NewMessage(domain.RoleAssistant, content)
	msg.Meta = &domain.MessageMeta{Draft: draft}
	s.current.Apply(domain.Append(msg))

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return draft, nil
}

// replaceStatus swaps the last assistant message for the given content,
// persisting the session.
func (s *ChatService) replaceStatus(ctx context.Context, content string, meta *domain.MessageMeta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}

	msg := domain.NewMessage(domain.RoleAssistant, content)
	msg.Meta = meta
	s.current.Apply(domain.ReplaceLast(msg))
	if err := s.persistLocked(ctx); err != nil {
		logger.Error("persist session: %v", err)
	}
}

// extendStatus concatenates a status line onto the last assistant
// message, persisting the session.
func (s *ChatService) extendStatus(ctx context.Context, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}

	s.current.Apply(domain.ExtendLast(content))
	if err := s.persistLocked(ctx); err != nil {
		logger.Error("persist session: %v", err)
	}
}

// appendStatus appends an assistant message, persisting the session.
func (s *ChatService) appendStatus(ctx context.Context, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}

	s.current.Apply(domain.Append(domain.NewMessage(domain.RoleAssistant, content)))
	if err := s.persistLocked(ctx); err != nil {
		logger.Error("persist session: %v", err)
	}
}

// persistLocked saves the current session if it has content worth
// keeping. Caller must hold s.mu.
func (s *ChatService) persistLocked(ctx context.Context) error {
	if s.current == nil || !s.current.HasMessages() {
		return nil
	}
	s.current.Touch()
	return s.store.Save(ctx, s.current)
}

// matchFailureText renders a stream failure for the transcript.
func matchFailureText(err error) string {
	return fmt.Sprintf("%s: %v", msgMatchFailed, err)
}

// matchFailureMessage renders a backend error event for the transcript.
// The backend message is shown verbatim when present.
func matchFailureMessage(message string) string {
	if message == "" {
		return msgMatchFailed
	}
	return fmt.Sprintf("%s: %s", msgMatchFailed, message)
}

// lastUserQuery returns the most recent user message content, used as
// context for questions and generation requests.
func lastUserQuery(s *domain.ChatSession) string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == domain.RoleUser {
			return s.Messages[i].Content
		}
	}
	return ""
}

// findQuestion locates a question by key.
func findQuestion(questions []domain.Question, key string) (domain.Question, bool) {
	for _, q := range questions {
		if q.Key == key {
			return q, true
		}
	}
	return domain.Question{}, false
}
