package services

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driven"
)

// errNotStubbed is returned by mock methods without a configured stub.
var errNotStubbed = errors.New("not stubbed")

// mockBackend is a function-field test double for driven.BackendClient.
type mockBackend struct {
	uploadFn        func(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*domain.UploadResult, error)
	listTemplatesFn func(ctx context.Context, skip, limit int) (*domain.TemplatePage, error)
	getTemplateFn   func(ctx context.Context, id string) (*domain.Template, error)
	deleteFn        func(ctx context.Context, id string) error
	matchFn         func(ctx context.Context, query string) (*domain.MatchResult, error)
	matchStreamFn   func(ctx context.Context, query string) (driven.MatchStream, error)
	getQuestionsFn  func(ctx context.Context, templateID, query string) (*domain.QuestionSet, error)
	generateFn      func(ctx context.Context, templateID string, answers domain.AnswerMap, query string) (*domain.Draft, error)
}

func (m *mockBackend) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*domain.UploadResult, error) {
	if m.uploadFn == nil {
		return nil, errNotStubbed
	}
	return m.uploadFn(ctx, filename, contentType, size, r)
}

func (m *mockBackend) ListTemplates(ctx context.Context, skip, limit int) (*domain.TemplatePage, error) {
	if m.listTemplatesFn == nil {
		return nil, errNotStubbed
	}
	return m.listTemplatesFn(ctx, skip, limit)
}

func (m *mockBackend) GetTemplate(ctx context.Context, id string) (*domain.Template, error) {
	if m.getTemplateFn == nil {
		return nil, errNotStubbed
	}
	return m.getTemplateFn(ctx, id)
}

func (m *mockBackend) DeleteTemplate(ctx context.Context, id string) error {
	if m.deleteFn == nil {
		return errNotStubbed
	}
	return m.deleteFn(ctx, id)
}

func (m *mockBackend) Match(ctx context.Context, query string) (*domain.MatchResult, error) {
	if m.matchFn == nil {
		return nil, errNotStubbed
	}
	return m.matchFn(ctx, query)
}

func (m *mockBackend) MatchStream(ctx context.Context, query string) (driven.MatchStream, error) {
	if m.matchStreamFn == nil {
		return nil, errNotStubbed
	}
	return m.matchStreamFn(ctx, query)
}

func (m *mockBackend) GetQuestions(ctx context.Context, templateID, query string) (*domain.QuestionSet, error) {
	if m.getQuestionsFn == nil {
		return nil, errNotStubbed
	}
	return m.getQuestionsFn(ctx, templateID, query)
}

func (m *mockBackend) GenerateDraft(ctx context.Context, templateID string, answers domain.AnswerMap, query string) (*domain.Draft, error) {
	if m.generateFn == nil {
		return nil, errNotStubbed
	}
	return m.generateFn(ctx, templateID, answers, query)
}

// fakeStream is a pre-scripted driven.MatchStream.
type fakeStream struct {
	events chan domain.MatchEvent
	err    error
}

// newFakeStream delivers the given events and then closes, reporting
// err afterwards.
func newFakeStream(events []domain.MatchEvent, err error) *fakeStream {
	ch := make(chan domain.MatchEvent, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return &fakeStream{events: ch, err: err}
}

func (f *fakeStream) Events() <-chan domain.MatchEvent { return f.events }
func (f *fakeStream) Err() error                       { return f.err }
func (f *fakeStream) Cancel()                          {}

// heldStream stays open until released, for in-flight guard tests.
type heldStream struct {
	events chan domain.MatchEvent
	once   sync.Once
}

func newHeldStream() *heldStream {
	return &heldStream{events: make(chan domain.MatchEvent)}
}

func (h *heldStream) Events() <-chan domain.MatchEvent { return h.events }
func (h *heldStream) Err() error                       { return nil }
func (h *heldStream) Cancel()                          { h.release() }
func (h *heldStream) release()                         { h.once.Do(func() { close(h.events) }) }

// mockConfigStore is an in-memory driven.ConfigStore.
type mockConfigStore struct {
	mu   sync.RWMutex
	data map[string]any
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	v, _ := m.Get(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	v, _ := m.Get(key)
	b, _ := v.(bool)
	return b
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Save() error  { return nil }
func (m *mockConfigStore) Load() error  { return nil }
func (m *mockConfigStore) Path() string { return "mock" }
