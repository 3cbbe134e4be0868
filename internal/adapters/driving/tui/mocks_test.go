package tui

import (
	"context"
	"errors"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// mockChatService implements driving.ChatService for testing.
type mockChatService struct {
	session *domain.ChatSession

	submitQueryFunc func(ctx context.Context, query string) (<-chan driving.ChatUpdate, error)
	generateFunc    func(ctx context.Context) (*domain.Draft, error)
}

func (m *mockChatService) Current() *domain.ChatSession { return m.session }

func (m *mockChatService) NewSession(context.Context) (*domain.ChatSession, error) {
	m.session = domain.NewChatSession()
	return m.session, nil
}

func (m *mockChatService) Switch(_ context.Context, id string) (*domain.ChatSession, error) {
	m.session = &domain.ChatSession{ID: id}
	return m.session, nil
}

func (m *mockChatService) Sessions(context.Context) ([]domain.ChatSession, error) {
	return []domain.ChatSession{{ID: "s1", Title: "I need an NDA"}}, nil
}

func (m *mockChatService) DeleteSession(context.Context, string) error { return nil }

func (m *mockChatService) SubmitQuery(ctx context.Context, query string) (<-chan driving.ChatUpdate, error) {
	if m.submitQueryFunc != nil {
		return m.submitQueryFunc(ctx, query)
	}
	ch := make(chan driving.ChatUpdate, 1)
	ch <- driving.ChatUpdate{Done: true}
	close(ch)
	return ch, nil
}

func (m *mockChatService) SelectTemplate(context.Context, string, string) error { return nil }

func (m *mockChatService) SetAnswer(context.Context, string, any) error { return nil }

func (m *mockChatService) ClearAnswer(context.Context, string) error { return nil }

func (m *mockChatService) Generate(ctx context.Context) (*domain.Draft, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx)
	}
	return nil, errors.New("not stubbed")
}

// mockTemplateService implements driving.TemplateService for testing.
type mockTemplateService struct{}

func (m *mockTemplateService) List(_ context.Context, skip, limit int) (*domain.TemplatePage, error) {
	return &domain.TemplatePage{
		Items: []domain.TemplateSummary{
			{ID: "t1", Title: "Mutual NDA", DocType: "nda"},
		},
		Total: 1, Skip: skip, Limit: limit, Returned: 1,
	}, nil
}

func (m *mockTemplateService) Get(_ context.Context, id string) (*domain.Template, error) {
	return &domain.Template{
		TemplateSummary: domain.TemplateSummary{ID: id, Title: "Mutual NDA"},
		Body:            "# NDA body",
	}, nil
}

func (m *mockTemplateService) Delete(context.Context, string) error { return nil }

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct{}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings()
	return &settings, nil
}

func (m *mockSettingsService) Save(*domain.Settings) error { return nil }

func (m *mockSettingsService) SetBaseURL(string) error { return nil }
