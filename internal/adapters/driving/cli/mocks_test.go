package cli

import (
	"context"
	"errors"
	"time"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// setupTestServices installs mock services and returns a cleanup
// function restoring the previous wiring.
func setupTestServices() func() {
	oldChat := chatService
	oldTemplate := templateService
	oldUpload := uploadService
	oldDraft := draftService
	oldSettings := settingsService

	SetServices(Services{
		Chat:     &mockChatService{},
		Template: &mockTemplateService{},
		Upload:   &mockUploadService{},
		Draft:    &mockDraftService{},
		Settings: &mockSettingsService{},
	})

	return func() {
		chatService = oldChat
		templateService = oldTemplate
		uploadService = oldUpload
		draftService = oldDraft
		settingsService = oldSettings
	}
}

type mockChatService struct{}

func (m *mockChatService) Current() *domain.ChatSession { return nil }

func (m *mockChatService) NewSession(context.Context) (*domain.ChatSession, error) {
	return domain.NewChatSession(), nil
}

func (m *mockChatService) Switch(_ context.Context, id string) (*domain.ChatSession, error) {
	if id != "1700000000000-abcd1234" {
		return nil, domain.ErrNotFound
	}
	sessions, _ := m.Sessions(context.Background())
	return &sessions[0], nil
}

func (m *mockChatService) Sessions(context.Context) ([]domain.ChatSession, error) {
	s := domain.NewChatSession()
	s.ID = "1700000000000-abcd1234"
	s.Title = "lease for my rental"
	s.TemplateTitle = "Residential Lease"
	s.Messages = []domain.Message{domain.NewMessage(domain.RoleUser, "lease for my rental")}
	s.UpdatedAt = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return []domain.ChatSession{*s}, nil
}

func (m *mockChatService) DeleteSession(context.Context, string) error { return nil }

func (m *mockChatService) SubmitQuery(context.Context, string) (<-chan driving.ChatUpdate, error) {
	ch := make(chan driving.ChatUpdate, 1)
	ch <- driving.ChatUpdate{Done: true}
	close(ch)
	return ch, nil
}

func (m *mockChatService) SelectTemplate(context.Context, string, string) error { return nil }
func (m *mockChatService) SetAnswer(context.Context, string, any) error         { return nil }
func (m *mockChatService) ClearAnswer(context.Context, string) error            { return nil }

func (m *mockChatService) Generate(context.Context) (*domain.Draft, error) {
	return &domain.Draft{Markdown: "# Draft"}, nil
}

type mockTemplateService struct{}

func (m *mockTemplateService) List(_ context.Context, skip, limit int) (*domain.TemplatePage, error) {
	return &domain.TemplatePage{
		Items: []domain.TemplateSummary{
			{ID: "t1", Title: "Mutual NDA", DocType: "nda", Jurisdiction: "US-TX"},
			{ID: "t2", Title: "Residential Lease"},
		},
		Total: 2, Skip: skip, Limit: limit, Returned: 2,
	}, nil
}

func (m *mockTemplateService) Get(_ context.Context, id string) (*domain.Template, error) {
	return &domain.Template{
		TemplateSummary: domain.TemplateSummary{ID: id, Title: "Mutual NDA"},
		Body:            "# NDA\n{{party_a}}",
		Variables: []domain.Question{
			{Key: "party_a", Prompt: "Who is party A?", Required: true},
		},
	}, nil
}

func (m *mockTemplateService) Delete(context.Context, string) error { return nil }

type mockUploadService struct{}

func (m *mockUploadService) UploadFile(_ context.Context, path string) (*domain.UploadResult, error) {
	return &domain.UploadResult{
		DocumentID:   "doc1",
		DocumentName: "contract.pdf",
		Template:     domain.TemplateSummary{ID: "t1", Title: "Extracted Template"},
	}, nil
}

type mockDraftService struct{}

func (m *mockDraftService) Match(_ context.Context, query string) (*domain.MatchResult, error) {
	return &domain.MatchResult{
		Found: true,
		Top:   &domain.TemplateMatch{TemplateID: "t1", Title: "Mutual NDA", Confidence: 0.91, Reason: "query mentions confidentiality"},
	}, nil
}

func (m *mockDraftService) MatchEvents(ctx context.Context, query string) (<-chan domain.MatchEvent, error) {
	result, err := m.Match(ctx, query)
	if err != nil {
		return nil, err
	}
	ch := make(chan domain.MatchEvent, 2)
	ch <- domain.MatchEvent{Status: domain.StatusSearching}
	ch <- domain.MatchEvent{Status: domain.StatusSuccess, Match: result.Top, Alternatives: result.Alternatives}
	close(ch)
	return ch, nil
}

func (m *mockDraftService) Questions(_ context.Context, templateID, _ string) (*domain.QuestionSet, error) {
	return &domain.QuestionSet{
		TemplateID:    templateID,
		TemplateTitle: "Mutual NDA",
		Questions: []domain.Question{
			{Key: "party_a", Prompt: "Who is party A?", Required: true},
			{Key: "party_b", Prompt: "Who is party B?"},
		},
		Prefilled: domain.AnswerMap{"party_b": "Acme Corp"},
	}, nil
}

func (m *mockDraftService) Generate(_ context.Context, templateID string, answers domain.AnswerMap, _ string) (*domain.Draft, error) {
	if err := domain.ValidateAnswers([]domain.Question{
		{Key: "party_a", Prompt: "Who is party A?", Required: true},
	}, answers); err != nil {
		return nil, err
	}
	return &domain.Draft{Markdown: "# Mutual NDA\n\nBetween the parties.", InstanceID: "d1", TemplateID: templateID}, nil
}

type mockSettingsService struct {
	saved *domain.Settings
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	if m.saved != nil {
		return m.saved, nil
	}
	s := domain.DefaultSettings()
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.Settings) error {
	m.saved = settings
	return nil
}

func (m *mockSettingsService) SetBaseURL(url string) error {
	if url == "bad" {
		return domain.ErrInvalidInput
	}
	return nil
}

// Error-returning doubles for failure paths.

type mockDraftServiceError struct{ mockDraftService }

func (m *mockDraftServiceError) Match(context.Context, string) (*domain.MatchResult, error) {
	return nil, errors.New("backend down")
}

func (m *mockDraftServiceError) MatchEvents(context.Context, string) (<-chan domain.MatchEvent, error) {
	return nil, errors.New("backend down")
}

type mockUploadServiceError struct{}

func (m *mockUploadServiceError) UploadFile(context.Context, string) (*domain.UploadResult, error) {
	return nil, domain.ErrFileTooLarge
}
