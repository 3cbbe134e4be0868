package mcp

import (
	"context"
	"errors"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
)

type mockDraftService struct {
	matchErr error
}

func (m *mockDraftService) Match(_ context.Context, query string) (*domain.MatchResult, error) {
	if m.matchErr != nil {
		return nil, m.matchErr
	}
	return &domain.MatchResult{
		Found: true,
		Top:   &domain.TemplateMatch{TemplateID: "t1", Title: "Mutual NDA", Confidence: 0.9},
		Alternatives: []domain.TemplateMatch{
			{TemplateID: "t2", Title: "One-way NDA", Confidence: 0.6},
		},
	}, nil
}

func (m *mockDraftService) MatchEvents(ctx context.Context, query string) (<-chan domain.MatchEvent, error) {
	result, err := m.Match(ctx, query)
	if err != nil {
		return nil, err
	}
	ch := make(chan domain.MatchEvent, 1)
	ch <- domain.MatchEvent{Status: domain.StatusSuccess, Match: result.Top, Alternatives: result.Alternatives}
	close(ch)
	return ch, nil
}

func (m *mockDraftService) Questions(_ context.Context, templateID, _ string) (*domain.QuestionSet, error) {
	return &domain.QuestionSet{
		TemplateID: templateID,
		Questions: []domain.Question{
			{Key: "party_a", Prompt: "Who is party A?", Type: domain.TypeString, Required: true},
		},
		Prefilled: domain.AnswerMap{"party_a": "Acme"},
	}, nil
}

func (m *mockDraftService) Generate(_ context.Context, templateID string, answers domain.AnswerMap, _ string) (*domain.Draft, error) {
	if answers == nil {
		return nil, errors.New("no answers")
	}
	return &domain.Draft{
		Markdown:   "# NDA",
		InstanceID: "d1",
		TemplateID: templateID,
	}, nil
}

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
	if id == "missing" {
		return nil, domain.ErrNotFound
	}
	return &domain.Template{
		TemplateSummary: domain.TemplateSummary{ID: id, Title: "Mutual NDA"},
		Body:            "# NDA body",
	}, nil
}

func (m *mockTemplateService) Delete(context.Context, string) error { return nil }
