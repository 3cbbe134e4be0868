package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
)

// MatchInput is the input schema for the match_template tool.
type MatchInput struct {
	Query string `json:"query" jsonschema:"free-text description of the legal document needed"`
}

// MatchOutput is the output schema for the match_template tool.
type MatchOutput struct {
	Found      bool                   `json:"found"`
	Candidates []MatchCandidateOutput `json:"candidates"`
}

// MatchCandidateOutput represents a single match candidate.
type MatchCandidateOutput struct {
	TemplateID string  `json:"template_id"`
	Title      string  `json:"title"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
}

// QuestionsInput is the input schema for the get_questions tool.
type QuestionsInput struct {
	TemplateID string `json:"template_id" jsonschema:"the template to fetch questions for"`
	Query      string `json:"query,omitempty" jsonschema:"original request, used to pre-fill answers"`
}

// QuestionsOutput is the output schema for the get_questions tool.
type QuestionsOutput struct {
	TemplateID string           `json:"template_id"`
	Questions  []QuestionOutput `json:"questions"`
	Prefilled  map[string]any   `json:"prefilled,omitempty"`
}

// QuestionOutput represents a single question.
type QuestionOutput struct {
	Key      string `json:"key"`
	Prompt   string `json:"prompt"`
	Type     string `json:"type,omitempty"`
	Required bool   `json:"required"`
}

// GenerateInput is the input schema for the generate_draft tool.
type GenerateInput struct {
	TemplateID string         `json:"template_id" jsonschema:"the template to generate a draft from"`
	Answers    map[string]any `json:"answers" jsonschema:"answers keyed by question key"`
	Query      string         `json:"query,omitempty" jsonschema:"original request for additional context"`
}

// GenerateOutput is the output schema for the generate_draft tool.
type GenerateOutput struct {
	Markdown         string   `json:"markdown"`
	InstanceID       string   `json:"instance_id"`
	MissingVariables []string `json:"missing_variables,omitempty"`
}

// ListTemplatesInput is the input schema for the list_templates tool.
type ListTemplatesInput struct {
	Skip  int `json:"skip,omitempty" jsonschema:"number of templates to skip"`
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of templates to return (default 20)"`
}

// ListTemplatesOutput is the output schema for the list_templates tool.
type ListTemplatesOutput struct {
	Templates []TemplateOutput `json:"templates"`
	Total     int              `json:"total"`
}

// TemplateOutput represents a single template summary.
type TemplateOutput struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	DocType      string `json:"doc_type,omitempty"`
	Jurisdiction string `json:"jurisdiction,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "match_template",
		Description: "Match a free-text request to a legal document template",
	}, s.handleMatch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_questions",
		Description: "Get the questions a template needs answered before drafting",
	}, s.handleQuestions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_draft",
		Description: "Generate a draft document from a template and answers",
	}, s.handleGenerate)

	if s.ports.Template != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_templates",
			Description: "List the templates available in the library",
		}, s.handleListTemplates)
	}
}

// handleMatch handles the match_template tool invocation.
func (s *Server) handleMatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MatchInput,
) (*mcp.CallToolResult, MatchOutput, error) {
	result, err := s.ports.Draft.Match(ctx, input.Query)
	if err != nil {
		return nil, MatchOutput{}, err
	}

	candidates := result.Candidates()
	output := MatchOutput{
		Found:      result.Found,
		Candidates: make([]MatchCandidateOutput, len(candidates)),
	}
	for i, c := range candidates {
		output.Candidates[i] = MatchCandidateOutput{
			TemplateID: c.TemplateID,
			Title:      c.Title,
			Confidence: c.Confidence,
			Reason:     c.Reason,
		}
	}

	return nil, output, nil
}

// handleQuestions handles the get_questions tool invocation.
func (s *Server) handleQuestions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QuestionsInput,
) (*mcp.CallToolResult, QuestionsOutput, error) {
	qs, err := s.ports.Draft.Questions(ctx, input.TemplateID, input.Query)
	if err != nil {
		return nil, QuestionsOutput{}, err
	}

	output := QuestionsOutput{
		TemplateID: qs.TemplateID,
		Questions:  make([]QuestionOutput, len(qs.Questions)),
		Prefilled:  qs.Prefilled,
	}
	for i, q := range qs.Questions {
		output.Questions[i] = QuestionOutput{
			Key:      q.Key,
			Prompt:   q.Prompt,
			Type:     string(q.Type),
			Required: q.Required,
		}
	}

	return nil, output, nil
}

// handleGenerate handles the generate_draft tool invocation.
func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	draft, err := s.ports.Draft.Generate(ctx, input.TemplateID, domain.AnswerMap(input.Answers), input.Query)
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	return nil, GenerateOutput{
		Markdown:         draft.Markdown,
		InstanceID:       draft.InstanceID,
		MissingVariables: draft.MissingVariables,
	}, nil
}

// handleListTemplates handles the list_templates tool invocation.
func (s *Server) handleListTemplates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListTemplatesInput,
) (*mcp.CallToolResult, ListTemplatesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	page, err := s.ports.Template.List(ctx, input.Skip, limit)
	if err != nil {
		return nil, ListTemplatesOutput{}, err
	}

	output := ListTemplatesOutput{
		Templates: make([]TemplateOutput, len(page.Items)),
		Total:     page.Total,
	}
	for i := range page.Items {
		output.Templates[i] = TemplateOutput{
			ID:           page.Items[i].ID,
			Title:        page.Items[i].Title,
			DocType:      page.Items[i].DocType,
			Jurisdiction: page.Items[i].Jurisdiction,
		}
	}

	return nil, output, nil
}
