package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for lexdraft resources.
	uriScheme = "lexdraft://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing templates.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "templates",
		Name:        "templates",
		Description: "List of templates in the drafting library",
		MIMEType:    "application/json",
	}, s.handleTemplatesResource)

	// Template for full template detail.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "templates/{templateId}",
		Name:        "template-detail",
		Description: "Body and variables of a specific template",
		MIMEType:    "application/json",
	}, s.handleTemplateDetailResource)
}

// handleTemplatesResource returns a list of all templates.
func (s *Server) handleTemplatesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Template == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	page, err := s.ports.Template.List(ctx, 0, 100)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	// Build simplified template list.
	type templateInfo struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		DocType      string `json:"doc_type,omitempty"`
		Jurisdiction string `json:"jurisdiction,omitempty"`
	}

	infos := make([]templateInfo, len(page.Items))
	for i := range page.Items {
		infos[i] = templateInfo{
			ID:           page.Items[i].ID,
			Title:        page.Items[i].Title,
			DocType:      page.Items[i].DocType,
			Jurisdiction: page.Items[i].Jurisdiction,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling templates: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleTemplateDetailResource returns the detail for a specific template.
func (s *Server) handleTemplateDetailResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Template == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract templateId from URI: lexdraft://templates/{templateId}
	templateID := extractTemplateID(req.Params.URI)
	if templateID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	tpl, err := s.ports.Template.Get(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("getting template: %w", err)
	}

	data, err := json.MarshalIndent(tpl, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling template: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractTemplateID extracts the template ID from a URI like lexdraft://templates/{templateId}.
func extractTemplateID(uri string) string {
	const prefix = uriScheme + "templates/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
