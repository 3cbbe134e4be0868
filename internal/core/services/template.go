package services

import (
	"context"
	"fmt"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// Ensure TemplateService implements the interface.
var _ driving.TemplateService = (*TemplateService)(nil)

// DefaultPageSize is used when the caller does not specify a limit.
const DefaultPageSize = 20

// TemplateService exposes the backend template library.
type TemplateService struct {
	backend driven.BackendClient
}

// NewTemplateService creates a new template service.
func NewTemplateService(backend driven.BackendClient) *TemplateService {
	return &TemplateService{backend: backend}
}

// List returns one page of template summaries.
func (s *TemplateService) List(ctx context.Context, skip, limit int) (*domain.TemplatePage, error) {
	if skip < 0 {
		return nil, fmt.Errorf("%w: skip must not be negative", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return s.backend.ListTemplates(ctx, skip, limit)
}

// Get returns full template detail.
func (s *TemplateService) Get(ctx context.Context, id string) (*domain.Template, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: template id is empty", domain.ErrInvalidInput)
	}
	return s.backend.GetTemplate(ctx, id)
}

// Delete removes a template from the backend.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: template id is empty", domain.ErrInvalidInput)
	}
	return s.backend.DeleteTemplate(ctx, id)
}
