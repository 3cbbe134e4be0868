package driving

import (
	"context"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
)

// TemplateService exposes the backend template library.
type TemplateService interface {
	// List returns one page of template summaries.
	List(ctx context.Context, skip, limit int) (*domain.TemplatePage, error)

	// Get returns full template detail.
	Get(ctx context.Context, id string) (*domain.Template, error)

	// Delete removes a template from the backend.
	Delete(ctx context.Context, id string) error
}
