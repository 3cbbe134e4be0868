package mcp

import (
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Draft provides matching, questions and draft generation.
	Draft driving.DraftService

	// Template exposes the template library.
	Template driving.TemplateService

	// Upload turns documents into templates.
	Upload driving.UploadService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Draft == nil {
		return ErrMissingDraftService
	}
	// Template and Upload are optional
	return nil
}
