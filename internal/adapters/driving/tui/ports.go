// Package tui provides the interactive drafting interface for lexdraft.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat manages the current session and the drafting workflow.
	Chat driving.ChatService

	// Template exposes the backend template library.
	Template driving.TemplateService

	// Upload uploads source documents as new templates. Optional: the
	// /upload chat command reports an error without it.
	Upload driving.UploadService

	// Settings provides client settings for display. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	chat driving.ChatService,
	template driving.TemplateService,
	upload driving.UploadService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Chat:     chat,
		Template: template,
		Upload:   upload,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Template == nil {
		return ErrMissingTemplateService
	}
	return nil
}
