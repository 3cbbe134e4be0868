package driving

import "github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"

// SettingsService manages client settings.
type SettingsService interface {
	// Get retrieves current settings, applying defaults and the
	// environment override for the base URL.
	Get() (*domain.Settings, error)

	// Save persists settings.
	Save(settings *domain.Settings) error

	// SetBaseURL updates the backend base URL.
	SetBaseURL(url string) error
}
