package services

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyBaseURL        = "backend.base_url"
	keyTimeoutSeconds = "backend.timeout_seconds"
	keyVerbose        = "verbose"
)

// EnvBaseURL overrides the configured backend base URL when set.
const EnvBaseURL = "LEXDRAFT_BASE_URL"

// SettingsService manages client settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Missing values fall back to the
// built-in defaults; the environment variable wins over the config file
// for the base URL.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		BaseURL:        s.getString(keyBaseURL, defaults.BaseURL),
		RequestTimeout: defaults.RequestTimeout,
		Verbose:        s.configStore.GetBool(keyVerbose),
	}

	if secs := s.configStore.GetInt(keyTimeoutSeconds); secs > 0 {
		settings.RequestTimeout = time.Duration(secs) * time.Second
	}

	if env := os.Getenv(EnvBaseURL); env != "" {
		settings.BaseURL = strings.TrimRight(env, "/")
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	if err := s.configStore.Set(keyBaseURL, settings.BaseURL); err != nil {
		return fmt.Errorf("save base_url: %w", err)
	}
	if err := s.configStore.Set(keyTimeoutSeconds, int(settings.RequestTimeout/time.Second)); err != nil {
		return fmt.Errorf("save timeout_seconds: %w", err)
	}
	if err := s.configStore.Set(keyVerbose, settings.Verbose); err != nil {
		return fmt.Errorf("save verbose: %w", err)
	}

	return nil
}

// SetBaseURL updates the backend base URL after validating it parses
// as an absolute HTTP URL.
func (s *SettingsService) SetBaseURL(raw string) error {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return fmt.Errorf("%w: base URL is empty", domain.ErrInvalidInput)
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q is not a valid http(s) URL", domain.ErrInvalidInput, raw)
	}

	return s.configStore.Set(keyBaseURL, raw)
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}
