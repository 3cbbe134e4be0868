package domain

import "time"

// DefaultBaseURL is used when no base URL has been configured.
const DefaultBaseURL = "http://localhost:8000"

// Settings holds the client's configurable behaviour. The backend base
// URL is the only externally required setting.
type Settings struct {
	// BaseURL is the backend service root, without the /api/v1 prefix.
	BaseURL string

	// RequestTimeout bounds non-streaming HTTP requests.
	RequestTimeout time.Duration

	// Verbose enables debug logging to stderr.
	Verbose bool
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: 30 * time.Second,
	}
}
