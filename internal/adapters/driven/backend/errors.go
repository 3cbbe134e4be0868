package backend

import "fmt"

// APIError is a failure reported by the backend through the response
// envelope. The message is passed through to the UI verbatim,
// regardless of the HTTP status code it arrived with.
type APIError struct {
	// StatusCode is the HTTP status the envelope arrived with.
	StatusCode int

	// Message is the backend-provided error message.
	Message string
}

// Error returns the backend message verbatim.
func (e *APIError) Error() string {
	return e.Message
}

// TransportError wraps a network-level failure with a stable fallback
// message for display.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed (%s): %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
