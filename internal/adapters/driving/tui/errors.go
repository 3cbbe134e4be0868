package tui

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("tui: chat service is required")

// ErrMissingTemplateService is returned when the template service is not provided.
var ErrMissingTemplateService = errors.New("tui: template service is required")
