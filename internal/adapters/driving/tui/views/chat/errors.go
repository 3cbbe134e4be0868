package chat

import "errors"

// ErrNoChatService is returned when a query is submitted without a chat
// service wired in.
var ErrNoChatService = errors.New("chat: chat service is not available")

// ErrNoUploadService is returned when an upload is requested without an
// upload service wired in.
var ErrNoUploadService = errors.New("chat: upload service is not available")
