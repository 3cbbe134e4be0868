package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoCurrentSession indicates an operation that needs an active
	// chat session was invoked before one was created or loaded.
	ErrNoCurrentSession = errors.New("no current session")

	// ErrMatchInProgress indicates a template match is already running
	// for the current session. Guards against double-submit.
	ErrMatchInProgress = errors.New("template match already in progress")

	// ErrNoTemplateSelected indicates questions or a draft were requested
	// before a template was selected for the session.
	ErrNoTemplateSelected = errors.New("no template selected")

	// Upload validation errors. These are raised before any network call.

	// ErrFileTooLarge indicates the file exceeds the upload size limit.
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")

	// ErrUnsupportedFileType indicates the file is not a PDF or DOCX.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// Stream errors.

	// ErrStreamProtocol indicates a malformed payload on the match
	// status stream. Fatal to that stream; the consumer must not expect
	// further events.
	ErrStreamProtocol = errors.New("malformed status stream payload")
)
