// Package mcp provides an MCP (Model Context Protocol) server adapter
// for lexdraft. It lets AI assistants match templates, fetch their
// questions and generate drafts through the drafting backend.
package mcp

import "errors"

// ErrMissingDraftService is returned when the draft service is not provided.
var ErrMissingDraftService = errors.New("mcp: draft service is required")
