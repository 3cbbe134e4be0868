// Package domain contains the core business entities for lexdraft:
// chat sessions and their transcripts, template matches, generated
// questions and answers, and drafts returned by the backend.
//
// Domain types carry no infrastructure dependencies. They are shared
// between the backend HTTP adapter, the session stores, and the
// driving adapters (CLI, TUI, MCP).
package domain
