// Package backend implements the driven.BackendClient port over the
// drafting service's JSON-over-HTTP contract.
//
// Every response is wrapped in a uniform envelope:
//
//	{ "error": bool, "message": string, "body": T | null }
//
// The client unwraps the envelope and surfaces backend-reported errors
// with their message verbatim. The streaming match endpoint is consumed
// as Server-Sent Events; see stream.go.
package backend
