package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
)

// sseHandler writes the given frames as SSE data lines, flushing after
// each one.
func sseHandler(t *testing.T, frames []any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/draft/match-stream", r.URL.Path)

		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)

		for _, frame := range frames {
			switch f := frame.(type) {
			case string:
				fmt.Fprintf(w, "data: %s\n\n", f)
			default:
				data, err := json.Marshal(f)
				require.NoError(t, err)
				fmt.Fprintf(w, "data: %s\n\n", data)
			}
			flusher.Flush()
		}
	}
}

func collectEvents(t *testing.T, client *Client, query string) ([]domain.MatchEvent, error) {
	t.Helper()

	stream, err := client.MatchStream(context.Background(), query)
	require.NoError(t, err)

	var events []domain.MatchEvent
	for event := range stream.Events() {
		events = append(events, event)
	}
	return events, stream.Err()
}

func TestMatchStream_ProgressThenSuccess(t *testing.T) {
	srv := httptest.NewServer(sseHandler(t, []any{
		domain.MatchEvent{Status: domain.StatusSearching},
		domain.MatchEvent{Status: domain.StatusSearchingWeb},
		domain.MatchEvent{
			Status: domain.StatusSuccess,
			Match:  &domain.TemplateMatch{TemplateID: "t1", Title: "Mutual NDA", Confidence: 0.9},
		},
	}))
	defer srv.Close()
	client := NewClient(srv.URL, 0)

	events, err := collectEvents(t, client, "nda")

	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, domain.StatusSearching, events[0].Status)
	assert.Equal(t, domain.StatusSearchingWeb, events[1].Status)
	assert.Equal(t, domain.StatusSuccess, events[2].Status)
	require.NotNil(t, events[2].Match)
	assert.Equal(t, "t1", events[2].Match.TemplateID)
}

func TestMatchStream_TerminalStopsReading(t *testing.T) {
	// Frames after the terminal event must never be delivered.
	srv := httptest.NewServer(sseHandler(t, []any{
		domain.MatchEvent{Status: domain.StatusNoTemplates},
		domain.MatchEvent{Status: domain.StatusSearching},
	}))
	defer srv.Close()
	client := NewClient(srv.URL, 0)

	events, err := collectEvents(t, client, "nda")

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.StatusNoTemplates, events[0].Status)
}

func TestMatchStream_ErrorEventIsTerminal(t *testing.T) {
	srv := httptest.NewServer(sseHandler(t, []any{
		domain.MatchEvent{Status: domain.StatusError, Message: "matcher unavailable"},
	}))
	defer srv.Close()
	client := NewClient(srv.URL, 0)

	events, err := collectEvents(t, client, "nda")

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "matcher unavailable", events[0].Message)
}

func TestMatchStream_MalformedPayloadIsFatal(t *testing.T) {
	srv := httptest.NewServer(sseHandler(t, []any{
		domain.MatchEvent{Status: domain.StatusSearching},
		"{not json",
	}))
	defer srv.Close()
	client := NewClient(srv.URL, 0)

	events, err := collectEvents(t, client, "nda")

	require.Len(t, events, 1)
	assert.ErrorIs(t, err, domain.ErrStreamProtocol)
}

func TestMatchStream_IgnoresNonDataLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, ": keepalive comment\n")
		fmt.Fprint(w, "event: status\n")
		fmt.Fprint(w, "\n")
		fmt.Fprintf(w, "data: %s\n\n", `{"status":"no_templates"}`)
	}))
	defer srv.Close()
	client := NewClient(srv.URL, 0)

	events, err := collectEvents(t, client, "nda")

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.StatusNoTemplates, events[0].Status)
}

func TestMatchStream_Cancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprintf(w, "data: %s\n\n", `{"status":"searching"}`)
		flusher.Flush()
		// Hold the connection open until the client cancels.
		<-release
	}))
	defer srv.Close()
	defer close(release)
	client := NewClient(srv.URL, 0)

	stream, err := client.MatchStream(context.Background(), "nda")
	require.NoError(t, err)

	first := <-stream.Events()
	assert.Equal(t, domain.StatusSearching, first.Status)

	stream.Cancel()

	// The channel closes without a stream error after cancellation.
	select {
	case _, open := <-stream.Events():
		assert.False(t, open, "expected closed channel after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not close after cancel")
	}
	assert.NoError(t, stream.Err())

	// Cancel is idempotent.
	stream.Cancel()
}

func TestMatchStream_OpenFailureCarriesEnvelopeMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusServiceUnavailable, true, "matcher offline", nil)
	}))
	defer srv.Close()
	client := NewClient(srv.URL, 0)

	_, err := client.MatchStream(context.Background(), "nda")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "matcher offline", apiErr.Message)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}
