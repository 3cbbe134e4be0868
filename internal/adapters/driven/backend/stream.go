package backend

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/lexdraft-labs/lexdraft-cli/internal/logger"
)

// dataPrefix is the SSE data field marker.
const dataPrefix = "data:"

// streamBufferSize caps a single SSE line. Match payloads are small;
// 1MB leaves ample headroom.
const streamBufferSize = 1 << 20

// matchStream consumes the SSE match-status endpoint. It implements
// driven.MatchStream: a cancelable sequence of typed status events.
type matchStream struct {
	events chan domain.MatchEvent
	body   io.ReadCloser
	cancel context.CancelFunc

	cancelled atomic.Bool

	mu  sync.Mutex
	err error
}

var _ driven.MatchStream = (*matchStream)(nil)

// MatchStream starts a streaming match for the query. Events arrive on
// the returned handle's channel; the stream is terminal on success,
// error, or no_templates, at which point the connection is released.
func (c *Client) MatchStream(ctx context.Context, query string) (driven.MatchStream, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(matchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	streamCtx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(streamCtx, http.MethodPost, c.baseURL+apiPrefix+"/draft/match-stream", bytes.NewReader(payload))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	logger.Debug("POST %s (stream)", req.URL.Path)

	resp, err := c.streamHTTP.Do(req)
	if err != nil {
		cancel()
		return nil, &TransportError{Op: "POST /draft/match-stream", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		defer cancel()
		// A failed stream open may still carry an envelope.
		data, _ := io.ReadAll(resp.Body)
		var env envelope
		if json.Unmarshal(data, &env) == nil && env.Message != "" {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("match stream failed with status %d", resp.StatusCode),
		}
	}

	s := &matchStream{
		events: make(chan domain.MatchEvent, 8),
		body:   resp.Body,
		cancel: cancel,
	}

	go s.consume(streamCtx)

	return s, nil
}

// Events returns the event channel. Closed on terminal event, stream
// failure, or cancellation.
func (s *matchStream) Events() <-chan domain.MatchEvent {
	return s.events
}

// Err returns the failure that closed the stream, if any.
func (s *matchStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Cancel aborts the stream. No further events are delivered after it
// returns. Safe to call more than once.
func (s *matchStream) Cancel() {
	s.cancelled.Store(true)
	s.cancel()
}

func (s *matchStream) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// consume reads the byte stream line by line, decoding data-prefixed
// lines as JSON status events.
func (s *matchStream) consume(ctx context.Context) {
	defer close(s.events)
	defer s.body.Close()
	defer s.cancel()

	scanner := bufio.NewScanner(s.body)
	scanner.Buffer(make([]byte, 0, 4096), streamBufferSize)

	for {
		// Cooperative cancellation: checked before each read.
		if s.cancelled.Load() || ctx.Err() != nil {
			return
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && !s.cancelled.Load() && ctx.Err() == nil {
				s.setErr(&TransportError{Op: "reading match stream", Err: err})
			}
			return
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || !bytes.HasPrefix(line, []byte(dataPrefix)) {
			continue
		}
		payload := bytes.TrimSpace(line[len(dataPrefix):])

		var event domain.MatchEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			// Malformed payloads are fatal to the stream.
			s.setErr(fmt.Errorf("%w: %v", domain.ErrStreamProtocol, err))
			return
		}

		logger.Debug("match stream event: %s", event.Status)

		select {
		case s.events <- event:
		case <-ctx.Done():
			return
		}

		if event.Status.Terminal() {
			return
		}
	}
}
