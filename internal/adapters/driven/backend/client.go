package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/lexdraft-labs/lexdraft-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout for
	// non-streaming calls.
	DefaultTimeout = 30 * time.Second

	// apiPrefix is prepended to every endpoint path.
	apiPrefix = "/api/v1"

	// requestRate is the proactive client-side throttle (requests/sec).
	requestRate = 10

	// requestBurst is the throttle burst size.
	requestBurst = 5
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// Ensure Client implements the port.
var _ driven.BackendClient = (*Client)(nil)

// Client is the HTTP implementation of driven.BackendClient.
type Client struct {
	baseURL string
	http    *http.Client

	// streamHTTP has no overall timeout; the match stream stays open
	// until a terminal event or cancellation.
	streamHTTP *http.Client

	limiter *rate.Limiter
}

// NewClient creates a backend client for the given base URL.
// A zero timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Timeout: timeout},
		streamHTTP: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(requestRate), requestBurst),
	}
}

// NewClientWithHTTPClient creates a backend client with custom HTTP
// clients. Useful for testing.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       httpClient,
		streamHTTP: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(requestRate), requestBurst),
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the uniform response wrapper used by every endpoint.
type envelope struct {
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body"`
}

// do performs one request, unwraps the envelope, and returns the raw
// body. An error envelope, or a null body, is returned as *APIError
// with the backend message.
func (c *Client) do(ctx context.Context, method, path string, contentType string, body io.Reader) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("%s %s", method, req.URL.Path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &TransportError{
			Op:  method + " " + path,
			Err: fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err),
		}
	}

	if env.Error {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if len(env.Body) == 0 || string(env.Body) == jsonNull {
		msg := env.Message
		if msg == "" {
			msg = "empty response body"
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	return env.Body, nil
}

// postJSON marshals payload and performs a POST, decoding the envelope
// body into out.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	return decodeBody(body, out)
}

func decodeBody(body json.RawMessage, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// Upload sends a document as a multipart form.
func (c *Client) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*domain.UploadResult, error) {
	if err := domain.ValidateUpload(contentType, size); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building multipart form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalising multipart form: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	var result domain.UploadResult
	if err := decodeBody(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListTemplates returns one page of template summaries.
func (c *Client) ListTemplates(ctx context.Context, skip, limit int) (*domain.TemplatePage, error) {
	q := url.Values{}
	q.Set("skip", fmt.Sprintf("%d", skip))
	q.Set("limit", fmt.Sprintf("%d", limit))

	body, err := c.do(ctx, http.MethodGet, "/template?"+q.Encode(), "", nil)
	if err != nil {
		return nil, err
	}

	var page domain.TemplatePage
	if err := decodeBody(body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTemplate returns full template detail.
func (c *Client) GetTemplate(ctx context.Context, id string) (*domain.Template, error) {
	body, err := c.do(ctx, http.MethodGet, "/template/"+url.PathEscape(id), "", nil)
	if err != nil {
		return nil, err
	}

	var tmpl domain.Template
	if err := decodeBody(body, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// DeleteTemplate removes a template.
func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/template/"+url.PathEscape(id), "", nil)
	return err
}

// matchRequest is the body for both match endpoints.
type matchRequest struct {
	Query string `json:"query"`
}

// Match performs a synchronous template match.
func (c *Client) Match(ctx context.Context, query string) (*domain.MatchResult, error) {
	var result domain.MatchResult
	if err := c.postJSON(ctx, "/draft/match", matchRequest{Query: query}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// questionsRequest is the body for the questions endpoint.
type questionsRequest struct {
	TemplateID string `json:"template_id"`
	Query      string `json:"query,omitempty"`
}

// GetQuestions returns the question set for a template.
func (c *Client) GetQuestions(ctx context.Context, templateID, query string) (*domain.QuestionSet, error) {
	var qs domain.QuestionSet
	req := questionsRequest{TemplateID: templateID, Query: query}
	if err := c.postJSON(ctx, "/draft/questions", req, &qs); err != nil {
		return nil, err
	}
	return &qs, nil
}

// generateRequest is the body for the generate endpoint.
type generateRequest struct {
	TemplateID string           `json:"template_id"`
	Answers    domain.AnswerMap `json:"answers"`
	Query      string           `json:"query,omitempty"`
}

// GenerateDraft renders a draft from a template and answers.
func (c *Client) GenerateDraft(ctx context.Context, templateID string, answers domain.AnswerMap, query string) (*domain.Draft, error) {
	var draft domain.Draft
	req := generateRequest{TemplateID: templateID, Answers: answers, Query: query}
	if err := c.postJSON(ctx, "/draft/generate", req, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}
