// Package apiclient is the web service's client for the organization REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/orgdash/internal/platform/timeouts"
	apperrors "github.com/louisbranch/orgdash/internal/services/web/platform/errors"
)

const tracerName = "github.com/louisbranch/orgdash/internal/services/web/platform/apiclient"

// Client issues JSON requests against the organization API.
type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient *http.Client
	tracer     trace.Tracer
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// New constructs a Client pointing at the provided API base URL.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	cli := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		timeout:    timeouts.APIRequest,
		httpClient: &http.Client{},
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli, nil
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded when non-nil.
	Body any
	// Out receives the decoded JSON response when non-nil.
	Out any
}

// Callbacks observe the outcome of a call. Exactly one of them runs.
type Callbacks struct {
	Success func()
	Error   func(error)
}

// APIError represents a non-2xx response from the API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Detail)
}

// Get loads path into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Call(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Out: out}, Callbacks{})
}

// Update sends data to path with PUT.
func (c *Client) Update(ctx context.Context, path string, data any, callbacks Callbacks) error {
	return c.Call(ctx, Request{Method: http.MethodPut, Path: path, Body: data}, callbacks)
}

// Delete removes the resource at path.
func (c *Client) Delete(ctx context.Context, path string, callbacks Callbacks) error {
	return c.Call(ctx, Request{Method: http.MethodDelete, Path: path}, callbacks)
}

// Call performs one request bound to ctx and the client timeout, invokes the
// matching callback and returns the call error.
func (c *Client) Call(ctx context.Context, req Request, callbacks Callbacks) error {
	err := c.call(ctx, req)
	if err != nil {
		if callbacks.Error != nil {
			callbacks.Error(err)
		}
		return err
	}
	if callbacks.Success != nil {
		callbacks.Success()
	}
	return nil
}

func (c *Client) call(ctx context.Context, req Request) error {
	if c == nil {
		return fmt.Errorf("api client is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "orgapi "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", req.Path),
		),
	)
	defer span.End()

	err := c.do(ctx, method, req, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) do(ctx context.Context, method string, req Request, span trace.Span) error {
	endpoint := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}
	var reader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{Status: resp.StatusCode, Detail: extractDetail(resp.Body)}
	}
	if req.Out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(req.Out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func extractDetail(body io.Reader) string {
	if body == nil {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	return strings.TrimSpace(payload.Detail)
}

// AppError maps call failures to typed web errors.
func AppError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if !stderrors.As(err, &apiErr) {
		return apperrors.Wrap(apperrors.KindUnavailable, "core.error.unavailable", err)
	}
	switch {
	case apiErr.Status == http.StatusNotFound:
		return apperrors.Wrap(apperrors.KindNotFound, "core.error.organization_not_found", err)
	case apiErr.Status == http.StatusUnauthorized:
		return apperrors.Wrap(apperrors.KindUnauthorized, "", err)
	case apiErr.Status == http.StatusForbidden:
		return apperrors.Wrap(apperrors.KindForbidden, "", err)
	case apiErr.Status == http.StatusBadRequest:
		return apperrors.Wrap(apperrors.KindInvalidInput, "", err)
	case apiErr.Status >= http.StatusInternalServerError:
		return apperrors.Wrap(apperrors.KindUnavailable, "core.error.unavailable", err)
	default:
		return apperrors.Wrap(apperrors.KindUnknown, "", err)
	}
}
