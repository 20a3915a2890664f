// Package backend provides the HTTP adapter for the document question-answering backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.DocumentStore = (*Client)(nil)
	_ driven.SessionStore  = (*Client)(nil)
	_ driven.HistoryStore  = (*Client)(nil)
	_ driven.Answerer      = (*Client)(nil)
)

// Default configuration values.
const (
	DefaultBaseURL = domain.DefaultBackendURL
	DefaultTimeout = domain.DefaultBackendTimeout
)

// StatusClientClosedRequest is reported when a question is cancelled upstream.
const StatusClientClosedRequest = 499

// RequestIDHeader carries a per-request identifier for backend log correlation.
const RequestIDHeader = "X-Request-ID"

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend API root (default: http://localhost:8000).
	BaseURL string

	// Timeout bounds a single request (default: 180s).
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests. Zero disables throttling.
	RequestsPerSecond float64

	// HTTPClient overrides the underlying client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the backend over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient creates a backend client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	trimmed := strings.TrimRight(cfg.BaseURL, "/")
	base, err := url.Parse(trimmed)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: invalid backend URL %q", domain.ErrInvalidInput, cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	c := &Client{
		client:  httpClient,
		baseURL: trimmed,
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c, nil
}

// BaseURL returns the backend API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpoint joins escaped path segments onto the base URL.
func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.baseURL + "/" + strings.Join(escaped, "/")
}

// doJSON sends a JSON body (nil for none) and decodes the response into out (nil to discard).
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
		contentType = "application/json"
	}
	return c.do(ctx, method, endpoint, reader, contentType, out)
}

// do sends a request and decodes a successful response into out.
// Non-2xx responses are returned as *domain.RemoteError.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for rate limiter: %w", contextError(ctx, err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Debug("%s %s failed after %s: %v", method, endpoint, time.Since(start), err)
		return fmt.Errorf("send request: %w", contextError(ctx, err))
	}
	defer resp.Body.Close()

	logger.Debug("%s %s -> %d in %s (request %s)", method, endpoint, resp.StatusCode, time.Since(start), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// contextError prefers the context's error so cancellation classifies correctly.
func contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	return err
}

// decodeError maps a failed response onto a RemoteError.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	// Detail stays empty unless the server sent a string; callers fall back to their own text.
	var detail string
	var payload errorResponse
	if err := json.Unmarshal(raw, &payload); err == nil {
		var text string
		if err := json.Unmarshal(payload.Detail, &text); err == nil {
			detail = text
		}
	}

	return domain.NewRemoteError(kindForStatus(resp.StatusCode), resp.StatusCode, detail)
}

// kindForStatus maps an HTTP status onto the closed set of error kinds.
func kindForStatus(status int) domain.ErrorKind {
	switch status {
	case http.StatusNotFound:
		return domain.ErrorKindNotFound
	case http.StatusTooManyRequests:
		return domain.ErrorKindRateLimited
	case StatusClientClosedRequest:
		return domain.ErrorKindCancelled
	default:
		return domain.ErrorKindOther
	}
}
