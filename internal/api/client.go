// Package api is the single outbound gateway to the WeTube backend: one
// HTTP facade plus typed request/response wrappers per resource.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/wetube/tube/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Tube/1.0"
)

// Client is the HTTP client facade. It injects the API key, the per-install
// client ID, and the bearer token on every request, and maps failure classes
// to domain errors.
type Client struct {
	baseURL    string
	apiKey     string
	clientID   string
	tokenFn    func() string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	// Invoked whenever the backend answers 401; the app wires this to an
	// automatic logout.
	onUnauthorized func()
}

// NewClient creates the facade. tokenFn is consulted per request; an empty
// token means no Authorization header.
func NewClient(baseURL, apiKey, clientID string, tokenFn func() string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if tokenFn == nil {
		tokenFn = func() string { return "" }
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		clientID: clientID,
		tokenFn:  tokenFn,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		// Scroll-driven fetch bursts stay polite toward the backend
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		logger:  logger,
	}
}

// SetUnauthorizedHook registers the callback fired on 401 responses.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Client-Key", c.apiKey)
	req.Header.Set("X-Client-Id", c.clientID)
	req.Header.Set("User-Agent", userAgent)
	if token := c.tokenFn(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// doRequest performs an authenticated JSON request and returns the response
// body for 2xx statuses.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "method", method, "path", path, "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	return c.readResponse(resp, method, path)
}

// doMultipart performs a multipart/form-data request (uploads). The body is
// streamed as-is with the given content type.
func (c *Client) doMultipart(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("api upload", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api upload failed", "path", path, "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	return c.readResponse(resp, method, path)
}

func (c *Client) readResponse(resp *http.Response, method, path string) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil

	case resp.StatusCode == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, domain.ErrAuthFailed

	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound

	case resp.StatusCode == http.StatusForbidden:
		return nil, domain.ErrForbidden

	default:
		// 4xx validation failures carry a message payload; surface it verbatim
		apiErr := &domain.APIError{Status: resp.StatusCode}
		if len(body) > 0 {
			json.Unmarshal(body, apiErr)
		}
		c.logger.Error("api request error", "method", method, "path", path, "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}
}

func decode(body []byte, dest interface{}) error {
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	if limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", limit))
	}
	return q
}
