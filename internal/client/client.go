package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"vidgrab/internal/api"
	"vidgrab/internal/logging"
	"vidgrab/internal/services"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of an undecodable body is echoed into errors.
const maxErrorBody = 256

// HTTPDoer describes the HTTP client used to reach the download server.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the download server's job endpoints.
type Client struct {
	base   *url.URL
	http   HTTPDoer
	logger *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPDoer swaps the transport, mainly for tests.
func WithHTTPDoer(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "client")
	}
}

// New builds a client for the server at baseURL. Calls have no timeout of
// their own; callers bound them through the context.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "client", "server base url is empty", nil)
	}
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "client", "parse server base url", err)
	}
	base.Path = strings.TrimRight(base.Path, "/")
	base.RawQuery = ""
	base.Fragment = ""

	c := &Client{
		base:   base,
		http:   &http.Client{},
		logger: logging.NewComponentLogger(nil, "client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised server address.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Submit posts a job description to /download. A reply with success=false is
// returned as-is without error; only transport and decode failures error.
func (c *Client) Submit(ctx context.Context, req api.DownloadRequest) (api.DownloadResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return api.DownloadResponse{}, fmt.Errorf("encode download request: %w", err)
	}

	var payload api.DownloadResponse
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("download"), body, &payload); err != nil {
		return api.DownloadResponse{}, services.Wrap(services.ErrTransport, "submit", "", err)
	}
	return payload, nil
}

// Progress fetches the current status of job id.
func (c *Client) Progress(ctx context.Context, id string) (api.ProgressResponse, error) {
	var payload api.ProgressResponse
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("progress", id), nil, &payload); err != nil {
		return api.ProgressResponse{}, services.Wrap(services.ErrTransport, "progress", id, err)
	}
	return payload, nil
}

// FileURL returns the address the server serves finished files from.
func (c *Client) FileURL(filename string) string {
	return c.endpoint("downloads", filename)
}

func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(segment))
	}
	ref := *c.base
	ref.RawPath = c.base.EscapedPath() + "/" + strings.Join(escaped, "/")
	ref.Path, _ = url.PathUnescape(ref.RawPath)
	return ref.String()
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID, ok := services.RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, requestID)

	logger := logging.WithContext(services.WithRequestID(ctx, requestID), c.logger)
	logger.Debug("request", logging.String("method", method), logging.String("url", endpoint))

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Debug("undecodable response", logging.Int("status_code", resp.StatusCode), logging.Error(err))
		return fmt.Errorf("decode response (status %d): %w: %s", resp.StatusCode, err, truncate(data, maxErrorBody))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		logger.Debug("error status with json body", logging.Int("status_code", resp.StatusCode))
	}
	return nil
}

func truncate(data []byte, limit int) string {
	text := strings.TrimSpace(string(data))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
