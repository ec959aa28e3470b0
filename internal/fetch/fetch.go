// Package fetch downloads decision documents over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// FetchError is a transport-level failure: connection error, timeout,
// or a non-success HTTP status. It is fatal and never retried.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ContentTypeError indicates the response was not the expected PDF
// document format.
type ContentTypeError struct {
	URL         string
	ContentType string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("fetch %s: URL does not appear to be a PDF (Content-Type: %s)", e.URL, e.ContentType)
}

// Config holds fetcher configuration.
type Config struct {
	Timeout    time.Duration // HTTP timeout (default: 30s)
	UserAgent  string        // Optional User-Agent header
	HTTPClient *http.Client  // Optional (tests)
	Logger     *slog.Logger
}

// Client downloads document bytes from direct PDF URLs.
type Client struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// New creates a new fetch client.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:    httpClient,
		userAgent: cfg.UserAgent,
		logger:    cfg.Logger,
	}
}

// Fetch downloads the document at url and returns its raw bytes.
// The response Content-Type must contain "pdf" (case-insensitive).
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "pdf") {
		return nil, &ContentTypeError{URL: url, ContentType: contentType}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug("fetched document", "url", url, "bytes", len(data), "content_type", contentType)
	return data, nil
}
