// Package http provides the HTTP implementation of legisdoc.Fetcher used
// to retrieve legislature pages and binary documents. The sources in scope
// are static HTML, PDF, and DOCX; no JavaScript rendering is needed.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/legisdoc"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the tracker to the legislature site.
const DefaultUserAgent = "legisdoc/0.1"

// Ensure Fetcher implements legisdoc.Fetcher at compile time.
var _ legisdoc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw bytes from URLs with retry and backoff. A transient
// failure is retried with the configured delays before the last error is
// returned.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	retryDelays []time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithRetryDelays sets the backoff delays between attempts. An empty slice
// disables retries. Defaults to 1s, 2s, 4s.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) { f.retryDelays = delays }
}

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Fetch retrieves the content at url, retrying transient failures.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	var lastErr error
	attempts := len(f.retryDelays) + 1
	for attempt := 0; attempt < attempts; attempt++ {
		data, contentType, err := f.fetchOnce(ctx, url)
		if err == nil {
			return data, contentType, nil
		}
		lastErr = err
		if attempt >= attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, "", ctx.Err()
		case <-time.After(f.retryDelays[attempt]):
		}
	}
	return nil, "", lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	return body, resp.Header.Get("Content-Type"), nil
}
