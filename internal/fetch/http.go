package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

// HTTP fetches documents over HTTP(S). Transient failures (connection errors,
// 429 and 5xx responses) are retried according to Options.
type HTTP struct {
	client    *retryablehttp.Client
	token     string
	userAgent string
	maxBytes  int64
}

// NewHTTP builds an HTTP fetcher.
func NewHTTP(opts Options) *HTTP {
	c := retryablehttp.NewClient()
	c.RetryMax = opts.Retries
	if c.RetryMax < 0 {
		c.RetryMax = 0
	}
	if opts.RetryWaitMin > 0 {
		c.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		c.RetryWaitMax = opts.RetryWaitMax
	}
	c.HTTPClient.Timeout = opts.Timeout
	// Hand the last response back so that callers see the real status.
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	c.Logger = nil
	if opts.Logger != nil {
		c.Logger = opts.Logger
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = "sdm-cli"
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTP{client: c, token: opts.Token, userAgent: ua, maxBytes: maxBytes}
}

// Fetch implements Fetcher.
func (h *HTTP) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return nil, &StatusError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("cannot read response from %s: %w", rawURL, err)
	}
	if int64(len(body)) > h.maxBytes {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", rawURL, h.maxBytes)
	}
	return body, nil
}
