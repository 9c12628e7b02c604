package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// Fetcher retrieves the raw bytes stored at a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Options configures the fetchers built by New and NewHTTP.
type Options struct {
	// Timeout bounds a single HTTP attempt. Zero means no client timeout.
	Timeout time.Duration
	// Retries is the number of additional attempts for transient HTTP failures.
	Retries int
	// RetryWaitMin and RetryWaitMax bound the backoff between attempts.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// Token, when set, is sent as a bearer token (raises GitHub rate limits).
	Token string
	// UserAgent defaults to "sdm-cli".
	UserAgent string
	// MaxBytes caps the response body. Zero uses DefaultMaxBytes.
	MaxBytes int64
	Logger   *slog.Logger
}

// DefaultMaxBytes is the default response size limit.
const DefaultMaxBytes = 32 << 20

// Router dispatches on URL scheme: http and https go to the HTTP fetcher,
// file URLs and plain paths are read from disk.
type Router struct {
	HTTP Fetcher
	File Fetcher
}

// New returns a Router backed by NewHTTP(opts) and File.
func New(opts Options) *Router {
	return &Router{HTTP: NewHTTP(opts), File: File{}}
}

// Fetch implements Fetcher.
func (r *Router) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	switch scheme(rawURL) {
	case "http", "https":
		return r.HTTP.Fetch(ctx, rawURL)
	case "file", "":
		return r.File.Fetch(ctx, rawURL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, rawURL)
	}
}

func scheme(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	// Windows drive letters parse as a one-letter scheme.
	if len(u.Scheme) == 1 {
		return ""
	}
	return strings.ToLower(u.Scheme)
}
