package fetch

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// File reads documents from the local filesystem. It accepts file:// URLs and
// plain paths, which makes a local checkout usable as a catalog source.
type File struct{}

// Fetch implements Fetcher.
func (File) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := rawURL
	if strings.HasPrefix(strings.ToLower(rawURL), "file://") {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("invalid file URL %s: %w", rawURL, err)
		}
		p = u.Path
		if u.Host != "" && u.Host != "localhost" {
			p = "//" + u.Host + u.Path
		}
	}
	b, err := os.ReadFile(filepath.FromSlash(p))
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", p, err)
	}
	return b, nil
}
