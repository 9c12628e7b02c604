// Package browser coordinates a catalog browsing session: it loads the
// catalog, resolves model documents and keeps normalized models in the
// session cache.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kamusis/sdm-cli/internal/cache"
	"github.com/kamusis/sdm-cli/internal/catalog"
	"github.com/kamusis/sdm-cli/internal/fetch"
	"github.com/kamusis/sdm-cli/internal/schema"
)

var (
	// ErrIndexFetch wraps transport failures while retrieving the catalog.
	ErrIndexFetch = errors.New("cannot fetch catalog")

	// ErrModelFetch wraps transport failures while retrieving a model document.
	ErrModelFetch = errors.New("cannot fetch model")
)

// Options configures a Browser.
type Options struct {
	IndexURL         string
	ModelURLTemplate string
	Logger           *slog.Logger
}

// Browser is one browsing session. The cache it is given is owned by the
// session for its whole lifetime.
type Browser struct {
	fetcher  fetch.Fetcher
	cache    *cache.Cache
	indexURL string
	template string
	log      *slog.Logger
}

// New returns a Browser. Empty URL options fall back to the public catalog.
func New(f fetch.Fetcher, c *cache.Cache, opts Options) *Browser {
	if c == nil {
		c = cache.New()
	}
	b := &Browser{
		fetcher:  f,
		cache:    c,
		indexURL: opts.IndexURL,
		template: opts.ModelURLTemplate,
		log:      opts.Logger,
	}
	if b.indexURL == "" {
		b.indexURL = catalog.DefaultIndexURL
	}
	if b.template == "" {
		b.template = catalog.DefaultModelURLTemplate
	}
	if b.log == nil {
		b.log = slog.New(slog.DiscardHandler)
	}
	return b
}

// IndexURL returns the catalog location used by LoadCatalog.
func (b *Browser) IndexURL() string { return b.indexURL }

// ModelURL returns the document location of model in repository repo.
func (b *Browser) ModelURL(repo, model string) string {
	return catalog.ModelURL(b.template, repo, model)
}

// LoadCatalog fetches and parses the catalog listing.
func (b *Browser) LoadCatalog(ctx context.Context) (*catalog.Index, error) {
	start := time.Now()
	raw, err := b.fetcher.Fetch(ctx, b.indexURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexFetch, err)
	}
	idx, err := catalog.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("cannot parse catalog %s: %w", b.indexURL, err)
	}
	b.log.Debug("catalog loaded",
		"url", b.indexURL,
		"repos", len(idx.Entries),
		"models", idx.ModelCount(),
		"elapsed", time.Since(start))
	return idx, nil
}

// Model returns the normalized model, fetching it on the first request.
// Models are cached by model name.
func (b *Browser) Model(ctx context.Context, repo, model string) (schema.NormalizedModel, error) {
	return b.cache.GetOrFetch(ctx, model, func(ctx context.Context, key string) (schema.NormalizedModel, error) {
		return b.fetchModel(ctx, repo, key)
	})
}

func (b *Browser) fetchModel(ctx context.Context, repo, model string) (schema.NormalizedModel, error) {
	u := b.ModelURL(repo, model)
	b.log.Debug("fetching model", "repo", repo, "model", model, "url", u)

	raw, err := b.fetcher.Fetch(ctx, u)
	if err != nil {
		return schema.NormalizedModel{}, fmt.Errorf("%w %s: %w", ErrModelFetch, model, err)
	}
	doc, err := schema.ParseDocument(raw)
	if err != nil {
		return schema.NormalizedModel{}, fmt.Errorf("cannot parse model %s: %w", model, err)
	}
	if doc.Name != model {
		b.log.Warn("model document key differs from requested model", "model", model, "key", doc.Name)
	}
	return schema.Normalize(*doc, u), nil
}

// Cached returns the cached model without fetching.
func (b *Browser) Cached(model string) (schema.NormalizedModel, bool) {
	return b.cache.Get(model)
}

// CachedModels returns the names of all cached models.
func (b *Browser) CachedModels() []string {
	return b.cache.Keys()
}

// Toggle flips the checked flag of property index of a cached model.
func (b *Browser) Toggle(model string, index int) bool {
	return b.cache.FlipChecked(model, index)
}

// ToggleByName flips the checked flag of the named property of a cached model.
func (b *Browser) ToggleByName(model, property string) bool {
	m, ok := b.cache.Get(model)
	if !ok {
		return false
	}
	_, i, ok := m.Property(property)
	if !ok {
		return false
	}
	return b.cache.FlipChecked(model, i)
}
