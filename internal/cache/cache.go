// Package cache memoizes normalized models for the lifetime of a session.
package cache

import (
	"context"
	"sort"
	"sync"

	"github.com/kamusis/sdm-cli/internal/schema"
	"golang.org/x/sync/singleflight"
)

// FetchFunc retrieves and normalizes the model stored under key.
type FetchFunc func(ctx context.Context, key string) (schema.NormalizedModel, error)

// Cache maps model names to normalized models. Entries are only added by a
// successful GetOrFetch and are never evicted. Concurrent GetOrFetch calls
// for the same missing key share a single fetch.
type Cache struct {
	mu     sync.RWMutex
	models map[string]schema.NormalizedModel
	group  singleflight.Group
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{models: make(map[string]schema.NormalizedModel)}
}

// Get returns a copy of the model stored under key. It never fetches.
func (c *Cache) Get(key string) (schema.NormalizedModel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.models[key]
	if !ok {
		return schema.NormalizedModel{}, false
	}
	return m.Clone(), true
}

// GetOrFetch returns the cached model for key, calling fetch only on a miss.
// A failed fetch is returned unchanged and nothing is stored.
//
// Callers joining an in-flight fetch for the same key wait for it and share
// its result; the fetch runs with the context of the caller that started it.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch FetchFunc) (schema.NormalizedModel, error) {
	if m, ok := c.Get(key); ok {
		return m, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A fetch for key may have completed between Get and Do.
		if m, ok := c.Get(key); ok {
			return m, nil
		}
		m, err := fetch(ctx, key)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.models[key] = m.Clone()
		c.mu.Unlock()
		return m, nil
	})
	if err != nil {
		return schema.NormalizedModel{}, err
	}
	return v.(schema.NormalizedModel).Clone(), nil
}

// FlipChecked toggles the Checked flag of property index of the model stored
// under key. It reports whether anything changed; an unknown key or an
// out-of-range index is a no-op.
func (c *Cache) FlipChecked(key string, index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.models[key]
	if !ok || index < 0 || index >= len(m.Properties) {
		return false
	}
	m.Properties[index].Checked = !m.Properties[index].Checked
	return true
}

// Len returns the number of cached models.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}

// Keys returns the cached model names in ascending order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.models))
	for k := range c.models {
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	sort.Strings(keys)
	return keys
}
