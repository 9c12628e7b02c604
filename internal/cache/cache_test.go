package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kamusis/sdm-cli/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(name string) schema.NormalizedModel {
	return schema.Normalize(schema.RawSchema{
		Name:     name,
		Required: []string{"id"},
		Properties: map[string]schema.RawProperty{
			"id":   {},
			"name": {},
		},
	}, "https://example.org/"+name+"/model.yaml")
}

func countingFetch(calls *atomic.Int32) FetchFunc {
	return func(_ context.Context, key string) (schema.NormalizedModel, error) {
		calls.Add(1)
		return testModel(key), nil
	}
}

func TestGetOrFetch_FetchesOnce(t *testing.T) {
	c := New()
	var calls atomic.Int32

	first, err := c.GetOrFetch(context.Background(), "X", countingFetch(&calls))
	require.NoError(t, err)
	second, err := c.GetOrFetch(context.Background(), "X", countingFetch(&calls))
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Len())
}

func TestGetOrFetch_ErrorLeavesCacheUntouched(t *testing.T) {
	c := New()
	boom := errors.New("boom")

	_, err := c.GetOrFetch(context.Background(), "X", func(context.Context, string) (schema.NormalizedModel, error) {
		return schema.NormalizedModel{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("X")
	assert.False(t, ok)

	var calls atomic.Int32
	_, err = c.GetOrFetch(context.Background(), "X", countingFetch(&calls))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load(), "failed fetches must not be cached")
}

func TestGetOrFetch_ConcurrentCallersShareOneFetch(t *testing.T) {
	c := New()
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(_ context.Context, key string) (schema.NormalizedModel, error) {
		calls.Add(1)
		<-release
		return testModel(key), nil
	}

	const n = 16
	var wg sync.WaitGroup
	results := make([]schema.NormalizedModel, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.GetOrFetch(context.Background(), "Y", fetch)
		}(i)
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "Y", results[i].Name)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	c := New()
	var calls atomic.Int32
	m, err := c.GetOrFetch(context.Background(), "X", countingFetch(&calls))
	require.NoError(t, err)

	m.Properties[0].Checked = !m.Properties[0].Checked

	stored, ok := c.Get("X")
	require.True(t, ok)
	assert.NotEqual(t, m.Properties[0].Checked, stored.Properties[0].Checked)
}

func TestFlipChecked(t *testing.T) {
	c := New()
	var calls atomic.Int32
	_, err := c.GetOrFetch(context.Background(), "X", countingFetch(&calls))
	require.NoError(t, err)

	before, _ := c.Get("X")
	require.Equal(t, "id", before.Properties[0].Name)
	require.True(t, before.Properties[0].Checked)

	assert.True(t, c.FlipChecked("X", 0))
	after, _ := c.Get("X")
	assert.False(t, after.Properties[0].Checked)
	assert.True(t, after.Properties[0].Required, "required must not change")
	assert.Equal(t, before.Properties[1], after.Properties[1])

	assert.True(t, c.FlipChecked("X", 0))
	again, _ := c.Get("X")
	assert.Equal(t, before, again)
}

func TestFlipChecked_NoOps(t *testing.T) {
	c := New()
	var calls atomic.Int32
	_, err := c.GetOrFetch(context.Background(), "X", countingFetch(&calls))
	require.NoError(t, err)
	before, _ := c.Get("X")

	assert.False(t, c.FlipChecked("absent", 0))
	assert.False(t, c.FlipChecked("X", 2))
	assert.False(t, c.FlipChecked("X", -1))

	after, _ := c.Get("X")
	assert.Equal(t, before, after)
	assert.Equal(t, []string{"X"}, c.Keys())
}
