package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOptions(retries int) Options {
	return Options{
		Timeout:      5 * time.Second,
		Retries:      retries,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	}
}

func TestHTTP_FetchOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sdm-cli", r.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	opts := fastOptions(0)
	opts.Token = "secret"
	b, err := NewHTTP(opts).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func TestHTTP_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such model", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTP(fastOptions(2)).Fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "no such model", se.Body)
	assert.True(t, IsNotFound(err))
}

func TestHTTP_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	b, err := NewHTTP(fastOptions(3)).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(b))
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTP_NoRetriesWhenDisabled(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTP(fastOptions(0)).Fetch(context.Background(), srv.URL)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTP_MaxBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	opts := fastOptions(0)
	opts.MaxBytes = 4
	_, err := NewHTTP(opts).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFile_FetchPathAndURL(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(p, []byte("Model: {}\n"), 0o644))

	b, err := File{}.Fetch(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "Model: {}\n", string(b))

	b, err = File{}.Fetch(context.Background(), "file://"+filepath.ToSlash(p))
	require.NoError(t, err)
	assert.Equal(t, "Model: {}\n", string(b))

	_, err = File{}.Fetch(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRouter_Dispatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	p := filepath.Join(dir, "index.json")
	require.NoError(t, os.WriteFile(p, []byte("local"), 0o644))

	r := New(fastOptions(0))
	b, err := r.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "remote", string(b))

	b, err = r.Fetch(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "local", string(b))

	_, err = r.Fetch(context.Background(), "ftp://example.org/index.json")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}
