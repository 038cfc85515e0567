package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Download(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "corridor-cli/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("DMC,delta_eV\nX-1,0.3\n"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{})
	body, err := f.Download(context.Background(), srv.URL+"/cases.csv")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "X-1")
}

func TestHTTPFetcher_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{MaxRetries: 3, RatePerSec: 100})
	body, err := f.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	defer body.Close()
	assert.EqualValues(t, 3, calls.Load())
}

func TestHTTPFetcher_NotFoundIsFatal(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{MaxRetries: 3, RatePerSec: 100})
	_, err := f.Download(context.Background(), srv.URL)
	require.Error(t, err)
	// 404 is not retryable.
	assert.EqualValues(t, 1, calls.Load())
}

func TestForURL(t *testing.T) {
	httpF := NewHTTPFetcher(HTTPOptions{})
	ftpF := NewFTPFetcher(FTPOptions{})

	f, err := ForURL("https://example.com/cases.csv", httpF, ftpF)
	require.NoError(t, err)
	assert.Same(t, Fetcher(httpF), f)

	f, err = ForURL("ftp://mirror.example.com/cases.csv", httpF, ftpF)
	require.NoError(t, err)
	assert.Same(t, Fetcher(ftpF), f)

	_, err = ForURL("gopher://example.com/x", httpF, ftpF)
	assert.Error(t, err)
}

func TestDownloadToFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "sub", "cases.csv")
	n, err := DownloadToFile(context.Background(), NewHTTPFetcher(HTTPOptions{}), srv.URL, path)
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestParseFTPURL(t *testing.T) {
	host, path, err := parseFTPURL("ftp://mirror.example.com/pub/cases.csv")
	require.NoError(t, err)
	assert.Equal(t, "mirror.example.com:21", host)
	assert.Equal(t, "/pub/cases.csv", path)

	host, _, err = parseFTPURL("ftp://mirror.example.com:2121/pub/cases.csv")
	require.NoError(t, err)
	assert.Equal(t, "mirror.example.com:2121", host)

	_, _, err = parseFTPURL("https://example.com/x")
	assert.Error(t, err)

	_, _, err = parseFTPURL("ftp://example.com")
	assert.Error(t, err)
}
