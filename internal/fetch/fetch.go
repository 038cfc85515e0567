// Package fetch downloads reference tables over HTTP(S) and FTP for the
// sync command. A fetch either resolves or fails; retries are bounded and
// there is no partial-data reconciliation.
package fetch

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// Fetcher downloads remote data.
type Fetcher interface {
	// Download fetches the URL and returns the response body. The caller
	// must close the returned reader.
	Download(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

// ForURL returns a Fetcher for the URL's scheme.
func ForURL(rawURL string, httpF *HTTPFetcher, ftpF *FTPFetcher) (Fetcher, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch: parse url %s", rawURL)
	}
	switch u.Scheme {
	case "http", "https":
		return httpF, nil
	case "ftp":
		return ftpF, nil
	default:
		return nil, eris.Errorf("fetch: unsupported scheme %q", u.Scheme)
	}
}

// DownloadToFile fetches rawURL with f and writes it to path atomically
// (temp file in the same directory, then rename). Returns bytes written.
func DownloadToFile(ctx context.Context, f Fetcher, rawURL, path string) (int64, error) {
	body, err := f.Download(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, eris.Wrapf(err, "fetch: create dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return 0, eris.Wrap(err, "fetch: create temp file")
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, eris.Wrapf(err, "fetch: write %s", path)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, eris.Wrapf(err, "fetch: rename into %s", path)
	}
	return n, nil
}
