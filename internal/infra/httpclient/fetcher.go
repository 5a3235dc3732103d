package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/ports"
)

// Fetcher streams remote files to disk.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = New(DefaultConfig())
	}
	return &Fetcher{client: client}
}

var _ ports.FileFetcher = (*Fetcher)(nil)

// Fetch downloads rawURL into destDir under the URL's base name. The body is written to
// a .part file that only replaces the target once fully received.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, destDir string) (string, int64, error) {
	name, err := FileName(rawURL)
	if err != nil {
		return "", 0, &domain.DownloadError{Kind: domain.DownloadRequest, URL: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", 0, &domain.DownloadError{Kind: domain.DownloadRequest, URL: rawURL, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, &domain.DownloadError{Kind: domain.DownloadRequest, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", 0, &domain.DownloadError{Kind: domain.DownloadStatus, URL: rawURL, StatusCode: resp.StatusCode}
	}

	dest := filepath.Join(destDir, name)
	part := dest + ".part"

	out, err := os.OpenFile(part, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", 0, &domain.DownloadError{Kind: domain.DownloadWrite, URL: rawURL, Err: err}
	}

	n, copyErr := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(part)
		kind := domain.DownloadWrite
		if copyErr != nil && ctx.Err() != nil {
			kind = domain.DownloadRequest
			err = ctx.Err()
		}
		return "", n, &domain.DownloadError{Kind: kind, URL: rawURL, Err: err}
	}
	if resp.ContentLength > 0 && n != resp.ContentLength {
		_ = os.Remove(part)
		return "", n, &domain.DownloadError{
			Kind: domain.DownloadRequest,
			URL:  rawURL,
			Err:  fmt.Errorf("short body: got %d of %d bytes", n, resp.ContentLength),
		}
	}

	if err := os.Rename(part, dest); err != nil {
		_ = os.Remove(part)
		return "", n, &domain.DownloadError{Kind: domain.DownloadWrite, URL: rawURL, Err: err}
	}
	return dest, n, nil
}

// FileName returns the local file name a URL downloads to.
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("no file name in %q", rawURL)
	}
	return name, nil
}
