package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/ports"
)

// Prober checks that a remote file answers without downloading it.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

type ProberOption func(*Prober)

// WithTimeout bounds each probe.
func WithTimeout(timeout time.Duration) ProberOption {
	return func(p *Prober) { p.timeout = timeout }
}

// WithClient sets a custom HTTP client.
func WithClient(client *http.Client) ProberOption {
	return func(p *Prober) { p.client = client }
}

func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		client:  New(DefaultConfig()),
		timeout: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ ports.SourceProber = (*Prober)(nil)

// Probe sends HEAD and falls back to a one-byte ranged GET for servers that refuse HEAD.
func (p *Prober) Probe(ctx context.Context, rawURL string) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	status, err := p.do(ctx, http.MethodHead, rawURL)
	if err == nil && headRefused(status) {
		status, err = p.do(ctx, http.MethodGet, rawURL)
	}
	if err != nil {
		return &domain.EntryError{Kind: domain.EntryUnreachableURL, Path: rawURL, Err: err}
	}
	if status >= 400 {
		return &domain.EntryError{
			Kind: domain.EntryUnreachableURL,
			Path: rawURL,
			Err:  fmt.Errorf("HTTP %d", status),
		}
	}
	return nil
}

func (p *Prober) do(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, err
	}
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))

	return resp.StatusCode, nil
}

func headRefused(status int) bool {
	switch status {
	case http.StatusMethodNotAllowed, http.StatusForbidden, http.StatusNotImplemented:
		return true
	}
	return false
}
