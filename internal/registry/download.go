package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/ports"
)

const tracerName = "github.com/nrminor/py-refman/internal/registry"

// Downloader brings every file of a dataset into a destination directory. Remote
// files are fetched, local ones copied.
type Downloader struct {
	fetcher     ports.FileFetcher
	observer    ports.TransferObserver
	concurrency int
	logger      *slog.Logger
	tracer      trace.Tracer
}

type DownloaderOption func(*Downloader)

// WithConcurrency bounds how many files transfer at once.
func WithConcurrency(n int) DownloaderOption {
	return func(d *Downloader) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

func WithObserver(o ports.TransferObserver) DownloaderOption {
	return func(d *Downloader) {
		if o != nil {
			d.observer = o
		}
	}
}

func WithLogger(l *slog.Logger) DownloaderOption {
	return func(d *Downloader) {
		if l != nil {
			d.logger = l
		}
	}
}

func NewDownloader(fetcher ports.FileFetcher, opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		fetcher:     fetcher,
		observer:    nopObserver{},
		concurrency: 4,
		logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type nopObserver struct{}

func (nopObserver) FileTransferred(string, int64) {}
func (nopObserver) FileFailed(string)             {}

// Download transfers all files of ds into dest and returns the written paths in slot
// order. The first failure cancels the remaining transfers.
func (d *Downloader) Download(ctx context.Context, ds domain.Dataset, dest string) ([]string, error) {
	kinds := ds.Kinds()
	if len(kinds) == 0 {
		return nil, &domain.DownloadError{Kind: domain.DownloadNoRemoteFiles, Label: ds.Label, Err: domain.ErrNoRemoteFiles}
	}

	ctx, span := d.tracer.Start(ctx, "registry.Download", trace.WithAttributes(
		attribute.String("dataset", ds.Label),
		attribute.Int("files", len(kinds)),
	))
	defer span.End()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		err = &domain.DownloadError{Kind: domain.DownloadWrite, Label: ds.Label, URL: dest, Err: err}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	paths := make([]string, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for i, k := range kinds {
		i, k := i, k
		loc := ds.Files[k]
		g.Go(func() error {
			p, err := d.transfer(gctx, k, loc, dest)
			if err != nil {
				d.observer.FileFailed(string(k))
				var de *domain.DownloadError
				if errors.As(err, &de) && de.Label == "" {
					de.Label = ds.Label
				}
				return err
			}
			paths[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "download failed")
		d.logger.Warn("download.failed", "dataset", ds.Label, "error", err)
		return nil, err
	}
	return paths, nil
}

func (d *Downloader) transfer(ctx context.Context, kind domain.FileKind, loc, dest string) (string, error) {
	ctx, span := d.tracer.Start(ctx, "registry.transfer", trace.WithAttributes(
		attribute.String("kind", string(kind)),
		attribute.String("location", loc),
	))
	defer span.End()

	var (
		path string
		n    int64
		err  error
	)
	if domain.IsRemote(loc) {
		if d.fetcher == nil {
			return "", &domain.DownloadError{Kind: domain.DownloadRequest, URL: loc, Err: errors.New("no fetcher configured")}
		}
		path, n, err = d.fetcher.Fetch(ctx, loc, dest)
	} else {
		path, n, err = copyLocal(ctx, loc, dest)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transfer failed")
		return "", err
	}

	span.SetAttributes(attribute.Int64("bytes", n))
	d.observer.FileTransferred(string(kind), n)
	d.logger.Debug("download.file", "kind", string(kind), "location", loc, "path", path, "bytes", n)
	return path, nil
}

// copyLocal copies a registered local file into dest. A file already in dest is left alone.
func copyLocal(ctx context.Context, src, dest string) (string, int64, error) {
	target := filepath.Join(dest, filepath.Base(src))

	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return "", 0, &domain.DownloadError{Kind: domain.DownloadWrite, URL: src, Err: err}
	}
	targetAbs, err := filepath.Abs(target)
	if err != nil {
		return "", 0, &domain.DownloadError{Kind: domain.DownloadWrite, URL: target, Err: err}
	}

	in, err := os.Open(srcAbs)
	if err != nil {
		return "", 0, &domain.DownloadError{Kind: domain.DownloadRequest, URL: src, Err: err}
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", 0, &domain.DownloadError{Kind: domain.DownloadRequest, URL: src, Err: err}
	}
	if srcAbs == targetAbs {
		return targetAbs, info.Size(), nil
	}

	part := targetAbs + ".part"
	out, err := os.OpenFile(part, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", 0, &domain.DownloadError{Kind: domain.DownloadWrite, URL: target, Err: err}
	}

	n, copyErr := io.Copy(out, ctxReader{ctx: ctx, r: in})
	if err := errors.Join(copyErr, out.Close()); err != nil {
		_ = os.Remove(part)
		return "", n, &domain.DownloadError{Kind: domain.DownloadWrite, URL: target, Err: err}
	}
	if n != info.Size() {
		_ = os.Remove(part)
		return "", n, &domain.DownloadError{
			Kind: domain.DownloadWrite,
			URL:  target,
			Err:  fmt.Errorf("copied %d of %d bytes", n, info.Size()),
		}
	}
	if err := os.Rename(part, targetAbs); err != nil {
		_ = os.Remove(part)
		return "", n, &domain.DownloadError{Kind: domain.DownloadWrite, URL: target, Err: err}
	}
	return targetAbs, n, nil
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
