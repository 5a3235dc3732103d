// Package datasetprobe validates file locations before a dataset is registered.
package datasetprobe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/ports"
)

var labelRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Builder checks labels, extensions and that every file can be reached.
type Builder struct {
	prober      ports.SourceProber
	concurrency int
	strictExt   bool
}

type Option func(*Builder)

// WithConcurrency bounds how many URLs are probed at once.
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithStrictExtensions rejects locations whose extension does not match the slot.
func WithStrictExtensions(strict bool) Option {
	return func(b *Builder) { b.strictExt = strict }
}

func NewBuilder(prober ports.SourceProber, opts ...Option) *Builder {
	b := &Builder{prober: prober, concurrency: 4, strictExt: true}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ ports.DatasetBuilder = (*Builder)(nil)

func (b *Builder) TryNewDataset(ctx context.Context, label string, files domain.FileSet) (domain.Dataset, error) {
	label = strings.TrimSpace(label)
	if !labelRe.MatchString(label) {
		return domain.Dataset{}, &domain.EntryError{Kind: domain.EntryInvalidLabel, Label: label}
	}

	ds := domain.Dataset{Label: label, Files: domain.FileSet{}}
	for k, loc := range files {
		if loc = strings.TrimSpace(loc); loc != "" {
			ds.Files[k] = loc
		}
	}
	if len(ds.Files) == 0 {
		return domain.Dataset{}, &domain.EntryError{Kind: domain.EntryEmptyDataset, Label: label}
	}

	var remote []string
	for _, k := range ds.Kinds() {
		loc := ds.Files[k]
		if b.strictExt && !k.Accepts(loc) {
			return domain.Dataset{}, &domain.EntryError{
				Kind:  domain.EntryInvalidExtension,
				Label: label,
				Path:  loc,
				Err:   fmt.Errorf("%s expects one of %s", k, strings.Join(k.Extensions(), ", ")),
			}
		}
		if domain.IsRemote(loc) {
			remote = append(remote, loc)
			continue
		}

		abs, err := filepath.Abs(loc)
		if err != nil {
			return domain.Dataset{}, domain.FileNotFound(loc)
		}
		if info, err := os.Stat(abs); err != nil || info.IsDir() {
			return domain.Dataset{}, domain.FileNotFound(loc)
		}
		ds.Files[k] = abs
	}

	if err := b.probeAll(ctx, remote); err != nil {
		return domain.Dataset{}, err
	}
	return ds, nil
}

func (b *Builder) probeAll(ctx context.Context, urls []string) error {
	if len(urls) == 0 || b.prober == nil {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for _, u := range urls {
		u := u
		g.Go(func() error {
			return b.prober.Probe(ctx, u)
		})
	}
	return g.Wait()
}
