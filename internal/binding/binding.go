// Package binding is the host-facing surface of refman. Every call runs through a
// taskrun.Runner so it can be interrupted, and every failure leaves as a
// *hosterr.HostError.
package binding

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/hosterr"
	"github.com/nrminor/py-refman/internal/ports"
	"github.com/nrminor/py-refman/internal/taskrun"
)

type Binding struct {
	opener  ports.RegistryOpener
	builder ports.DatasetBuilder
	runner  *taskrun.Runner
	getwd   func() (string, error)
	logger  *slog.Logger
}

type Option func(*Binding)

func WithLogger(l *slog.Logger) Option {
	return func(b *Binding) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithGetwd replaces os.Getwd as the default download destination.
func WithGetwd(getwd func() (string, error)) Option {
	return func(b *Binding) { b.getwd = getwd }
}

func New(opener ports.RegistryOpener, builder ports.DatasetBuilder, runner *taskrun.Runner, opts ...Option) *Binding {
	b := &Binding{
		opener:  opener,
		builder: builder,
		runner:  runner,
		getwd:   os.Getwd,
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type InitRequest struct {
	Title       string
	Description string
	domain.Location
}

type RegisterRequest struct {
	Label string
	Files domain.FileSet
	domain.Location
}

func (b *Binding) open(title, description string, loc domain.Location) (ports.Registry, error) {
	reg, err := b.opener.Open(title, description, loc)
	return hosterr.Registry(reg, err)
}

func (b *Binding) read(ctx context.Context, reg ports.Registry) (domain.Project, error) {
	p, err := taskrun.Run(ctx, b.runner, reg.ReadRegistry)
	return hosterr.Registry(p, err)
}

// Init creates the registry selected by req, or refreshes its title and description.
func (b *Binding) Init(ctx context.Context, req InitRequest) error {
	reg, err := b.open(req.Title, req.Description, req.Location)
	if err != nil {
		return err
	}

	_, err = taskrun.Run(ctx, b.runner, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, reg.Init(ctx)
	})
	return hosterr.RegistryErr(err)
}

// NewDataset validates the files and builds a dataset without registering it.
func (b *Binding) NewDataset(ctx context.Context, label string, files domain.FileSet) (domain.Dataset, error) {
	ds, err := taskrun.Run(ctx, b.runner, func(ctx context.Context) (domain.Dataset, error) {
		return b.builder.TryNewDataset(ctx, label, files)
	})
	return hosterr.Entry(ds, err)
}

// Register builds the dataset and merges it into the registry. An existing label keeps
// the slots req does not set.
func (b *Binding) Register(ctx context.Context, req RegisterRequest) (domain.Project, error) {
	reg, err := b.open("", "", req.Location)
	if err != nil {
		return domain.Project{}, err
	}

	ds, err := b.NewDataset(ctx, req.Label, req.Files)
	if err != nil {
		return domain.Project{}, err
	}

	p, err := taskrun.Run(ctx, b.runner, func(ctx context.Context) (domain.Project, error) {
		p, err := reg.ReadRegistry(ctx)
		if err != nil {
			return domain.Project{}, err
		}
		if p, err = p.Register(ds); err != nil {
			return domain.Project{}, err
		}
		if err := reg.WriteRegistry(ctx, &p); err != nil {
			return domain.Project{}, err
		}
		return p, nil
	})
	if err == nil {
		b.logger.Info("binding.register", "label", ds.Label, "kinds", len(ds.Kinds()))
	}
	return hosterr.Registry(p, err)
}

// Remove drops label from the registry.
func (b *Binding) Remove(ctx context.Context, label string, loc domain.Location) (domain.Project, error) {
	reg, err := b.open("", "", loc)
	if err != nil {
		return domain.Project{}, err
	}

	p, err := taskrun.Run(ctx, b.runner, func(ctx context.Context) (domain.Project, error) {
		p, err := reg.ReadRegistry(ctx)
		if err != nil {
			return domain.Project{}, err
		}
		if p, err = p.Remove(label); err != nil {
			return domain.Project{}, err
		}
		if err := reg.WriteRegistry(ctx, &p); err != nil {
			return domain.Project{}, err
		}
		return p, nil
	})
	if err == nil {
		b.logger.Info("binding.remove", "label", label)
	}
	return hosterr.Registry(p, err)
}

// Download fetches the dataset under label into dest, the working directory when empty.
// An unregistered label is rejected before any transfer starts.
func (b *Binding) Download(ctx context.Context, label, dest string, loc domain.Location) error {
	reg, err := b.open("", "", loc)
	if err != nil {
		return err
	}

	p, err := b.read(ctx, reg)
	if err != nil {
		return err
	}
	if !p.IsRegistered(label) {
		return hosterr.RegistryErr(domain.NotRegistered(label))
	}

	if dest == "" {
		if dest, err = b.getwd(); err != nil {
			return hosterr.ReportErr(err)
		}
	}

	_, err = taskrun.Run(ctx, b.runner, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, reg.DownloadDataset(ctx, p, label, dest)
	})
	return hosterr.DownloadErr(err)
}

// List returns every dataset, or only the one under label when it is set.
func (b *Binding) List(ctx context.Context, label string, loc domain.Location) ([]domain.Dataset, error) {
	p, err := b.ReadRegistry(ctx, loc)
	if err != nil {
		return nil, err
	}
	if label == "" {
		return p.Datasets, nil
	}

	ds, err := p.Dataset(label)
	if err != nil {
		return nil, hosterr.RegistryErr(err)
	}
	return []domain.Dataset{ds}, nil
}

func (b *Binding) ReadRegistry(ctx context.Context, loc domain.Location) (domain.Project, error) {
	reg, err := b.open("", "", loc)
	if err != nil {
		return domain.Project{}, err
	}
	return b.read(ctx, reg)
}

func (b *Binding) WriteRegistry(ctx context.Context, project *domain.Project, loc domain.Location) error {
	reg, err := b.open("", "", loc)
	if err != nil {
		return err
	}

	_, err = taskrun.Run(ctx, b.runner, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, reg.WriteRegistry(ctx, project)
	})
	return hosterr.RegistryErr(err)
}

// IsRegistered reports false when the registry cannot be read.
func (b *Binding) IsRegistered(ctx context.Context, label string, loc domain.Location) bool {
	p, err := b.ReadRegistry(ctx, loc)
	return err == nil && p.IsRegistered(label)
}

func (b *Binding) DatasetURLs(ctx context.Context, label string, loc domain.Location) ([]string, error) {
	p, err := b.ReadRegistry(ctx, loc)
	if err != nil {
		return nil, err
	}
	urls, err := p.DatasetURLs(label)
	return hosterr.Registry(urls, err)
}
