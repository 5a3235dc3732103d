package registry

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/ports"
)

// Options identify one registry: metadata for init plus where its manifest lives.
type Options struct {
	Title         string `validate:"max=200"`
	Description   string `validate:"max=2000"`
	RequestedPath string `validate:"excluded_with=Global"`
	Global        bool

	manifestPath string
	deps         Deps
}

var _ ports.Registry = (*Options)(nil)

// ManifestPath is the resolved refman.yaml this registry reads and writes.
func (o *Options) ManifestPath() string { return o.manifestPath }

// Root is the directory holding the manifest.
func (o *Options) Root() string { return filepath.Dir(o.manifestPath) }

// resolve picks the manifest: an explicit path, then the global registry, then the
// nearest refman.yaml above the working directory, then the working directory itself.
func (o *Options) resolve() (string, error) {
	manifest := domain.DefaultLayout().ManifestFile

	switch {
	case o.RequestedPath != "":
		p, err := filepath.Abs(o.RequestedPath)
		if err != nil {
			return "", &domain.RegistryError{Kind: domain.RegistryInvalidOptions, Path: o.RequestedPath, Err: err}
		}
		if ext := strings.ToLower(filepath.Ext(p)); ext == ".yaml" || ext == ".yml" {
			return p, nil
		}
		return filepath.Join(p, manifest), nil

	case o.Global:
		if o.deps.GlobalManifest == "" {
			return "", &domain.RegistryError{
				Kind: domain.RegistryInvalidOptions,
				Err:  errors.New("global registry location is not configured"),
			}
		}
		return o.deps.GlobalManifest, nil
	}

	wd, err := o.deps.Getwd()
	if err != nil {
		return "", &domain.RegistryError{Kind: domain.RegistryIO, Err: err}
	}
	if o.deps.Locator != nil {
		root, err := o.deps.Locator.FindRoot(wd)
		if err == nil {
			return filepath.Join(root, manifest), nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return "", err
		}
	}
	return filepath.Join(wd, manifest), nil
}

// Init creates the registry, or refreshes the metadata of an existing one while
// keeping its datasets.
func (o *Options) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	project, err := o.deps.Store.Load(o.manifestPath)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		project = domain.NewProject(o.Title, o.Description, o.Global)
	case err != nil:
		return err
	default:
		if o.Title != "" {
			project.Title = o.Title
		}
		if o.Description != "" {
			project.Description = o.Description
		}
		project.Global = o.Global
	}

	if o.deps.Initializer != nil {
		if err := o.deps.Initializer.Init(domain.RegistrySpec{Root: o.Root(), Global: o.Global}); err != nil {
			return err
		}
	}

	if err := o.deps.Store.Save(o.manifestPath, project); err != nil {
		return err
	}
	o.deps.Logger.Info("registry.init", "path", o.manifestPath, "datasets", len(project.Datasets))
	return nil
}

func (o *Options) ReadRegistry(ctx context.Context) (domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return domain.Project{}, err
	}
	p, err := o.deps.Store.Load(o.manifestPath)
	if err != nil {
		return domain.Project{}, err
	}
	o.deps.Logger.Debug("registry.read", "path", o.manifestPath, "datasets", len(p.Datasets))
	return p, nil
}

// WriteRegistry persists project and stamps it with the time it was written.
func (o *Options) WriteRegistry(ctx context.Context, project *domain.Project) error {
	if project == nil {
		return &domain.RegistryError{
			Kind: domain.RegistryInvalidOptions,
			Path: o.manifestPath,
			Err:  errors.New("nil project"),
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := o.deps.Store.Save(o.manifestPath, *project); err != nil {
		return err
	}

	saved, err := o.deps.Store.Load(o.manifestPath)
	if err == nil {
		project.UpdatedAt = saved.UpdatedAt
	}
	o.deps.Logger.Debug("registry.write", "path", o.manifestPath, "datasets", len(project.Datasets))
	return nil
}

// DownloadDataset fetches every file of the dataset under label into dest.
func (o *Options) DownloadDataset(ctx context.Context, project domain.Project, label string, dest string) error {
	ds, err := project.Dataset(label)
	if err != nil {
		return err
	}
	if o.deps.Downloader == nil {
		return &domain.DownloadError{Kind: domain.DownloadRequest, Label: label, Err: errors.New("no downloader configured")}
	}

	files, err := o.deps.Downloader.Download(ctx, ds, dest)
	if err != nil {
		return err
	}
	o.deps.Logger.Info("registry.download", "label", label, "dest", dest, "files", len(files))
	return nil
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "excluded_with":
			msgs = append(msgs, "a registry path cannot be combined with the global registry")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s is longer than %s characters", strings.ToLower(fe.Field()), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
