package registry

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/ports"
)

// Deps are the adapters a Manager hands to every Options it opens.
type Deps struct {
	Store       ports.ManifestStore
	Locator     ports.RegistryLocator
	Initializer ports.RegistryInitializer
	Downloader  *Downloader

	// GlobalManifest is the manifest of the per-user registry.
	GlobalManifest string
	Getwd          func() (string, error)
	Logger         *slog.Logger
}

// Manager opens registries. It implements ports.RegistryOpener.
type Manager struct {
	deps     Deps
	validate *validator.Validate
}

func NewManager(d Deps) *Manager {
	if d.Getwd == nil {
		d.Getwd = os.Getwd
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Manager{deps: d, validate: validator.New()}
}

var _ ports.RegistryOpener = (*Manager)(nil)

func (m *Manager) Open(title, description string, loc domain.Location) (ports.Registry, error) {
	return m.TryNew(title, description, loc.RequestedPath, loc.Global)
}

// TryNew validates the options and resolves the manifest path.
func (m *Manager) TryNew(title, description, requestedPath string, global bool) (*Options, error) {
	o := &Options{
		Title:         strings.TrimSpace(title),
		Description:   strings.TrimSpace(description),
		RequestedPath: strings.TrimSpace(requestedPath),
		Global:        global,
		deps:          m.deps,
	}
	if err := m.validate.Struct(o); err != nil {
		return nil, &domain.RegistryError{Kind: domain.RegistryInvalidOptions, Err: describe(err)}
	}

	path, err := o.resolve()
	if err != nil {
		return nil, err
	}
	o.manifestPath = path
	return o, nil
}
