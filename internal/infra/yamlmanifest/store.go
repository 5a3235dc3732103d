// Package yamlmanifest persists a registry as a refman.yaml manifest.
package yamlmanifest

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/ports"
	"gopkg.in/yaml.v3"
)

type Store struct {
	now func() time.Time
}

type Option func(*Store)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ManifestStore = (*Store)(nil)

func (s *Store) Load(path string) (domain.Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.RegistryIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.RegistryNotFound
			err = domain.ErrNotFound
		}
		return domain.Project{}, &domain.RegistryError{Kind: kind, Path: path, Err: err}
	}

	var m yamlManifest
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		// An empty file is a registry with no datasets.
		if errors.Is(err, io.EOF) {
			return domain.NewProject("", "", false), nil
		}
		return domain.Project{}, invalid(path, errors.Join(domain.ErrInvalidManifest, err))
	}

	return toDomain(path, m)
}

// Save writes the manifest through a temporary file and a rename, stamping
// last_modified.
func (s *Store) Save(path string, project domain.Project) error {
	project.UpdatedAt = s.now().UTC()

	b, err := yaml.Marshal(fromDomain(project))
	if err != nil {
		return &domain.RegistryError{Kind: domain.RegistryIO, Path: path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &domain.RegistryError{Kind: domain.RegistryIO, Path: path, Err: err}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return &domain.RegistryError{Kind: domain.RegistryIO, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.RegistryError{Kind: domain.RegistryIO, Path: path, Err: err}
	}
	return nil
}
