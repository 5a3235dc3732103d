// Package registryfinder locates a project registry by searching upward for its manifest.
package registryfinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/ports"
)

// Finder locates a registry root by searching for refman.yaml upward.
type Finder struct {
	ManifestFile string // defaults to "refman.yaml"
}

func NewFinder() *Finder {
	return &Finder{ManifestFile: domain.DefaultLayout().ManifestFile}
}

var _ ports.RegistryLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.RegistryError{
			Kind: domain.RegistryInvalidOptions,
			Err:  errors.New("start directory is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.RegistryError{Kind: domain.RegistryIO, Path: startDir, Err: err}
	}

	// A file path searches from its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		if info, err := os.Stat(filepath.Join(cur, f.ManifestFile)); err == nil && !info.IsDir() {
			return cur, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.RegistryError{
				Kind: domain.RegistryNotFound,
				Path: abs,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}
