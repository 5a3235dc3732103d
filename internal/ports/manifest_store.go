package ports

import "github.com/nrminor/py-refman/internal/domain"

// ManifestStore persists a registry manifest.
type ManifestStore interface {
	Load(path string) (domain.Project, error)
	Save(path string, project domain.Project) error
}
