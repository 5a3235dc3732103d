package ports

import (
	"context"

	"github.com/nrminor/py-refman/internal/domain"
)

// Registry is the collaborator contract the host boundary drives.
type Registry interface {
	Init(ctx context.Context) error
	ReadRegistry(ctx context.Context) (domain.Project, error)
	WriteRegistry(ctx context.Context, project *domain.Project) error
	DownloadDataset(ctx context.Context, project domain.Project, label string, dest string) error
}

// RegistryOpener resolves registry options into a usable Registry.
type RegistryOpener interface {
	Open(title, description string, loc domain.Location) (Registry, error)
}
