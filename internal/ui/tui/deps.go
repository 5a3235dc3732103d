package tui

import (
	"context"
	"log/slog"

	"github.com/nrminor/py-refman/internal/domain"
)

// Source is the part of the host binding the browser drives.
type Source interface {
	ReadRegistry(ctx context.Context, loc domain.Location) (domain.Project, error)
	Download(ctx context.Context, label, dest string, loc domain.Location) error
	Remove(ctx context.Context, label string, loc domain.Location) (domain.Project, error)
}

type Deps struct {
	Source   Source
	Location domain.Location
	// Dest is where downloads land.
	Dest string

	Logger *slog.Logger
	Debug  bool
}
