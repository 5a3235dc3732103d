package ports

import (
	"context"

	"github.com/nrminor/py-refman/internal/domain"
)

// DatasetBuilder validates file locations and builds a dataset entry.
type DatasetBuilder interface {
	TryNewDataset(ctx context.Context, label string, files domain.FileSet) (domain.Dataset, error)
}
