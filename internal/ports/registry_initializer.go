package ports

import "github.com/nrminor/py-refman/internal/domain"

type RegistryInitializer interface {
	Init(spec domain.RegistrySpec) error
}
