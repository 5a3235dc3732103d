package hosterr

import (
	"errors"

	"github.com/nrminor/py-refman/internal/domain"
)

// RegistryAdaptor carries a registry state failure across the host boundary.
type RegistryAdaptor struct {
	err *domain.RegistryError
}

func (a RegistryAdaptor) Error() string    { return a.err.Error() }
func (a RegistryAdaptor) Unwrap() error    { return a.err }
func (a RegistryAdaptor) Host() *HostError { return reject(a) }

// Registry normalizes the result of an operation that fails with *domain.RegistryError.
func Registry[T any](v T, err error) (T, error) {
	if err == nil {
		return v, nil
	}
	var zero T
	var e *domain.RegistryError
	if !errors.As(err, &e) {
		return Report(zero, err)
	}
	return zero, RegistryAdaptor{err: e}.Host()
}

func RegistryErr(err error) error {
	_, err = Registry(struct{}{}, err)
	return err
}
