package hosterr

import (
	"errors"

	"github.com/nrminor/py-refman/internal/domain"
)

// EntryAdaptor carries a dataset entry failure across the host boundary.
type EntryAdaptor struct {
	err *domain.EntryError
}

func (a EntryAdaptor) Error() string    { return a.err.Error() }
func (a EntryAdaptor) Unwrap() error    { return a.err }
func (a EntryAdaptor) Host() *HostError { return reject(a) }

// Entry normalizes the result of an operation that fails with *domain.EntryError.
func Entry[T any](v T, err error) (T, error) {
	if err == nil {
		return v, nil
	}
	var zero T
	var e *domain.EntryError
	if !errors.As(err, &e) {
		return Report(zero, err)
	}
	return zero, EntryAdaptor{err: e}.Host()
}

// EntryErr is Entry for operations without a value.
func EntryErr(err error) error {
	_, err = Entry(struct{}{}, err)
	return err
}
