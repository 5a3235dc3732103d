package hosterr

import (
	"errors"

	"github.com/nrminor/py-refman/internal/domain"
)

// DownloadAdaptor carries a network or write failure across the host boundary.
type DownloadAdaptor struct {
	err *domain.DownloadError
}

func (a DownloadAdaptor) Error() string    { return a.err.Error() }
func (a DownloadAdaptor) Unwrap() error    { return a.err }
func (a DownloadAdaptor) Host() *HostError { return reject(a) }

// Download normalizes the result of an operation that fails with *domain.DownloadError.
func Download[T any](v T, err error) (T, error) {
	if err == nil {
		return v, nil
	}
	var zero T
	var e *domain.DownloadError
	if !errors.As(err, &e) {
		return Report(zero, err)
	}
	return zero, DownloadAdaptor{err: e}.Host()
}

func DownloadErr(err error) error {
	_, err = Download(struct{}{}, err)
	return err
}
