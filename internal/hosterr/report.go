package hosterr

// ReportAdaptor carries any other diagnostic (cancellation, panics, I/O) across the
// host boundary.
type ReportAdaptor struct {
	err error
}

func (a ReportAdaptor) Error() string    { return a.err.Error() }
func (a ReportAdaptor) Unwrap() error    { return a.err }
func (a ReportAdaptor) Host() *HostError { return reject(a) }

// Report normalizes an arbitrary error. A *HostError passes through untouched.
func Report[T any](v T, err error) (T, error) {
	if err == nil {
		return v, nil
	}
	var zero T
	if he, ok := AsHost(err); ok {
		return zero, he
	}
	return zero, ReportAdaptor{err: err}.Host()
}

func ReportErr(err error) error {
	_, err = Report(struct{}{}, err)
	return err
}
