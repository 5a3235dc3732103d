// Package hosterr funnels the registry's error families into the single error shape
// the host sees.
//
// Each family has a local adaptor that owns one value of that family, renders exactly
// the family's own text and converts into a *HostError of kind KindRejected. The
// adaptors never look inside the value they carry, so the host can read the message
// but cannot branch on what went wrong. Callers that need the structured error must
// inspect it before normalizing.
//
// Supporting a new family means adding one file with its adaptor and helpers.
package hosterr

import "errors"

// Kind is the outward error kind. There is only one.
type Kind string

const KindRejected Kind = "rejected"

// HostError is the outward-facing error. It deliberately does not unwrap.
type HostError struct {
	Kind    Kind
	Message string
}

func (e *HostError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// Adaptor is implemented by every family wrapper.
type Adaptor interface {
	error
	Host() *HostError
}

// AsHost reports whether err already crossed the boundary.
func AsHost(err error) (*HostError, bool) {
	var he *HostError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

func reject(a Adaptor) *HostError {
	return &HostError{Kind: KindRejected, Message: a.Error()}
}
