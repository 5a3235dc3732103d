package taskrun

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned by Run when the interrupt was observed before the
// operation completed.
var ErrCancelled = errors.New("operation canceled by Ctrl+C")

// Outcome classifies how a Run call ended.
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeOperationFailed Outcome = "operation_failed"
	OutcomeCancelled       Outcome = "cancelled"
)

// Classify maps a Run error onto its Outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrCancelled):
		return OutcomeCancelled
	default:
		return OutcomeOperationFailed
	}
}

// parentDoneError reports that the caller's context ended before the operation.
// It matches both ErrCancelled and the context's own error.
type parentDoneError struct {
	cause error
}

func (e *parentDoneError) Error() string {
	return fmt.Sprintf("%s: %v", ErrCancelled.Error(), e.cause)
}

func (e *parentDoneError) Is(target error) bool { return target == ErrCancelled }

func (e *parentDoneError) Unwrap() error { return e.cause }

// PanicError carries a panic recovered from an operation.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("operation panicked: %v", e.Value)
}
