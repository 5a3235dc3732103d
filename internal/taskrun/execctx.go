package taskrun

import (
	"context"
	"sync"
	"time"
)

// ExecContext is the scheduling scope of one Run call. It owns a cancellable
// context and tracks the goroutines started in it.
type ExecContext struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// ContextFactory allocates the ExecContext for a Run call.
type ContextFactory func(parent context.Context) (*ExecContext, error)

// NewExecContext is the default ContextFactory.
func NewExecContext(parent context.Context) (*ExecContext, error) {
	ctx, cancel := context.WithCancel(parent)
	return &ExecContext{ctx: ctx, cancel: cancel}, nil
}

func (ec *ExecContext) Context() context.Context {
	return ec.ctx
}

// Go runs fn on a new goroutine owned by the context.
func (ec *ExecContext) Go(fn func(ctx context.Context)) {
	ec.wg.Add(1)
	go func() {
		defer ec.wg.Done()
		fn(ec.ctx)
	}()
}

// Close cancels the context and waits up to grace for owned goroutines to return.
// It reports whether they all did.
func (ec *ExecContext) Close(grace time.Duration) bool {
	ec.cancel()

	done := make(chan struct{})
	go func() {
		ec.wg.Wait()
		close(done)
	}()

	if grace <= 0 {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}

	t := time.NewTimer(grace)
	defer t.Stop()
	select {
	case <-done:
		return true
	case <-t.C:
		return false
	}
}
