package taskrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultGrace = 250 * time.Millisecond
	tracerName   = "github.com/nrminor/py-refman/internal/taskrun"
)

// Operation is a deferred computation. Run invokes it at most once, with a context
// that is cancelled when the operation loses the race.
type Operation[T any] func(ctx context.Context) (T, error)

// Metrics receives one observation per finished Run call.
type Metrics interface {
	RunFinished(outcome Outcome, elapsed time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) RunFinished(Outcome, time.Duration) {}

// Runner holds the collaborators shared by Run calls. It carries no per-call state.
type Runner struct {
	interrupt  Interrupt
	newContext ContextFactory
	logger     *slog.Logger
	grace      time.Duration
	exit       func(code int)
	metrics    Metrics
	tracer     trace.Tracer
}

type Option func(*Runner)

func WithInterrupt(i Interrupt) Option {
	return func(r *Runner) { r.interrupt = i }
}

func WithContextFactory(f ContextFactory) Option {
	return func(r *Runner) { r.newContext = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithGrace bounds how long a finished call waits for an abandoned operation to return.
func WithGrace(d time.Duration) Option {
	return func(r *Runner) { r.grace = d }
}

// WithExit replaces os.Exit on the fatal path (useful for tests).
func WithExit(exit func(code int)) Option {
	return func(r *Runner) { r.exit = exit }
}

func WithMetrics(m Metrics) Option {
	return func(r *Runner) {
		if m != nil {
			r.metrics = m
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) {
		if t != nil {
			r.tracer = t
		}
	}
}

func New(opts ...Option) *Runner {
	r := &Runner{
		interrupt:  NewOSInterrupt(),
		newContext: NewExecContext,
		logger:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		grace:      defaultGrace,
		exit:       os.Exit,
		metrics:    nopMetrics{},
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type result[T any] struct {
	val T
	err error
}

// Run drives op inside a fresh ExecContext and races it against the runner's
// Interrupt and the parent context.
//
// If op finishes first its value and error are returned unchanged. If the interrupt
// is observed first, Run returns ErrCancelled and no value. If the parent context
// ends first, the returned error matches both ErrCancelled and ctx.Err().
//
// Failing to allocate the ExecContext is fatal: the process exits.
func Run[T any](ctx context.Context, r *Runner, op Operation[T]) (T, error) {
	var zero T
	if ctx == nil {
		ctx = context.Background()
	}

	callID := ulid.Make().String()
	log := r.logger.With("call_id", callID)
	start := time.Now()

	ctx, span := r.tracer.Start(ctx, "taskrun.Run", trace.WithAttributes(attribute.String("call_id", callID)))
	defer span.End()

	ec, err := r.newContext(ctx)
	if err != nil {
		log.Error("taskrun.fatal", "error", err)
		r.exit(1)
		panic(fmt.Sprintf("taskrun: execution context unavailable: %v", err))
	}
	defer func() {
		if !ec.Close(r.grace) {
			log.Warn("taskrun.abandoned", "grace_ms", r.grace.Milliseconds())
		}
	}()

	fired, unsubscribe := r.interrupt.Subscribe()
	defer unsubscribe()

	done := make(chan result[T], 1)
	ec.Go(func(ctx context.Context) {
		v, err := drive(ctx, op)
		done <- result[T]{val: v, err: err}
	})

	log.Debug("taskrun.start")

	select {
	case res := <-done:
		outcome := OutcomeOK
		if res.err != nil {
			outcome = OutcomeOperationFailed
			span.SetStatus(codes.Error, "operation failed")
			span.RecordError(res.err)

			var pe *PanicError
			if errors.As(res.err, &pe) {
				log.Error("taskrun.panic", "panic", fmt.Sprint(pe.Value), "stack", string(pe.Stack))
			}
		}
		r.finish(log, outcome, start)
		return res.val, res.err

	case <-fired:
		span.SetStatus(codes.Error, "cancelled")
		r.finish(log, OutcomeCancelled, start)
		return zero, ErrCancelled

	case <-ctx.Done():
		span.SetStatus(codes.Error, "parent done")
		r.finish(log, OutcomeCancelled, start)
		return zero, &parentDoneError{cause: ctx.Err()}
	}
}

func (r *Runner) finish(log *slog.Logger, outcome Outcome, start time.Time) {
	elapsed := time.Since(start)
	r.metrics.RunFinished(outcome, elapsed)
	if outcome == OutcomeCancelled {
		log.Info("taskrun.cancelled", "elapsed_ms", elapsed.Milliseconds())
		return
	}
	log.Debug("taskrun.done", "outcome", string(outcome), "elapsed_ms", elapsed.Milliseconds())
}

// drive invokes op, turning a panic into a *PanicError.
func drive[T any](ctx context.Context, op Operation[T]) (v T, err error) {
	defer func() {
		if p := recover(); p != nil {
			var zero T
			v = zero
			err = &PanicError{Value: p, Stack: debug.Stack()}
		}
	}()
	return op(ctx)
}
