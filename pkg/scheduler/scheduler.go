package scheduler

import (
	"context"
	"runtime"
	"runtime/debug"

	"github.com/google/uuid"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/threadsched/pkg/errors"
)

type Scheduler struct {
	id     string
	name   string
	worker *worker
	opts   options
	log    *zap.SugaredLogger
}

// NewScheduler starts a worker thread named threadName and returns once the
// thread is running.
func NewScheduler(threadName string, opts ...Option) *Scheduler {
	o := newOptions(opts...)
	id := uuid.NewString()

	log := o.Logger
	if log == nil {
		log = zap.S().Named("scheduler")
	}
	log = log.With("thread", threadName, "scheduler_id", id)

	s := &Scheduler{
		id:     id,
		name:   threadName,
		worker: newWorker(threadName, log, o.PanicPolicy, o.PanicHandler),
		opts:   o,
		log:    log,
	}
	s.worker.start()

	// An unreachable scheduler that was never closed still releases its thread.
	runtime.AddCleanup(s, func(w *worker) { w.shutdown() }, s.worker)

	log.Infow("scheduler started", "panic_policy", o.PanicPolicy)
	return s
}

func (s *Scheduler) ID() string { return s.id }

func (s *Scheduler) Name() string { return s.name }

// PerformAction runs action on the worker thread without waiting for it.
// Actions submitted from one goroutine run in submission order.
// After Close the action is silently dropped.
func (s *Scheduler) PerformAction(action Action) {
	s.worker.enqueue(action)
}

// PerformSync runs action on the worker thread and blocks until it returns.
//
// It must not be called from the worker thread itself: the worker would wait
// for an action only it can run. With the re-entrancy check enabled (the
// default) such a call fails with a ReentrantCallError instead of deadlocking.
func PerformSync[T any](s *Scheduler, action func() T) (T, error) {
	return PerformSyncContext(context.Background(), s, action)
}

// PerformSyncContext is PerformSync with a bound on how long the caller waits.
// When ctx is done first, ctx.Err() is returned and the action may still run later.
func PerformSyncContext[T any](ctx context.Context, s *Scheduler, action func() T) (T, error) {
	var zero T

	if s.opts.DetectReentrancy && s.worker.isCurrent() {
		return zero, srvErrors.NewReentrantCallError(s.name)
	}

	c := make(chan Result[T], 1)
	w := s.worker
	recoverPanic := s.opts.PanicPolicy == PanicPolicyRecover

	wrapped := func() {
		if recoverPanic {
			defer func() {
				if rec := recover(); rec != nil {
					err := srvErrors.NewPanicError(rec, debug.Stack())
					w.reportPanic(err)
					c <- Result[T]{Err: err}
				}
			}()
		}
		c <- Result[T]{Data: action()}
	}

	if !w.enqueue(wrapped) {
		return zero, srvErrors.NewSchedulerClosedError(s.name)
	}

	select {
	case r := <-c:
		return r.Data, r.Err
	case <-w.done():
		// The loop finishes the action it is running before exiting.
		select {
		case r := <-c:
			return r.Data, r.Err
		default:
			return zero, srvErrors.NewSchedulerClosedError(s.name)
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// IsWorkerThread reports whether the caller runs on this scheduler's worker thread.
func (s *Scheduler) IsWorkerThread() bool {
	return s.worker.isCurrent()
}

// Done is closed once the worker thread has exited after Close.
func (s *Scheduler) Done() <-chan struct{} {
	return s.worker.done()
}

// Close asks the worker thread to stop. It does not wait for the thread to
// exit; an action already running completes, pending ones are dropped,
// including those of blocked PerformSync callers which then fail with a
// SchedulerClosedError. Close is idempotent.
func (s *Scheduler) Close() {
	s.worker.shutdown()
	s.log.Debug("scheduler closed")
}
