package scheduler

import (
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/threadsched/pkg/errors"
)

type queue[T any] []T

func (q *queue[T]) Len() int { return len(*q) }

func (q *queue[T]) Pop() T {
	old := *q
	x := old[0]
	var zero T
	old[0] = zero
	*q = old[1:]
	return x
}

func (q *queue[T]) Push(t T) {
	*q = append(*q, t)
}

// worker owns one goroutine locked to its own OS thread and runs the actions
// pushed to it one at a time, in the order they were enqueued.
type worker struct {
	name    string
	log     *zap.SugaredLogger
	policy  PanicPolicy
	onPanic PanicHandler

	mu     sync.Mutex
	queue  queue[Action]
	closed bool

	wake     chan struct{}
	stop     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once

	gid atomic.Uint64
}

func newWorker(name string, log *zap.SugaredLogger, policy PanicPolicy, onPanic PanicHandler) *worker {
	return &worker{
		name:    name,
		log:     log,
		policy:  policy,
		onPanic: onPanic,
		queue:   queue[Action]{},
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
}

// start launches the loop and returns once it is running on its thread.
func (w *worker) start() {
	ready := make(chan struct{})
	go w.run(ready)
	<-ready
}

func (w *worker) run(ready chan struct{}) {
	// The thread is never unlocked: when this goroutine returns the runtime
	// terminates the thread along with it.
	runtime.LockOSThread()

	if err := setThreadName(w.name); err != nil {
		w.log.Debugw("failed to set thread name", "error", err)
	}
	w.gid.Store(goroutineID())
	defer close(w.exited)
	defer w.gid.Store(0)

	w.log.Debugw("worker thread started", "tid", threadID())
	close(ready)

	for {
		select {
		case <-w.stop:
			w.log.Debugw("worker thread stopped", "dropped", w.discard())
			return
		case <-w.wake:
		}

		for {
			action, ok := w.next()
			if !ok {
				break
			}
			w.execute(action)
		}
	}
}

// next pops the oldest pending action. It reports false once the queue is
// empty or the worker was shut down.
func (w *worker) next() (Action, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.queue.Len() == 0 {
		return nil, false
	}
	return w.queue.Pop(), true
}

func (w *worker) discard() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := w.queue.Len()
	w.queue = queue[Action]{}
	return n
}

func (w *worker) execute(action Action) {
	if w.policy == PanicPolicyCrash {
		action()
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			w.reportPanic(srvErrors.NewPanicError(rec, debug.Stack()))
		}
	}()
	action()
}

func (w *worker) reportPanic(err *srvErrors.PanicError) {
	w.log.Errorw("action panicked", "panic", err.Value, "stack", string(err.Stack))
	if w.onPanic == nil {
		return
	}

	// A panicking handler must not take the loop down with it.
	defer func() {
		if rec := recover(); rec != nil {
			w.log.Errorw("panic handler panicked", "panic", rec, "stack", string(debug.Stack()))
		}
	}()
	w.onPanic(err)
}

// enqueue never blocks on the loop. It reports false, dropping the action,
// when the worker was already shut down.
func (w *worker) enqueue(action Action) bool {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.log.Debug("worker is shut down, action dropped")
		return false
	}
	w.queue.Push(action)
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
	return true
}

// shutdown asks the loop to stop before its next action. It does not wait.
func (w *worker) shutdown() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		close(w.stop)
	})
}

func (w *worker) done() <-chan struct{} {
	return w.exited
}

func (w *worker) isCurrent() bool {
	gid := w.gid.Load()
	return gid != 0 && gid == goroutineID()
}
