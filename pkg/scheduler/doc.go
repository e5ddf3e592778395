// Package scheduler implements a single-threaded scheduler that runs every
// submitted action on one dedicated worker thread.
//
// Each Scheduler owns exactly one worker goroutine, locked to its own OS
// thread for the goroutine's whole life. Callers on any goroutine hand actions
// to it; the worker runs them one at a time, in the order each caller
// submitted them.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                           Scheduler                                 │
//	│                                                                     │
//	│   PerformAction(fn)   PerformSync(fn)   Schedule(state, fn)         │
//	│          │                   │                  │                   │
//	│          └───────────────────┼──────────────────┘                   │
//	│                              ▼                                      │
//	│                        enqueue(action)                              │
//	│                              │                                      │
//	│  ┌───────────────────────────┴─────────────────────────────┐        │
//	│  │                   Queue (mutex guarded)                 │        │
//	│  │  [action1] [action2] [action3] ...                      │        │
//	│  └───────────────────────────┬─────────────────────────────┘        │
//	│                              │ wake                                 │
//	│                              ▼                                      │
//	│  ┌─────────────────────────────────────────────────────────┐        │
//	│  │ Worker goroutine (runtime.LockOSThread, named thread)   │        │
//	│  │   for { wait for wake; run pending actions in order }   │        │
//	│  └─────────────────────────────────────────────────────────┘        │
//	└─────────────────────────────────────────────────────────────────────┘
//
// # Operations
//
// PerformAction:
//   - Fire-and-forget, never blocks the caller
//   - Dropped silently once the scheduler is closed
//
// PerformSync / PerformSyncContext:
//   - Blocks until the action has run on the worker and returns its result
//   - The result travels over a buffered channel, so it can only be read
//     after the action produced it
//   - Must not be called from the worker thread (see Re-entrancy)
//
// Schedule:
//   - The immediate scheduling contract: schedule a state value plus a
//     continuation, get a Disposable back
//   - The continuation itself returns a Disposable that is attached to the
//     returned handle
//
// # Worker Lifecycle
//
//	┌─────────┐  NewScheduler  ┌─────────┐    Close     ┌───────────┐
//	│ created │ ─────────────► │ running │ ───────────► │ cancelled │
//	└─────────┘                └─────────┘              └───────────┘
//
// NewScheduler returns once the worker thread is running. The loop blocks
// while idle, it does not exit because the queue drained. Close is advisory:
// the action currently executing completes, pending actions are discarded and
// later submissions are dropped. Done is closed when the thread has exited.
//
// # Cancellation
//
// Schedule returns a composite of two Disposables:
//
//	Composite
//	├── SingleAssignment (outer) - checked by the queued action before it runs,
//	│                              later holds the continuation's Disposable
//	└── release                  - drops the state and continuation references
//
//	d := s.Schedule(state, func(v any) disposable.Disposable {
//	    // runs on the worker thread
//	    return nested
//	})
//	d.Dispose() // before it runs: continuation never runs
//	            // after it ran:  nested.Dispose() is called
//
// # Panic Recovery
//
// With PanicPolicyRecover (the default) a panicking action is recovered, logged
// with its stack and passed to the PanicHandler, and the worker keeps running.
// PerformSync returns a PanicError in that case. With PanicPolicyCrash the
// panic terminates the process.
//
// # Re-entrancy
//
// Calling PerformSync from an action already running on the worker would wait
// forever. The scheduler records the worker goroutine id and, unless disabled
// with WithReentrancyCheck(false), such a call returns a ReentrantCallError.
//
// # Usage Example
//
//	s := scheduler.NewScheduler("render")
//	defer s.Close()
//
//	s.PerformAction(func() {
//	    // runs on the "render" thread
//	})
//
//	n, err := scheduler.PerformSync(s, func() int {
//	    return 42
//	})
package scheduler
