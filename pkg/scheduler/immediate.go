package scheduler

import (
	"sync/atomic"

	"github.com/kubev2v/threadsched/pkg/disposable"
)

// ImmediateScheduler runs a continuation over a state value as soon as it can
// and hands back a Disposable that cancels it if it has not run yet.
type ImmediateScheduler interface {
	Schedule(state any, action func(any) disposable.Disposable) disposable.Disposable
}

var _ ImmediateScheduler = (*Scheduler)(nil)

type scheduledItem struct {
	state  any
	action func(any) disposable.Disposable
}

// Schedule enqueues action(state) on the worker thread.
//
// Disposing the returned Disposable before the action runs keeps it from
// running. Disposing it afterwards disposes the Disposable the action
// returned, whenever that gets assigned. Dispose is idempotent and may be
// called from any goroutine.
func (s *Scheduler) Schedule(state any, action func(any) disposable.Disposable) disposable.Disposable {
	outer := disposable.NewSingleAssignment()

	var item atomic.Pointer[scheduledItem]
	item.Store(&scheduledItem{state: state, action: action})

	s.worker.enqueue(func() {
		if outer.IsDisposed() {
			return
		}
		it := item.Load()
		if it == nil {
			return
		}
		outer.Set(it.action(it.state))
	})

	// Dropping the item lets state and action be collected while the queued
	// closure waits for its turn.
	release := disposable.Create(func() {
		item.Store(nil)
	})

	return disposable.NewComposite(outer, release)
}

// ScheduleState is Schedule with a typed state.
//
// A nil state reaches action as the zero value of S. An ImmediateScheduler
// that hands the continuation a state of any other type makes it panic.
func ScheduleState[S any](s ImmediateScheduler, state S, action func(S) disposable.Disposable) disposable.Disposable {
	return s.Schedule(state, func(v any) disposable.Disposable {
		var typed S
		if v != nil {
			typed = v.(S)
		}
		return action(typed)
	})
}
