// Package disposable provides cancellation handles for scheduled work.
//
// A Disposable is handed back to the caller whenever work is scheduled.
// Calling Dispose before the work runs prevents it from running; calling it
// afterwards releases whatever the work left behind (for example a nested
// scheduled operation).
//
// # Building Blocks
//
//	┌──────────────────┬──────────────────────────────────────────────────┐
//	│ Type             │ Behavior on Dispose                              │
//	├──────────────────┼──────────────────────────────────────────────────┤
//	│ Empty()          │ nothing                                          │
//	│ Create(fn)       │ runs fn once, then drops the reference to fn     │
//	│ Boolean          │ sets the disposed flag                           │
//	│ SingleAssignment │ disposes the inner Disposable, now or when Set   │
//	│ Composite        │ disposes every member, now or when Added         │
//	└──────────────────┴──────────────────────────────────────────────────┘
//
// All of them flip their disposed state exactly once; further Dispose calls
// are no-ops. Every type is safe for concurrent use.
//
// # Late Assignment
//
// SingleAssignment and Composite accept members after they were disposed.
// The member is disposed on the spot instead of being stored:
//
//	outer := disposable.NewSingleAssignment()
//	outer.Dispose()
//	outer.Set(inner) // inner.Dispose() is called here
package disposable
