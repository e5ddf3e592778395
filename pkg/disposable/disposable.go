package disposable

import (
	"sync"
	"sync/atomic"
)

// Disposable releases a resource or cancels pending work.
// Implementations in this package are idempotent and safe for concurrent use.
type Disposable interface {
	Dispose()
}

// Cancelable is a Disposable that can report whether it was disposed.
type Cancelable interface {
	Disposable
	IsDisposed() bool
}

type nop struct{}

func (nop) Dispose() {}

// Empty returns a Disposable that does nothing.
func Empty() Disposable {
	return nop{}
}

type action struct {
	disposed atomic.Bool
	fn       atomic.Pointer[func()]
}

// Create returns a Cancelable that runs fn on the first call to Dispose.
// The reference to fn is dropped once it has run.
func Create(fn func()) Cancelable {
	a := &action{}
	if fn != nil {
		a.fn.Store(&fn)
	}
	return a
}

func (a *action) Dispose() {
	if !a.disposed.CompareAndSwap(false, true) {
		return
	}
	if fn := a.fn.Swap(nil); fn != nil {
		(*fn)()
	}
}

func (a *action) IsDisposed() bool {
	return a.disposed.Load()
}

// Boolean is a plain disposed flag.
type Boolean struct {
	disposed atomic.Bool
}

func NewBoolean() *Boolean {
	return &Boolean{}
}

func (b *Boolean) Dispose() {
	b.disposed.Store(true)
}

func (b *Boolean) IsDisposed() bool {
	return b.disposed.Load()
}

// SingleAssignment holds at most one inner Disposable which may be assigned
// after the SingleAssignment itself was handed out.
//
// Disposing it disposes the inner one. Assigning an inner Disposable after
// Dispose was called disposes the newcomer right away, so a cancellation that
// arrives before the inner work exists is never lost.
type SingleAssignment struct {
	mu       sync.Mutex
	disposed bool
	assigned bool
	inner    Disposable
}

func NewSingleAssignment() *SingleAssignment {
	return &SingleAssignment{}
}

// Set assigns the inner Disposable. It panics when called twice.
func (s *SingleAssignment) Set(d Disposable) {
	s.mu.Lock()
	if s.assigned {
		s.mu.Unlock()
		panic("disposable: SingleAssignment already assigned")
	}
	s.assigned = true
	if !s.disposed {
		s.inner = d
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if d != nil {
		d.Dispose()
	}
}

func (s *SingleAssignment) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	inner := s.inner
	s.inner = nil
	s.mu.Unlock()

	if inner != nil {
		inner.Dispose()
	}
}

func (s *SingleAssignment) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Composite disposes a group of Disposables together.
type Composite struct {
	mu       sync.Mutex
	disposed bool
	items    []Disposable
}

func NewComposite(ds ...Disposable) *Composite {
	c := &Composite{items: make([]Disposable, 0, len(ds))}
	for _, d := range ds {
		if d != nil {
			c.items = append(c.items, d)
		}
	}
	return c
}

// Add puts d into the group, or disposes it immediately if the group is
// already disposed.
func (c *Composite) Add(d Disposable) {
	if d == nil {
		return
	}

	c.mu.Lock()
	if !c.disposed {
		c.items = append(c.items, d)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	d.Dispose()
}

func (c *Composite) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Composite) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	items := c.items
	c.items = nil
	c.mu.Unlock()

	for _, d := range items {
		d.Dispose()
	}
}

func (c *Composite) IsDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}
