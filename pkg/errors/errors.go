package errors

import (
	"errors"
	"fmt"
)

// SchedulerClosedError is returned when work is submitted to, or still pending on,
// a scheduler whose worker has been shut down.
type SchedulerClosedError struct {
	name string
}

func NewSchedulerClosedError(name string) *SchedulerClosedError {
	return &SchedulerClosedError{name: name}
}

func (e *SchedulerClosedError) Error() string {
	return fmt.Sprintf("scheduler %q is closed", e.name)
}

func IsSchedulerClosedError(err error) bool {
	var e *SchedulerClosedError
	return errors.As(err, &e)
}

// ReentrantCallError is returned when a blocking call is made from the
// scheduler's own worker thread. Waiting there would never return.
type ReentrantCallError struct {
	name string
}

func NewReentrantCallError(name string) *ReentrantCallError {
	return &ReentrantCallError{name: name}
}

func (e *ReentrantCallError) Error() string {
	return fmt.Sprintf("blocking call on scheduler %q made from its own worker thread", e.name)
}

func IsReentrantCallError(err error) bool {
	var e *ReentrantCallError
	return errors.As(err, &e)
}

// PanicError wraps a value recovered from an action that panicked on the worker thread.
type PanicError struct {
	Value any
	Stack []byte
}

func NewPanicError(value any, stack []byte) *PanicError {
	return &PanicError{Value: value, Stack: stack}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker panicked: %v", e.Value)
}

// Unwrap exposes the recovered value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func IsPanicError(err error) bool {
	var e *PanicError
	return errors.As(err, &e)
}
