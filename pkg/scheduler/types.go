package scheduler

import (
	"github.com/creasty/defaults"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/threadsched/pkg/errors"
)

// Action is a unit of work executed on the worker thread.
type Action func()

type Result[T any] struct {
	Data T
	Err  error
}

// PanicPolicy decides what happens when an action panics on the worker thread.
type PanicPolicy string

const (
	// PanicPolicyRecover recovers the panic, logs it and keeps the worker running.
	PanicPolicyRecover PanicPolicy = "recover"
	// PanicPolicyCrash lets the panic unwind the worker goroutine, which terminates the process.
	PanicPolicyCrash PanicPolicy = "crash"
)

func (p PanicPolicy) Valid() bool {
	return p == PanicPolicyRecover || p == PanicPolicyCrash
}

// PanicHandler is called on the worker thread after a panic was recovered.
type PanicHandler func(err *srvErrors.PanicError)

type options struct {
	Logger           *zap.SugaredLogger
	PanicPolicy      PanicPolicy `default:"recover"`
	PanicHandler     PanicHandler
	DetectReentrancy bool `default:"true"`
}

type Option func(*options)

// WithLogger replaces the default zap.S().Named("scheduler") logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) {
		o.Logger = l
	}
}

func WithPanicPolicy(p PanicPolicy) Option {
	return func(o *options) {
		o.PanicPolicy = p
	}
}

func WithPanicHandler(h PanicHandler) Option {
	return func(o *options) {
		o.PanicHandler = h
	}
}

// WithReentrancyCheck toggles the check that makes PerformSync fail instead of
// deadlocking when it is called from the worker thread.
func WithReentrancyCheck(enabled bool) Option {
	return func(o *options) {
		o.DetectReentrancy = enabled
	}
}

func newOptions(opts ...Option) options {
	var o options
	defaults.MustSet(&o)
	for _, opt := range opts {
		opt(&o)
	}
	if !o.PanicPolicy.Valid() {
		o.PanicPolicy = PanicPolicyRecover
	}
	return o
}
