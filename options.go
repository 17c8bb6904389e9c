package jest

import "github.com/rs/zerolog"

const defaultMaxLoops = 100_000

// Option configures a [Scheduler] at construction time. Options are applied
// in order during [New].
type Option[R any] func(*schedulerOptions[R])

type schedulerOptions[R any] struct {
	maxLoops       int
	moduleMocker   ModuleMocker
	logger         zerolog.Logger
	stackFormatter StackFormatter
}

func resolveOptions[R any](opts []Option[R]) *schedulerOptions[R] {
	o := &schedulerOptions[R]{
		maxLoops:       defaultMaxLoops,
		logger:         defaultLogger(),
		stackFormatter: defaultStackFormatter,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithMaxLoops overrides the default recursion bound (100,000) enforced by
// every drain operation. n must be positive.
func WithMaxLoops[R any](n int) Option[R] {
	return func(o *schedulerOptions[R]) {
		if n > 0 {
			o.maxLoops = n
		}
	}
}

// WithModuleMocker configures the external function-instrumentation
// collaborator used to wrap fake primitives before installation, so a test
// runner can assert on call counts/arguments of e.g. the faked setTimeout
// itself (as opposed to the callbacks passed to it). See [ModuleMocker].
func WithModuleMocker[R any](m ModuleMocker) Option[R] {
	return func(o *schedulerOptions[R]) {
		o.moduleMocker = m
	}
}

// WithLogger overrides the zerolog.Logger used for the non-fatal "fakes not
// installed" diagnostic (§7 of the spec this package implements).
func WithLogger[R any](logger zerolog.Logger) Option[R] {
	return func(o *schedulerOptions[R]) {
		o.logger = logger
	}
}

// WithStackFormatter overrides how a stack trace is rendered for the
// not-installed diagnostic. The default walks runtime.Callers, skipping
// frames inside this package.
func WithStackFormatter[R any](f StackFormatter) Option[R] {
	return func(o *schedulerOptions[R]) {
		if f != nil {
			o.stackFormatter = f
		}
	}
}
