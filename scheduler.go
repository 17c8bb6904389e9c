package jest

import (
	"sync"

	"github.com/rs/zerolog"
)

// Primitive names written into a [Host]. These match the names a
// JavaScript-hosted implementation would use; a Go host is free to bind
// them under a [MapHost] with the same keys, or a wrapping Host that
// translates to whatever naming convention its runtime prefers.
const (
	NameSetTimeout            = "setTimeout"
	NameClearTimeout          = "clearTimeout"
	NameSetInterval           = "setInterval"
	NameClearInterval         = "clearInterval"
	NameSetImmediate          = "setImmediate"
	NameClearImmediate        = "clearImmediate"
	NameNextTick              = "nextTick"
	NameRequestAnimationFrame = "requestAnimationFrame"
	NameCancelAnimationFrame  = "cancelAnimationFrame"
)

// primitiveNames lists every family the installer probes for and swaps, in
// the fixed order useFakeTimers/useRealTimers apply them.
var primitiveNames = [...]string{
	NameSetTimeout, NameClearTimeout,
	NameSetInterval, NameClearInterval,
	NameSetImmediate, NameClearImmediate,
	NameNextTick,
	NameRequestAnimationFrame, NameCancelAnimationFrame,
}

// Scheduler is a virtual-time timer scheduler parameterized over R, the
// opaque timer-handle type ("TimerRef") that this host's set-timer
// primitives hand back to callers. Construct one with [New]; it is not
// safe for concurrent use (see the package doc's Concurrency section).
type Scheduler[R any] struct {
	host   Host
	bridge Bridge[R]

	moduleMocker   ModuleMocker
	logger         zerolog.Logger
	stackFormatter StackFormatter
	maxLoops       int

	now       int64
	idCounter uint64
	disposed  bool
	// installed records whether UseFakeTimers was called on this instance
	// more recently than UseRealTimers (RunWithRealTimers clears it while
	// its callback runs). The §7 "not installed" probe reads only this
	// flag and never inspects the host, so it is not cleared when another
	// Scheduler, or any other writer, replaces the bindings in the host.
	installed bool

	timers map[uint64]*timerEntry

	// mu guards ticks, immediates, and cancelledTicks only. Every other
	// field is touched exclusively from the caller's own goroutine per
	// the single-threaded contract described in the package doc; these
	// three are the one exception, since the real-primitive safety net
	// (see fallback.go) fires their callbacks from a goroutine the caller
	// does not control.
	mu             sync.Mutex
	ticks          []*tickEntry
	immediates     []*immediateEntry
	cancelledTicks map[string]struct{}

	// originals captures the host's bindings at construction time, one
	// entry per name in primitiveNames that the host actually had bound.
	// useRealTimers restores from this table; it is never mutated after
	// New returns.
	originals map[string]any
	// fakes is built lazily the first time UseFakeTimers is called.
	fakes map[string]any
}

// New constructs a Scheduler bound to host, using bridge to translate
// between internal ids and the caller-facing R handle type. The host's
// current bindings for every known primitive name are captured immediately
// as the "original" table that UseRealTimers and RunWithRealTimers restore.
func New[R any](host Host, bridge Bridge[R], opts ...Option[R]) *Scheduler[R] {
	o := resolveOptions(opts)

	s := &Scheduler[R]{
		host:           host,
		bridge:         bridge,
		moduleMocker:   o.moduleMocker,
		logger:         o.logger,
		stackFormatter: o.stackFormatter,
		maxLoops:       o.maxLoops,
		timers:         make(map[uint64]*timerEntry),
		cancelledTicks: make(map[string]struct{}),
		originals:      make(map[string]any, len(primitiveNames)),
	}

	for _, name := range primitiveNames {
		if v, ok := host.Get(name); ok {
			s.originals[name] = v
		}
	}

	return s
}

// Now returns the scheduler's current virtual clock reading, in integer
// milliseconds since construction or the last [Scheduler.Reset].
func (s *Scheduler[R]) Now() int64 {
	return s.now
}

// GetTimerCount returns the combined number of pending timeouts, intervals,
// immediates, and ticks (spec invariant I5).
func (s *Scheduler[R]) GetTimerCount() int {
	return len(s.timers) + s.immediateCount() + s.tickCount()
}

// ClearAllTimers empties every container without touching the virtual
// clock or the cancelled-ticks set.
func (s *Scheduler[R]) ClearAllTimers() {
	for id := range s.timers {
		delete(s.timers, id)
	}
	s.clearQueues()
}

// Reset reinitialises the virtual clock to 0, empties every container, and
// clears the cancelled-ticks set.
func (s *Scheduler[R]) Reset() {
	s.now = 0
	s.ClearAllTimers()
	s.clearCancelledTicks()
}

// Dispose marks the scheduler disposed and clears every container. Once
// disposed, every fake primitive short-circuits to a null-ish return
// without touching state, and no further scheduling has effect
// (spec invariant I4).
func (s *Scheduler[R]) Dispose() {
	s.disposed = true
	s.ClearAllTimers()
}

// zero returns the zero value of R, used as the null-ish return fakes give
// back once the scheduler is disposed.
func (s *Scheduler[R]) zero() R {
	var r R
	return r
}
