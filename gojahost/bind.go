package gojahost

import (
	"github.com/dop251/goja"

	"github.com/Hk92a/jest"
)

// primitiveNames lists every global New pre-seeds and Bind later installs
// fakes over. A fresh goja.Runtime ships with none of these bound (unlike a
// browser or Node global object), so jest.Scheduler.UseFakeTimers, which
// only installs a fake for a name the host already Has, would otherwise
// install nothing at all. See jest.Scheduler's own scheduler_test.go
// (newTestScheduler) for the same pattern applied to a MapHost.
var primitiveNames = [...]string{
	jest.NameSetTimeout, jest.NameClearTimeout,
	jest.NameSetInterval, jest.NameClearInterval,
	jest.NameSetImmediate, jest.NameClearImmediate,
	jest.NameNextTick,
	jest.NameRequestAnimationFrame, jest.NameCancelAnimationFrame,
}

// New constructs a *jest.Scheduler[int64] bound to rt's global object. The
// int64 TimerRef matches the JS numeric handle real setTimeout/setInterval
// implementations return.
//
// rt's globals are pre-seeded with a placeholder (undefined) binding for
// every timer primitive name before the scheduler captures its "originals"
// table, so a later UseFakeTimers call (Bind's job) has something to probe
// with Host.Has and installs its fakes rather than silently skipping every
// name.
func New(rt *goja.Runtime, opts ...jest.Option[int64]) *jest.Scheduler[int64] {
	for _, name := range primitiveNames {
		if rt.GlobalObject().Get(name) == nil {
			rt.Set(name, goja.Undefined())
		}
	}

	host := NewRuntimeHost(rt)
	bridge := jest.Bridge[int64]{
		IDToRef: func(id uint64) int64 { return int64(id) },
		RefToID: func(ref int64) (uint64, bool) {
			if ref < 0 {
				return 0, false
			}
			return uint64(ref), true
		},
	}
	return jest.New(host, bridge, opts...)
}

// Bind installs sched's fakes into rt's global object (equivalent to
// sched.UseFakeTimers(), which it calls), then additionally exposes
// process.nextTick as a JavaScript global, aliased to the same Tick
// primitive as queueMicrotask/nextTick — both schedule into the same
// internal tick sequence, matching a real Node-like host where
// process.nextTick and queueMicrotask are observably distinct queues only
// in relative priority, not in kind, for the purposes of this scheduler.
func Bind(rt *goja.Runtime, sched *jest.Scheduler[int64]) error {
	sched.UseFakeTimers()

	host := NewRuntimeHost(rt)
	nextTick, ok := host.Get(jest.NameNextTick)
	if !ok {
		return nil
	}
	host.Set("queueMicrotask", nextTick)

	process := rt.NewObject()
	if err := process.Set("nextTick", nextTick); err != nil {
		return err
	}
	rt.Set("process", process)
	return nil
}

// PromisifySetTimeout is the goja-specific counterpart of
// [jest.Scheduler.TimeoutAsFuture]: it returns a JS-callable function of
// (delay, value) that schedules a fake timeout and returns a Promise
// resolved with value once that timeout fires. This is the target-language
// realization of the source's "custom promisify" protocol hook (see
// jest.Scheduler.TimeoutAsFuture's doc comment). It does not use
// TimeoutAsFuture's channel; it schedules through
// [jest.Scheduler.ScheduleTimeout] and resolves the Promise in that
// timeout's callback.
func PromisifySetTimeout(rt *goja.Runtime, sched *jest.Scheduler[int64]) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		delay := call.Argument(0).ToInteger()
		var value any
		if len(call.Arguments) > 1 {
			value = call.Argument(1).Export()
		}

		promise, resolve, _ := rt.NewPromise()
		// Resolved synchronously on whatever goroutine drains the
		// underlying fake timeout, never from a separate goroutine: the
		// goja runtime is not safe to touch from any other thread.
		sched.ScheduleTimeout(func(args ...any) {
			resolve(value)
		}, delay)
		return rt.ToValue(promise)
	}
}
