package jest

import "math"

// Callback is the shape every fake primitive in this package expects:
// a function accepting the positional arguments it was registered with.
// Host bindings (e.g. the gojahost adapter) convert their runtime's native
// callable into this shape at the boundary.
type Callback func(args ...any)

// coerceDelay implements the §4.2 delay-coercion rule: truncate to a
// non-negative 32-bit integer; a negative or non-numeric delay becomes 0.
func coerceDelay(delay any) int64 {
	var f float64
	switch v := delay.(type) {
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	default:
		return 0
	}
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	const max32 = float64(math.MaxInt32)
	if f > max32 {
		f = max32
	}
	return int64(f)
}

func bind(cb Callback, args []any) func() {
	return func() {
		cb(args...)
	}
}

// wrapCallback runs cb through the configured ModuleMocker, if any, so an
// external mocking framework can record invocations of the fake primitive
// itself. On a wrap error, or with no ModuleMocker configured, cb is
// returned unwrapped.
func (s *Scheduler[R]) wrapCallback(name string, cb any) any {
	if s.moduleMocker == nil {
		return cb
	}
	wrapped, err := s.moduleMocker.Wrap(cb)
	if err != nil {
		s.logger.Warn().Str("primitive", name).Err(err).Msg("jest: moduleMocker failed to wrap fake primitive; using unwrapped")
		return cb
	}
	return wrapped
}

// ScheduleTimeout is fakeSetTimeout's public entry point, for host adapters
// that need to schedule a fake timeout directly rather than going through
// a Host binding (e.g. gojahost.PromisifySetTimeout).
func (s *Scheduler[R]) ScheduleTimeout(cb Callback, delay any, args ...any) R {
	return s.fakeSetTimeout(cb, delay, args...)
}

// fakeSetTimeout implements §4.2's setTimeout.
func (s *Scheduler[R]) fakeSetTimeout(cb Callback, delay any, args ...any) R {
	if s.disposed {
		return s.zero()
	}
	id := s.nextID()
	s.timers[id] = &timerEntry{
		callback: bind(cb, args),
		expiry:   s.now + coerceDelay(delay),
		kind:     KindTimeout,
		id:       id,
	}
	return s.bridge.IDToRef(id)
}

// fakeSetInterval implements §4.2's setInterval.
func (s *Scheduler[R]) fakeSetInterval(cb Callback, delay any, args ...any) R {
	if s.disposed {
		return s.zero()
	}
	id := s.nextID()
	d := coerceDelay(delay)
	s.timers[id] = &timerEntry{
		callback: bind(cb, args),
		expiry:   s.now + d,
		interval: d,
		kind:     KindInterval,
		id:       id,
	}
	return s.bridge.IDToRef(id)
}

// clearByRef removes a timer entry of the given kind, translating ref via
// the bridge. Per P5, clearing an unknown ref is a no-op and reports false;
// clearing an entry of the wrong kind is also a no-op.
func (s *Scheduler[R]) clearByRef(ref R, kind TimerKind) bool {
	id, ok := s.bridge.RefToID(ref)
	if !ok {
		return false
	}
	t, ok := s.timers[id]
	if !ok || t.kind != kind {
		return false
	}
	delete(s.timers, id)
	return true
}

// fakeClearTimeout implements §4.2's clearTimeout.
func (s *Scheduler[R]) fakeClearTimeout(ref R) bool {
	if s.disposed {
		return false
	}
	return s.clearByRef(ref, KindTimeout)
}

// fakeClearInterval implements §4.2's clearInterval.
func (s *Scheduler[R]) fakeClearInterval(ref R) bool {
	if s.disposed {
		return false
	}
	return s.clearByRef(ref, KindInterval)
}

// fakeSetImmediate implements §4.2's setImmediate, plus its §9 safety net:
// a real setImmediate-equivalent fires the callback if the fake record is
// still queued when the real timer goes off (see scheduleImmediateFallback).
func (s *Scheduler[R]) fakeSetImmediate(cb Callback, args ...any) R {
	if s.disposed {
		return s.zero()
	}
	id := s.nextID()
	s.pushImmediate(&immediateEntry{
		id:       id,
		callback: bind(cb, args),
	})
	s.scheduleImmediateFallback(id)
	return s.bridge.IDToRef(id)
}

// fakeClearImmediate implements §4.2's clearImmediate.
func (s *Scheduler[R]) fakeClearImmediate(ref R) bool {
	if s.disposed {
		return false
	}
	id, ok := s.bridge.RefToID(ref)
	if !ok {
		return false
	}
	_, removed := s.removeImmediate(id)
	return removed
}

// fakeNextTick implements §4.2's nextTick, plus its §9 safety net: a real
// next-tick-equivalent fires the callback if it has not already run by the
// time the real timer goes off (see scheduleTickFallback). It returns the
// internal tick id so gojahost and similar adapters can log against it.
func (s *Scheduler[R]) fakeNextTick(cb Callback, args ...any) string {
	if s.disposed {
		return ""
	}
	id := s.nextTickID()
	callback := bind(cb, args)
	s.pushTick(&tickEntry{
		id:       id,
		callback: callback,
	})
	s.scheduleTickFallback(id, callback)
	return id
}

// animationFrameIntervalMS is the fixed 1000/60 delay §4.2 defines
// requestAnimationFrame in terms of.
const animationFrameIntervalMS = 1000.0 / 60.0

// fakeRequestAnimationFrame implements §4.2's requestAnimationFrame:
// setTimeout(() => cb(virtualNow), 1000/60). Per the documented Open
// Question in §9, the callback receives the virtual clock in milliseconds,
// not a high-resolution timestamp.
func (s *Scheduler[R]) fakeRequestAnimationFrame(cb Callback) R {
	if s.disposed {
		return s.zero()
	}
	id := s.nextID()
	s.timers[id] = &timerEntry{
		callback: func() { cb(s.now) },
		expiry:   s.now + coerceDelay(animationFrameIntervalMS),
		kind:     KindTimeout,
		id:       id,
	}
	return s.bridge.IDToRef(id)
}

// fakeCancelAnimationFrame implements §4.2's cancelAnimationFrame. Frames
// are stored as ordinary timeouts (see timer.go), so this is clearTimeout
// under another name.
func (s *Scheduler[R]) fakeCancelAnimationFrame(ref R) bool {
	if s.disposed {
		return false
	}
	return s.clearByRef(ref, KindTimeout)
}
