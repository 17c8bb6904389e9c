package jest

import "time"

// scheduleImmediateFallback arranges the §9 safety net for setImmediate: a
// real setImmediate-equivalent (time.AfterFunc with a zero delay, the
// idiomatic Go stand-in for "the platform's real immediate facility",
// grounded on the real-primitive background timer cardinalby-wallclock uses
// to back its own fakes) that fires the callback exactly once, if and only
// if the entry is still queued when the real timer goes off.
// popImmediate/removeImmediate make "still queued" an atomic claim, so the
// callback runs once, through whichever of a drain or this fallback claims
// it first. The zero-delay timer fires on its own goroutine, so it can claim
// an entry before the test's drain reaches it.
func (s *Scheduler[R]) scheduleImmediateFallback(id uint64) {
	time.AfterFunc(0, func() {
		if s.disposed {
			return
		}
		im, ok := s.removeImmediate(id)
		if !ok {
			return
		}
		im.callback()
	})
}

// scheduleTickFallback is scheduleImmediateFallback's counterpart for
// process.nextTick/queueMicrotask. Presence is tracked via the
// cancelled-ticks set rather than queue removal, since a fired tick is
// recorded there whether it ran through the virtual drain or this fallback;
// markTickCancelled's return value is the atomic claim on who gets to run
// cb. The entry is also stripped from the queue on the fallback path so a
// later drain sees it as already gone rather than merely cancelled.
func (s *Scheduler[R]) scheduleTickFallback(id string, cb func()) {
	time.AfterFunc(0, func() {
		if s.disposed {
			return
		}
		if !s.markTickCancelled(id) {
			return
		}
		s.removeTick(id)
		cb()
	})
}
