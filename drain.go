package jest

// isInstalled reports whether this instance's UseFakeTimers ran more recently
// than its UseRealTimers. It does not look at the host, so it stays true if
// something else has since replaced the fakes there. This is tracked as a plain per-instance
// flag rather than by recognizing a fake in the host by identity: a
// reflect.Value.Pointer() on a bound method only yields the method's code
// entry point, which is identical across every *Scheduler[R] instance
// regardless of receiver, so it cannot tell two schedulers sharing a host
// apart. Used by every drain to decide whether to emit the §7 not-installed
// warning.
func (s *Scheduler[R]) isInstalled() bool {
	return s.installed
}

func (s *Scheduler[R]) probe(drain string) {
	if !s.isInstalled() {
		s.warnNotInstalled(drain)
	}
}

// RunAllTicks repeatedly pops the head of the tick sequence, skipping any
// id already present in the cancelled-ticks set, marking it cancelled
// before invocation (so the real-nextTick safety net skips it), and
// invoking its callback. It enforces the recursion guard and returns a
// *RecursionError if maxLoops is reached before the sequence empties.
func (s *Scheduler[R]) RunAllTicks() error {
	s.probe("ticks")
	return s.runAllTicksNoProbe()
}

// RunAllImmediates repeatedly pops the head of the immediate sequence and
// invokes its callback. The popped entry is removed before the callback
// runs, so a panicking callback still leaves the sequence consistent (the
// spec's "finally" clearImmediate is modeled as removal-before-invoke
// rather than removal-in-defer, since Go panics already unwind past any
// later bookkeeping regardless).
func (s *Scheduler[R]) RunAllImmediates() error {
	s.probe("immediates")
	return s.runAllImmediatesNoProbe()
}

// nextTimerHandle returns the timer with the earliest expiry, ties broken
// by ascending id (equivalently, insertion order, since ids are minted in
// insertion order). ok is false if no timers remain.
func (s *Scheduler[R]) nextTimerHandle() (t *timerEntry, ok bool) {
	for _, cand := range s.timers {
		if t == nil || cand.expiry < t.expiry || (cand.expiry == t.expiry && cand.id < t.id) {
			t = cand
		}
	}
	return t, t != nil
}

// fire runs a timer's callback. Intervals are re-inserted at
// now+interval *before* the callback runs (§7's policy), so a callback
// that inspects or clears its own interval observes the rescheduled state,
// and a callback panic still leaves the reschedule intact. Timeouts
// (including animation frames, stored as timeouts) are removed before
// running and do not return.
func (s *Scheduler[R]) fire(t *timerEntry) error {
	switch t.kind {
	case KindTimeout:
		delete(s.timers, t.id)
	case KindInterval:
		t.expiry = s.now + t.interval
	default:
		return &InvariantError{Detail: "timer has unknown kind"}
	}
	t.callback()
	return nil
}

// RunAllTimers drains ticks, then immediates, then enters the main loop:
// repeatedly find and fire the earliest-expiry timer, re-draining any
// newly-scheduled ticks and immediates after each fire. The virtual clock
// is not advanced (§9's documented Open Question: this is the source
// behavior, preserved intentionally).
func (s *Scheduler[R]) RunAllTimers() error {
	s.probe("timers")
	if err := s.runAllTicksNoProbe(); err != nil {
		return err
	}
	if err := s.runAllImmediatesNoProbe(); err != nil {
		return err
	}
	for i := 0; i < s.maxLoops; i++ {
		t, ok := s.nextTimerHandle()
		if !ok {
			return nil
		}
		if err := s.fire(t); err != nil {
			return err
		}
		if err := s.runAllTicksNoProbe(); err != nil {
			return err
		}
		if err := s.runAllImmediatesNoProbe(); err != nil {
			return err
		}
	}
	if _, ok := s.nextTimerHandle(); !ok {
		return nil
	}
	return &RecursionError{Drain: "timers", MaxLoops: s.maxLoops}
}

// runAllTicksNoProbe and runAllImmediatesNoProbe are the sub-drains
// RunAllTimers interleaves between timer firings; they share the same
// recursion-guarded loop bodies without re-emitting the not-installed
// probe on every interleaving.
func (s *Scheduler[R]) runAllTicksNoProbe() error {
	for i := 0; i < s.maxLoops; i++ {
		t, ok := s.popTick()
		if !ok {
			return nil
		}
		if !s.markTickCancelled(t.id) {
			continue
		}
		t.callback()
	}
	if s.tickCount() == 0 {
		return nil
	}
	return &RecursionError{Drain: "ticks", MaxLoops: s.maxLoops}
}

func (s *Scheduler[R]) runAllImmediatesNoProbe() error {
	for i := 0; i < s.maxLoops; i++ {
		im, ok := s.popImmediate()
		if !ok {
			return nil
		}
		im.callback()
	}
	if s.immediateCount() == 0 {
		return nil
	}
	return &RecursionError{Drain: "immediates", MaxLoops: s.maxLoops}
}

// AdvanceTimersByTime advances the virtual clock toward now+ms, firing
// every timer whose expiry falls within the elapsed span in ascending
// expiry order. A zero-length interval cannot wedge the loop: each
// iteration fires at most one timer and so always consumes one loop count,
// even when expiry == now after rescheduling.
func (s *Scheduler[R]) AdvanceTimersByTime(ms int64) error {
	s.probe("timers")
	remaining := ms
	for i := 0; i < s.maxLoops; i++ {
		t, ok := s.nextTimerHandle()
		if !ok || remaining < t.expiry-s.now {
			s.now += remaining
			return nil
		}
		elapsed := t.expiry - s.now
		remaining -= elapsed
		s.now = t.expiry
		if err := s.fire(t); err != nil {
			return err
		}
	}
	return &RecursionError{Drain: "timers", MaxLoops: s.maxLoops}
}

// AdvanceTimersToNextTimer advances the virtual clock to the expiry of the
// earliest-scheduled timer, firing it, then repeats steps-1 more times (or
// until no timers remain). steps defaults to 1 when 0 is passed.
func (s *Scheduler[R]) AdvanceTimersToNextTimer(steps int) error {
	s.probe("timers")
	if steps <= 0 {
		steps = 1
	}
	for n := 0; n < steps; n++ {
		t, ok := s.nextTimerHandle()
		if !ok {
			return nil
		}
		s.now = t.expiry
		if err := s.fire(t); err != nil {
			return err
		}
	}
	return nil
}

// RunOnlyPendingTimers snapshots the currently-stored timer ids, drains all
// immediates, then fires each snapshotted timer in ascending expiry order.
// Timers scheduled during this call (including an interval's own
// re-insertion) are not picked up by it.
func (s *Scheduler[R]) RunOnlyPendingTimers() error {
	s.probe("timers")
	snapshot := make([]*timerEntry, 0, len(s.timers))
	for _, t := range s.timers {
		snapshot = append(snapshot, t)
	}
	if err := s.runAllImmediatesNoProbe(); err != nil {
		return err
	}
	for i := range snapshot {
		for j := i + 1; j < len(snapshot); j++ {
			a, b := snapshot[i], snapshot[j]
			if b.expiry < a.expiry || (b.expiry == a.expiry && b.id < a.id) {
				snapshot[i], snapshot[j] = snapshot[j], snapshot[i]
			}
		}
	}
	for _, t := range snapshot {
		if _, stillPresent := s.timers[t.id]; !stillPresent {
			continue
		}
		if err := s.fire(t); err != nil {
			return err
		}
	}
	return nil
}
