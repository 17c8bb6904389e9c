package jest

// These helpers are the only code that touches ticks, immediates, and
// cancelledTicks; every access goes through them so the real-primitive
// safety net (fallback.go), which runs on its own goroutine, can never
// race with the caller's own drain/fake calls over those three fields.

func (s *Scheduler[R]) pushTick(t *tickEntry) {
	s.mu.Lock()
	s.ticks = append(s.ticks, t)
	s.mu.Unlock()
}

func (s *Scheduler[R]) popTick() (*tickEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ticks) == 0 {
		return nil, false
	}
	t := s.ticks[0]
	s.ticks = s.ticks[1:]
	return t, true
}

// removeTick removes and returns the tick entry with the given id,
// wherever it sits in the sequence. Used by the real-tick fallback, which
// does not necessarily fire in queue order.
func (s *Scheduler[R]) removeTick(id string) (*tickEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.ticks {
		if t.id == id {
			s.ticks = append(s.ticks[:i], s.ticks[i+1:]...)
			return t, true
		}
	}
	return nil, false
}

// markTickCancelled adds id to the cancelled-ticks set, returning false if
// it was already present. Both the virtual drain and the real-tick
// fallback call this before invoking a tick's callback, so whichever gets
// there first wins and the other becomes a no-op.
func (s *Scheduler[R]) markTickCancelled(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, already := s.cancelledTicks[id]; already {
		return false
	}
	s.cancelledTicks[id] = struct{}{}
	return true
}

func (s *Scheduler[R]) tickCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ticks)
}

func (s *Scheduler[R]) pushImmediate(im *immediateEntry) {
	s.mu.Lock()
	s.immediates = append(s.immediates, im)
	s.mu.Unlock()
}

func (s *Scheduler[R]) popImmediate() (*immediateEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.immediates) == 0 {
		return nil, false
	}
	im := s.immediates[0]
	s.immediates = s.immediates[1:]
	return im, true
}

// removeImmediate removes and returns the immediate entry with the given
// id, wherever it sits in the sequence. Used by clearImmediate and by the
// real-immediate fallback.
func (s *Scheduler[R]) removeImmediate(id uint64) (*immediateEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, im := range s.immediates {
		if im.id == id {
			s.immediates = append(s.immediates[:i], s.immediates[i+1:]...)
			return im, true
		}
	}
	return nil, false
}

func (s *Scheduler[R]) immediateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.immediates)
}

func (s *Scheduler[R]) clearQueues() {
	s.mu.Lock()
	s.immediates = s.immediates[:0]
	s.ticks = s.ticks[:0]
	s.mu.Unlock()
}

func (s *Scheduler[R]) clearCancelledTicks() {
	s.mu.Lock()
	for id := range s.cancelledTicks {
		delete(s.cancelledTicks, id)
	}
	s.mu.Unlock()
}
