package jest

import "github.com/google/uuid"

// nextID mints the next monotonic id shared by timeouts, intervals,
// immediates, and animation frames (stored as timeouts). It is not safe
// for concurrent use, matching the scheduler's single-threaded contract.
func (s *Scheduler[R]) nextID() uint64 {
	s.idCounter++
	return s.idCounter
}

// nextTickID mints a fresh tick id. Ticks live in their own namespace (see
// tickEntry's doc comment), so a UUID is used rather than sharing the
// uint64 counter above.
func (s *Scheduler[R]) nextTickID() string {
	return uuid.NewString()
}
