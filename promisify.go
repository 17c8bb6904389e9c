package jest

// TimeoutAsFuture is this package's replacement for the source's
// language-specific "custom promisify" protocol hook (§9): rather than
// emulating that protocol, it exposes the same underlying scheduling
// directly as a channel. The returned channel receives value once the
// scheduler's virtual clock reaches now+delayMs (via any drain that fires
// the underlying fake timeout), then is closed.
//
// The gojahost sibling package's PromisifySetTimeout is the counterpart for
// a JavaScript runtime: it does not use this channel, but schedules through
// ScheduleTimeout directly and resolves a Promise from the timeout's callback.
func (s *Scheduler[R]) TimeoutAsFuture(delayMs int64, value any) <-chan any {
	ch := make(chan any, 1)
	s.ScheduleTimeout(func(args ...any) {
		ch <- value
		close(ch)
	}, delayMs)
	return ch
}
