package jest

import "fmt"

// RecursionError is raised when a drain loop reaches its configured
// maximum iteration count without exhausting its queue. Scheduler state is
// left intact when this is raised: the remaining queued work is still
// present and further drains may be attempted once the condition causing
// runaway rescheduling has been addressed.
type RecursionError struct {
	// Drain names the drain operation that exceeded its bound: "ticks",
	// "immediates", or "timers".
	Drain string
	// MaxLoops is the configured bound that was reached.
	MaxLoops int
}

func (e *RecursionError) Error() string {
	return fmt.Sprintf("jest: exceeded %d iterations draining %s; a callback may be rescheduling itself unconditionally", e.MaxLoops, e.Drain)
}

// InvariantError indicates internal state corruption: a stored timer with a
// kind that is neither timeout nor interval. It should never occur in a
// correct build; if it does, it is raised from the drain that discovered it
// rather than silently ignored.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return "jest: invariant violated: " + e.Detail
}
