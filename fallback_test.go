package jest

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestImmediateFallbackRescuesUndrainedCallback exercises §9's safety net: a
// setImmediate scheduled but never drained by the test still fires, because
// fakeSetImmediate also arms a real zero-delay timer behind it.
func TestImmediateFallbackRescuesUndrainedCallback(t *testing.T) {
	sched, _ := newTestScheduler(t)
	sched.UseFakeTimers()

	var calls int32
	sched.fakeSetImmediate(func(args ...any) { atomic.AddInt32(&calls, 1) })

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, time.Millisecond)
}

// TestTickFallbackRescuesUndrainedCallback is the nextTick counterpart.
func TestTickFallbackRescuesUndrainedCallback(t *testing.T) {
	sched, _ := newTestScheduler(t)
	sched.UseFakeTimers()

	var calls int32
	sched.fakeNextTick(func(args ...any) { atomic.AddInt32(&calls, 1) })

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, time.Millisecond)
}

// TestImmediateFallbackDoesNotDoubleFire asserts that a normal, promptly
// drained setImmediate only ever runs once: whichever of the drain and the
// real fallback claims the entry first runs it, and the other finds it gone.
func TestImmediateFallbackDoesNotDoubleFire(t *testing.T) {
	sched, _ := newTestScheduler(t)
	sched.UseFakeTimers()

	var calls int32
	sched.fakeSetImmediate(func(args ...any) { atomic.AddInt32(&calls, 1) })
	require.NoError(t, sched.RunAllImmediates())
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "the rescued-but-already-run callback must not fire twice")
}

// TestTickFallbackDoesNotDoubleFire is the nextTick counterpart.
func TestTickFallbackDoesNotDoubleFire(t *testing.T) {
	sched, _ := newTestScheduler(t)
	sched.UseFakeTimers()

	var calls int32
	sched.fakeNextTick(func(args ...any) { atomic.AddInt32(&calls, 1) })
	require.NoError(t, sched.RunAllTicks())
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "the rescued-but-already-run callback must not fire twice")
}

// TestClearImmediateBeatsFallback asserts that clearing an immediate before
// it is drained also cancels its real fallback: removeImmediate's atomic
// claim means the cleared entry is simply gone by the time the fallback
// timer goes off.
func TestClearImmediateBeatsFallback(t *testing.T) {
	sched, _ := newTestScheduler(t)
	sched.UseFakeTimers()

	var calls int32
	ref := sched.fakeSetImmediate(func(args ...any) { atomic.AddInt32(&calls, 1) })
	require.True(t, sched.fakeClearImmediate(ref))

	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls))
}

// TestIsInstalledIsPerInstance exercises the review fix for drain.go's
// isInstalled: two schedulers sharing one host must not see each other's
// fakes as "installed", since isInstalled is now a per-instance flag rather
// than a function-identity probe against shared host state.
func TestIsInstalledIsPerInstance(t *testing.T) {
	host := MapHost{}
	for _, name := range primitiveNames {
		host[name] = nil
	}
	a := New[uint64](host, Uint64Bridge())
	b := New[uint64](host, Uint64Bridge())

	a.UseFakeTimers()
	assert.True(t, a.isInstalled())
	assert.False(t, b.isInstalled())

	b.UseFakeTimers()
	assert.True(t, b.isInstalled())
	assert.True(t, a.isInstalled(), "a's own flag is unaffected by b installing over the same host")
}
