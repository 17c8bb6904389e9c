package jest

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestScheduler builds a Scheduler[uint64] over a MapHost pre-populated
// with a placeholder binding for every primitive name, mirroring a real
// host that always has *some* real setTimeout/setInterval/... bound before
// fakes are ever installed. UseFakeTimers only installs a fake for a name
// the host already exposes (§4.1's per-name existence probe), so an empty
// host would silently install nothing.
func newTestScheduler(t *testing.T, opts ...Option[uint64]) (*Scheduler[uint64], MapHost) {
	t.Helper()
	host := MapHost{}
	for _, name := range primitiveNames {
		host[name] = nil
	}
	sched := New[uint64](host, Uint64Bridge(), opts...)
	return sched, host
}

func TestOrderingAcrossExpiries(t *testing.T) {
	sched, host := newTestScheduler(t)
	sched.UseFakeTimers()

	var order []int
	setTimeout := host[NameSetTimeout].(func(Callback, any, ...any) uint64)
	setTimeout(func(args ...any) { order = append(order, 100) }, 100)
	setTimeout(func(args ...any) { order = append(order, 200) }, 200)
	setTimeout(func(args ...any) { order = append(order, 50) }, 50)

	require.NoError(t, sched.RunAllTimers())
	assert.Equal(t, []int{50, 100, 200}, order)
	assert.EqualValues(t, 0, sched.Now(), "a full drain does not advance the clock")
}

func TestAdvanceByTime(t *testing.T) {
	sched, _ := newTestScheduler(t)
	sched.UseFakeTimers()

	var fired []int64
	sched.fakeSetTimeout(func(args ...any) { fired = append(fired, 100) }, int64(100))
	sched.fakeSetTimeout(func(args ...any) { fired = append(fired, 200) }, int64(200))

	require.NoError(t, sched.AdvanceTimersByTime(150))
	assert.Equal(t, []int64{100}, fired)
	assert.EqualValues(t, 150, sched.Now())
	assert.Equal(t, 1, sched.GetTimerCount())
}

func TestIntervalReentry(t *testing.T) {
	sched, _ := newTestScheduler(t)
	sched.UseFakeTimers()

	var fireTimes []int64
	sched.fakeSetInterval(func(args ...any) { fireTimes = append(fireTimes, sched.Now()) }, int64(30))

	require.NoError(t, sched.AdvanceTimersByTime(100))
	assert.Equal(t, []int64{30, 60, 90}, fireTimes)
	require.Equal(t, 1, sched.GetTimerCount())

	t2, ok := sched.nextTimerHandle()
	require.True(t, ok)
	assert.EqualValues(t, 120, t2.expiry)
}

func TestCancelDuringFire(t *testing.T) {
	sched, _ := newTestScheduler(t)
	sched.UseFakeTimers()

	var calls int
	var ref uint64
	ref = sched.fakeSetInterval(func(args ...any) {
		calls++
		if calls == 2 {
			sched.fakeClearInterval(ref)
		}
	}, int64(10))

	require.NoError(t, sched.AdvanceTimersByTime(1000))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, sched.GetTimerCount())
}

func TestRecursionGuardOnTicks(t *testing.T) {
	sched, _ := newTestScheduler(t, WithMaxLoops[uint64](5))
	sched.UseFakeTimers()

	var calls int
	var scheduleNext func()
	scheduleNext = func() {
		sched.fakeNextTick(func(args ...any) {
			calls++
			scheduleNext()
		})
	}
	scheduleNext()

	err := sched.RunAllTicks()
	require.Error(t, err)
	var recErr *RecursionError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, "ticks", recErr.Drain)
	assert.Equal(t, 5, calls)
}

// funcPointer returns a comparable identity for a func value held in an
// any, since testify's Equal/NotEqual refuse to compare func types directly.
func funcPointer(v any) uintptr {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func {
		return 0
	}
	return rv.Pointer()
}

func TestRealTimerEscape(t *testing.T) {
	sched, host := newTestScheduler(t)
	sched.UseFakeTimers()

	fakeSetTimeout := host[NameSetTimeout]
	var observed any
	sched.RunWithRealTimers(func() {
		observed, _ = host.Get(NameSetTimeout)
	})

	assert.NotEqual(t, funcPointer(fakeSetTimeout), funcPointer(observed))
	reinstalled, _ := host.Get(NameSetTimeout)
	assert.Equal(t, funcPointer(fakeSetTimeout), funcPointer(reinstalled))
	assert.EqualValues(t, 0, sched.Now())
}

func TestClearingUnknownRefIsNoop(t *testing.T) {
	sched, _ := newTestScheduler(t)
	sched.UseFakeTimers()

	assert.False(t, sched.fakeClearTimeout(9999))

	ref := sched.fakeSetTimeout(func(args ...any) {}, int64(10))
	assert.True(t, sched.fakeClearTimeout(ref))
	assert.False(t, sched.fakeClearTimeout(ref), "clearing twice is a no-op the second time")
}

func TestDisposeShortCircuits(t *testing.T) {
	sched, _ := newTestScheduler(t)
	sched.UseFakeTimers()

	sched.fakeSetTimeout(func(args ...any) {}, int64(10))
	sched.Dispose()

	assert.Equal(t, 0, sched.GetTimerCount())
	ref := sched.fakeSetTimeout(func(args ...any) {}, int64(10))
	assert.EqualValues(t, 0, ref)
	assert.Equal(t, 0, sched.GetTimerCount())
}

func TestGetTimerCountAccounting(t *testing.T) {
	sched, _ := newTestScheduler(t)
	sched.UseFakeTimers()

	sched.fakeSetTimeout(func(args ...any) {}, int64(10))
	sched.fakeSetImmediate(func(args ...any) {})
	sched.fakeNextTick(func(args ...any) {})

	assert.Equal(t, 3, sched.GetTimerCount())
}

func TestRunOnlyPendingTimersSnapshots(t *testing.T) {
	sched, _ := newTestScheduler(t)
	sched.UseFakeTimers()

	var ran []int
	sched.fakeSetTimeout(func(args ...any) {
		ran = append(ran, 1)
		sched.fakeSetTimeout(func(args ...any) { ran = append(ran, 2) }, int64(0))
	}, int64(0))

	require.NoError(t, sched.RunOnlyPendingTimers())
	assert.Equal(t, []int{1}, ran, "the timer scheduled during the drain is not picked up by this call")
	assert.Equal(t, 1, sched.GetTimerCount())
}

func TestDelayCoercion(t *testing.T) {
	assert.EqualValues(t, 0, coerceDelay(-5))
	assert.EqualValues(t, 0, coerceDelay("not a number"))
	assert.EqualValues(t, 5, coerceDelay(5))
	assert.EqualValues(t, 5, coerceDelay(5.9))
}

func TestResetClearsEverything(t *testing.T) {
	sched, _ := newTestScheduler(t)
	sched.UseFakeTimers()

	sched.fakeSetTimeout(func(args ...any) {}, int64(10))
	_ = sched.AdvanceTimersByTime(10)
	sched.Reset()

	assert.EqualValues(t, 0, sched.Now())
	assert.Equal(t, 0, sched.GetTimerCount())
}
