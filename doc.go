// Copyright 2026 the jest authors.
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package jest implements a virtual-time timer scheduler for deterministically
// exercising code that relies on asynchronous scheduling primitives: one-shot
// delayed callbacks (setTimeout), periodic callbacks (setInterval),
// microtask-like "next tick" callbacks (process.nextTick), macrotask-like
// "immediate" callbacks (setImmediate), and animation-frame callbacks
// (requestAnimationFrame).
//
// A [Scheduler] owns a virtual clock that only advances under explicit
// control (via [Scheduler.AdvanceTimersByTime] and friends), rather than
// wall-clock time. Host code under test registers callbacks through the same
// names as its real environment's scheduling primitives, but a [Scheduler]
// installed in place of the real primitives (via [Scheduler.UseFakeTimers])
// intercepts every registration into internal queues that a test can drain
// deterministically: all pending work, only work pending at drain-start,
// work due within N virtual milliseconds, or work up to the next scheduled
// boundary.
//
// # Hosts
//
// The scheduler is parameterized over the opaque timer-handle type ("ref")
// that its host hands back from a "set a timer" call, and over a [Host]
// abstraction for the object whose named properties hold the scheduling
// primitives. [MapHost] adapts a plain Go map for Go-hosted globals; the
// sibling package [github.com/Hk92a/jest/gojahost] adapts a
// [github.com/dop251/goja] runtime's JavaScript global object so real
// JavaScript under test can be driven by the same virtual clock.
//
// # Concurrency
//
// A Scheduler is single-threaded and cooperative: every operation completes
// synchronously (modulo callback exceptions), there is no internal locking,
// and the scheduler assumes exclusive use by one goroutine at a time. This
// is a deliberate departure from a wall-clock fake (which typically must be
// thread-safe, since real goroutines really do call Sleep concurrently);
// nothing here ever blocks waiting on another goroutine.
//
// The one exception is the real-primitive safety net behind setImmediate
// and process.nextTick/queueMicrotask (see the package's fallback.go): it
// fires from a goroutine of its own, so a small mutex guards exactly the
// tick queue, the immediate queue, and the cancelled-ticks set. Every other
// field is still touched only from the caller's own goroutine.
package jest
