package jest

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// StackFormatter renders a stack trace for the "fakes not installed"
// diagnostic (§7). Its output has no semantic meaning to this package; it
// is forwarded to the configured logger as a single field.
type StackFormatter func() string

// defaultStackFormatter walks the call stack the way the stdlib's
// runtime/debug.Stack does, skipping frames inside this package so the
// first line a caller sees is their own call site.
func defaultStackFormatter() string {
	pc := make([]uintptr, 32)
	n := runtime.Callers(2, pc)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pc[:n])
	var b strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, "Hk92a/jest") {
			b.WriteString(frame.Function)
			b.WriteString("\n\t")
			b.WriteString(frame.File)
			b.WriteString(":")
			b.WriteString(strconv.Itoa(frame.Line))
			b.WriteString("\n")
		}
		if !more {
			break
		}
	}
	return b.String()
}

// warnNotInstalled emits the non-fatal §7 "not installed" diagnostic: a
// drain was invoked while the host's current primitives are not this
// scheduler's fakes. It never blocks and never returns an error — the
// drain proceeds regardless, operating on whatever the internal queues
// hold (possibly nothing).
func (s *Scheduler[R]) warnNotInstalled(drain string) {
	s.logger.Warn().
		Str("drain", drain).
		Str("stack", s.stackFormatter()).
		Msg("jest: fake timers are not installed; call UseFakeTimers() before draining")
}

// defaultLogger returns a zerolog.Logger writing to zerolog's package
// default writer (os.Stderr via zerolog.ConsoleWriter semantics), scoped
// with a component field so multiple schedulers in one process are
// distinguishable in structured output.
func defaultLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
		Timestamp().
		Str("component", "jest.Scheduler").
		Logger()
}
