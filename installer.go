package jest

// buildFakes lazily constructs the fake-primitive table the first time
// fakes are installed, wrapping each through the configured ModuleMocker
// (if any). Built once and reused by subsequent UseFakeTimers calls so the
// same wrapped values are reinstalled every time rather than rebuilt.
func (s *Scheduler[R]) buildFakes() {
	if s.fakes != nil {
		return
	}
	s.fakes = map[string]any{
		NameSetTimeout:            s.wrapCallback(NameSetTimeout, s.fakeSetTimeout),
		NameClearTimeout:          s.wrapCallback(NameClearTimeout, s.fakeClearTimeout),
		NameSetInterval:           s.wrapCallback(NameSetInterval, s.fakeSetInterval),
		NameClearInterval:         s.wrapCallback(NameClearInterval, s.fakeClearInterval),
		NameSetImmediate:          s.wrapCallback(NameSetImmediate, s.fakeSetImmediate),
		NameClearImmediate:        s.wrapCallback(NameClearImmediate, s.fakeClearImmediate),
		NameNextTick:              s.wrapCallback(NameNextTick, s.fakeNextTick),
		NameRequestAnimationFrame: s.wrapCallback(NameRequestAnimationFrame, s.fakeRequestAnimationFrame),
		NameCancelAnimationFrame:  s.wrapCallback(NameCancelAnimationFrame, s.fakeCancelAnimationFrame),
	}
}

// UseFakeTimers installs a fake for every primitive name the host
// currently supports (probed via [Host.Has]), leaving the original table
// untouched — it was captured once, at construction.
func (s *Scheduler[R]) UseFakeTimers() {
	s.buildFakes()
	for _, name := range primitiveNames {
		if !s.host.Has(name) {
			continue
		}
		s.host.Set(name, s.fakes[name])
	}
	s.installed = true
}

// UseRealTimers writes the captured original bindings back into the host,
// for every name the host had bound at construction time.
func (s *Scheduler[R]) UseRealTimers() {
	for _, name := range primitiveNames {
		if orig, ok := s.originals[name]; ok {
			s.host.Set(name, orig)
		}
	}
	s.installed = false
}

// RunWithRealTimers snapshots whatever is currently installed, installs
// the originals, invokes cb, and unconditionally restores the snapshot —
// including when cb panics. No virtual time advances while cb runs.
func (s *Scheduler[R]) RunWithRealTimers(cb func()) {
	snapshot := make(map[string]any, len(primitiveNames))
	for _, name := range primitiveNames {
		if v, ok := s.host.Get(name); ok {
			snapshot[name] = v
		}
	}
	wasInstalled := s.installed
	s.UseRealTimers()
	defer func() {
		for _, name := range primitiveNames {
			if v, ok := snapshot[name]; ok {
				s.host.Set(name, v)
			}
		}
		s.installed = wasInstalled
	}()
	cb()
}
