// Copyright 2026 the jest authors.
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package gojahost adapts a [github.com/dop251/goja] JavaScript runtime's
// global object to [github.com/Hk92a/jest.Host], so real JavaScript under
// test can have its scheduling primitives driven by a [jest.Scheduler]
// virtual clock the same way a Go-hosted test would.
package gojahost

import "github.com/dop251/goja"

// RuntimeHost adapts a *goja.Runtime's global object to jest.Host.
type RuntimeHost struct {
	rt *goja.Runtime
}

// NewRuntimeHost wraps rt. rt must not be nil.
func NewRuntimeHost(rt *goja.Runtime) *RuntimeHost {
	return &RuntimeHost{rt: rt}
}

// Get implements jest.Host.
func (h *RuntimeHost) Get(name string) (any, bool) {
	v := h.rt.GlobalObject().Get(name)
	if v == nil {
		return nil, false
	}
	return v, true
}

// Set implements jest.Host.
func (h *RuntimeHost) Set(name string, value any) {
	if v, ok := value.(goja.Value); ok {
		_ = h.rt.GlobalObject().Set(name, v)
		return
	}
	_ = h.rt.GlobalObject().Set(name, h.rt.ToValue(value))
}

// Has implements jest.Host.
func (h *RuntimeHost) Has(name string) bool {
	return h.rt.GlobalObject().Get(name) != nil
}
