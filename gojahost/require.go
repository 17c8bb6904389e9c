package gojahost

import (
	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
)

// EnableRequire wires a require.Registry into rt, the same way
// warpdl-warpdl's extl.NewRuntime and joeycumines' gojaprotobuf.Require
// ground module loading for a goja runtime: it gives JavaScript under test
// a real `require(...)` and a `console` global, so test fixtures that are
// themselves CommonJS modules (rather than a single RunString source
// string) can be loaded against the same fake-timer-bound runtime Bind
// installs into. Call it before Bind so the registry's globals are present
// alongside the timer primitives.
func EnableRequire(rt *goja.Runtime) *require.Registry {
	registry := require.NewRegistry()
	registry.Enable(rt)
	console.Enable(rt)
	return registry
}
