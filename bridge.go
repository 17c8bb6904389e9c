package jest

// Bridge translates between the internal monotonic timer/immediate id
// space and the opaque handle type R that this host's set/clear family of
// calls hand to callers ("TimerRef" in the spec this package implements —
// an integer on a POSIX-like host, a stateful object handle on a
// browser-like host). It is used only at the boundary with set/clear
// family calls; internal bookkeeping always uses the plain uint64 id.
type Bridge[R any] struct {
	// IDToRef converts a freshly minted internal id into the ref handed
	// back to the caller of setTimeout/setInterval/setImmediate/
	// requestAnimationFrame.
	IDToRef func(id uint64) R
	// RefToID converts a caller-supplied ref back into an internal id, for
	// clearTimeout/clearInterval/clearImmediate/cancelAnimationFrame. ok is
	// false if ref does not correspond to any id this bridge minted (or is
	// otherwise unresolvable); callers of RefToID treat that as a no-op,
	// per the "clearing an unknown ref is a no-op" rule.
	RefToID func(ref R) (id uint64, ok bool)
}

// Uint64Bridge returns the identity [Bridge] for hosts whose TimerRef is
// already the internal id representation (e.g. a Go host that just hands
// back the uint64 it was given).
func Uint64Bridge() Bridge[uint64] {
	return Bridge[uint64]{
		IDToRef: func(id uint64) uint64 { return id },
		RefToID: func(ref uint64) (uint64, bool) { return ref, true },
	}
}
