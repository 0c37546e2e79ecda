// Package bindings holds the pieces that keep host objects alive inside a
// script runtime: the per-entity wrapper cache, the root set each
// compartment owns, and the fatal invariant failures raised when the two
// are used out of order.
//
// A host entity is wrapped once. Its proxy is stored in its WrapperCache and
// never replaced. Rooting an entity registers that proxy with the
// compartment's RootSet and hands back a RootToken; the token must be
// released exactly once.
//
//	cache.Set(compartment, proxy)
//	tok := roots.Register(cache.Get())
//	...
//	tok.Release()
//
// Misuse (rooting an unwrapped entity, releasing twice, rooting into a closed
// set) panics with an *InvariantError. These are programming errors, not
// conditions a caller is expected to handle.
package bindings
