// Package resource provides lifetime tracking for native toolkit objects.
//
// Every disposable object a context hands out is registered here; the
// registry guarantees its destructor runs exactly once, whether through an
// explicit Close on the wrapper or through the owning context's teardown
// cascade. Handles carry a per-slot generation counter, so a wrapper held
// past its owner's death is detected as stale instead of touching freed
// native memory.
//
// # Registry
//
// The Registry maps handles to live values:
//
//	reg := resource.NewRegistry()
//
//	// Register a value, get a handle
//	handle := reg.Register(myValue)
//
//	// Liveness check before every native call
//	if !reg.Alive(handle) { ... }
//
//	// Dispose exactly once (runs the value's Dropper)
//	reg.Remove(handle)
//
//	// Ownership transfer: forget without disposing
//	value, ok := reg.Release(handle)
//
// # Teardown Order
//
// Registry.Close drops what remains in reverse registration order. Derived
// objects are always registered after the objects they borrow from, so the
// cascade disposes dependents before their owners.
//
// # Observers
//
// Register observers to track resource lifecycle events:
//
//	reg.Subscribe(obs) // receives EventRegistered / EventDropped / EventReleased
//
// Observers are how the llvm package logs lifecycle events and how tests
// assert that disposal counts match construction counts.
package resource
