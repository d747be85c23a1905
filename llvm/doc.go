// Package llvm is the cgo boundary: a checked-handle layer over the LLVM C
// API covering contexts, modules, types, values, basic blocks, instruction
// builders, pass managers and the MCJIT execution engine.
//
// Every raw pointer coming back from a native constructor is converted at the
// call site into either a usable wrapper or a structured error from the
// errors package; NULL never escapes as a handle. Disposable wrappers are
// tracked in their context's resource registry, which guarantees exactly-once
// disposal and turns use-after-close into a use_after_dispose error.
//
// Include paths and link flags for LLVM come from the environment
// (CGO_CFLAGS/CGO_LDFLAGS), typically via llvm-config:
//
//	export CGO_CFLAGS="$(llvm-config --cflags)"
//	export CGO_LDFLAGS="$(llvm-config --ldflags --libs core analysis bitwriter executionengine native target)"
package llvm
