// Package llvmruntime provides a safe Go layer over the LLVM C API.
//
// The LLVM C API hands out bare pointers, signals both "not found" and
// "allocation failed" with NULL, and requires a matching dispose call for
// every object it allocates. This library converts that surface into checked
// handles with structured errors and exactly-once disposal.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	llvm-runtime/        Root package (documentation only)
//	├── llvm/            The cgo boundary: contexts, modules, types, values,
//	│                    builders, pass managers and the JIT execution engine
//	├── resource/        Generation-counted registry tracking every live
//	│                    native object for cascade teardown and
//	│                    use-after-dispose detection
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Build and JIT-compile a function returning a constant:
//
//	ctx, err := llvm.NewContext()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	mod, _ := ctx.NewModule("demo")
//	i64, _ := ctx.Int64()
//	fnType, _ := llvm.FunctionType(i64, nil, false)
//	fn, _ := mod.AddFunction("answer", fnType)
//	entry, _ := fn.AppendBasicBlock("entry")
//
//	b, _ := ctx.NewBuilder()
//	b.PositionAtEnd(entry)
//	forty2, _ := llvm.ConstInt(i64, 42, false)
//	b.Ret(forty2)
//
//	ee, _ := llvm.NewExecutionEngine(mod)
//	n, _ := ee.RunInt64("answer") // 42
//
// # Ownership Model
//
// A Context owns everything derived from it. Disposable children (modules,
// builders, pass managers, execution engines) are tracked in the context's
// resource registry; Context.Close tears them down in reverse creation order
// before the native context itself is disposed. Closing a wrapper twice is a
// no-op, and using one after its owner is gone returns a structured
// use_after_dispose error instead of touching freed native memory.
//
// Ownership transfers are explicit: NewExecutionEngine consumes its Module,
// after which the engine alone is responsible for the module's teardown.
//
// # Thread Safety
//
// A Context and everything borrowed from it is single-owner. The layer adds
// no locking around native calls; use one goroutine per Context or
// synchronize externally. The registry is internally guarded only so misuse
// is detected rather than racy.
package llvmruntime
