package llvm

/*
#include <llvm-c/Core.h>
#include <llvm-c/ExecutionEngine.h>
#include <stdint.h>

static int64_t llvmrt_call_i64_0(uint64_t fn) {
	return ((int64_t (*)(void))fn)();
}

static int64_t llvmrt_call_i64_2(uint64_t fn, int64_t a, int64_t b) {
	return ((int64_t (*)(int64_t, int64_t))fn)(a, b);
}
*/
import "C"

import (
	"github.com/wippyai/llvm-runtime/errors"
	"github.com/wippyai/llvm-runtime/resource"
)

// ExecutionEngine JIT-compiles a module and resolves symbols to native
// addresses. Construction consumes the module: from that point the engine
// manages the module's lifetime, and the original wrapper is dead.
type ExecutionEngine struct {
	ref    C.LLVMExecutionEngineRef
	ctx    *Context
	module *Module
	h      resource.Handle
}

// NewExecutionEngine creates an MCJIT engine that takes ownership of the
// module.
func NewExecutionEngine(m *Module) (*ExecutionEngine, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	initNative()

	var ref C.LLVMExecutionEngineRef
	var msg *C.char
	if C.LLVMCreateExecutionEngineForModule(&ref, m.ref, &msg) != 0 {
		return nil, errors.Native(errors.PhaseEngine, "create execution engine", newMessage(msg))
	}
	if ref == nil {
		return nil, errors.NullPointer(errors.PhaseEngine, "LLVMCreateExecutionEngineForModule")
	}

	// Ownership transfer: the module leaves the registry without its
	// destructor running; engine disposal tears it down instead.
	m.ctx.res.Release(m.h)

	ee := &ExecutionEngine{ref: ref, ctx: m.ctx, module: m}
	ee.h = m.ctx.res.Register(ee)
	return ee, nil
}

// Drop implements resource.Dropper for the registry's teardown cascade.
// Disposing the engine disposes the module it owns.
func (ee *ExecutionEngine) Drop() {
	C.LLVMDisposeExecutionEngine(ee.ref)
}

// Close disposes the engine and the module it owns. Later calls are no-ops.
// Must happen before the owning context's teardown, which the registry's
// reverse-order cascade also guarantees.
func (ee *ExecutionEngine) Close() error {
	ee.ctx.res.Remove(ee.h)
	return nil
}

func (ee *ExecutionEngine) guard() *errors.Error {
	return ee.ctx.guardChild(errors.PhaseEngine, "execution engine", ee.h)
}

// FunctionAddress resolves a compiled function's native address by symbol
// name. An absent symbol is not_found; a zero address never escapes.
func (ee *ExecutionEngine) FunctionAddress(name string) (uint64, error) {
	if err := ee.guard(); err != nil {
		return 0, err
	}
	cname, cerr := cString(errors.PhaseEngine, name)
	if cerr != nil {
		return 0, cerr
	}
	defer freeCString(cname)

	addr := C.LLVMGetFunctionAddress(ee.ref, cname)
	if addr == 0 {
		return 0, errors.NotFound(errors.PhaseEngine, "symbol", name)
	}
	return uint64(addr), nil
}

// RunInt64 JIT-compiles and invokes a niladic function returning i64.
func (ee *ExecutionEngine) RunInt64(name string) (int64, error) {
	addr, err := ee.FunctionAddress(name)
	if err != nil {
		return 0, err
	}
	return int64(C.llvmrt_call_i64_0(C.uint64_t(addr))), nil
}

// RunInt64Binary JIT-compiles and invokes an (i64, i64) -> i64 function.
func (ee *ExecutionEngine) RunInt64Binary(name string, a, b int64) (int64, error) {
	addr, err := ee.FunctionAddress(name)
	if err != nil {
		return 0, err
	}
	return int64(C.llvmrt_call_i64_2(C.uint64_t(addr), C.int64_t(a), C.int64_t(b))), nil
}
