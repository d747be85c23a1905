package llvm

/*
#include <llvm-c/Core.h>
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/llvm-runtime/errors"
	"github.com/wippyai/llvm-runtime/resource"
)

// Transform enqueues one named optimization onto a native pass manager. The
// pass manager pointer is passed through opaquely; transforms are typically
// tiny cgo shims around the toolkit's pass-registration calls.
type Transform func(passManager uintptr)

// ModulePassManager applies a transform pipeline to whole modules.
type ModulePassManager struct {
	ref C.LLVMPassManagerRef
	ctx *Context
	h   resource.Handle
}

// FuncPassManager applies a transform pipeline function by function within
// one module.
type FuncPassManager struct {
	ref C.LLVMPassManagerRef
	ctx *Context
	h   resource.Handle
}

// NewModulePassManager creates an empty module-scoped pipeline.
func (c *Context) NewModulePassManager() (*ModulePassManager, error) {
	if err := c.guard(errors.PhasePasses); err != nil {
		return nil, err
	}
	ref := C.LLVMCreatePassManager()
	if ref == nil {
		return nil, errors.NullPointer(errors.PhasePasses, "LLVMCreatePassManager")
	}
	pm := &ModulePassManager{ref: ref, ctx: c}
	pm.h = c.res.Register(pm)
	return pm, nil
}

// NewFuncPassManager creates an empty function-scoped pipeline attached to
// the module.
func (m *Module) NewFuncPassManager() (*FuncPassManager, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	ref := C.LLVMCreateFunctionPassManagerForModule(m.ref)
	if ref == nil {
		return nil, errors.NullPointer(errors.PhasePasses, "LLVMCreateFunctionPassManagerForModule")
	}
	pm := &FuncPassManager{ref: ref, ctx: m.ctx}
	pm.h = m.ctx.res.Register(pm)
	return pm, nil
}

// Drop implements resource.Dropper for the registry's teardown cascade.
func (pm *ModulePassManager) Drop() {
	C.LLVMDisposePassManager(pm.ref)
}

// Close releases the pipeline. It never affects targets it was run against.
func (pm *ModulePassManager) Close() error {
	pm.ctx.res.Remove(pm.h)
	return nil
}

// Add applies transform registrars in order. Enqueued order is applied order;
// nothing further is promised beyond what the toolkit itself guarantees.
func (pm *ModulePassManager) Add(transforms ...Transform) error {
	if err := pm.ctx.guardChild(errors.PhasePasses, "pass manager", pm.h); err != nil {
		return err
	}
	for _, tr := range transforms {
		tr(uintptr(unsafe.Pointer(pm.ref)))
	}
	return nil
}

// Run applies the pipeline to the module and reports whether anything
// changed.
func (pm *ModulePassManager) Run(m *Module) (bool, error) {
	if err := pm.ctx.guardChild(errors.PhasePasses, "pass manager", pm.h); err != nil {
		return false, err
	}
	if err := m.guard(); err != nil {
		return false, err
	}
	return C.LLVMRunPassManager(pm.ref, m.ref) != 0, nil
}

// Drop implements resource.Dropper for the registry's teardown cascade.
func (pm *FuncPassManager) Drop() {
	C.LLVMDisposePassManager(pm.ref)
}

// Close releases the pipeline. It never affects targets it was run against.
func (pm *FuncPassManager) Close() error {
	pm.ctx.res.Remove(pm.h)
	return nil
}

// Add applies transform registrars in order.
func (pm *FuncPassManager) Add(transforms ...Transform) error {
	if err := pm.ctx.guardChild(errors.PhasePasses, "pass manager", pm.h); err != nil {
		return err
	}
	for _, tr := range transforms {
		tr(uintptr(unsafe.Pointer(pm.ref)))
	}
	return nil
}

// Init runs the pipeline's initializers and reports whether they changed
// anything.
func (pm *FuncPassManager) Init() (bool, error) {
	if err := pm.ctx.guardChild(errors.PhasePasses, "pass manager", pm.h); err != nil {
		return false, err
	}
	return C.LLVMInitializeFunctionPassManager(pm.ref) != 0, nil
}

// Run applies the pipeline to one function and reports whether it changed.
func (pm *FuncPassManager) Run(f Function) (bool, error) {
	if err := pm.ctx.guardChild(errors.PhasePasses, "pass manager", pm.h); err != nil {
		return false, err
	}
	if !f.alive() {
		return false, errors.UseAfterDispose(errors.PhasePasses, "function")
	}
	return C.LLVMRunFunctionPassManager(pm.ref, f.ref) != 0, nil
}

// Finalize runs the pipeline's finalizers.
func (pm *FuncPassManager) Finalize() (bool, error) {
	if err := pm.ctx.guardChild(errors.PhasePasses, "pass manager", pm.h); err != nil {
		return false, err
	}
	return C.LLVMFinalizeFunctionPassManager(pm.ref) != 0, nil
}
