package llvm

/*
#include <llvm-c/Core.h>
#include <llvm-c/Analysis.h>
#include <llvm-c/BitWriter.h>
*/
import "C"

import (
	"github.com/wippyai/llvm-runtime/errors"
	"github.com/wippyai/llvm-runtime/resource"
)

// Module is a compilation unit borrowed from a Context. It owns its functions
// and globals; the wrapper is disposed explicitly or by the context's
// teardown cascade, and its native handle never outlives the context.
type Module struct {
	ref C.LLVMModuleRef
	ctx *Context
	h   resource.Handle
}

// NewModule creates an empty, named module in the context.
func (c *Context) NewModule(name string) (*Module, error) {
	if err := c.guard(errors.PhaseModule); err != nil {
		return nil, err
	}
	cname, cerr := cString(errors.PhaseModule, name)
	if cerr != nil {
		return nil, cerr
	}
	defer freeCString(cname)

	ref := C.LLVMModuleCreateWithNameInContext(cname, c.ref)
	if ref == nil {
		return nil, errors.NullPointer(errors.PhaseModule, "LLVMModuleCreateWithNameInContext")
	}

	m := &Module{ref: ref, ctx: c}
	m.h = c.res.Register(m)
	return m, nil
}

// Drop implements resource.Dropper for the registry's teardown cascade.
func (m *Module) Drop() {
	C.LLVMDisposeModule(m.ref)
}

// Close disposes the module unless ownership was transferred (for example to
// an execution engine), in which case it is a no-op.
func (m *Module) Close() error {
	m.ctx.res.Remove(m.h)
	return nil
}

func (m *Module) guard() *errors.Error {
	return m.ctx.guardChild(errors.PhaseModule, "module", m.h)
}

// Identifier round-trips the name the module was created with.
func (m *Module) Identifier() (string, error) {
	if err := m.guard(); err != nil {
		return "", err
	}
	var n C.size_t
	p := C.LLVMGetModuleIdentifier(m.ref, &n)
	if p == nil {
		return "", errors.NullPointer(errors.PhaseModule, "LLVMGetModuleIdentifier")
	}
	return C.GoStringN(p, C.int(n)), nil
}

// AddFunction declares a function of the given type in the module.
func (m *Module) AddFunction(name string, typ Type) (Function, error) {
	if err := m.guard(); err != nil {
		return Function{}, err
	}
	cname, cerr := cString(errors.PhaseModule, name)
	if cerr != nil {
		return Function{}, cerr
	}
	defer freeCString(cname)

	ref := C.LLVMAddFunction(m.ref, cname, typ.ref)
	if ref == nil {
		return Function{}, errors.NullPointer(errors.PhaseModule, "LLVMAddFunction")
	}
	return Function{Value{ref: ref, ctx: m.ctx, owner: m.h}}, nil
}

// NamedFunction looks up a declared function by name.
func (m *Module) NamedFunction(name string) (Function, error) {
	if err := m.guard(); err != nil {
		return Function{}, err
	}
	cname, cerr := cString(errors.PhaseModule, name)
	if cerr != nil {
		return Function{}, cerr
	}
	defer freeCString(cname)

	ref := C.LLVMGetNamedFunction(m.ref, cname)
	if ref == nil {
		return Function{}, errors.NotFound(errors.PhaseModule, "function", name)
	}
	return Function{Value{ref: ref, ctx: m.ctx, owner: m.h}}, nil
}

// AddGlobal declares a global variable of the given type.
func (m *Module) AddGlobal(name string, typ Type) (Value, error) {
	if err := m.guard(); err != nil {
		return Value{}, err
	}
	cname, cerr := cString(errors.PhaseModule, name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)

	ref := C.LLVMAddGlobal(m.ref, typ.ref, cname)
	if ref == nil {
		return Value{}, errors.NullPointer(errors.PhaseModule, "LLVMAddGlobal")
	}
	return Value{ref: ref, ctx: m.ctx, owner: m.h}, nil
}

// String renders the module's IR. The native dump is copied and released
// before returning.
func (m *Module) String() string {
	if err := m.guard(); err != nil {
		return ""
	}
	msg := newMessage(C.LLVMPrintModuleToString(m.ref))
	defer msg.Close()
	return msg.String()
}

// Verify runs the native verifier. A broken module reports the verifier's
// diagnostic verbatim.
func (m *Module) Verify() error {
	if err := m.guard(); err != nil {
		return err
	}
	var msg *C.char
	if C.LLVMVerifyModule(m.ref, C.LLVMReturnStatusAction, &msg) != 0 {
		return errors.Native(errors.PhaseModule, "verify module", newMessage(msg))
	}
	// The out-parameter may be set even on success.
	newMessage(msg).Close()
	return nil
}

// WriteBitcodeToBuffer serializes the module to bitcode in an owned buffer.
func (m *Module) WriteBitcodeToBuffer() (*MemoryBuffer, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	ref := C.LLVMWriteBitcodeToMemoryBuffer(m.ref)
	return newMemoryBuffer(ref, "LLVMWriteBitcodeToMemoryBuffer")
}
