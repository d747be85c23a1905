package llvm

/*
#include <llvm-c/Core.h>
#include <llvm-c/TargetMachine.h>
*/
import "C"

import (
	"github.com/wippyai/llvm-runtime/errors"
)

// TargetMachine drives ahead-of-time code emission for one target triple. It
// is not derived from a context; it manages its own single disposal.
type TargetMachine struct {
	ref    C.LLVMTargetMachineRef
	closed bool
}

// CodeGenOptLevel selects the backend optimization level.
type CodeGenOptLevel uint

const (
	CodeGenLevelNone       CodeGenOptLevel = C.LLVMCodeGenLevelNone
	CodeGenLevelLess       CodeGenOptLevel = C.LLVMCodeGenLevelLess
	CodeGenLevelDefault    CodeGenOptLevel = C.LLVMCodeGenLevelDefault
	CodeGenLevelAggressive CodeGenOptLevel = C.LLVMCodeGenLevelAggressive
)

// CodeGenFileType selects the emitted artifact.
type CodeGenFileType uint

const (
	AssemblyFile CodeGenFileType = C.LLVMAssemblyFile
	ObjectFile   CodeGenFileType = C.LLVMObjectFile
)

// TargetMachineConfig holds configuration for target machine creation
type TargetMachineConfig struct {
	// Triple defaults to the host triple when empty.
	Triple   string
	CPU      string
	Features string
	OptLevel CodeGenOptLevel
}

// DefaultTargetTriple returns the host triple as an owned message.
func DefaultTargetTriple() *Message {
	initNative()
	return newMessage(C.LLVMGetDefaultTargetTriple())
}

// NewTargetMachine creates a target machine for the configured triple.
func NewTargetMachine(cfg *TargetMachineConfig) (*TargetMachine, error) {
	initNative()
	if cfg == nil {
		cfg = &TargetMachineConfig{}
	}

	triple := cfg.Triple
	if triple == "" {
		host := DefaultTargetTriple()
		triple = host.String()
		host.Close()
	}

	ctriple, cerr := cString(errors.PhaseTarget, triple)
	if cerr != nil {
		return nil, cerr
	}
	defer freeCString(ctriple)

	var target C.LLVMTargetRef
	var msg *C.char
	if C.LLVMGetTargetFromTriple(ctriple, &target, &msg) != 0 {
		return nil, errors.Native(errors.PhaseTarget, "resolve target triple", newMessage(msg))
	}

	ccpu, cerr := cString(errors.PhaseTarget, cfg.CPU)
	if cerr != nil {
		return nil, cerr
	}
	defer freeCString(ccpu)
	cfeatures, cerr := cString(errors.PhaseTarget, cfg.Features)
	if cerr != nil {
		return nil, cerr
	}
	defer freeCString(cfeatures)

	ref := C.LLVMCreateTargetMachine(target, ctriple, ccpu, cfeatures,
		C.LLVMCodeGenOptLevel(cfg.OptLevel), C.LLVMRelocDefault, C.LLVMCodeModelDefault)
	if ref == nil {
		return nil, errors.NullPointer(errors.PhaseTarget, "LLVMCreateTargetMachine")
	}
	return &TargetMachine{ref: ref}, nil
}

// EmitToMemoryBuffer compiles the module to assembly or an object file in an
// owned buffer.
func (tm *TargetMachine) EmitToMemoryBuffer(m *Module, ft CodeGenFileType) (*MemoryBuffer, error) {
	if tm.closed {
		return nil, errors.UseAfterDispose(errors.PhaseTarget, "target machine")
	}
	if err := m.guard(); err != nil {
		return nil, err
	}

	var out C.LLVMMemoryBufferRef
	var msg *C.char
	if C.LLVMTargetMachineEmitToMemoryBuffer(tm.ref, m.ref, C.LLVMCodeGenFileType(ft), &msg, &out) != 0 {
		return nil, errors.Native(errors.PhaseTarget, "emit machine code", newMessage(msg))
	}
	return newMemoryBuffer(out, "LLVMTargetMachineEmitToMemoryBuffer")
}

// Close disposes the target machine. Later calls are no-ops.
func (tm *TargetMachine) Close() error {
	if !tm.closed {
		C.LLVMDisposeTargetMachine(tm.ref)
		tm.closed = true
	}
	return nil
}
