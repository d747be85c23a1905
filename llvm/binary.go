package llvm

/*
#include <llvm-c/Core.h>
#include <llvm-c/Object.h>
*/
import "C"

import (
	"github.com/wippyai/llvm-runtime/errors"
)

// Binary is a parsed view over an object-file memory buffer. The buffer is
// borrowed, not consumed; it must stay open for the binary's lifetime.
type Binary struct {
	ref    C.LLVMBinaryRef
	closed bool
}

// BinaryType is the closed tag set for object container formats. Container
// kinds this layer does not recognize map to BinaryTypeUnknown.
type BinaryType int

const (
	BinaryArchive BinaryType = iota
	BinaryMachO
	BinaryELF
	BinaryCOFF
	BinaryIR
	BinaryWasm
	BinaryTypeUnknown
)

func (t BinaryType) String() string {
	switch t {
	case BinaryArchive:
		return "archive"
	case BinaryMachO:
		return "macho"
	case BinaryELF:
		return "elf"
	case BinaryCOFF:
		return "coff"
	case BinaryIR:
		return "ir"
	case BinaryWasm:
		return "wasm"
	default:
		return "unknown"
	}
}

func binaryTypeFromNative(t C.LLVMBinaryType) BinaryType {
	switch t {
	case C.LLVMBinaryTypeArchive:
		return BinaryArchive
	case C.LLVMBinaryTypeMachO32L, C.LLVMBinaryTypeMachO32B,
		C.LLVMBinaryTypeMachO64L, C.LLVMBinaryTypeMachO64B:
		return BinaryMachO
	case C.LLVMBinaryTypeELF32L, C.LLVMBinaryTypeELF32B,
		C.LLVMBinaryTypeELF64L, C.LLVMBinaryTypeELF64B:
		return BinaryELF
	case C.LLVMBinaryTypeCOFF:
		return BinaryCOFF
	case C.LLVMBinaryTypeIR:
		return BinaryIR
	case C.LLVMBinaryTypeWasm:
		return BinaryWasm
	default:
		return BinaryTypeUnknown
	}
}

// NewBinary parses an object buffer. A parse failure carries the native
// diagnostic; the context may be nil for context-free container formats.
func NewBinary(buf *MemoryBuffer, ctx *Context) (*Binary, error) {
	if buf == nil || buf.closed {
		return nil, errors.UseAfterDispose(errors.PhaseBinary, "memory buffer")
	}
	var cctx C.LLVMContextRef
	if ctx != nil {
		if err := ctx.guard(errors.PhaseBinary); err != nil {
			return nil, err
		}
		cctx = ctx.ref
	}

	var msg *C.char
	ref := C.LLVMCreateBinary(buf.ref, cctx, &msg)
	if ref == nil {
		return nil, errors.Native(errors.PhaseBinary, "parse binary", newMessage(msg))
	}
	// The out-parameter may be set even on success.
	newMessage(msg).Close()
	return &Binary{ref: ref}, nil
}

// Type reports the container format.
func (b *Binary) Type() BinaryType {
	if b.closed {
		return BinaryTypeUnknown
	}
	return binaryTypeFromNative(C.LLVMBinaryGetType(b.ref))
}

// Close disposes the binary. Later calls are no-ops.
func (b *Binary) Close() error {
	if !b.closed {
		C.LLVMDisposeBinary(b.ref)
		b.closed = true
	}
	return nil
}
