package llvm

/*
#include <llvm-c/Core.h>
*/
import "C"

import (
	"os"
	"unsafe"

	"github.com/wippyai/llvm-runtime/errors"
)

// MemoryBuffer wraps a native-allocated byte range (serialized bitcode, an
// emitted object file, a file read through the toolkit). Disposal calls
// LLVMDisposeMemoryBuffer exactly once.
type MemoryBuffer struct {
	ref    C.LLVMMemoryBufferRef
	closed bool
}

func newMemoryBuffer(ref C.LLVMMemoryBufferRef, what string) (*MemoryBuffer, error) {
	if ref == nil {
		return nil, errors.NullPointer(errors.PhaseBuffer, what)
	}
	return &MemoryBuffer{ref: ref}, nil
}

// NewMemoryBufferFromFile reads an existing file into native-owned storage.
// A path with an embedded NUL fails with invalid_path; a read failure
// carries the toolkit's own diagnostic.
func NewMemoryBufferFromFile(path string) (*MemoryBuffer, error) {
	cpath, cerr := cString(errors.PhaseBuffer, path)
	if cerr != nil {
		return nil, cerr
	}
	defer freeCString(cpath)

	var ref C.LLVMMemoryBufferRef
	var msg *C.char
	if C.LLVMCreateMemoryBufferWithContentsOfFile(cpath, &ref, &msg) != 0 {
		return nil, errors.Native(errors.PhaseBuffer, "read file", newMessage(msg))
	}
	return newMemoryBuffer(ref, "LLVMCreateMemoryBufferWithContentsOfFile")
}

// NewMemoryBufferFromBytes copies data into native-owned storage immediately;
// the host slice need not outlive the call.
func NewMemoryBufferFromBytes(name string, data []byte) (*MemoryBuffer, error) {
	cname, cerr := cString(errors.PhaseBuffer, name)
	if cerr != nil {
		return nil, cerr
	}
	defer freeCString(cname)

	var start *C.char
	if len(data) > 0 {
		start = (*C.char)(unsafe.Pointer(&data[0]))
	}
	ref := C.LLVMCreateMemoryBufferWithMemoryRangeCopy(start, C.size_t(len(data)), cname)
	return newMemoryBuffer(ref, "LLVMCreateMemoryBufferWithMemoryRangeCopy")
}

// Len returns the number of bytes in the buffer.
func (b *MemoryBuffer) Len() int {
	if b.closed {
		return 0
	}
	return int(C.LLVMGetBufferSize(b.ref))
}

// Bytes returns a read-only view of the native storage. The view is valid
// only until Close; callers that need the data past the buffer's lifetime
// must copy it.
func (b *MemoryBuffer) Bytes() []byte {
	if b.closed {
		return nil
	}
	size := b.Len()
	if size == 0 {
		return nil
	}
	start := C.LLVMGetBufferStart(b.ref)
	return unsafe.Slice((*byte)(unsafe.Pointer(start)), size)
}

// WriteFile writes the buffer's bytes to a new or truncated file.
func (b *MemoryBuffer) WriteFile(path string) error {
	if b.closed {
		return errors.UseAfterDispose(errors.PhaseBuffer, "memory buffer")
	}
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		return errors.IO(errors.PhaseBuffer, "write file", err)
	}
	return nil
}

// Close releases the native storage. Later calls are no-ops.
func (b *MemoryBuffer) Close() error {
	if !b.closed {
		C.LLVMDisposeMemoryBuffer(b.ref)
		b.closed = true
	}
	return nil
}
