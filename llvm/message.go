package llvm

/*
#include <llvm-c/Core.h>
#include <string.h>
*/
import "C"

// Message wraps a native-allocated, NUL-terminated diagnostic string whose
// disposal is this wrapper's responsibility (LLVMDisposeMessage). A nil inner
// pointer is a valid empty state: some out-parameter APIs leave the message
// unset on success paths that still route through the same pointer.
type Message struct {
	ptr *C.char
}

// newMessage takes ownership of a native message pointer, which may be nil.
func newMessage(p *C.char) *Message {
	return &Message{ptr: p}
}

// NewMessage copies a host string into a native message, for round-trip
// symmetry with diagnostics the toolkit allocates itself.
func NewMessage(s string) *Message {
	cs := C.CString(s)
	defer freeCString(cs)
	return newMessage(C.LLVMCreateMessage(cs))
}

// Len returns the message length in bytes. Computed by native strlen on
// demand; the bytes are never copied eagerly.
func (m *Message) Len() int {
	if m.ptr == nil {
		return 0
	}
	return int(C.strlen(m.ptr))
}

// String returns the message bytes verbatim. The nil state renders as a
// fixed placeholder.
func (m *Message) String() string {
	if m.ptr == nil {
		return "<NULL>"
	}
	return C.GoStringN(m.ptr, C.int(m.Len()))
}

// Close releases the native bytes. Safe to call more than once; only the
// first call reaches the native deallocator.
func (m *Message) Close() error {
	if m.ptr != nil {
		C.LLVMDisposeMessage(m.ptr)
		m.ptr = nil
	}
	return nil
}
