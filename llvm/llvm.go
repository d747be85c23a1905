package llvm

/*
#cgo CFLAGS: -D__STDC_CONSTANT_MACROS -D__STDC_FORMAT_MACROS -D__STDC_LIMIT_MACROS
#cgo LDFLAGS: -lLLVM

#include <llvm-c/Core.h>
#include <llvm-c/Target.h>
#include <llvm-c/ExecutionEngine.h>
#include <stdlib.h>
*/
import "C"

import (
	"strings"
	"sync"
	"unsafe"

	"github.com/wippyai/llvm-runtime/errors"
)

var nativeOnce sync.Once

// initNative wires up the host target and the MCJIT linker. Idempotent;
// every entry point that needs native state funnels through here.
func initNative() {
	nativeOnce.Do(func() {
		C.LLVMInitializeNativeTarget()
		C.LLVMInitializeNativeAsmPrinter()
		C.LLVMInitializeNativeAsmParser()
		C.LLVMLinkInMCJIT()
	})
}

// cString converts a host string for the C boundary. LLVM's string arguments
// are NUL-terminated, so an embedded NUL is not representable.
func cString(phase errors.Phase, s string) (*C.char, *errors.Error) {
	if strings.ContainsRune(s, 0) {
		return nil, errors.InvalidPath(phase, s)
	}
	return C.CString(s), nil
}

func freeCString(p *C.char) {
	C.free(unsafe.Pointer(p))
}

// typeRefs flattens a slice of wrappers for a native call. The returned
// pointer is only valid for the duration of that call.
func typeRefs(types []Type) (*C.LLVMTypeRef, C.unsigned) {
	if len(types) == 0 {
		return nil, 0
	}
	refs := make([]C.LLVMTypeRef, len(types))
	for i, t := range types {
		refs[i] = t.ref
	}
	return &refs[0], C.unsigned(len(refs))
}

func valueRefs(values []Value) (*C.LLVMValueRef, C.unsigned) {
	if len(values) == 0 {
		return nil, 0
	}
	refs := make([]C.LLVMValueRef, len(values))
	for i, v := range values {
		refs[i] = v.ref
	}
	return &refs[0], C.unsigned(len(refs))
}

func blockRefs(blocks []BasicBlock) (*C.LLVMBasicBlockRef, C.unsigned) {
	if len(blocks) == 0 {
		return nil, 0
	}
	refs := make([]C.LLVMBasicBlockRef, len(blocks))
	for i, b := range blocks {
		refs[i] = b.ref
	}
	return &refs[0], C.unsigned(len(refs))
}

func llvmBool(b bool) C.LLVMBool {
	if b {
		return 1
	}
	return 0
}
