// Package errors provides structured error types for the llvm-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Failures reported by the native toolkit with a human-readable
// message carry that message verbatim as an owned Diagnostic.
//
// Use the convenience constructors:
//
//	err := errors.NullPointer(errors.PhaseModule, "LLVMModuleCreateWithNameInContext")
//	err := errors.Native(errors.PhaseBuffer, "read file", msg)
//	err := errors.UseAfterDispose(errors.PhaseBuilder, "builder")
//
// All errors implement the standard error interface and support errors.Is/As;
// Is matches on the Phase and Kind pair.
package errors
