package llvm

/*
#include <llvm-c/Core.h>
*/
import "C"

import (
	"github.com/wippyai/llvm-runtime/errors"
	"github.com/wippyai/llvm-runtime/resource"
)

// BasicBlock is an ordered instruction sequence within a function. Blocks are
// only ever appended to a function, mutated through a positioned builder, and
// torn down with their owning module, whose registry handle they carry.
type BasicBlock struct {
	ref   C.LLVMBasicBlockRef
	ctx   *Context
	owner resource.Handle
}

// alive reports whether the block's module and context are still live.
func (bb BasicBlock) alive() bool {
	if !bb.ctx.alive() {
		return false
	}
	return bb.owner == 0 || bb.ctx.res.Alive(bb.owner)
}

// AppendBasicBlock appends a named block to the function.
func (f Function) AppendBasicBlock(name string) (BasicBlock, error) {
	if !f.alive() {
		return BasicBlock{}, errors.UseAfterDispose(errors.PhaseModule, "function")
	}
	cname, cerr := cString(errors.PhaseModule, name)
	if cerr != nil {
		return BasicBlock{}, cerr
	}
	defer freeCString(cname)

	ref := C.LLVMAppendBasicBlockInContext(f.ctx.ref, f.ref, cname)
	if ref == nil {
		return BasicBlock{}, errors.NullPointer(errors.PhaseModule, "LLVMAppendBasicBlockInContext")
	}
	return BasicBlock{ref: ref, ctx: f.ctx, owner: f.owner}, nil
}

// BasicBlockCount reports how many blocks the function has.
func (f Function) BasicBlockCount() int {
	if !f.alive() {
		return 0
	}
	return int(C.LLVMCountBasicBlocks(f.ref))
}

// EntryBasicBlock returns the function's entry block.
func (f Function) EntryBasicBlock() (BasicBlock, error) {
	if !f.alive() {
		return BasicBlock{}, errors.UseAfterDispose(errors.PhaseModule, "function")
	}
	ref := C.LLVMGetEntryBasicBlock(f.ref)
	if ref == nil {
		return BasicBlock{}, errors.NullPointer(errors.PhaseModule, "LLVMGetEntryBasicBlock")
	}
	return BasicBlock{ref: ref, ctx: f.ctx, owner: f.owner}, nil
}

// FirstInstruction returns the block's first instruction, or a zero Value
// and false when the block is empty.
func (bb BasicBlock) FirstInstruction() (Value, bool) {
	if !bb.alive() {
		return Value{}, false
	}
	ref := C.LLVMGetFirstInstruction(bb.ref)
	if ref == nil {
		return Value{}, false
	}
	return Value{ref: ref, ctx: bb.ctx, owner: bb.owner}, true
}

// Terminator returns the block's terminator instruction, if it has one. A
// block without a terminator is not well-formed; that is the native
// verifier's call, not this layer's.
func (bb BasicBlock) Terminator() (Value, bool) {
	if !bb.alive() {
		return Value{}, false
	}
	ref := C.LLVMGetBasicBlockTerminator(bb.ref)
	if ref == nil {
		return Value{}, false
	}
	return Value{ref: ref, ctx: bb.ctx, owner: bb.owner}, true
}

// InstructionCount walks the block and reports its instruction count.
func (bb BasicBlock) InstructionCount() int {
	if !bb.alive() {
		return 0
	}
	count := 0
	for inst := C.LLVMGetFirstInstruction(bb.ref); inst != nil; inst = C.LLVMGetNextInstruction(inst) {
		count++
	}
	return count
}

// AsValue views the block as a value operand.
func (bb BasicBlock) AsValue() Value {
	if !bb.alive() {
		return Value{}
	}
	return Value{ref: C.LLVMBasicBlockAsValue(bb.ref), ctx: bb.ctx, owner: bb.owner}
}

// IsNil reports the zero BasicBlock.
func (bb BasicBlock) IsNil() bool {
	return bb.ref == nil
}
