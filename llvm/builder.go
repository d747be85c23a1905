package llvm

/*
#include <llvm-c/Core.h>
*/
import "C"

import (
	"fmt"

	"github.com/wippyai/llvm-runtime/errors"
	"github.com/wippyai/llvm-runtime/resource"
)

// Builder is a cursor that appends instructions to a basic block. One builder
// may be repositioned across many blocks; it never owns the blocks it writes
// into. Emission with no insertion point fails with an unpositioned error.
type Builder struct {
	ref C.LLVMBuilderRef
	ctx *Context
	cur BasicBlock
	h   resource.Handle
}

// IntPredicate selects an integer comparison.
type IntPredicate uint

const (
	IntEQ  IntPredicate = C.LLVMIntEQ
	IntNE  IntPredicate = C.LLVMIntNE
	IntUGT IntPredicate = C.LLVMIntUGT
	IntUGE IntPredicate = C.LLVMIntUGE
	IntULT IntPredicate = C.LLVMIntULT
	IntULE IntPredicate = C.LLVMIntULE
	IntSGT IntPredicate = C.LLVMIntSGT
	IntSGE IntPredicate = C.LLVMIntSGE
	IntSLT IntPredicate = C.LLVMIntSLT
	IntSLE IntPredicate = C.LLVMIntSLE
)

// RealPredicate selects a floating point comparison.
type RealPredicate uint

const (
	RealOEQ RealPredicate = C.LLVMRealOEQ
	RealOGT RealPredicate = C.LLVMRealOGT
	RealOGE RealPredicate = C.LLVMRealOGE
	RealOLT RealPredicate = C.LLVMRealOLT
	RealOLE RealPredicate = C.LLVMRealOLE
	RealONE RealPredicate = C.LLVMRealONE
	RealUEQ RealPredicate = C.LLVMRealUEQ
	RealUNE RealPredicate = C.LLVMRealUNE
)

// NewBuilder creates an unpositioned builder in the context.
func (c *Context) NewBuilder() (*Builder, error) {
	if err := c.guard(errors.PhaseBuilder); err != nil {
		return nil, err
	}
	ref := C.LLVMCreateBuilderInContext(c.ref)
	if ref == nil {
		return nil, errors.NullPointer(errors.PhaseBuilder, "LLVMCreateBuilderInContext")
	}
	b := &Builder{ref: ref, ctx: c}
	b.h = c.res.Register(b)
	return b, nil
}

// Drop implements resource.Dropper for the registry's teardown cascade.
func (b *Builder) Drop() {
	C.LLVMDisposeBuilder(b.ref)
}

// Close disposes the builder. Later calls are no-ops.
func (b *Builder) Close() error {
	b.ctx.res.Remove(b.h)
	return nil
}

// PositionAtEnd moves the insertion cursor to the end of the block. The only
// side effect is the cursor move.
func (b *Builder) PositionAtEnd(bb BasicBlock) error {
	if err := b.ctx.guardChild(errors.PhaseBuilder, "builder", b.h); err != nil {
		return err
	}
	if bb.IsNil() || !bb.alive() {
		return errors.UseAfterDispose(errors.PhaseBuilder, "insertion block")
	}
	C.LLVMPositionBuilderAtEnd(b.ref, bb.ref)
	b.cur = bb
	return nil
}

// Block returns the current insertion block, if positioned.
func (b *Builder) Block() (BasicBlock, bool) {
	return b.cur, !b.cur.IsNil()
}

// guard is the uniform precondition for every emission: the builder must be
// live, positioned, and the insertion block's module must still exist.
func (b *Builder) guard(op string) *errors.Error {
	if err := b.ctx.guardChild(errors.PhaseBuilder, "builder", b.h); err != nil {
		return err
	}
	if b.cur.IsNil() {
		return errors.Unpositioned(op)
	}
	if !b.cur.alive() {
		return errors.UseAfterDispose(errors.PhaseBuilder, "insertion block")
	}
	return nil
}

// wrap is the uniform postcondition: a null result from the native call is an
// error, never a usable value. Emitted instructions belong to the insertion
// block's module.
func (b *Builder) wrap(op string, ref C.LLVMValueRef) (Value, error) {
	if ref == nil {
		return Value{}, errors.NullPointer(errors.PhaseBuilder, op)
	}
	return Value{ref: ref, ctx: b.ctx, owner: b.cur.owner}, nil
}

func (b *Builder) name(name string) (*C.char, *errors.Error) {
	return cString(errors.PhaseBuilder, name)
}

// Arithmetic

func (b *Builder) Add(l, r Value, name string) (Value, error) {
	if err := b.guard("Add"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("Add", C.LLVMBuildAdd(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) Sub(l, r Value, name string) (Value, error) {
	if err := b.guard("Sub"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("Sub", C.LLVMBuildSub(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) Mul(l, r Value, name string) (Value, error) {
	if err := b.guard("Mul"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("Mul", C.LLVMBuildMul(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) SDiv(l, r Value, name string) (Value, error) {
	if err := b.guard("SDiv"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("SDiv", C.LLVMBuildSDiv(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) UDiv(l, r Value, name string) (Value, error) {
	if err := b.guard("UDiv"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("UDiv", C.LLVMBuildUDiv(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) SRem(l, r Value, name string) (Value, error) {
	if err := b.guard("SRem"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("SRem", C.LLVMBuildSRem(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) FAdd(l, r Value, name string) (Value, error) {
	if err := b.guard("FAdd"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("FAdd", C.LLVMBuildFAdd(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) FSub(l, r Value, name string) (Value, error) {
	if err := b.guard("FSub"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("FSub", C.LLVMBuildFSub(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) FMul(l, r Value, name string) (Value, error) {
	if err := b.guard("FMul"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("FMul", C.LLVMBuildFMul(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) FDiv(l, r Value, name string) (Value, error) {
	if err := b.guard("FDiv"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("FDiv", C.LLVMBuildFDiv(b.ref, l.ref, r.ref, cname))
}

// Bitwise

func (b *Builder) And(l, r Value, name string) (Value, error) {
	if err := b.guard("And"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("And", C.LLVMBuildAnd(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) Or(l, r Value, name string) (Value, error) {
	if err := b.guard("Or"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("Or", C.LLVMBuildOr(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) Xor(l, r Value, name string) (Value, error) {
	if err := b.guard("Xor"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("Xor", C.LLVMBuildXor(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) Shl(l, r Value, name string) (Value, error) {
	if err := b.guard("Shl"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("Shl", C.LLVMBuildShl(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) LShr(l, r Value, name string) (Value, error) {
	if err := b.guard("LShr"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("LShr", C.LLVMBuildLShr(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) AShr(l, r Value, name string) (Value, error) {
	if err := b.guard("AShr"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("AShr", C.LLVMBuildAShr(b.ref, l.ref, r.ref, cname))
}

func (b *Builder) Neg(v Value, name string) (Value, error) {
	if err := b.guard("Neg"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("Neg", C.LLVMBuildNeg(b.ref, v.ref, cname))
}

func (b *Builder) Not(v Value, name string) (Value, error) {
	if err := b.guard("Not"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("Not", C.LLVMBuildNot(b.ref, v.ref, cname))
}

// Comparison

func (b *Builder) ICmp(pred IntPredicate, l, r Value, name string) (Value, error) {
	if err := b.guard("ICmp"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("ICmp", C.LLVMBuildICmp(b.ref, C.LLVMIntPredicate(pred), l.ref, r.ref, cname))
}

func (b *Builder) FCmp(pred RealPredicate, l, r Value, name string) (Value, error) {
	if err := b.guard("FCmp"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("FCmp", C.LLVMBuildFCmp(b.ref, C.LLVMRealPredicate(pred), l.ref, r.ref, cname))
}

// Memory

func (b *Builder) Alloca(typ Type, name string) (Value, error) {
	if err := b.guard("Alloca"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("Alloca", C.LLVMBuildAlloca(b.ref, typ.ref, cname))
}

func (b *Builder) Load(typ Type, ptr Value, name string) (Value, error) {
	if err := b.guard("Load"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("Load", C.LLVMBuildLoad2(b.ref, typ.ref, ptr.ref, cname))
}

func (b *Builder) Store(val, ptr Value) (Value, error) {
	if err := b.guard("Store"); err != nil {
		return Value{}, err
	}
	return b.wrap("Store", C.LLVMBuildStore(b.ref, val.ref, ptr.ref))
}

func (b *Builder) GEP(typ Type, ptr Value, indices []Value, name string) (Value, error) {
	if err := b.guard("GEP"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	refs, n := valueRefs(indices)
	return b.wrap("GEP", C.LLVMBuildGEP2(b.ref, typ.ref, ptr.ref, refs, n, cname))
}

func (b *Builder) GlobalString(s, name string) (Value, error) {
	if err := b.guard("GlobalString"); err != nil {
		return Value{}, err
	}
	cs, cerr := cString(errors.PhaseBuilder, s)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cs)
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("GlobalString", C.LLVMBuildGlobalStringPtr(b.ref, cs, cname))
}

// Control transfer

func (b *Builder) Br(dest BasicBlock) (Value, error) {
	if err := b.guard("Br"); err != nil {
		return Value{}, err
	}
	return b.wrap("Br", C.LLVMBuildBr(b.ref, dest.ref))
}

func (b *Builder) CondBr(cond Value, then, els BasicBlock) (Value, error) {
	if err := b.guard("CondBr"); err != nil {
		return Value{}, err
	}
	return b.wrap("CondBr", C.LLVMBuildCondBr(b.ref, cond.ref, then.ref, els.ref))
}

func (b *Builder) Ret(v Value) (Value, error) {
	if err := b.guard("Ret"); err != nil {
		return Value{}, err
	}
	return b.wrap("Ret", C.LLVMBuildRet(b.ref, v.ref))
}

func (b *Builder) RetVoid() (Value, error) {
	if err := b.guard("RetVoid"); err != nil {
		return Value{}, err
	}
	return b.wrap("RetVoid", C.LLVMBuildRetVoid(b.ref))
}

func (b *Builder) Unreachable() (Value, error) {
	if err := b.guard("Unreachable"); err != nil {
		return Value{}, err
	}
	return b.wrap("Unreachable", C.LLVMBuildUnreachable(b.ref))
}

// Call emits a call through a function signature type. Argument type
// compatibility is the native verifier's business, not this layer's.
func (b *Builder) Call(fnType Type, fn Value, args []Value, name string) (Value, error) {
	if err := b.guard("Call"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	refs, n := valueRefs(args)
	return b.wrap("Call", C.LLVMBuildCall2(b.ref, fnType.ref, fn.ref, refs, n, cname))
}

// Phi emits an empty phi node; fill it in with AddIncoming.
func (b *Builder) Phi(typ Type, name string) (Value, error) {
	if err := b.guard("Phi"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("Phi", C.LLVMBuildPhi(b.ref, typ.ref, cname))
}

// AddIncoming attaches value/block pairs to a phi node.
func AddIncoming(phi Value, values []Value, blocks []BasicBlock) error {
	if !phi.alive() {
		return errors.UseAfterDispose(errors.PhaseBuilder, "phi")
	}
	if len(values) != len(blocks) {
		return errors.InvalidArgument(errors.PhaseBuilder,
			fmt.Sprintf("phi incoming: %d values for %d blocks", len(values), len(blocks)))
	}
	vrefs, n := valueRefs(values)
	brefs, _ := blockRefs(blocks)
	C.LLVMAddIncoming(phi.ref, vrefs, brefs, n)
	return nil
}

func (b *Builder) Select(cond, then, els Value, name string) (Value, error) {
	if err := b.guard("Select"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("Select", C.LLVMBuildSelect(b.ref, cond.ref, then.ref, els.ref, cname))
}

// Casts

func (b *Builder) Trunc(v Value, dest Type, name string) (Value, error) {
	if err := b.guard("Trunc"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("Trunc", C.LLVMBuildTrunc(b.ref, v.ref, dest.ref, cname))
}

func (b *Builder) ZExt(v Value, dest Type, name string) (Value, error) {
	if err := b.guard("ZExt"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("ZExt", C.LLVMBuildZExt(b.ref, v.ref, dest.ref, cname))
}

func (b *Builder) SExt(v Value, dest Type, name string) (Value, error) {
	if err := b.guard("SExt"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("SExt", C.LLVMBuildSExt(b.ref, v.ref, dest.ref, cname))
}

func (b *Builder) BitCast(v Value, dest Type, name string) (Value, error) {
	if err := b.guard("BitCast"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("BitCast", C.LLVMBuildBitCast(b.ref, v.ref, dest.ref, cname))
}

func (b *Builder) IntToPtr(v Value, dest Type, name string) (Value, error) {
	if err := b.guard("IntToPtr"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("IntToPtr", C.LLVMBuildIntToPtr(b.ref, v.ref, dest.ref, cname))
}

func (b *Builder) PtrToInt(v Value, dest Type, name string) (Value, error) {
	if err := b.guard("PtrToInt"); err != nil {
		return Value{}, err
	}
	cname, cerr := b.name(name)
	if cerr != nil {
		return Value{}, cerr
	}
	defer freeCString(cname)
	return b.wrap("PtrToInt", C.LLVMBuildPtrToInt(b.ref, v.ref, dest.ref, cname))
}
