package llvm

/*
#include <llvm-c/Core.h>
*/
import "C"

import (
	"github.com/wippyai/llvm-runtime/errors"
	"github.com/wippyai/llvm-runtime/resource"
)

// Value is an IR operand: a constant, instruction, function, argument or
// global. Values are never independently disposed; teardown cascades from the
// module or context that contains them. Module-owned values (functions,
// globals, instructions, arguments) carry their module's registry handle so
// they go stale with the module, not just the context.
type Value struct {
	ref   C.LLVMValueRef
	ctx   *Context
	owner resource.Handle
}

// alive reports whether the value's owners are still live. Context-interned
// values (constants) have no owner handle.
func (v Value) alive() bool {
	if !v.ctx.alive() {
		return false
	}
	return v.owner == 0 || v.ctx.res.Alive(v.owner)
}

// Function is a value declared within a module.
type Function struct {
	Value
}

// ValueKind is the closed tag set for native value kinds, with ValueOther as
// the forward-compatibility arm.
type ValueKind int

const (
	ValueArgument ValueKind = iota
	ValueBasicBlock
	ValueFunction
	ValueGlobalVariable
	ValueGlobalAlias
	ValueConstantInt
	ValueConstantFP
	ValueConstantArray
	ValueConstantStruct
	ValueConstantVector
	ValueConstantPointerNull
	ValueConstantDataArray
	ValueConstantAggregateZero
	ValueConstantExpr
	ValueUndef
	ValuePoison
	ValueInstruction
	ValueMetadata
	ValueInlineAsm
	ValueOther
)

func (k ValueKind) String() string {
	switch k {
	case ValueArgument:
		return "argument"
	case ValueBasicBlock:
		return "basic_block"
	case ValueFunction:
		return "function"
	case ValueGlobalVariable:
		return "global_variable"
	case ValueGlobalAlias:
		return "global_alias"
	case ValueConstantInt:
		return "constant_int"
	case ValueConstantFP:
		return "constant_fp"
	case ValueConstantArray:
		return "constant_array"
	case ValueConstantStruct:
		return "constant_struct"
	case ValueConstantVector:
		return "constant_vector"
	case ValueConstantPointerNull:
		return "constant_pointer_null"
	case ValueConstantDataArray:
		return "constant_data_array"
	case ValueConstantAggregateZero:
		return "constant_aggregate_zero"
	case ValueConstantExpr:
		return "constant_expr"
	case ValueUndef:
		return "undef"
	case ValuePoison:
		return "poison"
	case ValueInstruction:
		return "instruction"
	case ValueMetadata:
		return "metadata"
	case ValueInlineAsm:
		return "inline_asm"
	default:
		return "other"
	}
}

func valueKindFromNative(k C.LLVMValueKind) ValueKind {
	switch k {
	case C.LLVMArgumentValueKind:
		return ValueArgument
	case C.LLVMBasicBlockValueKind:
		return ValueBasicBlock
	case C.LLVMFunctionValueKind:
		return ValueFunction
	case C.LLVMGlobalVariableValueKind:
		return ValueGlobalVariable
	case C.LLVMGlobalAliasValueKind:
		return ValueGlobalAlias
	case C.LLVMConstantIntValueKind:
		return ValueConstantInt
	case C.LLVMConstantFPValueKind:
		return ValueConstantFP
	case C.LLVMConstantArrayValueKind:
		return ValueConstantArray
	case C.LLVMConstantStructValueKind:
		return ValueConstantStruct
	case C.LLVMConstantVectorValueKind:
		return ValueConstantVector
	case C.LLVMConstantPointerNullValueKind:
		return ValueConstantPointerNull
	case C.LLVMConstantDataArrayValueKind:
		return ValueConstantDataArray
	case C.LLVMConstantAggregateZeroValueKind:
		return ValueConstantAggregateZero
	case C.LLVMConstantExprValueKind:
		return ValueConstantExpr
	case C.LLVMUndefValueValueKind:
		return ValueUndef
	case C.LLVMPoisonValueValueKind:
		return ValuePoison
	case C.LLVMInstructionValueKind:
		return ValueInstruction
	case C.LLVMMetadataAsValueValueKind:
		return ValueMetadata
	case C.LLVMInlineAsmValueKind:
		return ValueInlineAsm
	default:
		return ValueOther
	}
}

// ConstInt builds an integer constant of the given type.
func ConstInt(typ Type, n uint64, signExtend bool) (Value, error) {
	if !typ.ctx.alive() {
		return Value{}, errors.UseAfterDispose(errors.PhaseValue, "type")
	}
	ref := C.LLVMConstInt(typ.ref, C.ulonglong(n), llvmBool(signExtend))
	if ref == nil {
		return Value{}, errors.NullPointer(errors.PhaseValue, "LLVMConstInt")
	}
	return Value{ref: ref, ctx: typ.ctx}, nil
}

// ConstReal builds a floating point constant of the given type.
func ConstReal(typ Type, v float64) (Value, error) {
	if !typ.ctx.alive() {
		return Value{}, errors.UseAfterDispose(errors.PhaseValue, "type")
	}
	ref := C.LLVMConstReal(typ.ref, C.double(v))
	if ref == nil {
		return Value{}, errors.NullPointer(errors.PhaseValue, "LLVMConstReal")
	}
	return Value{ref: ref, ctx: typ.ctx}, nil
}

// ConstString builds a constant byte string in the context.
func (c *Context) ConstString(s string, nullTerminate bool) (Value, error) {
	if err := c.guard(errors.PhaseValue); err != nil {
		return Value{}, err
	}
	cs := C.CString(s)
	defer freeCString(cs)
	ref := C.LLVMConstStringInContext(c.ref, cs, C.unsigned(len(s)), llvmBool(!nullTerminate))
	if ref == nil {
		return Value{}, errors.NullPointer(errors.PhaseValue, "LLVMConstStringInContext")
	}
	return Value{ref: ref, ctx: c}, nil
}

// Kind reports the value's tag. A dead context yields ValueOther.
func (v Value) Kind() ValueKind {
	if !v.alive() {
		return ValueOther
	}
	return valueKindFromNative(C.LLVMGetValueKind(v.ref))
}

// Type reports the value's type.
func (v Value) Type() Type {
	if !v.alive() {
		return Type{}
	}
	return Type{ref: C.LLVMTypeOf(v.ref), ctx: v.ctx}
}

// Name returns the value's IR name, empty for unnamed values.
func (v Value) Name() string {
	if !v.alive() {
		return ""
	}
	var n C.size_t
	p := C.LLVMGetValueName2(v.ref, &n)
	if p == nil {
		return ""
	}
	return C.GoStringN(p, C.int(n))
}

// SetName renames the value.
func (v Value) SetName(name string) error {
	if !v.alive() {
		return errors.UseAfterDispose(errors.PhaseValue, "value")
	}
	cname, cerr := cString(errors.PhaseValue, name)
	if cerr != nil {
		return cerr
	}
	defer freeCString(cname)
	C.LLVMSetValueName2(v.ref, cname, C.size_t(len(name)))
	return nil
}

// IsConstant reports whether the value is a constant.
func (v Value) IsConstant() bool {
	return v.alive() && C.LLVMIsConstant(v.ref) != 0
}

// IsNil reports the zero Value.
func (v Value) IsNil() bool {
	return v.ref == nil
}

// CallConv selects a calling convention for functions and calls.
type CallConv uint

const (
	CCallConv    CallConv = C.LLVMCCallConv
	FastCallConv CallConv = C.LLVMFastCallConv
	ColdCallConv CallConv = C.LLVMColdCallConv
)

// ParamCount reports the function's parameter count.
func (f Function) ParamCount() int {
	if !f.alive() {
		return 0
	}
	return int(C.LLVMCountParams(f.ref))
}

// Param returns the i'th parameter as a value.
func (f Function) Param(i int) (Value, error) {
	if !f.alive() {
		return Value{}, errors.UseAfterDispose(errors.PhaseValue, "function")
	}
	if i < 0 || i >= f.ParamCount() {
		return Value{}, errors.NotFound(errors.PhaseValue, "parameter", "")
	}
	ref := C.LLVMGetParam(f.ref, C.unsigned(i))
	if ref == nil {
		return Value{}, errors.NullPointer(errors.PhaseValue, "LLVMGetParam")
	}
	return Value{ref: ref, ctx: f.ctx, owner: f.owner}, nil
}

// SetCallConv sets the function's calling convention.
func (f Function) SetCallConv(cc CallConv) error {
	if !f.alive() {
		return errors.UseAfterDispose(errors.PhaseValue, "function")
	}
	C.LLVMSetFunctionCallConv(f.ref, C.unsigned(cc))
	return nil
}

// GetCallConv reports the function's calling convention.
func (f Function) GetCallConv() CallConv {
	if !f.alive() {
		return CCallConv
	}
	return CallConv(C.LLVMGetFunctionCallConv(f.ref))
}
