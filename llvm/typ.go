package llvm

/*
#include <llvm-c/Core.h>
*/
import "C"

import (
	"github.com/wippyai/llvm-runtime/errors"
)

// Type describes the shape of a Value. Types are interned by their context
// and never separately disposed; structurally identical types derived from
// one context share identity.
type Type struct {
	ref C.LLVMTypeRef
	ctx *Context
}

// TypeKind is the closed tag set for native type kinds. Kinds this layer does
// not recognize map to TypeOther rather than being assumed impossible.
type TypeKind int

const (
	TypeVoid TypeKind = iota
	TypeHalf
	TypeFloat
	TypeDouble
	TypeFP128
	TypeLabel
	TypeInteger
	TypeFunction
	TypeStruct
	TypeArray
	TypePointer
	TypeVector
	TypeMetadata
	TypeToken
	TypeOther
)

func (k TypeKind) String() string {
	switch k {
	case TypeVoid:
		return "void"
	case TypeHalf:
		return "half"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeFP128:
		return "fp128"
	case TypeLabel:
		return "label"
	case TypeInteger:
		return "integer"
	case TypeFunction:
		return "function"
	case TypeStruct:
		return "struct"
	case TypeArray:
		return "array"
	case TypePointer:
		return "pointer"
	case TypeVector:
		return "vector"
	case TypeMetadata:
		return "metadata"
	case TypeToken:
		return "token"
	default:
		return "other"
	}
}

func typeKindFromNative(k C.LLVMTypeKind) TypeKind {
	switch k {
	case C.LLVMVoidTypeKind:
		return TypeVoid
	case C.LLVMHalfTypeKind:
		return TypeHalf
	case C.LLVMFloatTypeKind:
		return TypeFloat
	case C.LLVMDoubleTypeKind:
		return TypeDouble
	case C.LLVMFP128TypeKind:
		return TypeFP128
	case C.LLVMLabelTypeKind:
		return TypeLabel
	case C.LLVMIntegerTypeKind:
		return TypeInteger
	case C.LLVMFunctionTypeKind:
		return TypeFunction
	case C.LLVMStructTypeKind:
		return TypeStruct
	case C.LLVMArrayTypeKind:
		return TypeArray
	case C.LLVMPointerTypeKind:
		return TypePointer
	case C.LLVMVectorTypeKind:
		return TypeVector
	case C.LLVMMetadataTypeKind:
		return TypeMetadata
	case C.LLVMTokenTypeKind:
		return TypeToken
	default:
		return TypeOther
	}
}

func (c *Context) wrapType(ref C.LLVMTypeRef, what string) (Type, error) {
	if ref == nil {
		return Type{}, errors.NullPointer(errors.PhaseType, what)
	}
	return Type{ref: ref, ctx: c}, nil
}

// Int derives an integer type of the given bit width.
func (c *Context) Int(width uint) (Type, error) {
	if err := c.guard(errors.PhaseType); err != nil {
		return Type{}, err
	}
	return c.wrapType(C.LLVMIntTypeInContext(c.ref, C.unsigned(width)), "LLVMIntTypeInContext")
}

func (c *Context) Int1() (Type, error)  { return c.Int(1) }
func (c *Context) Int8() (Type, error)  { return c.Int(8) }
func (c *Context) Int16() (Type, error) { return c.Int(16) }
func (c *Context) Int32() (Type, error) { return c.Int(32) }
func (c *Context) Int64() (Type, error) { return c.Int(64) }

// Float derives the 32-bit floating point type.
func (c *Context) Float() (Type, error) {
	if err := c.guard(errors.PhaseType); err != nil {
		return Type{}, err
	}
	return c.wrapType(C.LLVMFloatTypeInContext(c.ref), "LLVMFloatTypeInContext")
}

// Double derives the 64-bit floating point type.
func (c *Context) Double() (Type, error) {
	if err := c.guard(errors.PhaseType); err != nil {
		return Type{}, err
	}
	return c.wrapType(C.LLVMDoubleTypeInContext(c.ref), "LLVMDoubleTypeInContext")
}

// Void derives the void type.
func (c *Context) Void() (Type, error) {
	if err := c.guard(errors.PhaseType); err != nil {
		return Type{}, err
	}
	return c.wrapType(C.LLVMVoidTypeInContext(c.ref), "LLVMVoidTypeInContext")
}

// StructType derives an anonymous struct type from a field list.
func (c *Context) StructType(fields []Type, packed bool) (Type, error) {
	if err := c.guard(errors.PhaseType); err != nil {
		return Type{}, err
	}
	refs, n := typeRefs(fields)
	return c.wrapType(C.LLVMStructTypeInContext(c.ref, refs, n, llvmBool(packed)), "LLVMStructTypeInContext")
}

// NamedStructType creates an opaque named struct; fill it in with SetBody.
func (c *Context) NamedStructType(name string) (Type, error) {
	if err := c.guard(errors.PhaseType); err != nil {
		return Type{}, err
	}
	cname, cerr := cString(errors.PhaseType, name)
	if cerr != nil {
		return Type{}, cerr
	}
	defer freeCString(cname)
	return c.wrapType(C.LLVMStructCreateNamed(c.ref, cname), "LLVMStructCreateNamed")
}

// SetBody fills in a named struct created with NamedStructType.
func (t Type) SetBody(fields []Type, packed bool) error {
	if !t.ctx.alive() {
		return errors.UseAfterDispose(errors.PhaseType, "type")
	}
	refs, n := typeRefs(fields)
	C.LLVMStructSetBody(t.ref, refs, n, llvmBool(packed))
	return nil
}

// PointerType derives a pointer type in the given address space.
func PointerType(elem Type, addressSpace uint) (Type, error) {
	if !elem.ctx.alive() {
		return Type{}, errors.UseAfterDispose(errors.PhaseType, "type")
	}
	return elem.ctx.wrapType(C.LLVMPointerType(elem.ref, C.unsigned(addressSpace)), "LLVMPointerType")
}

// ArrayType derives a fixed-length array type.
func ArrayType(elem Type, count uint) (Type, error) {
	if !elem.ctx.alive() {
		return Type{}, errors.UseAfterDispose(errors.PhaseType, "type")
	}
	return elem.ctx.wrapType(C.LLVMArrayType(elem.ref, C.unsigned(count)), "LLVMArrayType")
}

// FunctionType derives a function signature type.
func FunctionType(ret Type, params []Type, variadic bool) (Type, error) {
	if !ret.ctx.alive() {
		return Type{}, errors.UseAfterDispose(errors.PhaseType, "type")
	}
	refs, n := typeRefs(params)
	return ret.ctx.wrapType(C.LLVMFunctionType(ret.ref, refs, n, llvmBool(variadic)), "LLVMFunctionType")
}

// Kind reports the type's tag. A dead context yields TypeOther.
func (t Type) Kind() TypeKind {
	if !t.ctx.alive() {
		return TypeOther
	}
	return typeKindFromNative(C.LLVMGetTypeKind(t.ref))
}

// IntWidth reports an integer type's bit width, zero for non-integers.
func (t Type) IntWidth() uint {
	if !t.ctx.alive() || t.Kind() != TypeInteger {
		return 0
	}
	return uint(C.LLVMGetIntTypeWidth(t.ref))
}

// Equal reports interned identity: two structurally identical types from the
// same context compare equal.
func (t Type) Equal(other Type) bool {
	return t.ref == other.ref
}

// IsNil reports the zero Type.
func (t Type) IsNil() bool {
	return t.ref == nil
}
