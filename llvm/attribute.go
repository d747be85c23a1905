package llvm

/*
#include <llvm-c/Core.h>
*/
import "C"

import (
	"github.com/wippyai/llvm-runtime/errors"
)

// Attribute is a context-interned function or parameter attribute. Like
// types, attributes are never separately disposed.
type Attribute struct {
	ref C.LLVMAttributeRef
	ctx *Context
}

// AttributeIndex selects where on a function an attribute attaches.
type AttributeIndex uint32

const (
	AttributeReturnIndex   AttributeIndex = 0
	AttributeFunctionIndex AttributeIndex = ^AttributeIndex(0)
)

// EnumAttribute builds a named enum attribute (for example "noinline") with
// an optional integer argument.
func (c *Context) EnumAttribute(name string, val uint64) (Attribute, error) {
	if err := c.guard(errors.PhaseValue); err != nil {
		return Attribute{}, err
	}
	cname, cerr := cString(errors.PhaseValue, name)
	if cerr != nil {
		return Attribute{}, cerr
	}
	defer freeCString(cname)

	kind := C.LLVMGetEnumAttributeKindForName(cname, C.size_t(len(name)))
	if kind == 0 {
		return Attribute{}, errors.NotFound(errors.PhaseValue, "attribute kind", name)
	}
	ref := C.LLVMCreateEnumAttribute(c.ref, kind, C.uint64_t(val))
	if ref == nil {
		return Attribute{}, errors.NullPointer(errors.PhaseValue, "LLVMCreateEnumAttribute")
	}
	return Attribute{ref: ref, ctx: c}, nil
}

// StringAttribute builds a free-form key/value attribute.
func (c *Context) StringAttribute(key, value string) (Attribute, error) {
	if err := c.guard(errors.PhaseValue); err != nil {
		return Attribute{}, err
	}
	ckey, cerr := cString(errors.PhaseValue, key)
	if cerr != nil {
		return Attribute{}, cerr
	}
	defer freeCString(ckey)
	cval, cerr := cString(errors.PhaseValue, value)
	if cerr != nil {
		return Attribute{}, cerr
	}
	defer freeCString(cval)

	ref := C.LLVMCreateStringAttribute(c.ref, ckey, C.unsigned(len(key)), cval, C.unsigned(len(value)))
	if ref == nil {
		return Attribute{}, errors.NullPointer(errors.PhaseValue, "LLVMCreateStringAttribute")
	}
	return Attribute{ref: ref, ctx: c}, nil
}

// AddAttribute attaches an attribute to the function at the given index.
func (f Function) AddAttribute(idx AttributeIndex, a Attribute) error {
	if !f.alive() {
		return errors.UseAfterDispose(errors.PhaseValue, "function")
	}
	C.LLVMAddAttributeAtIndex(f.ref, C.LLVMAttributeIndex(idx), a.ref)
	return nil
}
