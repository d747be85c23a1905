package llvm

/*
#include <llvm-c/Core.h>
*/
import "C"

import (
	"github.com/wippyai/llvm-runtime/errors"
	"github.com/wippyai/llvm-runtime/resource"
)

// Context is the root owner. Every other wrapper borrows from it, directly or
// through a module, and its Close tears all of them down before the native
// context itself is disposed.
type Context struct {
	ref    C.LLVMContextRef
	res    *resource.Registry
	closed bool
}

// Config holds configuration for context creation
type Config struct {
	// DiscardValueNames drops local value names from the IR to save memory
	// in builds that never print it.
	DiscardValueNames bool
}

// NewContext creates a context with default configuration.
func NewContext() (*Context, error) {
	return NewContextWithConfig(nil)
}

// NewContextWithConfig creates a context with custom configuration.
func NewContextWithConfig(cfg *Config) (*Context, error) {
	initNative()

	ref := C.LLVMContextCreate()
	if ref == nil {
		return nil, errors.NullPointer(errors.PhaseContext, "LLVMContextCreate")
	}

	if cfg != nil && cfg.DiscardValueNames {
		C.LLVMContextSetDiscardValueNames(ref, 1)
	}

	res := resource.NewRegistry()
	res.Subscribe(lifecycleLogger{})

	return &Context{ref: ref, res: res}, nil
}

// Resources exposes the context's registry, for observers and tests.
func (c *Context) Resources() *resource.Registry {
	return c.res
}

// Close disposes every live derived resource in reverse creation order, then
// the native context. Later calls are no-ops.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	// Dependents first; the native context must outlive everything
	// derived from it.
	if err := c.res.Close(); err != nil {
		return err
	}
	C.LLVMContextDispose(c.ref)
	return nil
}

func (c *Context) alive() bool {
	return c != nil && !c.closed
}

// guard is the common liveness check for operations on the context itself.
func (c *Context) guard(phase errors.Phase) *errors.Error {
	if !c.alive() {
		return errors.UseAfterDispose(phase, "context")
	}
	return nil
}

// guardChild checks both the context and a derived registration.
func (c *Context) guardChild(phase errors.Phase, what string, h resource.Handle) *errors.Error {
	if !c.alive() || !c.res.Alive(h) {
		return errors.UseAfterDispose(phase, what)
	}
	return nil
}
