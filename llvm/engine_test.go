package llvm

import (
	"errors"
	"testing"

	llvmerrors "github.com/wippyai/llvm-runtime/errors"
)

func TestExecutionEngineRunsCompiledFunction(t *testing.T) {
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	defer ctx.Close()

	m, err := ctx.NewModule("jit")
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}
	buildSumFunction(t, ctx, m)
	if err := m.Verify(); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	ee, err := NewExecutionEngine(m)
	if err != nil {
		t.Fatalf("NewExecutionEngine failed: %v", err)
	}
	defer ee.Close()

	got, err := ee.RunInt64Binary("sum", 19, 23)
	if err != nil {
		t.Fatalf("RunInt64Binary failed: %v", err)
	}
	if got != 42 {
		t.Fatalf("sum(19, 23) = %d, want 42", got)
	}
}

func TestExecutionEngineOwnsModule(t *testing.T) {
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	defer ctx.Close()

	m, err := ctx.NewModule("owned")
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}
	buildSumFunction(t, ctx, m)

	ee, err := NewExecutionEngine(m)
	if err != nil {
		t.Fatalf("NewExecutionEngine failed: %v", err)
	}
	defer ee.Close()

	// The engine took the module; the old wrapper is dead and closing it
	// must not dispose anything out from under the engine.
	if _, err := m.Identifier(); !errors.Is(err, &llvmerrors.Error{
		Phase: llvmerrors.PhaseModule, Kind: llvmerrors.KindUseAfterDispose,
	}) {
		t.Fatalf("Identifier on consumed module: got %v, want use_after_dispose", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close on consumed module failed: %v", err)
	}

	// The engine still works after the stale wrapper was closed.
	if _, err := ee.RunInt64Binary("sum", 1, 2); err != nil {
		t.Fatalf("RunInt64Binary after stale module close failed: %v", err)
	}
}

func TestExecutionEngineMissingSymbol(t *testing.T) {
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	defer ctx.Close()

	m, err := ctx.NewModule("missing")
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}
	buildSumFunction(t, ctx, m)

	ee, err := NewExecutionEngine(m)
	if err != nil {
		t.Fatalf("NewExecutionEngine failed: %v", err)
	}
	defer ee.Close()

	if _, err := ee.FunctionAddress("no_such_symbol"); !errors.Is(err, &llvmerrors.Error{
		Phase: llvmerrors.PhaseEngine, Kind: llvmerrors.KindNotFound,
	}) {
		t.Fatalf("FunctionAddress miss: got %v, want not_found", err)
	}
}

func TestExecutionEngineUseAfterClose(t *testing.T) {
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	defer ctx.Close()

	m, err := ctx.NewModule("dead")
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}
	buildSumFunction(t, ctx, m)

	ee, err := NewExecutionEngine(m)
	if err != nil {
		t.Fatalf("NewExecutionEngine failed: %v", err)
	}
	if err := ee.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := ee.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if _, err := ee.FunctionAddress("sum"); !errors.Is(err, &llvmerrors.Error{
		Phase: llvmerrors.PhaseEngine, Kind: llvmerrors.KindUseAfterDispose,
	}) {
		t.Fatalf("FunctionAddress after close: got %v, want use_after_dispose", err)
	}
}
