package llvm

import (
	"errors"
	"testing"

	llvmerrors "github.com/wippyai/llvm-runtime/errors"
)

func TestModulePassManagerEmptyPipeline(t *testing.T) {
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	defer ctx.Close()

	m, err := ctx.NewModule("empty")
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}
	pm, err := ctx.NewModulePassManager()
	if err != nil {
		t.Fatalf("NewModulePassManager failed: %v", err)
	}
	defer pm.Close()

	if err := pm.Add(); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	changed, err := pm.Run(m)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if changed {
		t.Fatal("empty pipeline over an empty module reported a change")
	}
}

func TestFuncPassManagerLifecycle(t *testing.T) {
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	defer ctx.Close()

	m, err := ctx.NewModule("fpm")
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}
	fn := buildSumFunction(t, ctx, m)

	pm, err := m.NewFuncPassManager()
	if err != nil {
		t.Fatalf("NewFuncPassManager failed: %v", err)
	}
	defer pm.Close()

	if _, err := pm.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	changed, err := pm.Run(fn)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if changed {
		t.Fatal("empty function pipeline reported a change")
	}
	if _, err := pm.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
}

func TestPassManagerUseAfterClose(t *testing.T) {
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	defer ctx.Close()

	m, err := ctx.NewModule("stale")
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}
	pm, err := ctx.NewModulePassManager()
	if err != nil {
		t.Fatalf("NewModulePassManager failed: %v", err)
	}
	if err := pm.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := pm.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if _, err := pm.Run(m); !errors.Is(err, &llvmerrors.Error{
		Phase: llvmerrors.PhasePasses, Kind: llvmerrors.KindUseAfterDispose,
	}) {
		t.Fatalf("Run after close: got %v, want use_after_dispose", err)
	}
}
