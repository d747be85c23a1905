package llvm

import (
	"strings"
	"testing"
)

func TestBitcodeParsesAsIRBinary(t *testing.T) {
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	defer ctx.Close()

	m, err := ctx.NewModule("bc")
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}
	buildSumFunction(t, ctx, m)

	buf, err := m.WriteBitcodeToBuffer()
	if err != nil {
		t.Fatalf("WriteBitcodeToBuffer failed: %v", err)
	}
	defer buf.Close()
	if buf.Len() == 0 {
		t.Fatal("bitcode buffer is empty")
	}

	bin, err := NewBinary(buf, ctx)
	if err != nil {
		t.Fatalf("NewBinary failed: %v", err)
	}
	defer bin.Close()
	if got := bin.Type(); got != BinaryIR {
		t.Fatalf("Type = %v, want ir", got)
	}

	// The unknown sentinel is a host-side value, never a container format.
	if err := bin.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if got := bin.Type(); got != BinaryTypeUnknown {
		t.Fatalf("Type after close = %v, want unknown", got)
	}
}

func TestTargetMachineEmitsObject(t *testing.T) {
	triple := DefaultTargetTriple()
	defer triple.Close()
	if strings.TrimSpace(triple.String()) == "" {
		t.Skip("no default target triple on this host")
	}

	tm, err := NewTargetMachine(&TargetMachineConfig{})
	if err != nil {
		t.Fatalf("NewTargetMachine failed: %v", err)
	}
	defer tm.Close()

	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	defer ctx.Close()

	m, err := ctx.NewModule("obj")
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}
	buildSumFunction(t, ctx, m)

	obj, err := tm.EmitToMemoryBuffer(m, ObjectFile)
	if err != nil {
		t.Fatalf("EmitToMemoryBuffer failed: %v", err)
	}
	defer obj.Close()
	if obj.Len() == 0 {
		t.Fatal("emitted object is empty")
	}

	bin, err := NewBinary(obj, nil)
	if err != nil {
		t.Fatalf("NewBinary failed: %v", err)
	}
	defer bin.Close()
	if got := bin.Type(); got == BinaryTypeUnknown || got == BinaryIR {
		t.Fatalf("Type = %v, want a native object container", got)
	}
}
