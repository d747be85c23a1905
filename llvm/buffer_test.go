package llvm

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	llvmerrors "github.com/wippyai/llvm-runtime/errors"
)

func TestMemoryBufferFromBytesRoundTrip(t *testing.T) {
	data := []byte("\x00\x01live bytes\xff")

	buf, err := NewMemoryBufferFromBytes("scratch", data)
	if err != nil {
		t.Fatalf("NewMemoryBufferFromBytes failed: %v", err)
	}
	defer buf.Close()

	if buf.Len() != len(data) {
		t.Fatalf("Len = %d, want %d", buf.Len(), len(data))
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Fatalf("Bytes = %x, want %x", buf.Bytes(), data)
	}

	// The copy is immediate; mutating the host slice changes nothing.
	data[2] = 'X'
	if buf.Bytes()[2] == 'X' {
		t.Fatal("buffer aliases the host slice")
	}
}

func TestMemoryBufferFileRoundTrip(t *testing.T) {
	data := []byte("target datalayout = \"e\"\n")
	path := filepath.Join(t.TempDir(), "roundtrip.ll")

	buf, err := NewMemoryBufferFromBytes("source", data)
	if err != nil {
		t.Fatalf("NewMemoryBufferFromBytes failed: %v", err)
	}
	defer buf.Close()

	if err := buf.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	read, err := NewMemoryBufferFromFile(path)
	if err != nil {
		t.Fatalf("NewMemoryBufferFromFile failed: %v", err)
	}
	defer read.Close()

	if !bytes.Equal(read.Bytes(), data) {
		t.Fatalf("read back %x, want %x", read.Bytes(), data)
	}
}

func TestMemoryBufferFromMissingFile(t *testing.T) {
	buf, err := NewMemoryBufferFromFile(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected an error for a nonexistent path")
	}
	if buf != nil {
		t.Fatal("partially constructed buffer escaped on failure")
	}

	// The native toolkit reports the failure with its own diagnostic.
	var e *llvmerrors.Error
	if !errors.As(err, &e) {
		t.Fatalf("error %T is not structured", err)
	}
	if e.Kind != llvmerrors.KindDiagnostic && e.Kind != llvmerrors.KindIO {
		t.Fatalf("Kind = %v, want diagnostic or io", e.Kind)
	}
}

func TestMemoryBufferInvalidPath(t *testing.T) {
	_, err := NewMemoryBufferFromFile("bad\x00path")
	if !errors.Is(err, &llvmerrors.Error{
		Phase: llvmerrors.PhaseBuffer, Kind: llvmerrors.KindInvalidPath,
	}) {
		t.Fatalf("got %v, want invalid_path", err)
	}
}

func TestMemoryBufferUseAfterClose(t *testing.T) {
	buf, err := NewMemoryBufferFromBytes("closed", []byte("x"))
	if err != nil {
		t.Fatalf("NewMemoryBufferFromBytes failed: %v", err)
	}

	if err := buf.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := buf.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if buf.Len() != 0 || buf.Bytes() != nil {
		t.Fatal("closed buffer still exposes bytes")
	}
	if err := buf.WriteFile(filepath.Join(t.TempDir(), "out")); !errors.Is(err, &llvmerrors.Error{
		Phase: llvmerrors.PhaseBuffer, Kind: llvmerrors.KindUseAfterDispose,
	}) {
		t.Fatalf("WriteFile after close: got %v, want use_after_dispose", err)
	}
}
