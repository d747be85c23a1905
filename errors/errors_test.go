package errors

import (
	"errors"
	"strings"
	"testing"
)

type fakeDiag struct {
	text   string
	closed int
}

func (d *fakeDiag) String() string { return d.text }
func (d *fakeDiag) Len() int       { return len(d.text) }
func (d *fakeDiag) Close() error   { d.closed++; return nil }

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseBuffer,
				Kind:   KindDiagnostic,
				Detail: "read file",
				Diag:   &fakeDiag{text: "No such file or directory"},
			},
			contains: []string{"[buffer]", "diagnostic", "read file", "No such file or directory"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseContext,
				Kind:  KindNullPointer,
			},
			contains: []string{"[context]", "null_pointer"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseBuffer,
				Kind:   KindIO,
				Detail: "write file",
				Cause:  errors.New("disk full"),
			},
			contains: []string{"[buffer]", "io", "write file", "caused by", "disk full"},
		},
		{
			name: "diagnostic without detail",
			err: &Error{
				Phase: PhaseEngine,
				Kind:  KindDiagnostic,
				Diag:  &fakeDiag{text: "unable to create target"},
			},
			contains: []string{"[engine]", "diagnostic", ": unable to create target"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseBuffer,
		Kind:  KindIO,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseModule,
		Kind:   KindNullPointer,
		Detail: "AddFunction",
	}

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseModule, Kind: KindNullPointer}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseBuilder, Kind: KindNullPointer}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseModule, Kind: KindNotFound}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Phase: PhaseModule, Kind: KindNullPointer}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestError_Close(t *testing.T) {
	d := &fakeDiag{text: "diag"}
	err := Native(PhaseTarget, "emit", d)

	if err := err.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if d.closed != 1 {
		t.Fatalf("diagnostic closed %d times, want 1", d.closed)
	}

	// No diagnostic is fine
	if err := NullPointer(PhaseContext, "LLVMContextCreate").Close(); err != nil {
		t.Fatalf("Close without diagnostic failed: %v", err)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NullPointer", func(t *testing.T) {
		err := NullPointer(PhaseContext, "LLVMContextCreate")
		if err.Kind != KindNullPointer {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNullPointer)
		}
		if !strings.Contains(err.Detail, "LLVMContextCreate") {
			t.Errorf("Detail = %v, should name the constructor", err.Detail)
		}
	})

	t.Run("Native", func(t *testing.T) {
		d := &fakeDiag{text: "expected top-level entity"}
		err := Native(PhaseModule, "parse IR", d)
		if err.Kind != KindDiagnostic {
			t.Errorf("Kind = %v, want %v", err.Kind, KindDiagnostic)
		}
		if err.Diag == nil || err.Diag.Len() != d.Len() {
			t.Error("diagnostic not carried through")
		}
	})

	t.Run("InvalidPath", func(t *testing.T) {
		err := InvalidPath(PhaseBuffer, "bad\x00path")
		if err.Kind != KindInvalidPath {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidPath)
		}
	})

	t.Run("IO", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := IO(PhaseBuffer, "create file", cause)
		if err.Kind != KindIO {
			t.Errorf("Kind = %v, want %v", err.Kind, KindIO)
		}
		if !errors.Is(err, &Error{Phase: PhaseBuffer, Kind: KindIO}) {
			t.Error("errors.Is should match IO errors")
		}
		if !errors.Is(err.Cause, cause) {
			t.Error("cause not preserved")
		}
	})

	t.Run("UseAfterDispose", func(t *testing.T) {
		err := UseAfterDispose(PhaseBuilder, "builder")
		if err.Kind != KindUseAfterDispose {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUseAfterDispose)
		}
	})

	t.Run("Unpositioned", func(t *testing.T) {
		err := Unpositioned("Add")
		if err.Phase != PhaseBuilder || err.Kind != KindUnpositioned {
			t.Errorf("got [%v] %v, want [builder] unpositioned", err.Phase, err.Kind)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseEngine, "symbol", "main")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if !strings.Contains(err.Detail, `"main"`) {
			t.Errorf("Detail = %v, should quote the name", err.Detail)
		}
	})

	t.Run("InvalidArgument", func(t *testing.T) {
		err := InvalidArgument(PhaseBuilder, "phi incoming: 2 values for 1 blocks")
		if err.Phase != PhaseBuilder || err.Kind != KindInvalidArgument {
			t.Errorf("got [%v] %v, want [builder] invalid_argument", err.Phase, err.Kind)
		}
		if err.Detail != "phi incoming: 2 values for 1 blocks" {
			t.Errorf("Detail = %v", err.Detail)
		}
	})
}
