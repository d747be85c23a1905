package llvm

import (
	"testing"
)

func TestMessageRoundTrip(t *testing.T) {
	msg := NewMessage("invalid operand bundle")
	defer msg.Close()

	if got := msg.String(); got != "invalid operand bundle" {
		t.Fatalf("String = %q, want the original bytes", got)
	}
	if msg.Len() != len("invalid operand bundle") {
		t.Fatalf("Len = %d, want %d", msg.Len(), len("invalid operand bundle"))
	}
}

func TestMessageNilState(t *testing.T) {
	msg := newMessage(nil)

	if msg.Len() != 0 {
		t.Fatalf("nil message Len = %d, want 0", msg.Len())
	}
	if got := msg.String(); got != "<NULL>" {
		t.Fatalf("nil message String = %q, want placeholder", got)
	}
	// Closing the nil state never reaches the native deallocator.
	if err := msg.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestMessageDoubleClose(t *testing.T) {
	msg := NewMessage("once")
	if err := msg.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := msg.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	// After close the wrapper degrades to the empty state.
	if msg.Len() != 0 || msg.String() != "<NULL>" {
		t.Fatal("closed message still exposes bytes")
	}
}
