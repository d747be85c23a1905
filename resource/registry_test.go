package resource

import (
	"testing"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

type testDropper struct {
	drops int
}

func (d *testDropper) Drop() { d.drops++ }

func TestRegistry_Basic(t *testing.T) {
	reg := NewRegistry()

	h := reg.Register("test")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	if !reg.Alive(h) {
		t.Fatal("Alive should report true for a live handle")
	}

	val, ok := reg.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if !reg.Remove(h) {
		t.Fatal("Remove failed")
	}

	if reg.Alive(h) {
		t.Fatal("Alive should report false after Remove")
	}
	if reg.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
}

func TestRegistry_RemoveRunsDropperOnce(t *testing.T) {
	reg := NewRegistry()
	d := &testDropper{}

	h := reg.Register(d)
	if !reg.Remove(h) {
		t.Fatal("Remove failed")
	}
	if reg.Remove(h) {
		t.Fatal("second Remove should be a no-op")
	}
	if d.drops != 1 {
		t.Fatalf("Drop ran %d times, want 1", d.drops)
	}
}

func TestRegistry_ReleaseSkipsDropper(t *testing.T) {
	reg := NewRegistry()
	d := &testDropper{}

	h := reg.Register(d)
	val, ok := reg.Release(h)
	if !ok {
		t.Fatal("Release failed")
	}
	if val != d {
		t.Fatal("Release returned wrong value")
	}
	if d.drops != 0 {
		t.Fatalf("Drop ran %d times, want 0 after Release", d.drops)
	}

	// The handle is gone either way.
	if reg.Alive(h) {
		t.Fatal("Alive should report false after Release")
	}
	if reg.Remove(h) {
		t.Fatal("Remove after Release should be a no-op")
	}

	// Close must not dispose a released resource either.
	if err := reg.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if d.drops != 0 {
		t.Fatalf("Drop ran %d times after Close, want 0", d.drops)
	}
}

func TestRegistry_StaleGeneration(t *testing.T) {
	reg := NewRegistry()

	h1 := reg.Register("first")
	reg.Remove(h1)

	// Slot reuse must not revive the old handle.
	h2 := reg.Register("second")
	if h1 == h2 {
		t.Fatal("reused slot produced an identical handle")
	}
	if reg.Alive(h1) {
		t.Fatal("stale handle reports alive")
	}
	if _, ok := reg.Get(h1); ok {
		t.Fatal("stale handle still resolves")
	}

	val, ok := reg.Get(h2)
	if !ok || val != "second" {
		t.Fatalf("fresh handle broken: %v %v", val, ok)
	}
}

func TestRegistry_CloseReverseOrder(t *testing.T) {
	reg := NewRegistry()

	var order []string
	mk := func(name string) Dropper {
		return dropFunc(func() { order = append(order, name) })
	}

	reg.Register(mk("a"))
	reg.Register(mk("b"))
	reg.Register(mk("c"))

	if err := reg.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	want := []string{"c", "b", "a"}
	if len(order) != len(want) {
		t.Fatalf("dropped %d resources, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("drop order %v, want %v", order, want)
		}
	}

	// Closed registry rejects registration.
	if h := reg.Register("late"); h != 0 {
		t.Fatal("Register after Close should return the zero handle")
	}
	// Double close is a no-op.
	if err := reg.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if len(order) != len(want) {
		t.Fatal("second Close re-ran droppers")
	}
}

type dropFunc func()

func (f dropFunc) Drop() { f() }

func TestRegistry_Observer(t *testing.T) {
	reg := NewRegistry()
	obs := &testObserver{}
	reg.Subscribe(obs)

	h := reg.Register("test")
	if len(obs.events) != 1 || obs.events[0].Type != EventRegistered {
		t.Fatalf("expected EventRegistered, got %v", obs.events)
	}
	if obs.events[0].Handle != h {
		t.Fatal("wrong handle in event")
	}

	reg.Remove(h)
	if len(obs.events) != 2 || obs.events[1].Type != EventDropped {
		t.Fatalf("expected EventDropped, got %v", obs.events)
	}

	h2 := reg.Register("transfer")
	reg.Release(h2)
	if len(obs.events) != 4 || obs.events[3].Type != EventReleased {
		t.Fatalf("expected EventReleased, got %v", obs.events)
	}

	reg.Unsubscribe(obs)
	reg.Register("silent")
	if len(obs.events) != 4 {
		t.Fatal("unsubscribed observer still notified")
	}
}

func TestRegistry_ZeroHandle(t *testing.T) {
	reg := NewRegistry()

	if reg.Alive(0) {
		t.Fatal("zero handle reports alive")
	}
	if _, ok := reg.Get(0); ok {
		t.Fatal("zero handle resolves")
	}
	if reg.Remove(0) {
		t.Fatal("zero handle removable")
	}
}
