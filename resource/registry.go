package resource

import (
	"sort"
	"sync"
)

// Handle is an opaque reference to a registered resource. It packs a slot
// index and that slot's generation, so a handle goes stale the moment its
// slot is vacated. Handle 0 is reserved and always invalid.
type Handle uint64

const invalidHandle Handle = 0

func makeHandle(slot uint32, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(slot+1))
}

func (h Handle) split() (slot uint32, gen uint32, ok bool) {
	if h == invalidHandle {
		return 0, 0, false
	}
	return uint32(h&0xffffffff) - 1, uint32(h >> 32), true
}

// Event types for resource lifecycle notifications.
type EventType uint8

const (
	EventRegistered EventType = iota
	EventDropped
	EventReleased
)

// Event represents a resource lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Type   EventType
}

// Observer receives notifications about resource lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// Dropper is optionally implemented by resource values that need cleanup.
// Drop is invoked at most once per registration, either through Remove or
// through the registry's own Close.
type Dropper interface {
	Drop()
}

// Registry is a generation-counted arena of live native resources. It exists
// so that every object derived from an owner can be torn down exactly once
// when the owner goes away, and so that a wrapper held past that point is
// detected instead of dereferencing freed native memory.
type Registry struct {
	entries   []entry
	freeList  []uint32
	observers []Observer
	seq       uint64
	mu        sync.Mutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry struct {
	value any
	seq   uint64
	gen   uint32
	valid bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:  make([]entry, 0, 16),
		freeList: make([]uint32, 0, 8),
	}
}

// Register stores a value and returns its handle. Returns the zero handle
// when the registry is already closed.
func (r *Registry) Register(value any) Handle {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return invalidHandle
	}

	r.seq++
	var slot uint32
	if n := len(r.freeList); n > 0 {
		slot = r.freeList[n-1]
		r.freeList = r.freeList[:n-1]
		e := &r.entries[slot]
		e.value = value
		e.seq = r.seq
		e.valid = true
	} else {
		r.entries = append(r.entries, entry{value: value, seq: r.seq, valid: true})
		slot = uint32(len(r.entries) - 1)
	}
	h := makeHandle(slot, r.entries[slot].gen)
	r.mu.Unlock()

	r.notify(Event{Type: EventRegistered, Handle: h, Value: value})
	return h
}

// Alive reports whether the handle still refers to a live registration.
func (r *Registry) Alive(h Handle) bool {
	slot, gen, ok := h.split()
	if !ok {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || int(slot) >= len(r.entries) {
		return false
	}
	e := r.entries[slot]
	return e.valid && e.gen == gen
}

// Get retrieves a registered value by handle.
func (r *Registry) Get(h Handle) (any, bool) {
	slot, gen, ok := h.split()
	if !ok {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || int(slot) >= len(r.entries) {
		return nil, false
	}
	e := r.entries[slot]
	if !e.valid || e.gen != gen {
		return nil, false
	}
	return e.value, true
}

// Remove drops a registration, running its Dropper if it has one. Returns
// false if the handle was already stale, so double removal is a no-op.
func (r *Registry) Remove(h Handle) bool {
	value, ok := r.take(h)
	if !ok {
		return false
	}

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	r.notify(Event{Type: EventDropped, Handle: h, Value: value})
	return true
}

// Release removes a registration without running its Dropper. This is the
// ownership-transfer path: the caller hands disposal responsibility to a new
// owner, and the registry must not dispose the resource a second time.
func (r *Registry) Release(h Handle) (any, bool) {
	value, ok := r.take(h)
	if !ok {
		return nil, false
	}

	r.notify(Event{Type: EventReleased, Handle: h, Value: value})
	return value, true
}

func (r *Registry) take(h Handle) (any, bool) {
	slot, gen, ok := h.split()
	if !ok {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || int(slot) >= len(r.entries) {
		return nil, false
	}
	e := &r.entries[slot]
	if !e.valid || e.gen != gen {
		return nil, false
	}

	value := e.value
	e.valid = false
	e.value = nil
	e.gen++
	r.freeList = append(r.freeList, slot)
	return value, true
}

// Len returns the number of live registrations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, e := range r.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Subscribe adds an observer for lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// Close drops every live registration in reverse registration order, then
// stops accepting operations. Owned resources are created after what they
// borrow from, so reverse order tears dependents down before their owners.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true

	type live struct {
		value any
		seq   uint64
		h     Handle
	}
	remaining := make([]live, 0, len(r.entries))
	for slot := range r.entries {
		e := &r.entries[slot]
		if !e.valid {
			continue
		}
		remaining = append(remaining, live{value: e.value, seq: e.seq, h: makeHandle(uint32(slot), e.gen)})
		e.valid = false
		e.value = nil
	}
	r.entries = nil
	r.freeList = nil
	r.mu.Unlock()

	sort.Slice(remaining, func(i, j int) bool { return remaining[i].seq > remaining[j].seq })
	for _, l := range remaining {
		if d, ok := l.value.(Dropper); ok {
			d.Drop()
		}
		r.notify(Event{Type: EventDropped, Handle: l.h, Value: l.value})
	}
	return nil
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnResourceEvent(e)
	}
}
