// Package hook turns a callback slot owned by foreign code into a scoped,
// ordinary function call: install a replacement, run the original entry
// point, put the previous value back.
package hook

// Slot is a process-wide callback pointer owned by a foreign library
type Slot interface {
	Load() uintptr
	Store(fn uintptr)
}

// Delegate is the original entry point being wrapped. It is foreign code and
// may invoke whatever the slot holds any number of times before returning.
type Delegate func(ignore, key int) int

// Trampoline saves, replaces and restores one Slot around calls to a
// Delegate.
//
// There is a single writer and no lock: completion is driven by one
// interactive input loop. Hijacks may nest; each restores exactly the value
// it found.
type Trampoline struct {
	slot     Slot
	delegate Delegate

	// saved holds the slot value found by each hijack in progress, innermost last
	saved []uintptr
}

// New creates a trampoline over slot that calls delegate
func New(slot Slot, delegate Delegate) *Trampoline {
	return &Trampoline{
		slot:     slot,
		delegate: delegate,
	}
}

// Hijack installs replacement in the slot, calls the delegate with ignore and
// key, restores the previous slot value and returns the delegate's result.
// The previous value is restored on every exit path, panics included.
func (t *Trampoline) Hijack(ignore, key int, replacement uintptr) int {
	prev := t.slot.Load()
	t.saved = append(t.saved, prev)
	t.slot.Store(replacement)

	defer func() {
		t.slot.Store(prev)
		t.saved = t.saved[:len(t.saved)-1]
	}()

	return t.delegate(ignore, key)
}

// Saved returns the slot value that was installed before the innermost
// hijack in progress, or 0 when none is.
func (t *Trampoline) Saved() uintptr {
	if len(t.saved) == 0 {
		return 0
	}
	return t.saved[len(t.saved)-1]
}

// Active reports whether a hijack is in progress
func (t *Trampoline) Active() bool {
	return len(t.saved) > 0
}
