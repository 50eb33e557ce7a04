package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSlot records every value stored into it
type fakeSlot struct {
	value  uintptr
	stores []uintptr
}

func (s *fakeSlot) Load() uintptr { return s.value }

func (s *fakeSlot) Store(fn uintptr) {
	s.value = fn
	s.stores = append(s.stores, fn)
}

const (
	previous    uintptr = 0x1000
	replacement uintptr = 0x2000
)

func TestHijack_NoCallback(t *testing.T) {
	slot := &fakeSlot{value: previous}
	calls := 0
	tr := New(slot, func(ignore, key int) int {
		calls++
		return 42
	})

	result := tr.Hijack(1, 9, replacement)

	assert.Equal(t, 42, result)
	assert.Equal(t, 1, calls)
	assert.Equal(t, previous, slot.value, "slot must be restored")
	assert.False(t, tr.Active())
	assert.Equal(t, []uintptr{replacement, previous}, slot.stores)
}

func TestHijack_ReplacementVisibleDuringDelegate(t *testing.T) {
	slot := &fakeSlot{value: previous}
	var tr *Trampoline
	tr = New(slot, func(ignore, key int) int {
		assert.Equal(t, replacement, slot.Load())
		assert.True(t, tr.Active())
		assert.Equal(t, previous, tr.Saved())
		return ignore + key
	})

	assert.Equal(t, 5, tr.Hijack(2, 3, replacement))
	assert.Equal(t, previous, slot.value)
}

func TestHijack_DelegateCallsReplacementManyTimes(t *testing.T) {
	slot := &fakeSlot{value: 0}
	invoked := 0
	replacementFn := func() {
		invoked++
	}

	tr := New(slot, func(_, _ int) int {
		// Foreign code calling whatever is installed, three times
		for i := 0; i < 3; i++ {
			if slot.Load() == replacement {
				replacementFn()
			}
		}
		return 0
	})

	tr.Hijack(0, '\t', replacement)

	assert.Equal(t, 3, invoked)
	assert.Equal(t, uintptr(0), slot.value, "a NULL slot is restored to NULL")
}

func TestHijack_RestoresOnPanic(t *testing.T) {
	slot := &fakeSlot{value: previous}
	tr := New(slot, func(_, _ int) int {
		panic("foreign failure")
	})

	require.Panics(t, func() {
		tr.Hijack(0, 0, replacement)
	})

	assert.Equal(t, previous, slot.value)
	assert.False(t, tr.Active())
}

func TestHijack_Sequential(t *testing.T) {
	slot := &fakeSlot{value: previous}
	tr := New(slot, func(_, key int) int { return key })

	for key := 0; key < 5; key++ {
		assert.Equal(t, key, tr.Hijack(0, key, replacement))
		assert.Equal(t, previous, slot.value)
	}
}

func TestHijack_Nested(t *testing.T) {
	slot := &fakeSlot{value: previous}
	var tr *Trampoline
	depth := 0
	tr = New(slot, func(_, key int) int {
		depth++
		if depth == 1 {
			inner := tr.Hijack(0, key+1, replacement)
			assert.Equal(t, previous, tr.Saved(), "outer saved value survives the inner hijack")
			assert.Equal(t, replacement, slot.Load(), "inner hijack restores the outer replacement")
			return inner
		}
		assert.Equal(t, replacement, tr.Saved())
		return key
	})

	assert.Equal(t, 8, tr.Hijack(0, 7, replacement))
	assert.Equal(t, previous, slot.value, "slot must hold the host's callback again")
	assert.False(t, tr.Active())
	assert.Zero(t, tr.Saved())
	assert.Equal(t, []uintptr{replacement, replacement, replacement, previous}, slot.stores)
}

func TestHijack_NestedPanicRestoresOuter(t *testing.T) {
	slot := &fakeSlot{value: previous}
	var tr *Trampoline
	depth := 0
	tr = New(slot, func(_, _ int) int {
		depth++
		if depth == 1 {
			assert.Panics(t, func() { tr.Hijack(0, 0, replacement) })
			assert.True(t, tr.Active())
			assert.Equal(t, previous, tr.Saved())
			return 0
		}
		panic("inner failure")
	})

	tr.Hijack(0, 0, replacement)
	assert.Equal(t, previous, slot.value)
	assert.False(t, tr.Active())
}
