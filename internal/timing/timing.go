// Package timing measures the phases of a helper run.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Timer records consecutive phases. Each Mark closes the phase that started
// at the previous Mark (or at creation).
type Timer struct {
	start  time.Time
	last   time.Time
	phases map[string]time.Duration
	order  []string
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	now := time.Now()
	return &Timer{
		start:  now,
		last:   now,
		phases: make(map[string]time.Duration),
	}
}

// Mark ends the current phase under label and returns its duration.
// Marking the same label twice accumulates.
func (t *Timer) Mark(label string) time.Duration {
	now := time.Now()
	d := now.Sub(t.last)
	t.last = now

	if _, seen := t.phases[label]; !seen {
		t.order = append(t.order, label)
	}
	t.phases[label] += d
	return d
}

// Elapsed returns total elapsed time since timer creation
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Get returns the duration of a phase
func (t *Timer) Get(label string) (time.Duration, bool) {
	d, ok := t.phases[label]
	return d, ok
}

// Labels returns phase labels in the order they were first marked
func (t *Timer) Labels() []string {
	return append([]string(nil), t.order...)
}

// Summary returns a one-line summary such as
// "total=3.100ms spawn=1.200ms write=0.010ms"
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "total=%.3fms", ms(t.Elapsed()))
	for _, label := range t.order {
		fmt.Fprintf(&b, " %s=%.3fms", label, ms(t.phases[label]))
	}
	return b.String()
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
