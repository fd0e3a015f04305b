// Package observ tracks phase timings for the CLI's --timings output.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration and metadata of one tracked phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of multiple phases.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Track starts a phase and returns the function that finishes it.
func (t *Timer) Track(name string) func(note string) {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	idx := len(t.phases) - 1
	return func(note string) {
		p := &t.phases[idx]
		p.Dur = time.Since(p.Start)
		p.Note = note
	}
}

// Phases returns the tracked phases in start order.
func (t *Timer) Phases() []Phase {
	return t.phases
}

// Summary returns a human-readable report of all tracked phases.
func (t *Timer) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range t.phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, float64(p.Dur.Microseconds())/1000.0)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
