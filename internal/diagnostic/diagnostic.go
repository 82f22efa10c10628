// Package diagnostic carries warning-severity events out of the core
// without the core ever touching stdout/stderr itself. Every collaborator
// that wants to observe warnings supplies a Sink; cmd/cherry wires Stderr,
// tests wire Collector.
package diagnostic

import (
	"fmt"
	"os"
)

// Kind tags a warning with the error-taxonomy entry that raised it.
type Kind string

const (
	UnreadableInput         Kind = "UnreadableInput"
	MalformedUnit           Kind = "MalformedUnit"
	DuplicateType           Kind = "DuplicateType"
	NoEntryPointsFound      Kind = "NoEntryPointsFound"
	FilterShadowsEverything Kind = "FilterShadowsEverything"
)

// Warning is one non-fatal event. Origin is the input path or unit
// description that produced it, empty when not applicable.
type Warning struct {
	Kind    Kind
	Origin  string
	Message string
}

func (w Warning) String() string {
	if w.Origin == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Origin, w.Message)
}

// Sink receives warnings as they're raised. Implementations must be safe
// for sequential use from one analysis invocation; nothing in the core
// calls Warn concurrently.
type Sink interface {
	Warn(w Warning)
}

// Stderr writes one line per warning to os.Stderr, gated by Verbose.
type Stderr struct {
	Verbose bool
}

// NewStderr returns a Sink that writes to os.Stderr when verbose is true
// and discards everything otherwise.
func NewStderr(verbose bool) Sink {
	return &Stderr{Verbose: verbose}
}

func (s *Stderr) Warn(w Warning) {
	if !s.Verbose {
		return
	}
	fmt.Fprintln(os.Stderr, w.String())
}

// Collector accumulates warnings in arrival order, used by tests that want
// to assert on which diagnostics fired without touching the filesystem.
type Collector struct {
	Warnings []Warning
}

func (c *Collector) Warn(w Warning) {
	c.Warnings = append(c.Warnings, w)
}

// Noop discards every warning; useful as a default when the caller hasn't
// supplied a Sink.
type Noop struct{}

func (Noop) Warn(Warning) {}
