// Package analysis implements the Analysis Facade (spec.md §4.8): the
// single entry point that orchestrates the Input Enumerator through the
// Result Collector as one invocation and owns the top-level error
// taxonomy.
package analysis

import (
	"context"
	"fmt"

	"github.com/cherrygraph/cherry/callgraph"
	"github.com/cherrygraph/cherry/classfile"
	"github.com/cherrygraph/cherry/entrypoint"
	"github.com/cherrygraph/cherry/filter"
	"github.com/cherrygraph/cherry/hierarchy"
	"github.com/cherrygraph/cherry/ingest"
	"github.com/cherrygraph/cherry/internal/diagnostic"
	"github.com/cherrygraph/cherry/result"
)

// Kind tags the one fatal error in spec.md §7's taxonomy; everything else
// is recovered locally by the component that raised it and reported
// through the Sink instead.
type Kind string

const HierarchyCycle Kind = "HierarchyCycle"

// Error is the single exported error type Analyze returns on fatal
// failure. errors.Is/errors.As both work against it via Unwrap.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Config is the configuration surface consumed from the CLI collaborator
// (spec.md §6).
type Config struct {
	Paths           []string
	Algorithm       callgraph.Algorithm
	EntrySpecs      []string
	IncludePrefixes []string
	ExcludePrefixes []string
	ExcludeJDK      bool
	Verbose         bool
}

// Facade runs one analysis invocation end to end.
type Facade struct {
	Sink diagnostic.Sink
}

// NewFacade returns a Facade reporting warnings to sink; a nil sink
// discards all warnings.
func NewFacade(sink diagnostic.Sink) *Facade {
	if sink == nil {
		sink = diagnostic.Noop{}
	}
	return &Facade{Sink: sink}
}

// Analyze runs C1 (Input Enumerator) through C7 (Result Collector) and
// returns the AnalysisResult, or an *Error on HierarchyCycle (the only
// fatal condition in the taxonomy).
func (f *Facade) Analyze(ctx context.Context, cfg Config) (result.AnalysisResult, error) {
	algorithm := cfg.Algorithm
	if algorithm == "" {
		algorithm = callgraph.CHA
	}

	enumerator := ingest.New(f.Sink, ingest.WithVerbose(cfg.Verbose))
	units := enumerator.Enumerate(ctx, cfg.Paths)

	h := hierarchy.New()
	seen := make(map[string]uint64, len(units))
	for _, u := range units {
		decl, err := classfile.Parse(u.Data)
		if err != nil {
			f.Sink.Warn(diagnostic.Warning{Kind: diagnostic.MalformedUnit, Origin: u.Origin, Message: err.Error()})
			continue
		}
		if added := h.Add(decl); !added {
			msg := "duplicate type discarded (first-wins)"
			if prior, ok := seen[decl.FQN]; ok && prior == u.Fingerprint {
				msg = "duplicate type discarded (first-wins); byte-identical to the kept unit"
			}
			f.Sink.Warn(diagnostic.Warning{Kind: diagnostic.DuplicateType, Origin: u.Origin, Message: msg})
			continue
		}
		seen[decl.FQN] = u.Fingerprint
	}

	if err := h.Freeze(); err != nil {
		return result.AnalysisResult{}, &Error{Kind: HierarchyCycle, Cause: err}
	}

	nameFilter := filter.New(filter.Config{
		IncludePrefixes: cfg.IncludePrefixes,
		ExcludePrefixes: cfg.ExcludePrefixes,
		ExcludeJDK:      cfg.ExcludeJDK,
	})

	entries := entrypoint.Resolve(h, nameFilter, cfg.EntrySpecs)
	if len(entries) == 0 {
		f.Sink.Warn(diagnostic.Warning{Kind: diagnostic.NoEntryPointsFound, Message: "no entry points found; proceeding with an empty call graph"})
	}

	edges := callgraph.Build(h, algorithm, entries)

	res := result.Collect(h, nameFilter, edges)
	if len(res.Classes) == 0 {
		f.Sink.Warn(diagnostic.Warning{Kind: diagnostic.FilterShadowsEverything, Message: "name filter admitted no loaded classes"})
	}

	return res, nil
}
