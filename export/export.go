// Package export implements the out-of-core serializer collaborators
// named in spec.md §6: the core produces an AnalysisResult; these
// Encoders turn it into bytes. None of the formats are normative, only
// the AnalysisResult shape is.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cherrygraph/cherry/result"
)

// Encoder writes an AnalysisResult in one output format.
type Encoder interface {
	Encode(w io.Writer, res result.AnalysisResult) error
}

// Format names one of the four required output formats (spec.md §6).
type Format string

const (
	FormatText      Format = "text"
	FormatDelimited Format = "csv"
	FormatJSON      Format = "json"
	FormatDot       Format = "dot"
)

// New returns the Encoder for format, or an error if format is unknown.
func New(format Format) (Encoder, error) {
	switch format {
	case FormatText:
		return TextEncoder{}, nil
	case FormatDelimited:
		return DelimitedEncoder{}, nil
	case FormatJSON:
		return JSONEncoder{}, nil
	case FormatDot:
		return DotEncoder{}, nil
	default:
		return nil, fmt.Errorf("export: unknown format %q", format)
	}
}

// TextEncoder renders a header line, an edges block (owner.name ->
// owner.name in edge order), then a classes block.
type TextEncoder struct{}

func (TextEncoder) Encode(w io.Writer, res result.AnalysisResult) error {
	if _, err := fmt.Fprintf(w, "cherry analysis: %d classes, %d methods, %d edges\n",
		len(res.Classes), len(res.Methods), len(res.CallEdges)); err != nil {
		return err
	}
	for _, e := range res.CallEdges {
		if _, err := fmt.Fprintf(w, "%s -> %s\n", e.Source.String(), e.Target.String()); err != nil {
			return err
		}
	}
	for _, c := range res.Classes {
		if _, err := fmt.Fprintf(w, "%s (%s)\n", c.FQN, c.Kind); err != nil {
			return err
		}
	}
	return nil
}

// DelimitedEncoder renders one header row followed by
// source_class,source_method,target_class,target_method, one row per
// edge, quoting per RFC 4180 via encoding/csv.
type DelimitedEncoder struct{}

func (DelimitedEncoder) Encode(w io.Writer, res result.AnalysisResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"source_class", "source_method", "target_class", "target_method"}); err != nil {
		return err
	}
	for _, e := range res.CallEdges {
		row := []string{e.Source.OwnerFQN, e.Source.Name, e.Target.OwnerFQN, e.Target.Name}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONEncoder renders a top-level object with a callEdges array; classes
// and methods are included only when verbose.
type JSONEncoder struct {
	Verbose bool
}

type jsonCallEdge struct {
	SourceClass  string `json:"sourceClass"`
	SourceMethod string `json:"sourceMethod"`
	TargetClass  string `json:"targetClass"`
	TargetMethod string `json:"targetMethod"`
}

type jsonDocument struct {
	CallEdges []jsonCallEdge      `json:"callEdges"`
	Classes   []result.ClassInfo  `json:"classes,omitempty"`
	Methods   []result.MethodInfo `json:"methods,omitempty"`
}

func (e JSONEncoder) Encode(w io.Writer, res result.AnalysisResult) error {
	doc := jsonDocument{CallEdges: make([]jsonCallEdge, 0, len(res.CallEdges))}
	for _, edge := range res.CallEdges {
		doc.CallEdges = append(doc.CallEdges, jsonCallEdge{
			SourceClass:  edge.Source.OwnerFQN,
			SourceMethod: edge.Source.Name,
			TargetClass:  edge.Target.OwnerFQN,
			TargetMethod: edge.Target.Name,
		})
	}
	if e.Verbose {
		doc.Classes = res.Classes
		doc.Methods = res.Methods
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// DotEncoder renders a digraph declaration: one quoted node line per
// unique owner.name, then one directed-edge line per call edge, in edge
// order (spec.md SUPPLEMENTED FEATURES #3).
type DotEncoder struct{}

func (DotEncoder) Encode(w io.Writer, res result.AnalysisResult) error {
	if _, err := fmt.Fprintln(w, "digraph callgraph {"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "\tnode [shape=box];"); err != nil {
		return err
	}

	seen := make(map[string]bool)
	nodeOrder := make([]string, 0, len(res.CallEdges)*2)
	noteNode := func(n string) {
		if !seen[n] {
			seen[n] = true
			nodeOrder = append(nodeOrder, n)
		}
	}
	for _, e := range res.CallEdges {
		noteNode(e.Source.String())
		noteNode(e.Target.String())
	}
	for _, n := range nodeOrder {
		if _, err := fmt.Fprintf(w, "\t%q;\n", n); err != nil {
			return err
		}
	}
	for _, e := range res.CallEdges {
		if _, err := fmt.Fprintf(w, "\t%q -> %q;\n", e.Source.String(), e.Target.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
