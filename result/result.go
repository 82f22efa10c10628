// Package result implements the Result Collector (spec.md §4.7): it
// assembles the externally observable AnalysisResult from the Type
// Hierarchy and the constructor's edge set, applying the Name Filter.
package result

import (
	"sort"

	"github.com/cherrygraph/cherry/filter"
	"github.com/cherrygraph/cherry/hierarchy"
	"github.com/cherrygraph/cherry/model"
)

// ClassInfo is one admitted class in the result.
type ClassInfo struct {
	FQN  string
	Kind model.ClassKind
}

// MethodInfo is one admitted, non-synthetic method in the result.
type MethodInfo struct {
	OwnerFQN   string
	Name       string
	Descriptor string
	Visibility model.Visibility
	IsStatic   bool
}

// AnalysisResult is the externally observable output of one analysis
// invocation (spec.md §3).
type AnalysisResult struct {
	Classes   []ClassInfo
	Methods   []MethodInfo
	CallEdges []model.CallEdge
}

// Collect builds an AnalysisResult per spec.md §4.7's three-step
// procedure: classes in lexicographic fqn order, methods in
// lexicographic (name, descriptor) order per admitted class (synthetic
// methods skipped), and edges admitted iff both endpoints' owners pass
// f, preserving the constructor's first-seen order.
func Collect(h *hierarchy.Hierarchy, f *filter.Filter, edges []model.CallEdge) AnalysisResult {
	var res AnalysisResult

	for _, fqn := range h.FQNs() {
		if !f.Admits(fqn) {
			continue
		}
		decl, ok := h.Get(fqn)
		if !ok {
			continue
		}
		res.Classes = append(res.Classes, ClassInfo{FQN: decl.FQN, Kind: decl.Kind})

		methods := make([]model.MethodDecl, len(decl.Methods))
		copy(methods, decl.Methods)
		sort.Slice(methods, func(i, j int) bool {
			if methods[i].Name != methods[j].Name {
				return methods[i].Name < methods[j].Name
			}
			return methods[i].Descriptor < methods[j].Descriptor
		})
		for _, m := range methods {
			if m.IsSynthetic {
				continue
			}
			res.Methods = append(res.Methods, MethodInfo{
				OwnerFQN:   m.OwnerFQN,
				Name:       m.Name,
				Descriptor: m.Descriptor,
				Visibility: m.Visibility,
				IsStatic:   m.IsStatic,
			})
		}
	}

	for _, e := range edges {
		if f.Admits(e.Source.OwnerFQN) && f.Admits(e.Target.OwnerFQN) {
			res.CallEdges = append(res.CallEdges, e)
		}
	}

	return res
}
